package entities

import "time"

type ConnectionStatus string

const (
	StatusReceived  ConnectionStatus = "Received"
	StatusAccepted  ConnectionStatus = "Accepted"
	StatusRejected  ConnectionStatus = "Rejected"
	StatusCancelled ConnectionStatus = "Cancelled"
)

func (s ConnectionStatus) Valid() bool {
	switch s {
	case StatusReceived, StatusAccepted, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

// É a "aresta" simples do grafo social: os dois lados compartilham uma
// única classificação de bucket/rótulo.
type Connection struct {
	ID          int64            `json:"id"`
	InitiatorID string           `json:"initiator_id"`
	RecipientID string           `json:"recipient_id"`
	Status      ConnectionStatus `json:"status"`
	BucketAssignment
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BucketAssignment pertence exclusivamente à sua Connection
// (sem ciclo de vida próprio).
type BucketAssignment struct {
	BucketType       BucketType `json:"bucket_type"`
	RelationLabel    string     `json:"relation_label"`
	SubRelationLabel string     `json:"sub_relation_label"`
}
