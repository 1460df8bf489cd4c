package domain

import (
	"context"

	"github.com/cantdoitbye/backend-sub007/src/domain/entities"
)

// ############################################################
// ############ COLABORADORES EXTERNOS (interfaces) ###########
// ############################################################

// Tipos de notificação disparados pelas mutações de conexão.
const (
	NotificationConnectionRequest  = "connection_request"
	NotificationConnectionAccepted = "connection_accepted"
	NotificationConnectionRejected = "connection_rejected"
)

// Notifier entrega uma notificação fire-and-forget para um usuário.
// Falhas são logadas pelo chamador e nunca propagadas para a mutação.
type Notifier interface {
	Notify(ctx context.Context, kind string, targetID string, payload map[string]interface{}) error
}

// Profile é o mínimo do diretório de identidade que precisamos para
// montar o payload de uma notificação.
type Profile struct {
	UserID             string `json:"user_id"`
	DisplayName        string `json:"display_name"`
	NotificationTarget string `json:"notification_target"`
}

// IdentityDirectory resolve um user id opaco para dados de perfil.
// Autenticação acontece fora deste motor; aqui só comparamos identidades.
type IdentityDirectory interface {
	GetProfile(ctx context.Context, userID string) (Profile, error)
}

// ############################################################
// ############## DTOs DAS OPERAÇÕES DO MOTOR #################
// ############################################################

// TaxonomyEntry é uma entrada do carregador idempotente de taxonomia,
// chaveada por (categoria, nome).
type TaxonomyEntry struct {
	Category         string                  `json:"category"`
	Name             string                  `json:"name"`
	Directionality   entities.Directionality `json:"directionality"`
	ApprovalRequired bool                    `json:"approval_required"`
	ReverseLabel     string                  `json:"reverse_label"`
	DefaultBucket    entities.BucketType     `json:"default_bucket"`
}

// CreateConnectionRequest cria uma aresta V1 com o bucket compartilhado.
type CreateConnectionRequest struct {
	InitiatorID      string
	RecipientID      string
	BucketType       entities.BucketType
	RelationLabel    string
	SubRelationLabel string
}

// RelabelConnectionRequest enumera os únicos campos mutáveis do relabel V1.
// Campos nil não são tocados.
type RelabelConnectionRequest struct {
	BucketType       *entities.BucketType
	SubRelationLabel *string
}

// RelabelConnectionV2Request enumera os campos mutáveis do relabel V2.
type RelabelConnectionV2Request struct {
	SubRelation *string
	BucketType  *entities.BucketType
}

// ParticipantUpdate é a escrita sancionada sobre um lado do mapa de
// participantes de uma aresta V2.
type ParticipantUpdate struct {
	ParticipantID      string
	SubRelation        *string
	BucketType         *entities.BucketType
	ChargeModification bool
}

// StatsDelta é o incremento aplicado aos contadores de um usuário em
// uma transição; campos zero não alteram nada.
type StatsDelta struct {
	UserID    string
	Accepted  int
	Rejected  int
	Inner     int
	Outer     int
	Universal int
}

// ConnectionFilter filtra a listagem de arestas do ator.
type ConnectionFilter struct {
	Status     *entities.ConnectionStatus
	BucketType *entities.BucketType
}
