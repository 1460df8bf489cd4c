package entities

import "time"

// Directionality decide como o rótulo de uma sub-relação se propaga
// para o outro participante da conexão.
type Directionality string

const (
	// O mesmo rótulo é copiado para os dois lados (ex: "friend" <-> "friend").
	DirectionalityUnidirectional Directionality = "Unidirectional"
	// O outro lado recebe o rótulo reverso canônico (ex: "mentor" <-> "mentee").
	DirectionalityBidirectional Directionality = "Bidirectional"
)

// BucketType é o círculo de visibilidade de uma conexão.
type BucketType string

const (
	BucketInner     BucketType = "Inner"
	BucketOuter     BucketType = "Outer"
	BucketUniversal BucketType = "Universal"
)

func (b BucketType) Valid() bool {
	switch b {
	case BucketInner, BucketOuter, BucketUniversal:
		return true
	}
	return false
}

// Agrupa sub-relações sob um nome de alto nível (ex: "Relatives", "Professional").
type RelationCategory struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SubRelationRule é o dado de referência que governa uma sub-relação:
// direcionalidade, rótulo reverso e bucket padrão. Carregado pelo seeder,
// somente leitura em tempo de request.
type SubRelationRule struct {
	ID               int64          `json:"id"`
	CategoryID       int64          `json:"category_id"`
	CategoryName     string         `json:"category_name"`
	Name             string         `json:"name"`
	Directionality   Directionality `json:"directionality"`
	ApprovalRequired bool           `json:"approval_required"`
	ReverseLabel     string         `json:"reverse_label"`
	DefaultBucket    BucketType     `json:"default_bucket"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}
