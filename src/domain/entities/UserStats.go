package entities

import "time"

// UserStats agrega os contadores de conexão de um usuário.
// SentCount/ReceivedCount são recalculados do grafo sob demanda (overwrite);
// os demais são mantidos incrementalmente pelas transições.
type UserStats struct {
	UserID         string    `json:"user_id"`
	SentCount      int       `json:"sent_count"`
	ReceivedCount  int       `json:"received_count"`
	AcceptedCount  int       `json:"accepted_count"`
	RejectedCount  int       `json:"rejected_count"`
	InnerCount     int       `json:"inner_count"`
	OuterCount     int       `json:"outer_count"`
	UniversalCount int       `json:"universal_count"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
