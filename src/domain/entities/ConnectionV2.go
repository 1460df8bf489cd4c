package entities

import "time"

// ConnectionV2 é a aresta assimétrica: cada participante mantém o seu
// próprio rótulo e bucket, ligados pelo mapa ParticipantState.
type ConnectionV2 struct {
	ID          int64            `json:"id"`
	InitiatorID string           `json:"initiator_id"`
	RecipientID string           `json:"recipient_id"`
	Status      ConnectionStatus `json:"status"`
	BucketAssignmentV2
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// O mapa contém exatamente as duas identidades dos endpoints assim que a
// aresta existe.
type BucketAssignmentV2 struct {
	InitialSubRelation    string                      `json:"initial_sub_relation"`
	InitialDirectionality Directionality              `json:"initial_directionality"`
	ParticipantState      map[string]ParticipantState `json:"participant_state"`
}

// ParticipantState é a visão de um lado da conexão. ModificationCount
// começa em 0 e só cresce, limitado a 5 rotulagens bem-sucedidas.
type ParticipantState struct {
	SubRelation       string     `json:"sub_relation"`
	BucketType        BucketType `json:"bucket_type"`
	ModificationCount int        `json:"modification_count"`
}

// Other devolve a identidade do outro endpoint em relação ao ator.
func (c ConnectionV2) Other(participantID string) string {
	if participantID == c.InitiatorID {
		return c.RecipientID
	}
	return c.InitiatorID
}
