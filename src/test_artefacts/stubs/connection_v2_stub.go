package stubs

import (
	"time"

	"github.com/cantdoitbye/backend-sub007/src/domain/entities"

	"github.com/brianvoe/gofakeit/v6"
)

type ConnectionV2Stub struct {
	connection entities.ConnectionV2
}

func NewConnectionV2Stub() ConnectionV2Stub {
	now := time.Now().UTC()

	initiatorID := "user-" + gofakeit.UUID()
	recipientID := "user-" + gofakeit.UUID()

	connection := entities.ConnectionV2{
		ID:          gofakeit.Int64(),
		InitiatorID: initiatorID,
		RecipientID: recipientID,
		Status:      entities.StatusReceived,
		BucketAssignmentV2: entities.BucketAssignmentV2{
			InitialSubRelation:    "friend",
			InitialDirectionality: entities.DirectionalityUnidirectional,
			ParticipantState: map[string]entities.ParticipantState{
				initiatorID: {SubRelation: "friend", BucketType: entities.BucketOuter},
				recipientID: {SubRelation: "friend", BucketType: entities.BucketOuter},
			},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	return ConnectionV2Stub{connection: connection}
}

func (cs ConnectionV2Stub) WithInitiator(initiatorID string) ConnectionV2Stub {
	state := cs.connection.ParticipantState[cs.connection.InitiatorID]
	delete(cs.connection.ParticipantState, cs.connection.InitiatorID)
	cs.connection.ParticipantState[initiatorID] = state
	cs.connection.InitiatorID = initiatorID
	return cs
}

func (cs ConnectionV2Stub) WithRecipient(recipientID string) ConnectionV2Stub {
	state := cs.connection.ParticipantState[cs.connection.RecipientID]
	delete(cs.connection.ParticipantState, cs.connection.RecipientID)
	cs.connection.ParticipantState[recipientID] = state
	cs.connection.RecipientID = recipientID
	return cs
}

func (cs ConnectionV2Stub) WithStatus(status entities.ConnectionStatus) ConnectionV2Stub {
	cs.connection.Status = status
	return cs
}

func (cs ConnectionV2Stub) WithInitialSubRelation(subRelation string, directionality entities.Directionality) ConnectionV2Stub {
	cs.connection.InitialSubRelation = subRelation
	cs.connection.InitialDirectionality = directionality
	return cs
}

func (cs ConnectionV2Stub) WithParticipantState(participantID string, state entities.ParticipantState) ConnectionV2Stub {
	cs.connection.ParticipantState[participantID] = state
	return cs
}

func (cs ConnectionV2Stub) Get() entities.ConnectionV2 {
	return cs.connection
}
