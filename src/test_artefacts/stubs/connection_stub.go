package stubs

import (
	"time"

	"github.com/cantdoitbye/backend-sub007/src/domain/entities"

	"github.com/brianvoe/gofakeit/v6"
)

type ConnectionStub struct {
	connection entities.Connection
}

func NewConnectionStub() ConnectionStub {
	now := time.Now().UTC()

	connection := entities.Connection{
		ID:          gofakeit.Int64(),
		InitiatorID: "user-" + gofakeit.UUID(),
		RecipientID: "user-" + gofakeit.UUID(),
		Status:      entities.StatusReceived,
		BucketAssignment: entities.BucketAssignment{
			BucketType:       entities.BucketOuter,
			RelationLabel:    "Friend",
			SubRelationLabel: "friend",
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	return ConnectionStub{connection: connection}
}

func (cs ConnectionStub) WithInitiator(initiatorID string) ConnectionStub {
	cs.connection.InitiatorID = initiatorID
	return cs
}

func (cs ConnectionStub) WithRecipient(recipientID string) ConnectionStub {
	cs.connection.RecipientID = recipientID
	return cs
}

func (cs ConnectionStub) WithStatus(status entities.ConnectionStatus) ConnectionStub {
	cs.connection.Status = status
	return cs
}

func (cs ConnectionStub) WithBucket(bucket entities.BucketType) ConnectionStub {
	cs.connection.BucketType = bucket
	return cs
}

func (cs ConnectionStub) WithLabels(relationLabel, subRelationLabel string) ConnectionStub {
	cs.connection.RelationLabel = relationLabel
	cs.connection.SubRelationLabel = subRelationLabel
	return cs
}

func (cs ConnectionStub) Get() entities.Connection {
	return cs.connection
}
