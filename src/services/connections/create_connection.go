package connections

import (
	"context"
	"fmt"

	"github.com/cantdoitbye/backend-sub007/src/domain"
	"github.com/cantdoitbye/backend-sub007/src/domain/entities"
)

// CreateConnection cria a aresta V1 com status Received. Antes disso varre
// as arestas existentes entre os dois usuários, em qualquer direção: uma
// pendente bloqueia com "already sent", uma aceita com "already connected".
func (s *ConnectionService) CreateConnection(ctx context.Context, request domain.CreateConnectionRequest) (entities.Connection, error) {
	if request.InitiatorID == request.RecipientID {
		return entities.Connection{}, domain.NewConflict("cannot create a connection with yourself")
	}

	if !request.BucketType.Valid() {
		return entities.Connection{}, domain.NewConflict(fmt.Sprintf("invalid bucket type %q", request.BucketType))
	}

	existing, err := s.connectionRepository.FindBetween(ctx, request.InitiatorID, request.RecipientID,
		[]entities.ConnectionStatus{entities.StatusReceived, entities.StatusAccepted})
	if err != nil {
		return entities.Connection{}, err
	}

	for _, connection := range existing {
		if connection.Status == entities.StatusAccepted {
			return entities.Connection{}, domain.NewConflict("users are already connected")
		}
	}
	if len(existing) > 0 {
		return entities.Connection{}, domain.NewConflict("connection request already sent")
	}

	connection := entities.Connection{
		InitiatorID: request.InitiatorID,
		RecipientID: request.RecipientID,
		Status:      entities.StatusReceived,
		BucketAssignment: entities.BucketAssignment{
			BucketType:       request.BucketType,
			RelationLabel:    request.RelationLabel,
			SubRelationLabel: request.SubRelationLabel,
		},
	}

	if err := s.connectionRepository.Insert(ctx, &connection); err != nil {
		return entities.Connection{}, err
	}

	s.logger.Info("Connection created",
		"connection_id", connection.ID,
		"initiator_id", connection.InitiatorID,
		"recipient_id", connection.RecipientID)

	s.notify(domain.NotificationConnectionRequest, request.InitiatorID, request.RecipientID, map[string]interface{}{
		"connection_id": connection.ID,
		"relation":      request.RelationLabel,
	})

	return connection, nil
}
