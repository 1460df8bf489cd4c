package connections

import (
	"context"

	"github.com/cantdoitbye/backend-sub007/src/domain"
	"github.com/cantdoitbye/backend-sub007/src/domain/entities"
)

// CreateConnectionV2 cria a aresta assimétrica a partir da regra da
// sub-relação: o rótulo do destinatário vem da propagação (reverso quando
// bidirecional) e o bucket padrão dos dois lados vem da regra forward.
func (s *ConnectionService) CreateConnectionV2(ctx context.Context, initiatorID string, recipientID string, subRelationName string) (entities.ConnectionV2, error) {
	if !s.v2Enabled {
		return entities.ConnectionV2{}, domain.NewConflict("v2 connections are not enabled")
	}

	if initiatorID == recipientID {
		return entities.ConnectionV2{}, domain.NewConflict("cannot create a connection with yourself")
	}

	rule, err := s.taxonomyRepository.Lookup(ctx, subRelationName)
	if err != nil {
		return entities.ConnectionV2{}, err
	}

	existing, err := s.connectionV2Repository.FindBetween(ctx, initiatorID, recipientID,
		[]entities.ConnectionStatus{entities.StatusReceived, entities.StatusAccepted})
	if err != nil {
		return entities.ConnectionV2{}, err
	}

	for _, connection := range existing {
		if connection.Status == entities.StatusAccepted {
			return entities.ConnectionV2{}, domain.NewConflict("users are already connected")
		}
	}
	if len(existing) > 0 {
		return entities.ConnectionV2{}, domain.NewConflict("connection request already sent")
	}

	connection := entities.ConnectionV2{
		InitiatorID: initiatorID,
		RecipientID: recipientID,
		Status:      entities.StatusReceived,
		BucketAssignmentV2: entities.BucketAssignmentV2{
			InitialSubRelation:    rule.Name,
			InitialDirectionality: rule.Directionality,
			ParticipantState:      buildParticipantStates(rule, initiatorID, recipientID),
		},
	}

	if err := s.connectionV2Repository.Insert(ctx, &connection); err != nil {
		return entities.ConnectionV2{}, err
	}

	s.logger.Info("Connection v2 created",
		"connection_id", connection.ID,
		"initiator_id", initiatorID,
		"recipient_id", recipientID,
		"sub_relation", rule.Name)

	s.notify(domain.NotificationConnectionRequest, initiatorID, recipientID, map[string]interface{}{
		"connection_id": connection.ID,
		"sub_relation":  rule.Name,
	})

	return connection, nil
}
