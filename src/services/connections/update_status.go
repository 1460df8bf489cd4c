package connections

import (
	"context"

	"github.com/cantdoitbye/backend-sub007/src/domain"
	"github.com/cantdoitbye/backend-sub007/src/domain/entities"
)

// UpdateConnectionStatus executa uma transição da aresta V1 e os efeitos
// de contadores na mesma transação:
//   - Accepted: acceptedCount do destinatário +1 e o contador do bucket
//     compartilhado +1 nos DOIS endpoints.
//   - Rejected: rejectedCount do destinatário +1.
//   - Cancelled: sem efeitos de contador.
func (s *ConnectionService) UpdateConnectionStatus(ctx context.Context, connectionID int64, newStatus entities.ConnectionStatus, actorID string) (entities.Connection, error) {
	connection, err := s.connectionRepository.GetByID(ctx, connectionID)
	if err != nil {
		return entities.Connection{}, err
	}

	if err := validateTransition(connection.InitiatorID, connection.RecipientID, connection.Status, newStatus, actorID); err != nil {
		return entities.Connection{}, err
	}

	deltas := transitionDeltas(connection, newStatus)

	updated, err := s.connectionRepository.UpdateStatusWithStats(ctx, connectionID, newStatus, deltas)
	if err != nil {
		return entities.Connection{}, err
	}

	s.logger.Info("Connection status updated",
		"connection_id", connectionID,
		"status", newStatus,
		"actor_id", actorID)

	switch newStatus {
	case entities.StatusAccepted:
		s.notify(domain.NotificationConnectionAccepted, actorID, connection.InitiatorID, map[string]interface{}{
			"connection_id": connectionID,
		})
	case entities.StatusRejected:
		s.notify(domain.NotificationConnectionRejected, actorID, connection.InitiatorID, map[string]interface{}{
			"connection_id": connectionID,
		})
	}

	return updated, nil
}

func transitionDeltas(connection entities.Connection, newStatus entities.ConnectionStatus) []domain.StatsDelta {
	switch newStatus {
	case entities.StatusAccepted:
		initiatorDelta := statsDeltaForBucket(connection.InitiatorID, connection.BucketType, 1)
		recipientDelta := statsDeltaForBucket(connection.RecipientID, connection.BucketType, 1)
		recipientDelta.Accepted = 1
		return []domain.StatsDelta{initiatorDelta, recipientDelta}

	case entities.StatusRejected:
		return []domain.StatsDelta{{UserID: connection.RecipientID, Rejected: 1}}
	}

	return nil
}
