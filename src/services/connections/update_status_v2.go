package connections

import (
	"context"

	"github.com/cantdoitbye/backend-sub007/src/domain"
	"github.com/cantdoitbye/backend-sub007/src/domain/entities"
)

// UpdateConnectionV2Status aplica a mesma máquina de estados da V1.
// Sem efeitos de contadores: a V2 não define agregados equivalentes e a
// assimetria com a V1 é comportamento preservado, não um bug.
func (s *ConnectionService) UpdateConnectionV2Status(ctx context.Context, connectionID int64, newStatus entities.ConnectionStatus, actorID string) (entities.ConnectionV2, error) {
	connection, err := s.connectionV2Repository.GetByID(ctx, connectionID)
	if err != nil {
		return entities.ConnectionV2{}, err
	}

	if err := validateTransition(connection.InitiatorID, connection.RecipientID, connection.Status, newStatus, actorID); err != nil {
		return entities.ConnectionV2{}, err
	}

	if err := s.connectionV2Repository.UpdateStatus(ctx, connectionID, newStatus); err != nil {
		return entities.ConnectionV2{}, err
	}

	connection.Status = newStatus

	s.logger.Info("Connection v2 status updated",
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

	return connection, nil
}
