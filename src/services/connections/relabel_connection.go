package connections

import (
	"context"

	"github.com/cantdoitbye/backend-sub007/src/domain"
	"github.com/cantdoitbye/backend-sub007/src/domain/entities"
)

// RelabelConnection muda o bucket e/ou o rótulo compartilhados de uma
// aresta V1 aceita. O bucket é um registro único dos dois lados: mudar de
// Inner para Outer decrementa Inner e incrementa Outer nos DOIS endpoints.
func (s *ConnectionService) RelabelConnection(ctx context.Context, connectionID int64, actorID string, request domain.RelabelConnectionRequest) (entities.Connection, error) {
	connection, err := s.connectionRepository.GetByID(ctx, connectionID)
	if err != nil {
		return entities.Connection{}, err
	}

	if actorID != connection.InitiatorID && actorID != connection.RecipientID {
		return entities.Connection{}, domain.NewUnauthorized("actor is not a participant of this connection")
	}

	if connection.Status != entities.StatusAccepted {
		return entities.Connection{}, domain.NewConflict("connection is not accepted")
	}

	if request.BucketType == nil && request.SubRelationLabel == nil {
		return entities.Connection{}, domain.NewConflict("nothing to update")
	}

	if request.BucketType != nil && !request.BucketType.Valid() {
		return entities.Connection{}, domain.NewConflict("invalid bucket type")
	}

	var deltas []domain.StatsDelta
	if request.BucketType != nil && *request.BucketType != connection.BucketType {
		deltas = []domain.StatsDelta{
			statsDeltaForBucket(connection.InitiatorID, connection.BucketType, -1),
			statsDeltaForBucket(connection.RecipientID, connection.BucketType, -1),
			statsDeltaForBucket(connection.InitiatorID, *request.BucketType, 1),
			statsDeltaForBucket(connection.RecipientID, *request.BucketType, 1),
		}
	}

	updated, err := s.connectionRepository.RelabelWithStats(ctx, connectionID, request, deltas)
	if err != nil {
		return entities.Connection{}, err
	}

	s.logger.Info("Connection relabeled",
		"connection_id", connectionID,
		"actor_id", actorID,
		"bucket_type", updated.BucketType,
		"sub_relation", updated.SubRelationLabel)

	return updated, nil
}
