package connections

import (
	"context"

	"github.com/cantdoitbye/backend-sub007/src/domain"
	"github.com/cantdoitbye/backend-sub007/src/domain/entities"
)

// Cada participante pode mudar o próprio rótulo no máximo este número de
// vezes por aresta.
const maxModificationCount = 5

// RelabelConnectionV2 muda o lado do ator de uma aresta aceita.
//
// Só bucket: escrita local, sem propagação e sem cobrar o throttle.
// Com sub-relação: consome uma modificação do ator e propaga o rótulo
// para o outro lado segundo a direcionalidade da nova regra - o outro
// participante não é cobrado pela escrita propagada.
func (s *ConnectionService) RelabelConnectionV2(ctx context.Context, connectionID int64, actorID string, request domain.RelabelConnectionV2Request) (entities.ConnectionV2, error) {
	connection, err := s.connectionV2Repository.GetByID(ctx, connectionID)
	if err != nil {
		return entities.ConnectionV2{}, err
	}

	if actorID != connection.InitiatorID && actorID != connection.RecipientID {
		return entities.ConnectionV2{}, domain.NewUnauthorized("actor is not a participant of this connection")
	}

	if connection.Status != entities.StatusAccepted {
		return entities.ConnectionV2{}, domain.NewConflict("connection is not accepted")
	}

	if request.SubRelation == nil && request.BucketType == nil {
		return entities.ConnectionV2{}, domain.NewConflict("nothing to update")
	}

	if request.BucketType != nil && !request.BucketType.Valid() {
		return entities.ConnectionV2{}, domain.NewConflict("invalid bucket type")
	}

	// Mudança só de bucket: não propaga e não conta modificação.
	if request.SubRelation == nil {
		actorUpdate := domain.ParticipantUpdate{
			ParticipantID: actorID,
			BucketType:    request.BucketType,
		}

		if err := s.connectionV2Repository.ApplyRelabel(ctx, connectionID, actorUpdate, nil); err != nil {
			return entities.ConnectionV2{}, err
		}

		return s.connectionV2Repository.GetByID(ctx, connectionID)
	}

	actorState := connection.ParticipantState[actorID]
	if actorState.ModificationCount >= maxModificationCount {
		return entities.ConnectionV2{}, domain.NewLimitExceeded("maximum modification count reached")
	}

	rule, err := s.taxonomyRepository.Lookup(ctx, *request.SubRelation)
	if err != nil {
		return entities.ConnectionV2{}, err
	}

	actorLabel := rule.Name
	otherLabel := propagatedLabel(rule)

	actorUpdate := domain.ParticipantUpdate{
		ParticipantID:      actorID,
		SubRelation:        &actorLabel,
		BucketType:         request.BucketType,
		ChargeModification: true,
	}
	otherUpdate := domain.ParticipantUpdate{
		ParticipantID: connection.Other(actorID),
		SubRelation:   &otherLabel,
	}

	if err := s.connectionV2Repository.ApplyRelabel(ctx, connectionID, actorUpdate, &otherUpdate); err != nil {
		return entities.ConnectionV2{}, err
	}

	s.logger.Info("Connection v2 relabeled",
		"connection_id", connectionID,
		"actor_id", actorID,
		"sub_relation", actorLabel)

	return s.connectionV2Repository.GetByID(ctx, connectionID)
}
