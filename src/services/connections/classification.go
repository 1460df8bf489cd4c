package connections

import (
	"github.com/cantdoitbye/backend-sub007/src/domain"
	"github.com/cantdoitbye/backend-sub007/src/domain/entities"
)

// Resolve o estado inicial dos dois participantes de uma aresta V2 a
// partir da regra da sub-relação:
//   - Unidirectional: o destinatário recebe o mesmo rótulo, sem reverter.
//   - Bidirectional: o destinatário recebe o rótulo reverso canônico.
//
// O bucket padrão dos DOIS lados vem da regra forward - comportamento
// preservado de propósito, mesmo quando o destinatário teria outra regra.
func buildParticipantStates(rule entities.SubRelationRule, initiatorID, recipientID string) map[string]entities.ParticipantState {
	recipientLabel := rule.Name
	if rule.Directionality == entities.DirectionalityBidirectional {
		recipientLabel = rule.ReverseLabel
	}

	return map[string]entities.ParticipantState{
		initiatorID: {
			SubRelation:       rule.Name,
			BucketType:        rule.DefaultBucket,
			ModificationCount: 0,
		},
		recipientID: {
			SubRelation:       recipientLabel,
			BucketType:        rule.DefaultBucket,
			ModificationCount: 0,
		},
	}
}

// propagatedLabel decide o rótulo que um relabel empurra para o outro
// participante: reverso canônico quando bidirecional, cópia quando não.
func propagatedLabel(rule entities.SubRelationRule) string {
	if rule.Directionality == entities.DirectionalityBidirectional {
		return rule.ReverseLabel
	}
	return rule.Name
}

// statsDeltaForBucket monta o delta de contador de um usuário para um
// único bucket. Bucket vazio produz delta nulo.
func statsDeltaForBucket(userID string, bucket entities.BucketType, amount int) domain.StatsDelta {
	delta := domain.StatsDelta{UserID: userID}

	switch bucket {
	case entities.BucketInner:
		delta.Inner = amount
	case entities.BucketOuter:
		delta.Outer = amount
	case entities.BucketUniversal:
		delta.Universal = amount
	}

	return delta
}
