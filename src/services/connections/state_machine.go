package connections

import (
	"fmt"

	"github.com/cantdoitbye/backend-sub007/src/domain"
	"github.com/cantdoitbye/backend-sub007/src/domain/entities"
)

// Uma única máquina de estados serve as duas variantes de aresta: a V2
// compartilha a mesma tabela de transições e regras de autorização da V1.
//
// Estado inicial é sempre Received. A partir dele:
//   - Cancelled: só o iniciador.
//   - Accepted / Rejected: só o destinatário.
// Accepted é terminal; Rejected e Cancelled também não admitem transição.
func validateTransition(initiatorID, recipientID string, current, next entities.ConnectionStatus, actorID string) error {
	if actorID != initiatorID && actorID != recipientID {
		return domain.NewUnauthorized("actor is not a participant of this connection")
	}

	if current == entities.StatusAccepted {
		return domain.NewConflict("connection already accepted")
	}

	if current != entities.StatusReceived {
		return domain.NewConflict(fmt.Sprintf("connection already %s", current))
	}

	switch next {
	case entities.StatusCancelled:
		if actorID != initiatorID {
			return domain.NewUnauthorized("only the initiator can cancel a connection request")
		}
	case entities.StatusAccepted, entities.StatusRejected:
		if actorID != recipientID {
			return domain.NewUnauthorized(fmt.Sprintf("only the recipient can mark a connection as %s", next))
		}
	default:
		return domain.NewConflict(fmt.Sprintf("invalid target status %q", next))
	}

	return nil
}
