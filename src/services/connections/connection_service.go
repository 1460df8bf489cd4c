package connections

import (
	"context"
	"log/slog"
	"time"

	"github.com/cantdoitbye/backend-sub007/src/domain"
	"github.com/cantdoitbye/backend-sub007/src/repositories"
)

// ConnectionService é o motor do grafo de conexões: criação, máquina de
// estados, relabel e os efeitos de contadores das duas variantes de aresta.
type ConnectionService struct {
	logger                 *slog.Logger
	taxonomyRepository     *repositories.CachedTaxonomyRepository
	connectionRepository   *repositories.ConnectionRepository
	connectionV2Repository *repositories.ConnectionV2Repository
	notifier               domain.Notifier
	identityDirectory      domain.IdentityDirectory
	v2Enabled              bool
}

func NewConnectionService(
	logger *slog.Logger,
	taxonomyRepository *repositories.CachedTaxonomyRepository,
	connectionRepository *repositories.ConnectionRepository,
	connectionV2Repository *repositories.ConnectionV2Repository,
	notifier domain.Notifier,
	identityDirectory domain.IdentityDirectory,
	v2Enabled bool,
) *ConnectionService {
	return &ConnectionService{
		logger:                 logger,
		taxonomyRepository:     taxonomyRepository,
		connectionRepository:   connectionRepository,
		connectionV2Repository: connectionV2Repository,
		notifier:               notifier,
		identityDirectory:      identityDirectory,
		v2Enabled:              v2Enabled,
	}
}

// notify dispara a notificação em background. Fire-and-forget: falha de
// diretório degrada para payload só com ids, falha de envio vira log.
func (s *ConnectionService) notify(kind string, actorID string, targetID string, payload map[string]interface{}) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if payload == nil {
			payload = map[string]interface{}{}
		}
		payload["actor_id"] = actorID

		if profile, err := s.identityDirectory.GetProfile(ctx, actorID); err == nil {
			payload["actor_display_name"] = profile.DisplayName
		} else {
			s.logger.Warn("Failed to resolve actor profile for notification",
				"actor_id", actorID,
				"kind", kind,
				"error", err)
		}

		if err := s.notifier.Notify(ctx, kind, targetID, payload); err != nil {
			s.logger.Error("Failed to send notification",
				"kind", kind,
				"target_id", targetID,
				"error", err)
		}
	}()
}
