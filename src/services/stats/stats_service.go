package stats

import (
	"context"
	"log/slog"

	"github.com/cantdoitbye/backend-sub007/src/domain/entities"
	"github.com/cantdoitbye/backend-sub007/src/repositories"
)

// StatsService expõe os agregados por usuário. Os contadores incrementais
// são mantidos pelas transições de aresta; aqui só entra leitura e o
// recálculo sob demanda de sent/received.
type StatsService struct {
	logger              *slog.Logger
	userStatsRepository *repositories.UserStatsRepository
}

func NewStatsService(
	logger *slog.Logger,
	userStatsRepository *repositories.UserStatsRepository,
) *StatsService {
	return &StatsService{
		logger:              logger,
		userStatsRepository: userStatsRepository,
	}
}

func (s *StatsService) GetUserStats(ctx context.Context, userID string) (entities.UserStats, error) {
	return s.userStatsRepository.Get(ctx, userID)
}

// RefreshSentReceived recalcula e sobrescreve sent/received a partir do
// grafo. Idempotente: repetir sem mudança no grafo devolve os mesmos
// valores.
func (s *StatsService) RefreshSentReceived(ctx context.Context, userID string) (entities.UserStats, error) {
	stats, err := s.userStatsRepository.RefreshSentReceived(ctx, userID)
	if err != nil {
		return entities.UserStats{}, err
	}

	s.logger.Debug("Refreshed sent/received counters",
		"user_id", userID,
		"sent_count", stats.SentCount,
		"received_count", stats.ReceivedCount)

	return stats, nil
}
