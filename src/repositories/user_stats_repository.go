package repositories

import (
	"context"
	"fmt"

	"github.com/cantdoitbye/backend-sub007/src/domain/entities"
	"github.com/cantdoitbye/backend-sub007/src/infra/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
)

// UserStatsRepository lê os agregados e executa o recálculo sob demanda
// de sent/received. Os contadores incrementais são escritos pelas
// transações das arestas, nunca por aqui.
type UserStatsRepository struct {
	writePool *pgxpool.Pool
	readPool  *pgxpool.Pool
}

func NewUserStatsRepository(readPool *pgxpool.Pool, writePool *pgxpool.Pool) *UserStatsRepository {
	return &UserStatsRepository{readPool: readPool, writePool: writePool}
}

const userStatsColumns = `
	user_id, sent_count, received_count, accepted_count, rejected_count,
	inner_count, outer_count, universal_count, created_at, updated_at`

// Get devolve os agregados do usuário. Usuário sem linha ainda devolve
// contadores zerados: a linha só nasce na primeira aresta.
func (usr *UserStatsRepository) Get(ctx context.Context, userID string) (entities.UserStats, error) {
	query := fmt.Sprintf(`SELECT %s FROM user_stats WHERE user_id = $1`, userStatsColumns)

	stats, err := scanUserStats(usr.readPool.QueryRow(ctx, query, userID))
	if err != nil {
		if postgres.IsNoRows(err) {
			return entities.UserStats{UserID: userID}, nil
		}
		return entities.UserStats{}, fmt.Errorf("UserStatsRepository.Get - query failed: %w", err)
	}

	return stats, nil
}

// RefreshSentReceived recalcula sent/received direto do grafo (V1 + V2) e
// sobrescreve os valores armazenados em um único statement. Overwrite, não
// soma: chamadas repetidas sem mudança no grafo produzem o mesmo resultado.
func (usr *UserStatsRepository) RefreshSentReceived(ctx context.Context, userID string) (entities.UserStats, error) {
	query := fmt.Sprintf(`
		WITH counts AS (
			SELECT
				(SELECT COUNT(*) FROM connections WHERE initiator_id = $1) +
				(SELECT COUNT(*) FROM connections_v2 WHERE initiator_id = $1) AS sent,
				(SELECT COUNT(*) FROM connections WHERE recipient_id = $1 AND status = 'Received') +
				(SELECT COUNT(*) FROM connections_v2 WHERE recipient_id = $1 AND status = 'Received') AS received
		)
		INSERT INTO user_stats (user_id, sent_count, received_count)
		SELECT $1, counts.sent, counts.received FROM counts
		ON CONFLICT (user_id) DO UPDATE SET
			sent_count = excluded.sent_count,
			received_count = excluded.received_count,
			updated_at = NOW()
		RETURNING %s`, userStatsColumns)

	stats, err := scanUserStats(usr.writePool.QueryRow(ctx, query, userID))
	if err != nil {
		return entities.UserStats{}, fmt.Errorf("UserStatsRepository.RefreshSentReceived - refresh failed: %w", err)
	}

	return stats, nil
}

func scanUserStats(row pgxRow) (entities.UserStats, error) {
	var stats entities.UserStats
	err := row.Scan(
		&stats.UserID,
		&stats.SentCount,
		&stats.ReceivedCount,
		&stats.AcceptedCount,
		&stats.RejectedCount,
		&stats.InnerCount,
		&stats.OuterCount,
		&stats.UniversalCount,
		&stats.CreatedAt,
		&stats.UpdatedAt,
	)
	return stats, err
}
