package repositories

import (
	"context"
	"fmt"

	"github.com/cantdoitbye/backend-sub007/src/domain"
	"github.com/cantdoitbye/backend-sub007/src/domain/entities"
	"github.com/cantdoitbye/backend-sub007/src/infra/postgres"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ConnectionRepository persiste as arestas V1 (bucket compartilhado).
// Transições e relabels aplicam os deltas de contadores na mesma transação
// da escrita da aresta, então o estado observável nunca fica pela metade.
type ConnectionRepository struct {
	writePool *pgxpool.Pool
	readPool  *pgxpool.Pool
}

func NewConnectionRepository(readPool *pgxpool.Pool, writePool *pgxpool.Pool) *ConnectionRepository {
	return &ConnectionRepository{readPool: readPool, writePool: writePool}
}

const connectionColumns = `
	id, initiator_id, recipient_id, status,
	bucket_type, relation_label, sub_relation_label,
	created_at, updated_at`

func (cr *ConnectionRepository) Insert(ctx context.Context, connection *entities.Connection) error {
	query := fmt.Sprintf(`
		INSERT INTO connections
			(initiator_id, recipient_id, status, bucket_type, relation_label, sub_relation_label)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING %s`, connectionColumns)

	row := cr.writePool.QueryRow(ctx, query,
		connection.InitiatorID,
		connection.RecipientID,
		string(connection.Status),
		string(connection.BucketType),
		connection.RelationLabel,
		connection.SubRelationLabel,
	)

	inserted, err := scanConnection(row)
	if err != nil {
		return fmt.Errorf("ConnectionRepository.Insert - insert failed: %w", err)
	}

	*connection = inserted
	return nil
}

func (cr *ConnectionRepository) GetByID(ctx context.Context, id int64) (entities.Connection, error) {
	query := fmt.Sprintf(`SELECT %s FROM connections WHERE id = $1`, connectionColumns)

	connection, err := scanConnection(cr.readPool.QueryRow(ctx, query, id))
	if err != nil {
		if postgres.IsNoRows(err) {
			return entities.Connection{}, domain.NewNotFound(fmt.Sprintf("connection %d not found", id))
		}
		return entities.Connection{}, fmt.Errorf("ConnectionRepository.GetByID - query failed: %w", err)
	}

	return connection, nil
}

// FindBetween busca arestas tocando os dois usuários, em qualquer direção,
// restritas aos status informados. É o scan da prevenção de duplicidade.
func (cr *ConnectionRepository) FindBetween(ctx context.Context, userA string, userB string, statuses []entities.ConnectionStatus) ([]entities.Connection, error) {
	statusValues := make([]string, len(statuses))
	for i, status := range statuses {
		statusValues[i] = string(status)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM connections
		WHERE ((initiator_id = $1 AND recipient_id = $2) OR (initiator_id = $2 AND recipient_id = $1))
		  AND status = ANY($3)
		ORDER BY id`, connectionColumns)

	rows, err := cr.readPool.Query(ctx, query, userA, userB, statusValues)
	if err != nil {
		return nil, fmt.Errorf("ConnectionRepository.FindBetween - query failed: %w", err)
	}
	defer rows.Close()

	return collectConnections(rows)
}

func (cr *ConnectionRepository) ListForUser(ctx context.Context, userID string, filter domain.ConnectionFilter) ([]entities.Connection, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM connections
		WHERE (initiator_id = $1 OR recipient_id = $1)
		  AND ($2::TEXT IS NULL OR status = $2)
		  AND ($3::TEXT IS NULL OR bucket_type = $3)
		ORDER BY created_at DESC`, connectionColumns)

	var status, bucket *string
	if filter.Status != nil {
		value := string(*filter.Status)
		status = &value
	}
	if filter.BucketType != nil {
		value := string(*filter.BucketType)
		bucket = &value
	}

	rows, err := cr.readPool.Query(ctx, query, userID, status, bucket)
	if err != nil {
		return nil, fmt.Errorf("ConnectionRepository.ListForUser - query failed: %w", err)
	}
	defer rows.Close()

	return collectConnections(rows)
}

// UpdateStatusWithStats grava o novo status e os deltas de contadores em
// uma única transação.
func (cr *ConnectionRepository) UpdateStatusWithStats(ctx context.Context, id int64, newStatus entities.ConnectionStatus, deltas []domain.StatsDelta) (entities.Connection, error) {
	tx, err := cr.writePool.Begin(ctx)
	if err != nil {
		return entities.Connection{}, fmt.Errorf("ConnectionRepository.UpdateStatusWithStats - failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := fmt.Sprintf(`
		UPDATE connections
		SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING %s`, connectionColumns)

	connection, err := scanConnection(tx.QueryRow(ctx, query, id, string(newStatus)))
	if err != nil {
		if postgres.IsNoRows(err) {
			return entities.Connection{}, domain.NewNotFound(fmt.Sprintf("connection %d not found", id))
		}
		return entities.Connection{}, fmt.Errorf("ConnectionRepository.UpdateStatusWithStats - update failed: %w", err)
	}

	if err := applyStatsDeltas(ctx, tx, deltas); err != nil {
		return entities.Connection{}, fmt.Errorf("ConnectionRepository.UpdateStatusWithStats - %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return entities.Connection{}, fmt.Errorf("ConnectionRepository.UpdateStatusWithStats - commit failed: %w", err)
	}

	return connection, nil
}

// RelabelWithStats sobrescreve o bucket/rótulo compartilhado e aplica os
// deltas simétricos dos dois endpoints na mesma transação.
func (cr *ConnectionRepository) RelabelWithStats(ctx context.Context, id int64, request domain.RelabelConnectionRequest, deltas []domain.StatsDelta) (entities.Connection, error) {
	tx, err := cr.writePool.Begin(ctx)
	if err != nil {
		return entities.Connection{}, fmt.Errorf("ConnectionRepository.RelabelWithStats - failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := fmt.Sprintf(`
		UPDATE connections
		SET bucket_type = COALESCE($2, bucket_type),
		    sub_relation_label = COALESCE($3, sub_relation_label),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING %s`, connectionColumns)

	var bucket *string
	if request.BucketType != nil {
		value := string(*request.BucketType)
		bucket = &value
	}

	connection, err := scanConnection(tx.QueryRow(ctx, query, id, bucket, request.SubRelationLabel))
	if err != nil {
		if postgres.IsNoRows(err) {
			return entities.Connection{}, domain.NewNotFound(fmt.Sprintf("connection %d not found", id))
		}
		return entities.Connection{}, fmt.Errorf("ConnectionRepository.RelabelWithStats - update failed: %w", err)
	}

	if err := applyStatsDeltas(ctx, tx, deltas); err != nil {
		return entities.Connection{}, fmt.Errorf("ConnectionRepository.RelabelWithStats - %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return entities.Connection{}, fmt.Errorf("ConnectionRepository.RelabelWithStats - commit failed: %w", err)
	}

	return connection, nil
}

// Delete remove a aresta e, com ela, o bucket assignment (mesma linha).
func (cr *ConnectionRepository) Delete(ctx context.Context, id int64) error {
	tag, err := cr.writePool.Exec(ctx, `DELETE FROM connections WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("ConnectionRepository.Delete - delete failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return domain.NewNotFound(fmt.Sprintf("connection %d not found", id))
	}

	return nil
}

// applyStatsDeltas faz o upsert incremental dos contadores por usuário.
// A linha de stats nasce aqui, lazy, na primeira aresta que tocar o usuário.
func applyStatsDeltas(ctx context.Context, tx pgx.Tx, deltas []domain.StatsDelta) error {
	query := `
		INSERT INTO user_stats
			(user_id, accepted_count, rejected_count, inner_count, outer_count, universal_count)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO UPDATE SET
			accepted_count = user_stats.accepted_count + excluded.accepted_count,
			rejected_count = user_stats.rejected_count + excluded.rejected_count,
			inner_count = user_stats.inner_count + excluded.inner_count,
			outer_count = user_stats.outer_count + excluded.outer_count,
			universal_count = user_stats.universal_count + excluded.universal_count,
			updated_at = NOW()`

	for _, delta := range deltas {
		_, err := tx.Exec(ctx, query,
			delta.UserID,
			delta.Accepted,
			delta.Rejected,
			delta.Inner,
			delta.Outer,
			delta.Universal,
		)
		if err != nil {
			return fmt.Errorf("failed to apply stats delta for user %s: %w", delta.UserID, err)
		}
	}

	return nil
}

func scanConnection(row pgxRow) (entities.Connection, error) {
	var connection entities.Connection
	err := row.Scan(
		&connection.ID,
		&connection.InitiatorID,
		&connection.RecipientID,
		&connection.Status,
		&connection.BucketType,
		&connection.RelationLabel,
		&connection.SubRelationLabel,
		&connection.CreatedAt,
		&connection.UpdatedAt,
	)
	return connection, err
}

func collectConnections(rows pgx.Rows) ([]entities.Connection, error) {
	var connections []entities.Connection
	for rows.Next() {
		connection, err := scanConnection(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan connection: %w", err)
		}
		connections = append(connections, connection)
	}
	return connections, rows.Err()
}
