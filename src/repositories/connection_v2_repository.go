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

// ConnectionV2Repository persiste as arestas assimétricas: a linha da
// aresta em connections_v2 e exatamente duas linhas de participante em
// connection_v2_participants.
type ConnectionV2Repository struct {
	writePool *pgxpool.Pool
	readPool  *pgxpool.Pool
}

func NewConnectionV2Repository(readPool *pgxpool.Pool, writePool *pgxpool.Pool) *ConnectionV2Repository {
	return &ConnectionV2Repository{readPool: readPool, writePool: writePool}
}

func (cr *ConnectionV2Repository) Insert(ctx context.Context, connection *entities.ConnectionV2) error {
	tx, err := cr.writePool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("ConnectionV2Repository.Insert - failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	edgeQuery := `
		INSERT INTO connections_v2
			(initiator_id, recipient_id, status, initial_sub_relation, initial_directionality)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`

	err = tx.QueryRow(ctx, edgeQuery,
		connection.InitiatorID,
		connection.RecipientID,
		string(connection.Status),
		connection.InitialSubRelation,
		string(connection.InitialDirectionality),
	).Scan(&connection.ID, &connection.CreatedAt, &connection.UpdatedAt)
	if err != nil {
		return fmt.Errorf("ConnectionV2Repository.Insert - insert edge failed: %w", err)
	}

	participantQuery := `
		INSERT INTO connection_v2_participants
			(connection_id, participant_id, sub_relation, bucket_type, modification_count)
		VALUES ($1, $2, $3, $4, $5)`

	for participantID, state := range connection.ParticipantState {
		bucket := string(state.BucketType)
		_, err := tx.Exec(ctx, participantQuery,
			connection.ID,
			participantID,
			state.SubRelation,
			postgres.NewNullString(&bucket),
			state.ModificationCount,
		)
		if err != nil {
			return fmt.Errorf("ConnectionV2Repository.Insert - insert participant %s failed: %w", participantID, err)
		}
	}

	return tx.Commit(ctx)
}

func (cr *ConnectionV2Repository) GetByID(ctx context.Context, id int64) (entities.ConnectionV2, error) {
	edgeQuery := `
		SELECT id, initiator_id, recipient_id, status,
		       initial_sub_relation, initial_directionality,
		       created_at, updated_at
		FROM connections_v2
		WHERE id = $1`

	var connection entities.ConnectionV2
	err := cr.readPool.QueryRow(ctx, edgeQuery, id).Scan(
		&connection.ID,
		&connection.InitiatorID,
		&connection.RecipientID,
		&connection.Status,
		&connection.InitialSubRelation,
		&connection.InitialDirectionality,
		&connection.CreatedAt,
		&connection.UpdatedAt,
	)
	if err != nil {
		if postgres.IsNoRows(err) {
			return entities.ConnectionV2{}, domain.NewNotFound(fmt.Sprintf("connection %d not found", id))
		}
		return entities.ConnectionV2{}, fmt.Errorf("ConnectionV2Repository.GetByID - edge query failed: %w", err)
	}

	participantQuery := `
		SELECT participant_id, sub_relation, bucket_type, modification_count
		FROM connection_v2_participants
		WHERE connection_id = $1`

	rows, err := cr.readPool.Query(ctx, participantQuery, id)
	if err != nil {
		return entities.ConnectionV2{}, fmt.Errorf("ConnectionV2Repository.GetByID - participants query failed: %w", err)
	}
	defer rows.Close()

	connection.ParticipantState = make(map[string]entities.ParticipantState, 2)
	for rows.Next() {
		var participantID string
		var state entities.ParticipantState
		var bucket *string

		if err := rows.Scan(&participantID, &state.SubRelation, &bucket, &state.ModificationCount); err != nil {
			return entities.ConnectionV2{}, fmt.Errorf("ConnectionV2Repository.GetByID - failed to scan participant: %w", err)
		}
		if bucket != nil {
			state.BucketType = entities.BucketType(*bucket)
		}

		connection.ParticipantState[participantID] = state
	}

	return connection, rows.Err()
}

func (cr *ConnectionV2Repository) FindBetween(ctx context.Context, userA string, userB string, statuses []entities.ConnectionStatus) ([]entities.ConnectionV2, error) {
	statusValues := make([]string, len(statuses))
	for i, status := range statuses {
		statusValues[i] = string(status)
	}

	query := `
		SELECT id, initiator_id, recipient_id, status,
		       initial_sub_relation, initial_directionality,
		       created_at, updated_at
		FROM connections_v2
		WHERE ((initiator_id = $1 AND recipient_id = $2) OR (initiator_id = $2 AND recipient_id = $1))
		  AND status = ANY($3)
		ORDER BY id`

	rows, err := cr.readPool.Query(ctx, query, userA, userB, statusValues)
	if err != nil {
		return nil, fmt.Errorf("ConnectionV2Repository.FindBetween - query failed: %w", err)
	}
	defer rows.Close()

	var connections []entities.ConnectionV2
	for rows.Next() {
		var connection entities.ConnectionV2
		err := rows.Scan(
			&connection.ID,
			&connection.InitiatorID,
			&connection.RecipientID,
			&connection.Status,
			&connection.InitialSubRelation,
			&connection.InitialDirectionality,
			&connection.CreatedAt,
			&connection.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("ConnectionV2Repository.FindBetween - failed to scan connection: %w", err)
		}
		connections = append(connections, connection)
	}

	return connections, rows.Err()
}

// UpdateStatus grava a transição. Sem deltas de contadores: V2 não mantém
// agregados equivalentes.
func (cr *ConnectionV2Repository) UpdateStatus(ctx context.Context, id int64, newStatus entities.ConnectionStatus) error {
	tag, err := cr.writePool.Exec(ctx,
		`UPDATE connections_v2 SET status = $2, updated_at = NOW() WHERE id = $1`,
		id, string(newStatus),
	)
	if err != nil {
		return fmt.Errorf("ConnectionV2Repository.UpdateStatus - update failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return domain.NewNotFound(fmt.Sprintf("connection %d not found", id))
	}

	return nil
}

// ApplyRelabel escreve o lado do ator e, quando há propagação, o lado do
// outro participante, na mesma transação. O incremento do contador de
// modificação acontece no SQL; uma corrida do mesmo ator só pode contar a
// mais, nunca a menos.
func (cr *ConnectionV2Repository) ApplyRelabel(ctx context.Context, connectionID int64, actor domain.ParticipantUpdate, other *domain.ParticipantUpdate) error {
	tx, err := cr.writePool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("ConnectionV2Repository.ApplyRelabel - failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := applyParticipantUpdate(ctx, tx, connectionID, actor); err != nil {
		return fmt.Errorf("ConnectionV2Repository.ApplyRelabel - actor side: %w", err)
	}

	if other != nil {
		if err := applyParticipantUpdate(ctx, tx, connectionID, *other); err != nil {
			return fmt.Errorf("ConnectionV2Repository.ApplyRelabel - other side: %w", err)
		}
	}

	_, err = tx.Exec(ctx, `UPDATE connections_v2 SET updated_at = NOW() WHERE id = $1`, connectionID)
	if err != nil {
		return fmt.Errorf("ConnectionV2Repository.ApplyRelabel - touch edge failed: %w", err)
	}

	return tx.Commit(ctx)
}

func applyParticipantUpdate(ctx context.Context, tx pgx.Tx, connectionID int64, update domain.ParticipantUpdate) error {
	query := `
		UPDATE connection_v2_participants
		SET sub_relation = COALESCE($3, sub_relation),
		    bucket_type = COALESCE($4, bucket_type),
		    modification_count = modification_count + $5
		WHERE connection_id = $1 AND participant_id = $2`

	var bucket *string
	if update.BucketType != nil {
		value := string(*update.BucketType)
		bucket = &value
	}

	charge := 0
	if update.ChargeModification {
		charge = 1
	}

	tag, err := tx.Exec(ctx, query, connectionID, update.ParticipantID, update.SubRelation, bucket, charge)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.NewNotFound(fmt.Sprintf("participant %s not found on connection %d", update.ParticipantID, connectionID))
	}

	return nil
}
