package test_seeder

import (
	"context"

	"github.com/cantdoitbye/backend-sub007/src/domain/entities"
)

func (ts TestSeeder) SelectConnectionsByUsers(ctx context.Context, userIDs []string) ([]entities.Connection, error) {
	query := `SELECT id, initiator_id, recipient_id, status, bucket_type, relation_label, sub_relation_label, created_at, updated_at
			  FROM connections
			  WHERE initiator_id = ANY($1) OR recipient_id = ANY($1)
			  ORDER BY id`

	rows, err := ts.pool.Query(ctx, query, userIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var connections []entities.Connection
	for rows.Next() {
		var connection entities.Connection
		err := rows.Scan(
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
		if err != nil {
			return nil, err
		}
		connections = append(connections, connection)
	}

	return connections, rows.Err()
}

// SelectParticipantStates devolve o estado por participante de uma aresta V2.
func (ts TestSeeder) SelectParticipantStates(ctx context.Context, connectionID int64) (map[string]entities.ParticipantState, error) {
	query := `SELECT participant_id, sub_relation, COALESCE(bucket_type, ''), modification_count
			  FROM connection_v2_participants
			  WHERE connection_id = $1`

	rows, err := ts.pool.Query(ctx, query, connectionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	states := map[string]entities.ParticipantState{}
	for rows.Next() {
		var participantID string
		var state entities.ParticipantState
		if err := rows.Scan(&participantID, &state.SubRelation, &state.BucketType, &state.ModificationCount); err != nil {
			return nil, err
		}
		states[participantID] = state
	}

	return states, rows.Err()
}

func (ts TestSeeder) SelectUserStats(ctx context.Context, userID string) (entities.UserStats, error) {
	query := `SELECT user_id, sent_count, received_count, accepted_count, rejected_count, inner_count, outer_count, universal_count, created_at, updated_at
			  FROM user_stats WHERE user_id = $1`

	var stats entities.UserStats
	err := ts.pool.QueryRow(ctx, query, userID).Scan(
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
	if err != nil {
		return entities.UserStats{}, err
	}

	return stats, nil
}
