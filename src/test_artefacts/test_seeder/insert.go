package test_seeder

import (
	"context"
	"fmt"

	"github.com/cantdoitbye/backend-sub007/src/domain"
	"github.com/cantdoitbye/backend-sub007/src/domain/entities"
)

// InsertConnection insere uma aresta V1 direto no banco para testes.
func (ts TestSeeder) InsertConnection(ctx context.Context, connection *entities.Connection) {
	query := `
		INSERT INTO connections (initiator_id, recipient_id, status, bucket_type, relation_label, sub_relation_label, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`

	err := ts.pool.QueryRow(ctx, query,
		connection.InitiatorID,
		connection.RecipientID,
		string(connection.Status),
		string(connection.BucketType),
		connection.RelationLabel,
		connection.SubRelationLabel,
		connection.CreatedAt,
		connection.UpdatedAt,
	).Scan(&connection.ID)

	if err != nil {
		panic(fmt.Sprintf("Seeder.InsertConnection failed: %v", err))
	}
}

// InsertConnectionV2 insere a aresta V2 e as duas linhas de participante.
func (ts TestSeeder) InsertConnectionV2(ctx context.Context, connection *entities.ConnectionV2) {
	edgeQuery := `
		INSERT INTO connections_v2 (initiator_id, recipient_id, status, initial_sub_relation, initial_directionality, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`

	err := ts.pool.QueryRow(ctx, edgeQuery,
		connection.InitiatorID,
		connection.RecipientID,
		string(connection.Status),
		connection.InitialSubRelation,
		string(connection.InitialDirectionality),
		connection.CreatedAt,
		connection.UpdatedAt,
	).Scan(&connection.ID)

	if err != nil {
		panic(fmt.Sprintf("Seeder.InsertConnectionV2 failed: %v", err))
	}

	participantQuery := `
		INSERT INTO connection_v2_participants (connection_id, participant_id, sub_relation, bucket_type, modification_count)
		VALUES ($1, $2, $3, $4, $5)`

	for participantID, state := range connection.ParticipantState {
		_, err := ts.pool.Exec(ctx, participantQuery,
			connection.ID,
			participantID,
			state.SubRelation,
			string(state.BucketType),
			state.ModificationCount,
		)
		if err != nil {
			panic(fmt.Sprintf("Seeder.InsertConnectionV2 participant failed: %v", err))
		}
	}
}

// SeedTaxonomy carrega entradas de taxonomia direto pela tabela, sem passar
// pelo repositório sob teste.
func (ts TestSeeder) SeedTaxonomy(ctx context.Context, entries []domain.TaxonomyEntry) {
	categoryQuery := `
		INSERT INTO relation_categories (name) VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET updated_at = NOW()
		RETURNING id`

	ruleQuery := `
		INSERT INTO sub_relation_rules (category_id, name, directionality, approval_required, reverse_label, default_bucket)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (category_id, LOWER(name)) DO UPDATE SET
			directionality = excluded.directionality,
			reverse_label = excluded.reverse_label,
			default_bucket = excluded.default_bucket`

	for _, entry := range entries {
		var categoryID int64
		if err := ts.pool.QueryRow(ctx, categoryQuery, entry.Category).Scan(&categoryID); err != nil {
			panic(fmt.Sprintf("Seeder.SeedTaxonomy category failed: %v", err))
		}

		_, err := ts.pool.Exec(ctx, ruleQuery,
			categoryID,
			entry.Name,
			string(entry.Directionality),
			entry.ApprovalRequired,
			entry.ReverseLabel,
			string(entry.DefaultBucket),
		)
		if err != nil {
			panic(fmt.Sprintf("Seeder.SeedTaxonomy rule failed: %v", err))
		}
	}
}

// InsertUserStats grava uma linha de agregados pronta.
func (ts TestSeeder) InsertUserStats(ctx context.Context, stats entities.UserStats) {
	query := `
		INSERT INTO user_stats (user_id, sent_count, received_count, accepted_count, rejected_count, inner_count, outer_count, universal_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := ts.pool.Exec(ctx, query,
		stats.UserID,
		stats.SentCount,
		stats.ReceivedCount,
		stats.AcceptedCount,
		stats.RejectedCount,
		stats.InnerCount,
		stats.OuterCount,
		stats.UniversalCount,
	)
	if err != nil {
		panic(fmt.Sprintf("Seeder.InsertUserStats failed: %v", err))
	}
}
