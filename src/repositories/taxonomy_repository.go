package repositories

import (
	"context"
	"fmt"

	"github.com/cantdoitbye/backend-sub007/src/domain"
	"github.com/cantdoitbye/backend-sub007/src/domain/entities"
	"github.com/cantdoitbye/backend-sub007/src/infra/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
)

// TaxonomyRepository guarda o dado de referência das sub-relações.
// Escrita só acontece via Seed; em tempo de request é leitura pura.
type TaxonomyRepository struct {
	pool *pgxpool.Pool
}

func NewTaxonomyRepository(pool *pgxpool.Pool) *TaxonomyRepository {
	return &TaxonomyRepository{pool: pool}
}

const subRelationRuleColumns = `
	r.id, r.category_id, c.name, r.name, r.directionality,
	r.approval_required, r.reverse_label, r.default_bucket,
	r.created_at, r.updated_at`

// Lookup resolve uma sub-relação por nome, case-insensitive, ignorando a
// categoria. Com nomes duplicados entre categorias vence a regra mais
// antiga (menor id) - resolução dependente de ordem, decisão de produto
// pendente.
func (tr *TaxonomyRepository) Lookup(ctx context.Context, name string) (entities.SubRelationRule, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM sub_relation_rules r
		JOIN relation_categories c ON c.id = r.category_id
		WHERE LOWER(r.name) = LOWER($1)
		ORDER BY r.id
		LIMIT 1`, subRelationRuleColumns)

	rule, err := scanSubRelationRule(tr.pool.QueryRow(ctx, query, name))
	if err != nil {
		if postgres.IsNoRows(err) {
			return entities.SubRelationRule{}, domain.NewNotFound(fmt.Sprintf("sub-relation %q not found", name))
		}
		return entities.SubRelationRule{}, fmt.Errorf("TaxonomyRepository.Lookup - query failed: %w", err)
	}

	return rule, nil
}

// CategoryOf devolve a categoria dona da sub-relação informada.
func (tr *TaxonomyRepository) CategoryOf(ctx context.Context, subRelationName string) (entities.RelationCategory, error) {
	query := `
		SELECT c.id, c.name, c.created_at, c.updated_at
		FROM relation_categories c
		JOIN sub_relation_rules r ON r.category_id = c.id
		WHERE LOWER(r.name) = LOWER($1)
		ORDER BY r.id
		LIMIT 1`

	var category entities.RelationCategory
	err := tr.pool.QueryRow(ctx, query, subRelationName).Scan(
		&category.ID,
		&category.Name,
		&category.CreatedAt,
		&category.UpdatedAt,
	)
	if err != nil {
		if postgres.IsNoRows(err) {
			return entities.RelationCategory{}, domain.NewNotFound(fmt.Sprintf("sub-relation %q not found", subRelationName))
		}
		return entities.RelationCategory{}, fmt.Errorf("TaxonomyRepository.CategoryOf - query failed: %w", err)
	}

	return category, nil
}

// Seed faz o upsert idempotente das regras, chaveado por (categoria, nome).
// Regras já existentes têm direcionalidade/aprovação/reverso/bucket
// sobrescritos; arestas existentes que referenciam a regra não são tocadas.
func (tr *TaxonomyRepository) Seed(ctx context.Context, entries []domain.TaxonomyEntry) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := tr.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("TaxonomyRepository.Seed - failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	categoryQuery := `
		INSERT INTO relation_categories (name)
		VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET updated_at = NOW()
		RETURNING id`

	ruleQuery := `
		INSERT INTO sub_relation_rules
			(category_id, name, directionality, approval_required, reverse_label, default_bucket)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (category_id, LOWER(name)) DO UPDATE SET
			directionality = excluded.directionality,
			approval_required = excluded.approval_required,
			reverse_label = excluded.reverse_label,
			default_bucket = excluded.default_bucket,
			updated_at = NOW()`

	for _, entry := range entries {
		var categoryID int64
		if err := tx.QueryRow(ctx, categoryQuery, entry.Category).Scan(&categoryID); err != nil {
			return fmt.Errorf("TaxonomyRepository.Seed - failed to upsert category %q: %w", entry.Category, err)
		}

		reverseLabel := entry.ReverseLabel
		defaultBucket := string(entry.DefaultBucket)
		_, err := tx.Exec(ctx, ruleQuery,
			categoryID,
			entry.Name,
			string(entry.Directionality),
			entry.ApprovalRequired,
			postgres.NewNullString(&reverseLabel),
			postgres.NewNullString(&defaultBucket),
		)
		if err != nil {
			return fmt.Errorf("TaxonomyRepository.Seed - failed to upsert rule %q/%q: %w", entry.Category, entry.Name, err)
		}
	}

	return tx.Commit(ctx)
}

type pgxRow interface {
	Scan(dest ...interface{}) error
}

func scanSubRelationRule(row pgxRow) (entities.SubRelationRule, error) {
	var rule entities.SubRelationRule
	var reverseLabel, defaultBucket *string

	err := row.Scan(
		&rule.ID,
		&rule.CategoryID,
		&rule.CategoryName,
		&rule.Name,
		&rule.Directionality,
		&rule.ApprovalRequired,
		&reverseLabel,
		&defaultBucket,
		&rule.CreatedAt,
		&rule.UpdatedAt,
	)
	if err != nil {
		return entities.SubRelationRule{}, err
	}

	if reverseLabel != nil {
		rule.ReverseLabel = *reverseLabel
	}
	if defaultBucket != nil {
		rule.DefaultBucket = entities.BucketType(*defaultBucket)
	}

	return rule, nil
}
