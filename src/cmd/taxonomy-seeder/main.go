package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/cantdoitbye/backend-sub007/src/domain"
	"github.com/cantdoitbye/backend-sub007/src/domain/entities"
	"github.com/cantdoitbye/backend-sub007/src/helper/env"
	"github.com/cantdoitbye/backend-sub007/src/infra/postgres"
	"github.com/cantdoitbye/backend-sub007/src/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Seeder idempotente da taxonomia de sub-relações. Roda quantas vezes for
// preciso: entradas existentes são atualizadas em place, chaveadas por
// (categoria, nome). Com TAXONOMY_SEED_FILE apontando para um JSON, usa o
// arquivo; sem ele, usa o conjunto padrão abaixo.
func main() {
	log.SetOutput(os.Stdout)

	ctx := context.Background()

	pool, err := newWritePool()
	if err != nil {
		log.Fatalf("Failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	entries := defaultEntries()
	if seedFile := env.GetString("TAXONOMY_SEED_FILE", ""); seedFile != "" {
		entries, err = loadEntries(seedFile)
		if err != nil {
			log.Fatalf("Failed to load seed file %s: %v", seedFile, err)
		}
	}

	taxonomyRepository := repositories.NewTaxonomyRepository(pool)
	if err := taxonomyRepository.Seed(ctx, entries); err != nil {
		log.Fatalf("Seed failed: %v", err)
	}

	log.Printf("Taxonomy seeded: %d entries", len(entries))
}

func newWritePool() (*pgxpool.Pool, error) {
	dbHost := env.MustGetString("DB_HOST")
	dbPort := env.GetString("DB_PORT", "5432")
	dbname := env.MustGetString("DB_NAME")
	dbUser := env.MustGetString("DB_USER")
	dbPassword := env.MustGetString("DB_PASSWORD")
	maxConnections := env.GetInt("DB_MAX_POOL_CONNECTIONS", 5)

	return postgres.NewPostgresClient(dbHost, dbPort, dbname, dbUser, dbPassword, maxConnections)
}

func loadEntries(path string) ([]domain.TaxonomyEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var entries []domain.TaxonomyEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("invalid seed JSON: %w", err)
	}

	return entries, nil
}

func defaultEntries() []domain.TaxonomyEntry {
	return []domain.TaxonomyEntry{
		// Relatives: rótulos espelhados, aprovação sempre exigida.
		{Category: "Relatives", Name: "father", Directionality: entities.DirectionalityBidirectional, ApprovalRequired: true, ReverseLabel: "child", DefaultBucket: entities.BucketInner},
		{Category: "Relatives", Name: "mother", Directionality: entities.DirectionalityBidirectional, ApprovalRequired: true, ReverseLabel: "child", DefaultBucket: entities.BucketInner},
		{Category: "Relatives", Name: "child", Directionality: entities.DirectionalityBidirectional, ApprovalRequired: true, ReverseLabel: "parent", DefaultBucket: entities.BucketInner},
		{Category: "Relatives", Name: "sibling", Directionality: entities.DirectionalityUnidirectional, ApprovalRequired: true, ReverseLabel: "", DefaultBucket: entities.BucketInner},
		{Category: "Relatives", Name: "spouse", Directionality: entities.DirectionalityUnidirectional, ApprovalRequired: true, ReverseLabel: "", DefaultBucket: entities.BucketInner},

		// Friend: mesmo rótulo dos dois lados.
		{Category: "Friend", Name: "friend", Directionality: entities.DirectionalityUnidirectional, ApprovalRequired: true, ReverseLabel: "", DefaultBucket: entities.BucketOuter},
		{Category: "Friend", Name: "close friend", Directionality: entities.DirectionalityUnidirectional, ApprovalRequired: true, ReverseLabel: "", DefaultBucket: entities.BucketInner},
		{Category: "Friend", Name: "acquaintance", Directionality: entities.DirectionalityUnidirectional, ApprovalRequired: false, ReverseLabel: "", DefaultBucket: entities.BucketUniversal},

		// Professional: pares canônicos.
		{Category: "Professional", Name: "mentor", Directionality: entities.DirectionalityBidirectional, ApprovalRequired: true, ReverseLabel: "mentee", DefaultBucket: entities.BucketOuter},
		{Category: "Professional", Name: "mentee", Directionality: entities.DirectionalityBidirectional, ApprovalRequired: true, ReverseLabel: "mentor", DefaultBucket: entities.BucketOuter},
		{Category: "Professional", Name: "colleague", Directionality: entities.DirectionalityUnidirectional, ApprovalRequired: true, ReverseLabel: "", DefaultBucket: entities.BucketOuter},
		{Category: "Professional", Name: "manager", Directionality: entities.DirectionalityBidirectional, ApprovalRequired: true, ReverseLabel: "report", DefaultBucket: entities.BucketOuter},
	}
}
