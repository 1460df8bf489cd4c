package repositories

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/cantdoitbye/backend-sub007/src/domain"
	"github.com/cantdoitbye/backend-sub007/src/domain/entities"
	"github.com/cantdoitbye/backend-sub007/src/infra/redis"
)

// CachedTaxonomyRepository coloca Redis na frente do lookup de regras.
// Taxonomia é dado de referência read-heavy: cache hit é o caminho comum.
type CachedTaxonomyRepository struct {
	taxonomyRepository *TaxonomyRepository
	redisClient        *redis.RedisClient
}

func NewCachedTaxonomyRepository(
	taxonomyRepository *TaxonomyRepository,
	redisClient *redis.RedisClient,
) *CachedTaxonomyRepository {
	return &CachedTaxonomyRepository{
		taxonomyRepository: taxonomyRepository,
		redisClient:        redisClient,
	}
}

func (r *CachedTaxonomyRepository) Lookup(ctx context.Context, name string) (entities.SubRelationRule, error) {
	cacheKey := r.generateCacheKey(name)

	cachedRule, found, err := r.getFromCache(ctx, cacheKey)
	if found && err == nil {
		return cachedRule, nil
	}

	if err != nil {
		// Log erro de cache mas continua com PostgreSQL
		log.Printf("Cache error for key %s: %v", cacheKey, err)
	}

	rule, err := r.taxonomyRepository.Lookup(ctx, name)
	if err != nil {
		return entities.SubRelationRule{}, err
	}

	go func() {
		// Timeout de 30 segundos para operação de cache
		ctxWithTimeout, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		r.setInCache(ctxWithTimeout, cacheKey, rule)
	}()

	return rule, nil
}

func (r *CachedTaxonomyRepository) CategoryOf(ctx context.Context, subRelationName string) (entities.RelationCategory, error) {
	return r.taxonomyRepository.CategoryOf(ctx, subRelationName)
}

// Seed delega para o Postgres e derruba o cache inteiro do prefixo:
// regras mudaram, lookups antigos não valem mais.
func (r *CachedTaxonomyRepository) Seed(ctx context.Context, entries []domain.TaxonomyEntry) error {
	if err := r.taxonomyRepository.Seed(ctx, entries); err != nil {
		return err
	}

	if err := r.redisClient.FlushByPrefix(ctx); err != nil {
		log.Printf("Failed to flush taxonomy cache after seed: %v", err)
	}

	return nil
}

func (r *CachedTaxonomyRepository) generateCacheKey(name string) string {
	// Hash para chave mais limpa e consistente
	hash := md5.Sum([]byte(strings.ToLower(name)))
	return fmt.Sprintf("rule:%x", hash)
}

func (r *CachedTaxonomyRepository) getFromCache(ctx context.Context, cacheKey string) (entities.SubRelationRule, bool, error) {
	cachedJSON, found, err := r.redisClient.GetKey(ctx, cacheKey)
	if !found || err != nil {
		return entities.SubRelationRule{}, found, err
	}

	var rule entities.SubRelationRule
	if err := json.Unmarshal([]byte(cachedJSON), &rule); err != nil {
		return entities.SubRelationRule{}, false, fmt.Errorf("failed to unmarshal cached rule: %w", err)
	}

	return rule, true, nil
}

func (r *CachedTaxonomyRepository) setInCache(ctx context.Context, cacheKey string, rule entities.SubRelationRule) {
	ruleJSON, err := json.Marshal(rule)
	if err != nil {
		log.Printf("Failed to marshal rule for cache key %s: %v", cacheKey, err)
		return
	}

	if err := r.redisClient.SetKey(ctx, cacheKey, string(ruleJSON)); err != nil {
		log.Printf("Failed to set cache for key %s: %v", cacheKey, err)
	}
}
