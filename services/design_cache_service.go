package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"atelierapi/models"

	"github.com/dgraph-io/ristretto"
	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	ristretto_store "github.com/eko/gocache/store/ristretto/v4"
)

const defaultDesignCacheTTL = 30 * time.Minute

type DesignCacheServiceProvider interface {
	Get(ctx context.Context, fingerprint string) (*models.GenerationResult, bool)
	Set(ctx context.Context, fingerprint string, result *models.GenerationResult)
}

// DesignCacheService keeps recent generation results keyed by the
// preference fingerprint. BuildPrompt is deterministic, so an identical
// request within the TTL can reuse the previous image instead of paying
// for another provider round trip.
type DesignCacheService struct {
	cache *cache.Cache[*models.GenerationResult]
	ttl   time.Duration
}

func NewDesignCacheService(ttl time.Duration) (*DesignCacheService, error) {
	if ttl == 0 {
		ttl = defaultDesignCacheTTL
	}
	ristrettoCache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1e7,     // 10M
		MaxCost:     1 << 27, // 1GB
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create ristretto cache: %w", err)
	}
	ristrettoStore := ristretto_store.NewRistretto(ristrettoCache)
	fmt.Println("Initialized DesignCacheService with Ristretto cache!")
	return &DesignCacheService{
		cache: cache.New[*models.GenerationResult](ristrettoStore),
		ttl:   ttl,
	}, nil
}

func (s *DesignCacheService) Get(ctx context.Context, fingerprint string) (*models.GenerationResult, bool) {
	result, err := s.cache.Get(ctx, fingerprint)
	if err != nil || result == nil {
		return nil, false
	}
	return result, true
}

func (s *DesignCacheService) Set(ctx context.Context, fingerprint string, result *models.GenerationResult) {
	if err := s.cache.Set(ctx, fingerprint, result, store.WithExpiration(s.ttl)); err != nil {
		log.Printf("Failed to cache design %s: %v", result.ID, err)
	}
}
