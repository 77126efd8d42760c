package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"copydesk/internal/domain/repository"
	"copydesk/pkg/cache"
)

const artifactPrefix = "artifact"

// CacheArtifactStore stores parse artifacts as JSON in the shared cache.
type CacheArtifactStore struct {
	cache cache.Service
	ttl   time.Duration
}

// NewCacheArtifactStore creates a cache-backed artifact store. A zero ttl
// means entries follow the cache backend's default expiry.
func NewCacheArtifactStore(c cache.Service, ttl time.Duration) repository.ArtifactStore {
	return &CacheArtifactStore{cache: c, ttl: ttl}
}

func (s *CacheArtifactStore) Put(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal artifact: %w", err)
	}
	return s.cache.Set(ctx, cache.GenerateKey(artifactPrefix, key), string(data), s.ttl)
}

func (s *CacheArtifactStore) Get(ctx context.Context, key string) (json.RawMessage, error) {
	var raw string
	if err := s.cache.Get(ctx, cache.GenerateKey(artifactPrefix, key), &raw); err != nil {
		return nil, err
	}
	return json.RawMessage(raw), nil
}

func (s *CacheArtifactStore) Delete(ctx context.Context, key string) error {
	return s.cache.Delete(ctx, cache.GenerateKey(artifactPrefix, key))
}
