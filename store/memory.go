package store

import (
	"context"

	"github.com/patrickmn/go-cache"
)

// MemoryStorage lives only as long as the process. Used by tests and
// ephemeral sessions.
type MemoryStorage struct {
	cache *cache.Cache
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{cache: cache.New(cache.NoExpiration, 0)}
}

func (s *MemoryStorage) Get(ctx context.Context, key string) ([]byte, error) {
	val, found := s.cache.Get(key)
	if !found {
		return nil, ErrNotFound
	}
	data := val.([]byte)
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (s *MemoryStorage) Set(ctx context.Context, key string, value []byte) error {
	data := make([]byte, len(value))
	copy(data, value)
	s.cache.Set(key, data, cache.NoExpiration)
	return nil
}

func (s *MemoryStorage) Close() error { return nil }
