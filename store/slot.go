package store

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	log "github.com/sirupsen/logrus"
)

// slot mirrors the document stored under one key. Mutations are serialized
// and every accepted mutation rewrites the whole document.
type slot[T any] struct {
	mu      sync.RWMutex
	storage Storage
	key     string
	value   T
}

func newSlot[T any](storage Storage, key string, initial T) *slot[T] {
	return &slot[T]{storage: storage, key: key, value: initial}
}

// load replaces the mirror with the stored document. It reports whether a
// document was found; on any failure the mirror keeps its initial value.
func (s *slot[T]) load(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.storage.Get(ctx, s.key)
	if errors.Is(err, ErrNotFound) {
		return false
	}
	if err != nil {
		log.WithFields(log.Fields{"key": s.key}).WithError(err).Error("Failed to load collection")
		return false
	}

	// fields missing from the document keep their initial values
	value := s.value
	if err := json.Unmarshal(data, &value); err != nil {
		log.WithFields(log.Fields{"key": s.key}).WithError(err).Error("Failed to decode collection")
		return false
	}
	s.value = value
	return true
}

func (s *slot[T]) get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// mutate applies fn to the current value. When fn reports a change the new
// value becomes current and is persisted before mutate returns. The persist
// ignores cancellation of ctx, since the mirror has already advanced. A
// failed persist is logged; the in-memory value stays advanced.
func (s *slot[T]) mutate(ctx context.Context, fn func(current T) (T, bool)) T {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, changed := fn(s.value)
	if !changed {
		return s.value
	}
	s.value = next
	s.save(context.WithoutCancel(ctx))
	return s.value
}

func (s *slot[T]) save(ctx context.Context) {
	data, err := json.Marshal(s.value)
	if err != nil {
		log.WithFields(log.Fields{"key": s.key}).WithError(err).Error("Failed to encode collection")
		return
	}
	if err := s.storage.Set(ctx, s.key, data); err != nil {
		log.WithFields(log.Fields{"key": s.key}).WithError(err).Error("Failed to save collection")
	}
}
