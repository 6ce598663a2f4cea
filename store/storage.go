// Package store keeps the user's collections: bookmarks, reading history and
// reading preferences.
//
// Each collection lives in memory and is written through, as one complete JSON
// document, to a single key of a Storage backend on every change. Storage
// failures are logged and never surface to the caller: a store whose backend
// is down keeps working from memory.
package store

import (
	"context"
	"errors"
	"fmt"

	"lightnovel-reader/config"
)

// Storage keys, one per collection.
const (
	BookmarksKey = "@bookmarks"
	HistoryKey   = "@reading_history"
	FontKey      = "@font_settings"
	ThemeKey     = "@theme_preference"
)

var ErrNotFound = errors.New("store: key not found")

// Storage is a durable key-value slot holding whole JSON documents.
type Storage interface {
	// Get returns ErrNotFound when nothing has been stored under key.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

// Open returns the backend selected by cfg.Storage.
func Open(ctx context.Context, cfg *config.Config) (Storage, error) {
	switch cfg.Storage {
	case "file":
		return NewFileStorage(cfg.StateDir)
	case "sqlite":
		return NewSQLiteStorage(cfg.SQLitePath)
	case "redis":
		return NewRedisStorage(ctx, cfg.RedisURL, cfg.RedisPrefix)
	case "memory":
		return NewMemoryStorage(), nil
	}
	return nil, fmt.Errorf("store: unknown storage backend %q", cfg.Storage)
}
