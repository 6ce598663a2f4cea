package store

import "context"

// Stores groups the collections of one session, all backed by one Storage.
type Stores struct {
	Bookmarks *Bookmarks
	History   *History
	Font      *FontSettings
	Theme     *Theme

	storage Storage
}

// Load creates every store and loads it from storage.
func Load(ctx context.Context, storage Storage, ambientDark func() bool) *Stores {
	return &Stores{
		Bookmarks: NewBookmarks(ctx, storage),
		History:   NewHistory(ctx, storage),
		Font:      NewFontSettings(ctx, storage),
		Theme:     NewTheme(ctx, storage, ambientDark),
		storage:   storage,
	}
}

func (s *Stores) Close() error {
	return s.storage.Close()
}
