package store

import (
	"context"
	"slices"

	"lightnovel-reader/model"
)

// Bookmarks is the set of bookmarked novels, in the order they were added.
type Bookmarks struct {
	slot *slot[[]model.Novel]
}

func NewBookmarks(ctx context.Context, storage Storage) *Bookmarks {
	b := &Bookmarks{slot: newSlot(storage, BookmarksKey, []model.Novel{})}
	b.slot.load(ctx)
	return b
}

func (b *Bookmarks) List() []model.Novel {
	return slices.Clone(b.slot.get())
}

func (b *Bookmarks) IsBookmarked(novelID string) bool {
	return indexOfNovel(b.slot.get(), novelID) >= 0
}

// Add appends novel unless a bookmark with the same id exists.
func (b *Bookmarks) Add(ctx context.Context, novel model.Novel) []model.Novel {
	return slices.Clone(b.slot.mutate(ctx, func(current []model.Novel) ([]model.Novel, bool) {
		if indexOfNovel(current, novel.ID) >= 0 {
			return current, false
		}
		return append(slices.Clone(current), novel), true
	}))
}

func (b *Bookmarks) Remove(ctx context.Context, novelID string) []model.Novel {
	return slices.Clone(b.slot.mutate(ctx, func(current []model.Novel) ([]model.Novel, bool) {
		if indexOfNovel(current, novelID) < 0 {
			return current, false
		}
		return slices.DeleteFunc(slices.Clone(current), func(n model.Novel) bool {
			return n.ID == novelID
		}), true
	}))
}

// Toggle adds novel when it is not bookmarked and removes it otherwise. It
// returns whether the novel is bookmarked afterwards.
func (b *Bookmarks) Toggle(ctx context.Context, novel model.Novel) bool {
	bookmarked := false
	b.slot.mutate(ctx, func(current []model.Novel) ([]model.Novel, bool) {
		if indexOfNovel(current, novel.ID) >= 0 {
			return slices.DeleteFunc(slices.Clone(current), func(n model.Novel) bool {
				return n.ID == novel.ID
			}), true
		}
		bookmarked = true
		return append(slices.Clone(current), novel), true
	})
	return bookmarked
}

func indexOfNovel(novels []model.Novel, id string) int {
	return slices.IndexFunc(novels, func(n model.Novel) bool { return n.ID == id })
}
