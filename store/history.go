package store

import (
	"context"
	"slices"
	"time"

	"lightnovel-reader/model"
)

// HistoryLimit is the number of most recent chapter visits kept.
const HistoryLimit = 50

// History is the reading history, most recent first, with at most one row
// per (novel, chapter).
type History struct {
	slot *slot[[]model.HistoryItem]
}

func NewHistory(ctx context.Context, storage Storage) *History {
	h := &History{slot: newSlot(storage, HistoryKey, []model.HistoryItem{})}
	if h.slot.load(ctx) {
		h.slot.mutate(ctx, func(current []model.HistoryItem) ([]model.HistoryItem, bool) {
			if len(current) <= HistoryLimit {
				return current, false
			}
			return current[:HistoryLimit], true
		})
	}
	return h
}

func (h *History) List() []model.HistoryItem {
	return slices.Clone(h.slot.get())
}

// Add moves item to the front, dropping any older row for the same chapter
// and anything beyond HistoryLimit.
func (h *History) Add(ctx context.Context, item model.HistoryItem) []model.HistoryItem {
	return slices.Clone(h.slot.mutate(ctx, func(current []model.HistoryItem) ([]model.HistoryItem, bool) {
		next := make([]model.HistoryItem, 0, min(len(current)+1, HistoryLimit))
		next = append(next, item)
		for _, existing := range current {
			if len(next) == HistoryLimit {
				break
			}
			if !existing.SameChapter(item) {
				next = append(next, existing)
			}
		}
		return next, true
	}))
}

// RecordVisit adds a history row for a chapter page that was just read.
func (h *History) RecordVisit(ctx context.Context, page *model.ChapterPage, at time.Time) []model.HistoryItem {
	return h.Add(ctx, model.HistoryItem{
		NovelID:      page.Novel.ID,
		ChapterID:    page.Chapter.ID,
		NovelTitle:   page.Novel.Title,
		ChapterTitle: page.Chapter.Title,
		CoverImage:   page.Novel.CoverImage,
		Timestamp:    at.UTC(),
	})
}

func (h *History) Clear(ctx context.Context) []model.HistoryItem {
	return slices.Clone(h.slot.mutate(ctx, func(current []model.HistoryItem) ([]model.HistoryItem, bool) {
		return []model.HistoryItem{}, true
	}))
}
