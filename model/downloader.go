package model

import "context"

// Source fetches pages from the content site and returns extracted entities.
type Source interface {
	Latest(ctx context.Context) ([]Novel, error)
	Popular(ctx context.Context) ([]Novel, error)
	Search(ctx context.Context, query string) ([]Novel, error)
	Novel(ctx context.Context, novelID string) (*DetailPage, error)
	Chapter(ctx context.Context, novelID, chapterID string) (*ChapterPage, error)
}

// ExtraFile is an additional file packed into an exported book.
type ExtraFile struct {
	Data         []byte
	Path         string
	ManifestItem ManifestItem
}
