package downloader

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"lightnovel-reader/model"
)

// ImageSource is implemented by sources that can download cover images.
type ImageSource interface {
	Image(ctx context.Context, url string) ([]byte, error)
}

type BookOptions struct {
	// From and To select chapters by 1-based position in the detail page's
	// chapter list, inclusive. Zero leaves that end open.
	From int
	To   int
	// Delay is the pause between chapter requests.
	Delay time.Duration
	// SkipCover disables the cover download.
	SkipCover bool
}

// SelectChapters returns the chapters in [from, to], 1-based and inclusive.
func SelectChapters(chapters []model.Chapter, from, to int) ([]model.Chapter, error) {
	if from <= 0 {
		from = 1
	}
	if to <= 0 || to > len(chapters) {
		to = len(chapters)
	}
	if from > to {
		return nil, fmt.Errorf("empty chapter range %d-%d of %d chapters", from, to, len(chapters))
	}
	return chapters[from-1 : to], nil
}

// FetchBook downloads the novel and the selected chapters' text from src.
func FetchBook(ctx context.Context, src model.Source, novelID string, opts BookOptions) (*model.Book, error) {
	log.Infof("Downloading novel %v", novelID)

	detail, err := src.Novel(ctx, novelID)
	if err != nil {
		return nil, fmt.Errorf("failed to get novel info: %w", err)
	}
	selected, err := SelectChapters(detail.Chapters, opts.From, opts.To)
	if err != nil {
		return nil, err
	}

	book := &model.Book{
		Novel:    detail.Novel,
		Chapters: make([]model.Chapter, 0, len(selected)),
	}
	for i, summary := range selected {
		if i > 0 && opts.Delay > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(opts.Delay):
			}
		}

		log.Infof("Downloading chapter %d/%d: %s", i+1, len(selected), summary.Title)
		page, err := src.Chapter(ctx, novelID, summary.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to get chapter %v: %w", summary.ID, err)
		}
		chapter := page.Chapter
		if chapter.Title == "" {
			chapter.Title = summary.Title
		}
		if chapter.ReleaseDate == "" {
			chapter.ReleaseDate = summary.ReleaseDate
		}
		book.Chapters = append(book.Chapters, chapter)
	}

	if images, ok := src.(ImageSource); ok && !opts.SkipCover && book.Novel.CoverImage != "" {
		cover, err := images.Image(ctx, book.Novel.CoverImage)
		if err != nil {
			log.Warnf("Failed to get cover of %v: %v", novelID, err)
		} else {
			book.Cover = cover
		}
	}
	return book, nil
}
