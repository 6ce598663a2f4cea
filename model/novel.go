package model

import "time"

// Novel is used for both listing summaries and the detail page.
// Missing fields are empty strings, never absent.
type Novel struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Author     string `json:"author"`
	CoverImage string `json:"coverImage"`
	Synopsis   string `json:"synopsis"`
	Status     string `json:"status"`
	Rating     string `json:"rating,omitempty"`
}

// Chapter is a chapter summary, or the chapter text when Content is set.
type Chapter struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	ReleaseDate string   `json:"releaseDate"`
	Content     []string `json:"content,omitempty"`
}

// Navigation holds the neighbouring chapter ids. An empty id means there is
// no such neighbour.
type Navigation struct {
	PrevChapterID string `json:"prevChapterId,omitempty"`
	NextChapterID string `json:"nextChapterId,omitempty"`
}

func (n Navigation) HasPrev() bool { return n.PrevChapterID != "" }
func (n Navigation) HasNext() bool { return n.NextChapterID != "" }

type ListingPage struct {
	Novels []Novel `json:"novels"`
}

type DetailPage struct {
	Novel    Novel     `json:"novel"`
	Chapters []Chapter `json:"chapters"`
}

type ChapterPage struct {
	Chapter    Chapter    `json:"chapter"`
	Novel      Novel      `json:"novel"`
	Navigation Navigation `json:"navigation"`
}

// HistoryItem is one reading-history row, keyed by (NovelID, ChapterID).
type HistoryItem struct {
	NovelID      string    `json:"novelId"`
	ChapterID    string    `json:"chapterId"`
	NovelTitle   string    `json:"novelTitle"`
	ChapterTitle string    `json:"chapterTitle"`
	CoverImage   string    `json:"coverImage"`
	Timestamp    time.Time `json:"timestamp"`
}

// SameChapter reports whether both items refer to the same chapter of the same novel.
func (h HistoryItem) SameChapter(o HistoryItem) bool {
	return h.NovelID == o.NovelID && h.ChapterID == o.ChapterID
}

// Book is a novel together with the chapters fetched for export.
type Book struct {
	Novel    Novel
	Chapters []Chapter
	Cover    []byte
}
