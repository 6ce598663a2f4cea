// Package extractor turns content-site pages into typed entities.
//
// Extraction is total: a fragment missing from the page degrades to an empty
// value, it never fails the call. The only errors are an unreadable input and
// an unknown page kind.
package extractor

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"lightnovel-reader/model"
)

type Kind int

const (
	KindListing Kind = iota + 1
	KindDetail
	KindChapter
)

func (k Kind) String() string {
	switch k {
	case KindListing:
		return "listing"
	case KindDetail:
		return "detail"
	case KindChapter:
		return "chapter"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "listing":
		return KindListing, nil
	case "detail":
		return KindDetail, nil
	case "chapter":
		return KindChapter, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

var ErrUnknownKind = errors.New("unknown page kind")

// ExtractionError reports that the document itself could not be read.
type ExtractionError struct {
	Kind Kind
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("failed to extract %v page: %v", e.Kind, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// Page holds the result of Extract; exactly one field matching Kind is set.
type Page struct {
	Kind    Kind
	Listing *model.ListingPage
	Detail  *model.DetailPage
	Chapter *model.ChapterPage
}

func Extract(r io.Reader, kind Kind) (*Page, error) {
	if kind < KindListing || kind > KindChapter {
		return nil, fmt.Errorf("%w: %v", ErrUnknownKind, kind)
	}
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, &ExtractionError{Kind: kind, Err: err}
	}
	return FromDocument(doc, kind)
}

func FromDocument(doc *goquery.Document, kind Kind) (*Page, error) {
	page := &Page{Kind: kind}
	switch kind {
	case KindListing:
		page.Listing = &model.ListingPage{Novels: listing(doc.Selection)}
	case KindDetail:
		page.Detail = detail(doc.Selection)
	case KindChapter:
		page.Chapter = chapter(doc.Selection)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownKind, kind)
	}
	return page, nil
}

// Listing extracts every novel item of a latest, popular or search page.
func Listing(r io.Reader) ([]model.Novel, error) {
	page, err := Extract(r, KindListing)
	if err != nil {
		return nil, err
	}
	return page.Listing.Novels, nil
}

// Detail extracts a novel's header and its chapter list.
func Detail(r io.Reader) (*model.DetailPage, error) {
	page, err := Extract(r, KindDetail)
	if err != nil {
		return nil, err
	}
	return page.Detail, nil
}

// Chapter extracts a chapter's text and its neighbours.
func Chapter(r io.Reader) (*model.ChapterPage, error) {
	page, err := Extract(r, KindChapter)
	if err != nil {
		return nil, err
	}
	return page.Chapter, nil
}

func listing(doc *goquery.Selection) []model.Novel {
	return collect(doc, NovelItem, novelItemRules)
}

func detail(doc *goquery.Selection) *model.DetailPage {
	page := &model.DetailPage{}
	apply(doc, novelDetailRules, &page.Novel)
	// Chapters keep document order; the site lists them in reading order.
	page.Chapters = collect(doc, ChapterItem, chapterItemRules)
	return page
}

func chapter(doc *goquery.Selection) *model.ChapterPage {
	page := &model.ChapterPage{}
	apply(doc, chapterHeaderRules, &page.Chapter)
	apply(doc, chapterNovelRules, &page.Novel)
	apply(doc, navigationRules, &page.Navigation)

	content := make([]string, 0)
	doc.Find(ChapterContent).Each(func(i int, s *goquery.Selection) {
		content = append(content, strings.TrimSpace(s.Text()))
	})
	page.Chapter.Content = content
	return page
}
