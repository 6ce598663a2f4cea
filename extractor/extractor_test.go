package extractor

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openFixture(t *testing.T, name string) *os.File {
	t.Helper()
	f, err := os.Open("testdata/" + name)
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

func TestListing(t *testing.T) {
	novels, err := Listing(openFixture(t, "listing.html"))
	require.NoError(t, err)
	require.Len(t, novels, 4)

	ids := make([]string, 0, len(novels))
	for _, n := range novels {
		ids = append(ids, n.ID)
	}
	assert.Equal(t, []string{"martial-peak", "shadow-slave", "lord-of-mysteries", "unrated"}, ids)

	second := novels[1]
	assert.Equal(t, "Shadow Slave", second.Title)
	assert.Equal(t, "Guiltythree", second.Author)
	assert.Equal(t, "https://cdn.example.org/covers/shadow-slave.jpg", second.CoverImage, "first img wins")
	assert.Equal(t, "Ongoing", second.Status)
	assert.Equal(t, "4.8", second.Rating)

	assert.Equal(t, "", novels[3].Rating)
	assert.Equal(t, "Unrated Tale", novels[3].Title)
}

func TestListingDegradesMissingFragments(t *testing.T) {
	tests := []struct {
		name string
		html string
		want int
	}{
		{"no items", `<html><body><p>nothing here</p></body></html>`, 0},
		{"empty document", ``, 0},
		{"bare item", `<div class="novel-item"></div>`, 1},
		{"unclosed markup", `<div class="novel-item" data-id="x"><span class="novel-title">T`, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			novels, err := Listing(strings.NewReader(tt.html))
			require.NoError(t, err)
			require.NotNil(t, novels)
			assert.Len(t, novels, tt.want)
		})
	}

	novels, err := Listing(strings.NewReader(`<div class="novel-item"></div>`))
	require.NoError(t, err)
	n := novels[0]
	assert.Empty(t, n.ID)
	assert.Empty(t, n.Title)
	assert.Empty(t, n.Author)
	assert.Empty(t, n.CoverImage)
	assert.Empty(t, n.Synopsis)
	assert.Empty(t, n.Status)
	assert.Empty(t, n.Rating)
}

func TestDetail(t *testing.T) {
	page, err := Detail(openFixture(t, "detail.html"))
	require.NoError(t, err)

	assert.Empty(t, page.Novel.ID)
	assert.Equal(t, "Shadow Slave", page.Novel.Title)
	assert.Equal(t, "Guiltythree", page.Novel.Author)
	assert.Equal(t, "https://cdn.example.org/covers/shadow-slave-large.jpg", page.Novel.CoverImage)
	assert.Equal(t, "Growing up in poverty, Sunny never expected anything good from life.", page.Novel.Synopsis)
	assert.Equal(t, "Ongoing", page.Novel.Status)
	assert.Equal(t, "4.8", page.Novel.Rating)

	require.Len(t, page.Chapters, 3)
	// document order, not numeric order
	assert.Equal(t, "3", page.Chapters[0].ID)
	assert.Equal(t, "1", page.Chapters[1].ID)
	assert.Equal(t, "2", page.Chapters[2].ID)
	assert.Equal(t, "Chapter 1: Nightmare Begins", page.Chapters[1].Title)
	assert.Equal(t, "2024-01-01", page.Chapters[1].ReleaseDate)
	assert.Empty(t, page.Chapters[2].ReleaseDate)
	assert.Nil(t, page.Chapters[0].Content)
}

func TestChapter(t *testing.T) {
	page, err := Chapter(openFixture(t, "chapter.html"))
	require.NoError(t, err)

	assert.Equal(t, "Chapter 11: The Middle", page.Chapter.Title)
	assert.Equal(t, "2024-03-11", page.Chapter.ReleaseDate)
	assert.Equal(t, []string{"First paragraph.", "", "Third paragraph with emphasis."}, page.Chapter.Content)

	assert.Equal(t, "The ABC Novel", page.Novel.Title)
	assert.Equal(t, "A. Writer", page.Novel.Author)
	assert.Equal(t, "https://cdn.example.org/covers/abc.jpg", page.Novel.CoverImage)

	assert.Equal(t, "12", page.Navigation.NextChapterID)
	assert.Empty(t, page.Navigation.PrevChapterID)
	assert.False(t, page.Navigation.HasPrev())
	assert.True(t, page.Navigation.HasNext())
}

func TestChapterWithoutContent(t *testing.T) {
	page, err := Chapter(strings.NewReader(`<html><body><h2 class="chapter-title">Lost</h2></body></html>`))
	require.NoError(t, err)
	assert.Equal(t, "Lost", page.Chapter.Title)
	assert.NotNil(t, page.Chapter.Content)
	assert.Empty(t, page.Chapter.Content)
	assert.Equal(t, "", page.Navigation.NextChapterID)
}

func TestNavigationLinks(t *testing.T) {
	tests := []struct {
		name     string
		href     string
		expected string
	}{
		{"absolute", "https://lightnovelpub.me/novel/abc/chapter/12", "12"},
		{"relative", "/novel/abc/chapter/7", "7"},
		{"bare id", "13", "13"},
		{"trailing slash", "/novel/abc/chapter/12/", ""},
		{"empty href", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			html := `<a class="prev-chapter" href="` + tt.href + `">Prev</a>`
			page, err := Chapter(strings.NewReader(html))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, page.Navigation.PrevChapterID)
		})
	}
}

func TestExtractKinds(t *testing.T) {
	page, err := Extract(openFixture(t, "listing.html"), KindListing)
	require.NoError(t, err)
	assert.Equal(t, KindListing, page.Kind)
	assert.NotNil(t, page.Listing)
	assert.Nil(t, page.Detail)
	assert.Nil(t, page.Chapter)

	_, err = Extract(strings.NewReader("<html></html>"), Kind(42))
	assert.True(t, errors.Is(err, ErrUnknownKind))
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("connection reset") }

func TestExtractUnreadableInput(t *testing.T) {
	_, err := Extract(failingReader{}, KindChapter)
	require.Error(t, err)

	var extractionErr *ExtractionError
	require.ErrorAs(t, err, &extractionErr)
	assert.Equal(t, KindChapter, extractionErr.Kind)
}

func TestParseKind(t *testing.T) {
	for _, k := range []Kind{KindListing, KindDetail, KindChapter} {
		parsed, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, parsed)
	}
	_, err := ParseKind("sitemap")
	assert.ErrorIs(t, err, ErrUnknownKind)
}
