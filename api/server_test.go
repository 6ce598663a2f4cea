package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lightnovel-reader/downloader/lightnovelpub"
	"lightnovel-reader/extractor"
	"lightnovel-reader/model"
	"lightnovel-reader/store"
)

type fakeSource struct {
	err        error
	novelCalls int
	lastQuery  string
}

func (f *fakeSource) Latest(context.Context) ([]model.Novel, error) {
	return []model.Novel{{ID: "a", Title: "A"}}, f.err
}

func (f *fakeSource) Popular(context.Context) ([]model.Novel, error) {
	return []model.Novel{{ID: "p", Title: "P"}}, f.err
}

func (f *fakeSource) Search(_ context.Context, q string) ([]model.Novel, error) {
	f.lastQuery = q
	return []model.Novel{}, f.err
}

func (f *fakeSource) Novel(_ context.Context, id string) (*model.DetailPage, error) {
	f.novelCalls++
	if f.err != nil {
		return nil, f.err
	}
	return &model.DetailPage{
		Novel:    model.Novel{ID: id, Title: "Novel " + id, CoverImage: "/c.jpg"},
		Chapters: []model.Chapter{{ID: "1", Title: "One"}},
	}, nil
}

func (f *fakeSource) Chapter(_ context.Context, nid, cid string) (*model.ChapterPage, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &model.ChapterPage{
		Chapter:    model.Chapter{ID: cid, Title: "Chapter " + cid, Content: []string{"text"}},
		Novel:      model.Novel{ID: nid, Title: "Novel " + nid},
		Navigation: model.Navigation{NextChapterID: "2"},
	}, nil
}

type envelope struct {
	Data      json.RawMessage `json:"data"`
	Error     string          `json:"error"`
	Code      string          `json:"code"`
	Retryable bool            `json:"retryable"`
}

func newTestServer(t *testing.T, src *fakeSource) (*Server, *store.Stores) {
	t.Helper()
	stores := store.Load(context.Background(), store.NewMemoryStorage(), func() bool { return false })
	s := NewServer(":0", src, stores)
	s.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	return s, stores
}

func do(t *testing.T, s *Server, method, path, body string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec.Code, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

func TestListings(t *testing.T) {
	src := &fakeSource{}
	s, _ := newTestServer(t, src)

	code, env := do(t, s, http.MethodGet, "/api/v1/novels/latest", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "A", decode[model.ListingPage](t, env.Data).Novels[0].Title)

	code, env = do(t, s, http.MethodGet, "/api/v1/novels/popular", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "P", decode[model.ListingPage](t, env.Data).Novels[0].Title)

	code, env = do(t, s, http.MethodGet, "/api/v1/search?q=shadow+slave", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "shadow slave", src.lastQuery)
	assert.NotNil(t, decode[model.ListingPage](t, env.Data).Novels)

	code, env = do(t, s, http.MethodGet, "/api/v1/search?q=%20", "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "bad_request", env.Code)
}

func TestNovelReportsBookmark(t *testing.T) {
	s, stores := newTestServer(t, &fakeSource{})
	stores.Bookmarks.Add(context.Background(), model.Novel{ID: "abc", Title: "x"})

	code, env := do(t, s, http.MethodGet, "/api/v1/novels/abc", "")
	require.Equal(t, http.StatusOK, code)
	got := decode[struct {
		Novel      model.Novel     `json:"novel"`
		Chapters   []model.Chapter `json:"chapters"`
		Bookmarked bool            `json:"bookmarked"`
	}](t, env.Data)
	assert.Equal(t, "Novel abc", got.Novel.Title)
	assert.Len(t, got.Chapters, 1)
	assert.True(t, got.Bookmarked)
}

func TestChapterRecordsHistory(t *testing.T) {
	s, stores := newTestServer(t, &fakeSource{})

	code, env := do(t, s, http.MethodGet, "/api/v1/novels/abc/chapters/7", "")
	require.Equal(t, http.StatusOK, code)
	got := decode[struct {
		Chapter    model.Chapter      `json:"chapter"`
		Navigation model.Navigation   `json:"navigation"`
		Settings   model.FontSettings `json:"settings"`
		Theme      model.Theme        `json:"theme"`
	}](t, env.Data)
	assert.Equal(t, "Chapter 7", got.Chapter.Title)
	assert.Equal(t, "2", got.Navigation.NextChapterID)
	assert.Equal(t, model.DefaultFontSettings(), got.Settings)
	assert.Equal(t, model.ThemeLight, got.Theme)

	history := stores.History.List()
	require.Len(t, history, 1)
	assert.Equal(t, "abc", history[0].NovelID)
	assert.Equal(t, "7", history[0].ChapterID)
	assert.Equal(t, "Novel abc", history[0].NovelTitle)
	assert.Equal(t, time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC), history[0].Timestamp)

	code, env = do(t, s, http.MethodGet, "/api/v1/history", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Len(t, decode[[]model.HistoryItem](t, env.Data), 1)

	code, env = do(t, s, http.MethodDelete, "/api/v1/history", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Empty(t, decode[[]model.HistoryItem](t, env.Data))
	assert.Empty(t, stores.History.List())
}

func TestBookmarkToggle(t *testing.T) {
	src := &fakeSource{}
	s, stores := newTestServer(t, src)

	code, env := do(t, s, http.MethodPost, "/api/v1/bookmarks/abc/toggle", "")
	require.Equal(t, http.StatusOK, code)
	got := decode[bookmarkResponse](t, env.Data)
	assert.True(t, got.Bookmarked)
	require.Len(t, got.Bookmarks, 1)
	assert.Equal(t, "Novel abc", got.Bookmarks[0].Title)
	assert.Equal(t, 1, src.novelCalls)

	// removing does not need the detail page
	code, env = do(t, s, http.MethodPost, "/api/v1/bookmarks/abc/toggle", "")
	require.Equal(t, http.StatusOK, code)
	assert.False(t, decode[bookmarkResponse](t, env.Data).Bookmarked)
	assert.Equal(t, 1, src.novelCalls)

	code, _ = do(t, s, http.MethodPost, "/api/v1/bookmarks/xyz/toggle", `{"title":"Given"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 1, src.novelCalls)
	assert.Equal(t, []model.Novel{{ID: "xyz", Title: "Given"}}, stores.Bookmarks.List())

	code, env = do(t, s, http.MethodGet, "/api/v1/bookmarks", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Len(t, decode[[]model.Novel](t, env.Data), 1)

	code, env = do(t, s, http.MethodDelete, "/api/v1/bookmarks/xyz", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Empty(t, decode[[]model.Novel](t, env.Data))

	code, _ = do(t, s, http.MethodPost, "/api/v1/bookmarks/xyz/toggle", `{not json`)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestFontSettings(t *testing.T) {
	s, stores := newTestServer(t, &fakeSource{})

	code, env := do(t, s, http.MethodPost, "/api/v1/settings/font/increase-size", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 17, decode[model.FontSettings](t, env.Data).FontSize)

	code, env = do(t, s, http.MethodPost, "/api/v1/settings/font/increase-line-height", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 1.6, decode[model.FontSettings](t, env.Data).LineHeight)

	code, env = do(t, s, http.MethodPost, "/api/v1/settings/font/toggle-family", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, model.FontSansSerif, decode[model.FontSettings](t, env.Data).FontFamily)

	for _, action := range []string{"decrease-size", "decrease-line-height"} {
		code, _ = do(t, s, http.MethodPost, "/api/v1/settings/font/"+action, "")
		assert.Equal(t, http.StatusOK, code)
	}
	assert.Equal(t, model.FontSettings{FontSize: 16, LineHeight: 1.5, FontFamily: model.FontSansSerif}, stores.Font.Get())

	code, _ = do(t, s, http.MethodPost, "/api/v1/settings/font/explode", "")
	assert.Equal(t, http.StatusNotFound, code)

	code, env = do(t, s, http.MethodPut, "/api/v1/settings/font", `{"fontSize":40}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, model.MaxFontSize, decode[model.FontSettings](t, env.Data).FontSize)

	code, env = do(t, s, http.MethodGet, "/api/v1/settings/font", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, stores.Font.Get(), decode[model.FontSettings](t, env.Data))
}

func TestTheme(t *testing.T) {
	s, stores := newTestServer(t, &fakeSource{})

	code, env := do(t, s, http.MethodPost, "/api/v1/settings/theme/toggle", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, model.ThemeDark, decode[model.Theme](t, env.Data))
	assert.True(t, stores.Theme.IsDark())

	code, env = do(t, s, http.MethodPut, "/api/v1/settings/theme", `{"dark":false}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, model.ThemeLight, decode[model.Theme](t, env.Data))

	code, env = do(t, s, http.MethodGet, "/api/v1/settings/theme", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, model.ThemeLight, decode[model.Theme](t, env.Data))

	code, _ = do(t, s, http.MethodPut, "/api/v1/settings/theme", `nope`)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestSourceErrors(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		status    int
		code      string
		retryable bool
	}{
		{"fetch", fmt.Errorf("failed to get novel list: %w", &lightnovelpub.FetchError{URL: "u", StatusCode: 503, Err: errors.New("503")}), http.StatusBadGateway, "fetch_failed", true},
		{"extraction", &extractor.ExtractionError{Kind: extractor.KindListing, Err: errors.New("bad html")}, http.StatusBadGateway, "extraction_failed", false},
		{"other", errors.New("boom"), http.StatusInternalServerError, "internal", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, stores := newTestServer(t, &fakeSource{err: tt.err})
			code, env := do(t, s, http.MethodGet, "/api/v1/novels/latest", "")
			assert.Equal(t, tt.status, code)
			assert.Equal(t, tt.code, env.Code)
			assert.Equal(t, tt.retryable, env.Retryable)

			code, _ = do(t, s, http.MethodGet, "/api/v1/novels/abc/chapters/1", "")
			assert.Equal(t, tt.status, code)
			assert.Empty(t, stores.History.List())
		})
	}
}

func TestMutationsSurviveCanceledRequest(t *testing.T) {
	storage, err := store.NewSQLiteStorage(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { storage.Close() })

	stores := store.Load(context.Background(), storage, nil)
	s := NewServer(":0", &fakeSource{}, stores)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for _, req := range []*http.Request{
		httptest.NewRequest(http.MethodGet, "/api/v1/novels/abc/chapters/7", nil),
		httptest.NewRequest(http.MethodPost, "/api/v1/bookmarks/abc/toggle", strings.NewReader(`{"title":"ABC"}`)),
		httptest.NewRequest(http.MethodPost, "/api/v1/settings/font/increase-size", nil),
		httptest.NewRequest(http.MethodPost, "/api/v1/settings/theme/toggle", nil),
	} {
		s.Handler().ServeHTTP(httptest.NewRecorder(), req.WithContext(ctx))
	}

	reloaded := store.Load(context.Background(), storage, nil)
	history := reloaded.History.List()
	require.Len(t, history, 1)
	assert.Equal(t, "7", history[0].ChapterID)
	assert.True(t, reloaded.Bookmarks.IsBookmarked("abc"))
	assert.Equal(t, 17, reloaded.Font.Get().FontSize)
	assert.True(t, reloaded.Theme.IsDark())
}

func TestCORSAndHealth(t *testing.T) {
	s, _ := newTestServer(t, &fakeSource{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://example.com")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
