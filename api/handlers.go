package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"lightnovel-reader/model"
)

type novelResponse struct {
	*model.DetailPage
	Bookmarked bool `json:"bookmarked"`
}

type chapterResponse struct {
	*model.ChapterPage
	Settings model.FontSettings `json:"settings"`
	Theme    model.Theme        `json:"theme"`
}

type bookmarkResponse struct {
	Bookmarked bool          `json:"bookmarked"`
	Bookmarks  []model.Novel `json:"bookmarks"`
}

type themeRequest struct {
	Dark bool `json:"dark"`
}

func (s *Server) latest(w http.ResponseWriter, r *http.Request) {
	novels, err := s.source.Latest(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	ok(w, model.ListingPage{Novels: novels})
}

func (s *Server) popular(w http.ResponseWriter, r *http.Request) {
	novels, err := s.source.Popular(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	ok(w, model.ListingPage{Novels: novels})
}

func (s *Server) search(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		badRequest(w, "query parameter q is required")
		return
	}
	novels, err := s.source.Search(r.Context(), query)
	if err != nil {
		writeError(w, r, err)
		return
	}
	ok(w, model.ListingPage{Novels: novels})
}

func (s *Server) novel(w http.ResponseWriter, r *http.Request) {
	novelID := chi.URLParam(r, "novelID")
	page, err := s.source.Novel(r.Context(), novelID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	ok(w, novelResponse{DetailPage: page, Bookmarked: s.stores.Bookmarks.IsBookmarked(page.Novel.ID)})
}

// chapter returns the chapter text and records the visit in the history.
func (s *Server) chapter(w http.ResponseWriter, r *http.Request) {
	page, err := s.source.Chapter(r.Context(), chi.URLParam(r, "novelID"), chi.URLParam(r, "chapterID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.stores.History.RecordVisit(r.Context(), page, s.now())
	ok(w, chapterResponse{
		ChapterPage: page,
		Settings:    s.stores.Font.Get(),
		Theme:       s.stores.Theme.Get(),
	})
}

func (s *Server) listBookmarks(w http.ResponseWriter, r *http.Request) {
	ok(w, s.stores.Bookmarks.List())
}

// toggleBookmark uses the novel in the request body when present, and
// otherwise fetches the novel detail to bookmark.
func (s *Server) toggleBookmark(w http.ResponseWriter, r *http.Request) {
	novelID := chi.URLParam(r, "novelID")

	var novel model.Novel
	if err := json.NewDecoder(r.Body).Decode(&novel); err != nil && !errors.Is(err, io.EOF) {
		badRequest(w, "invalid novel: "+err.Error())
		return
	}
	novel.ID = novelID
	if novel.Title == "" && !s.stores.Bookmarks.IsBookmarked(novelID) {
		page, err := s.source.Novel(r.Context(), novelID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		novel = page.Novel
		novel.ID = novelID
	}

	bookmarked := s.stores.Bookmarks.Toggle(r.Context(), novel)
	ok(w, bookmarkResponse{Bookmarked: bookmarked, Bookmarks: s.stores.Bookmarks.List()})
}

func (s *Server) removeBookmark(w http.ResponseWriter, r *http.Request) {
	ok(w, s.stores.Bookmarks.Remove(r.Context(), chi.URLParam(r, "novelID")))
}

func (s *Server) listHistory(w http.ResponseWriter, r *http.Request) {
	ok(w, s.stores.History.List())
}

func (s *Server) clearHistory(w http.ResponseWriter, r *http.Request) {
	ok(w, s.stores.History.Clear(r.Context()))
}

func (s *Server) getFont(w http.ResponseWriter, r *http.Request) {
	ok(w, s.stores.Font.Get())
}

func (s *Server) setFont(w http.ResponseWriter, r *http.Request) {
	settings := s.stores.Font.Get()
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		badRequest(w, "invalid font settings: "+err.Error())
		return
	}
	ok(w, s.stores.Font.Set(r.Context(), settings))
}

func (s *Server) adjustFont(w http.ResponseWriter, r *http.Request) {
	font := s.stores.Font
	ctx := r.Context()

	var settings model.FontSettings
	switch chi.URLParam(r, "action") {
	case "increase-size":
		settings = font.IncreaseFontSize(ctx)
	case "decrease-size":
		settings = font.DecreaseFontSize(ctx)
	case "increase-line-height":
		settings = font.IncreaseLineHeight(ctx)
	case "decrease-line-height":
		settings = font.DecreaseLineHeight(ctx)
	case "toggle-family":
		settings = font.ToggleFontFamily(ctx)
	default:
		notFound(w, "unknown font action")
		return
	}
	ok(w, settings)
}

func (s *Server) getTheme(w http.ResponseWriter, r *http.Request) {
	ok(w, s.stores.Theme.Get())
}

func (s *Server) setTheme(w http.ResponseWriter, r *http.Request) {
	var req themeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid theme: "+err.Error())
		return
	}
	s.stores.Theme.Set(r.Context(), req.Dark)
	ok(w, s.stores.Theme.Get())
}

func (s *Server) toggleTheme(w http.ResponseWriter, r *http.Request) {
	s.stores.Theme.Toggle(r.Context())
	ok(w, s.stores.Theme.Get())
}
