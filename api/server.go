// Package api serves the reader screens as a JSON HTTP API: listings, search,
// novel detail, chapter reading, bookmarks, history and reading settings.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"

	"lightnovel-reader/model"
	"lightnovel-reader/store"
)

const requestTimeout = 60 * time.Second

type Server struct {
	source model.Source
	stores *store.Stores
	now    func() time.Time

	router     chi.Router
	httpServer *http.Server
}

func NewServer(addr string, source model.Source, stores *store.Stores) *Server {
	s := &Server{
		source: source,
		stores: stores,
		now:    time.Now,
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(requestLogger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(requestTimeout))
	r.Use(cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}).Handler)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) { ok(w, "ok") })

	r.Route("/api/v1", func(api chi.Router) {
		api.Get("/novels/latest", s.latest)
		api.Get("/novels/popular", s.popular)
		api.Get("/search", s.search)
		api.Get("/novels/{novelID}", s.novel)
		api.Get("/novels/{novelID}/chapters/{chapterID}", s.chapter)

		api.Get("/bookmarks", s.listBookmarks)
		api.Post("/bookmarks/{novelID}/toggle", s.toggleBookmark)
		api.Delete("/bookmarks/{novelID}", s.removeBookmark)

		api.Get("/history", s.listHistory)
		api.Delete("/history", s.clearHistory)

		api.Get("/settings/font", s.getFont)
		api.Put("/settings/font", s.setFont)
		api.Post("/settings/font/{action}", s.adjustFont)
		api.Get("/settings/theme", s.getTheme)
		api.Put("/settings/theme", s.setTheme)
		api.Post("/settings/theme/toggle", s.toggleTheme)
	})

	s.router = r
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe blocks until the server is shut down.
func (s *Server) ListenAndServe() error {
	log.Infof("API listening on %s", s.httpServer.Addr)
	err := s.httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		log.WithFields(log.Fields{
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"duration":   time.Since(start),
			"request_id": chimw.GetReqID(r.Context()),
		}).Debug("Handled request")
	})
}
