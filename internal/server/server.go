package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/omarshaarawi/hoopsbot/internal/models"
	"github.com/omarshaarawi/hoopsbot/internal/projection"
)

type ProjectionService interface {
	DefaultRequest() models.MatchupRequest
	Load(ctx context.Context, req models.MatchupRequest) (models.MatchupProjection, error)
	Last(req models.MatchupRequest) (models.MatchupProjection, bool)
	Current() (models.MatchupProjection, bool)
	SetPlayerStatus(ctx context.Context, playerID int, status projection.PlayerStatus, date string) (models.MatchupProjection, error)
	ClearPlayerStatus(ctx context.Context, playerID int) (models.MatchupProjection, error)
	DisableState() models.DisableState
}

type Server struct {
	server *http.Server
}

// NewServer wires the JSON API. metrics may be nil.
func NewServer(addr string, svc ProjectionService, metrics http.Handler) *Server {
	return &Server{
		server: &http.Server{
			Addr:              addr,
			Handler:           NewRouter(svc, metrics),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

func NewRouter(svc ProjectionService, metrics http.Handler) *mux.Router {
	h := NewHandler(svc)

	router := mux.NewRouter()
	router.Use(loggingMiddleware)

	router.HandleFunc("/health", h.Health).Methods(http.MethodGet)
	if metrics != nil {
		router.Handle("/metrics", metrics).Methods(http.MethodGet)
	}

	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/projection", h.GetProjection).Methods(http.MethodGet)
	api.HandleFunc("/projection/current", h.GetCurrentProjection).Methods(http.MethodGet)
	api.HandleFunc("/overrides", h.GetOverrides).Methods(http.MethodGet)
	api.HandleFunc("/players/{playerID}/status", h.SetPlayerStatus).Methods(http.MethodPost)
	api.HandleFunc("/players/{playerID}/status", h.ClearPlayerStatus).Methods(http.MethodDelete)

	return router
}

func (s *Server) Start() error {
	slog.Info("HTTP server listening", "addr", s.server.Addr)
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

type responseWriter struct {
	http.ResponseWriter
	status int
}

func (w *responseWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := &responseWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(ww, r)

		slog.Info("request complete",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.status,
			"duration_ms", time.Since(start).Milliseconds())
	})
}
