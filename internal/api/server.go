// Package api exposes the productivity engine over HTTP.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	momentum "github.com/momentumhq/momentum"
	"github.com/momentumhq/momentum/music"
	"github.com/momentumhq/momentum/observability"
)

// Handler holds all API handler state.
type Handler struct {
	engine  *momentum.Engine
	auth    *Auth
	music   *music.Client // nil when the proxy is disabled
	metrics *observability.MetricsExtension
	logger  *slog.Logger
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithMusic enables the music suggestion endpoint.
func WithMusic(c *music.Client) HandlerOption {
	return func(h *Handler) { h.music = c }
}

// WithMetrics mounts /metrics and instruments all requests.
func WithMetrics(m *observability.MetricsExtension) HandlerOption {
	return func(h *Handler) { h.metrics = m }
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) HandlerOption {
	return func(h *Handler) { h.logger = logger }
}

// NewHandler creates the API handler.
func NewHandler(e *momentum.Engine, auth *Auth, opts ...HandlerOption) *Handler {
	h := &Handler{
		engine: e,
		auth:   auth,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Router builds the full route tree.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.requestLogger)
	r.Use(middleware.Recoverer)
	if h.metrics != nil {
		r.Use(h.metrics.InstrumentHandler)
	}

	r.Get("/healthz", h.Health)
	if h.metrics != nil {
		r.Handle("/metrics", h.metrics.Handler())
	}

	r.Route("/v1", func(r chi.Router) {
		r.Post("/auth/register", h.RegisterAccount)
		r.Post("/auth/login", h.Login)

		r.Group(func(r chi.Router) {
			r.Use(h.auth.Middleware)

			r.Route("/tasks", func(r chi.Router) {
				r.Get("/", h.ListTasks)
				r.Post("/", h.CreateTask)
				r.Get("/{id}", h.GetTask)
				r.Patch("/{id}", h.UpdateTask)
				r.Delete("/{id}", h.DeleteTask)
				r.Post("/{id}/complete", h.CompleteTask)
			})

			r.Route("/sessions", func(r chi.Router) {
				r.Get("/", h.ListSessions)
				r.Post("/", h.StartSession)
				r.Get("/{id}", h.GetSession)
				r.Post("/{id}/complete", h.CompleteSession)
				r.Post("/{id}/abandon", h.AbandonSession)
			})

			r.Route("/moods", func(r chi.Router) {
				r.Get("/", h.ListMoods)
				r.Post("/", h.LogMood)
			})

			r.Route("/rewards", func(r chi.Router) {
				r.Get("/balance", h.Balance)
				r.Get("/profile", h.Profile)
				r.Get("/catalog", h.Catalog)
				r.Post("/purchase", h.Purchase)
				r.Get("/history", h.PurchaseHistory)
			})

			r.Get("/me", h.Me)
			r.Get("/analytics/summary", h.Summary)
			r.Get("/music/suggestions", h.MusicSuggestions)
		})
	})

	return r
}

// requestLogger logs one line per request at debug level.
func (h *Handler) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		h.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// Health handles GET /healthz.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.engine.Store().Ping(r.Context()); err != nil {
		respondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
