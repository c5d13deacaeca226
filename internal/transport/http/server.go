// Package http provides the HTTP transport layer for the article service.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mvaleed/quill/internal/auth"
	"github.com/mvaleed/quill/internal/config"
	"github.com/mvaleed/quill/internal/envelope"
	"github.com/mvaleed/quill/internal/service"
	"github.com/mvaleed/quill/internal/storage"
)

const maxBodyBytes = 1 << 20

var errInvalidBody = errors.New("invalid request body")

// TokenValidator turns a bearer token into claims.
type TokenValidator interface {
	ValidateAccessToken(token string) (*auth.Claims, error)
}

// Server is the HTTP server for the article service.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	cfg        *config.Config
	accounts   *service.AccountService
	articles   *service.ArticleService
	tokens     TokenValidator
	health     storage.Pinger
	limiter    RateLimiter
	metrics    *metrics
	logger     *slog.Logger
}

// NewServer creates a new HTTP server. A nil limiter disables rate limiting
// and a nil registry gets a fresh one.
func NewServer(
	cfg *config.Config,
	accounts *service.AccountService,
	articles *service.ArticleService,
	tokens TokenValidator,
	health storage.Pinger,
	limiter RateLimiter,
	registry *prometheus.Registry,
	logger *slog.Logger,
) *Server {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	s := &Server{
		router:   chi.NewRouter(),
		cfg:      cfg,
		accounts: accounts,
		articles: articles,
		tokens:   tokens,
		health:   health,
		limiter:  limiter,
		metrics:  newMetrics(registry),
		logger:   logger.With("component", "http"),
	}

	s.setupMiddleware()
	s.setupRoutes(registry)

	return s
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(s.recoverMiddleware)
	if s.cfg.Server.RequestTimeout > 0 {
		s.router.Use(middleware.Timeout(s.cfg.Server.RequestTimeout))
	}
}

func (s *Server) setupRoutes(gatherer prometheus.Gatherer) {
	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.writeEnvelope(w, envelope.Failure(http.StatusNotFound, envelope.MsgNotFound, nil))
	})
	s.router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		s.writeEnvelope(w, envelope.Failure(http.StatusMethodNotAllowed, "Method not allowed", nil))
	})

	s.router.Get("/health", s.handleHealth)
	s.router.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	s.router.Route("/api", func(r chi.Router) {
		// Public routes (no auth required)
		r.Group(func(r chi.Router) {
			r.Use(s.rateLimitMiddleware)
			r.Post("/register", s.handleRegister)
			r.Post("/login", s.handleLogin)
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(s.authMiddleware)

			r.Get("/me", s.handleGetProfile)
			r.Put("/me", s.handleUpdateProfile)
			r.Put("/me/password", s.handleChangePassword)

			r.Route("/articles", func(r chi.Router) {
				r.Get("/", s.handleListArticles)
				r.Post("/", s.handleCreateArticle)
				r.Get("/{id}", s.handleGetArticle)
				r.Put("/{id}", s.handleUpdateArticle)
				r.Delete("/{id}", s.handleDeleteArticle)
			})
		})
	})
}

// Response helpers

func (s *Server) writeEnvelope(w http.ResponseWriter, resp envelope.Response) {
	if resp.Status == http.StatusNoContent {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.Status)
	if err := json.NewEncoder(w).Encode(resp.Body); err != nil {
		s.logger.Error("failed to encode response", slog.String("error", err.Error()))
	}
}

// writeError maps err onto the envelope. Faults are logged with the request
// id and reported to the client without detail.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, errInvalidBody) {
		s.writeEnvelope(w, envelope.BadRequest(envelope.MsgInvalidBody))
		return
	}

	resp := envelope.FromError(err)
	if resp.Fault() {
		s.logger.ErrorContext(r.Context(), "unhandled error",
			slog.String("error", err.Error()),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)
	}
	s.writeEnvelope(w, resp)
}

func (s *Server) readJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return errInvalidBody
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errInvalidBody
	}
	return nil
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Wrap response writer to capture status code
		ww := &responseWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(ww, r)

		duration := time.Since(start)
		route := routePattern(r)
		s.metrics.observeRequest(r.Method, route, ww.status, duration)

		s.logger.Info("http request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("route", route),
			slog.Int("status", ww.status),
			slog.Duration("duration", duration),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

func (s *Server) recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				s.logger.ErrorContext(r.Context(), "panic recovered",
					slog.Any("panic", rec),
					slog.String("path", r.URL.Path),
					slog.String("request_id", middleware.GetReqID(r.Context())),
				)
				s.writeEnvelope(w, envelope.Internal())
			}
		}()
		next.ServeHTTP(w, r)
	})
}

type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}
