package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/yourorg/financiero/internal/auth"
)

// NewRouter mounts the handler routes. Everything except /healthz goes through
// API-key auth and per-client rate limiting; a nil limiter disables the latter.
// Forwarding headers replace the peer address only with TrustProxyHeaders set.
func NewRouter(h *Handler, authCfg auth.Config, limiter *auth.RateLimiter) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	if h.cfg.TrustProxyHeaders {
		r.Use(middleware.RealIP)
	}
	r.Use(Correlation)
	r.Use(RequestLogger(h.logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", h.Health)

	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware(authCfg, h.logger))
		r.Use(auth.RateLimit(limiter))

		r.Get("/categories", h.ListCategories)
		r.Get("/categories/{name}", h.GetCategory)
		r.Post("/calculations/{domain}", h.Calculate)

		r.Get("/history/verify", h.VerifyHistory)
		r.Route("/history/{domain}", func(r chi.Router) {
			r.Get("/", h.ListHistory)
			r.Get("/report.html", h.ReportHTML)
			r.Get("/report.pdf", h.ReportPDF)
			r.Get("/{id}", h.GetRecord)
		})
	})
	return r
}

// Correlation makes sure every request and response carries X-Correlation-Id.
func Correlation(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(HeaderCorrelationID)
		if id == "" {
			id = uuid.NewString()
			r.Header.Set(HeaderCorrelationID, id)
		}
		w.Header().Set(HeaderCorrelationID, id)
		next.ServeHTTP(w, r)
	})
}

// RequestLogger logs one line per request once the response is written.
func RequestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Info("http request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				slog.Int("bytes", ww.BytesWritten()),
				slog.Duration("duration", time.Since(start)),
				slog.String("corrId", r.Header.Get(HeaderCorrelationID)),
				slog.String("requestId", middleware.GetReqID(r.Context())),
			)
		})
	}
}

func correlationID(r *http.Request) string {
	if id := r.Header.Get(HeaderCorrelationID); id != "" {
		return id
	}
	return uuid.NewString()
}
