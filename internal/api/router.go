// Package api exposes the dashboard views over HTTP as JSON.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/practice-dashboard/internal/chain"
	"github.com/sells-group/practice-dashboard/internal/dashboard"
	"github.com/sells-group/practice-dashboard/internal/index"
	"github.com/sells-group/practice-dashboard/internal/model"
	"github.com/sells-group/practice-dashboard/internal/urgency"
)

// Service is the subset of dashboard.Service the handlers call.
type Service interface {
	Attention(ctx context.Context) ([]model.AttentionItem, error)
	Landscape(ctx context.Context) (dashboard.LandscapeView, error)
	Organizations(ctx context.Context) ([]index.OrgConnections, error)
	Organization(ctx context.Context, id string) (dashboard.OrganizationView, error)
	Chain(ctx context.Context, investmentID string) (chain.Chain, error)
	Timeline(ctx context.Context) ([]urgency.Group[model.Decision], error)
	Opportunities(ctx context.Context) ([]urgency.Group[model.Opportunity], error)
	Precedent(ctx context.Context, id string) (dashboard.PrecedentView, error)
}

// Options configures the router middleware.
type Options struct {
	AllowedOrigins []string
	RateLimitRPS   float64
	RateLimitBurst int
	// Timeout bounds each request; zero disables it.
	Timeout time.Duration
	// Ping, when set, backs the health check.
	Ping func(ctx context.Context) error
}

// NewRouter builds the HTTP handler for svc.
func NewRouter(svc Service, opts Options) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	if opts.Timeout > 0 {
		r.Use(middleware.Timeout(opts.Timeout))
	}

	r.Get("/health", handleHealth(opts.Ping))

	r.Route("/api", func(r chi.Router) {
		if opts.RateLimitRPS > 0 {
			r.Use(rateLimit(rate.NewLimiter(rate.Limit(opts.RateLimitRPS), opts.RateLimitBurst)))
		}
		r.Get("/attention", handleAttention(svc))
		r.Get("/landscape", handleLandscape(svc))
		r.Get("/organizations", handleOrganizations(svc))
		r.Get("/organizations/{id}", handleOrganization(svc))
		r.Get("/investments/{id}/chain", handleChain(svc))
		r.Get("/decisions/timeline", handleTimeline(svc))
		r.Get("/opportunities", handleOpportunities(svc))
		r.Get("/precedents/{id}", handlePrecedent(svc))
	})

	return r
}

func handleHealth(ping func(context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ping != nil {
			if err := ping(r.Context()); err != nil {
				zap.L().Warn("api: health check failed", zap.Error(err))
				writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// rateLimit rejects requests once the shared limiter is exhausted.
func rateLimit(lim *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !lim.Allow() {
				httpError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		zap.L().Debug("api: request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}
