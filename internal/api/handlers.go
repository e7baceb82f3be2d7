package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/sells-group/practice-dashboard/internal/dashboard"
	"github.com/sells-group/practice-dashboard/internal/store"
)

func handleAttention(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.Attention(r.Context())
		respond(w, r, items, err)
	}
}

func handleLandscape(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := svc.Landscape(r.Context())
		respond(w, r, view, err)
	}
}

func handleOrganizations(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orgs, err := svc.Organizations(r.Context())
		respond(w, r, orgs, err)
	}
}

func handleOrganization(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := svc.Organization(r.Context(), chi.URLParam(r, "id"))
		respond(w, r, view, err)
	}
}

func handleChain(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := svc.Chain(r.Context(), chi.URLParam(r, "id"))
		respond(w, r, c, err)
	}
}

func handleTimeline(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		groups, err := svc.Timeline(r.Context())
		respond(w, r, groups, err)
	}
}

func handleOpportunities(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		groups, err := svc.Opportunities(r.Context())
		respond(w, r, groups, err)
	}
}

func handlePrecedent(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := svc.Precedent(r.Context(), chi.URLParam(r, "id"))
		respond(w, r, view, err)
	}
}

// respond writes v, or maps err onto a status: unknown ids are 404, store
// failures are 502, anything else is 500.
func respond(w http.ResponseWriter, r *http.Request, v any, err error) {
	if err == nil {
		writeJSON(w, http.StatusOK, v)
		return
	}

	var fetchErr *store.FetchError
	switch {
	case errors.Is(err, dashboard.ErrNotFound):
		httpError(w, http.StatusNotFound, "not found")
	case errors.As(err, &fetchErr):
		zap.L().Error("api: store unavailable",
			zap.String("path", r.URL.Path),
			zap.String("kind", string(fetchErr.Kind)),
			zap.Error(err),
		)
		httpError(w, http.StatusBadGateway, "data store unavailable")
	default:
		zap.L().Error("api: request failed", zap.String("path", r.URL.Path), zap.Error(err))
		httpError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("api: encode response", zap.Error(err))
	}
}

func httpError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
