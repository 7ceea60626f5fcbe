package handlers

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/court-availability-service/internal/http/requestutil"
	"github.com/preston-bernstein/court-availability-service/internal/logging"
)

// CachePurger drops every cached schedule and reports how many were removed.
type CachePurger interface {
	Purge() int
}

// AdminHandler exposes admin-only endpoints (e.g., cache purge).
type AdminHandler struct {
	cache  CachePurger
	token  string
	logger *slog.Logger
}

// NewAdminHandler constructs an AdminHandler.
func NewAdminHandler(cache CachePurger, token string, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		cache:  cache,
		token:  token,
		logger: logger,
	}
}

// PurgeCache empties the schedule cache so the next check refetches every page.
// Guarded by ADMIN_TOKEN; returns 401 if missing/invalid.
func (h *AdminHandler) PurgeCache(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost, h.logger) {
		return
	}
	if !h.authorize(r) {
		logging.Warn(h.logger, "admin unauthorized",
			slog.String(logging.FieldPath, r.URL.Path),
			slog.String("client_ip", requestutil.ClientIP(r)),
		)
		writeError(w, r, http.StatusUnauthorized, "unauthorized", h.logger)
		return
	}
	logger := loggerFromContext(r, h.logger)
	if h.cache == nil {
		writeError(w, r, http.StatusServiceUnavailable, "cache not configured", logger)
		return
	}

	purged := h.cache.Purge()
	logging.Info(logger, "schedule cache purged", slog.Int(logging.FieldCount, purged))
	writeJSON(w, http.StatusOK, map[string]any{
		"purged": purged,
		"status": "ok",
	}, logger)
}

func (h *AdminHandler) authorize(r *http.Request) bool {
	if h.token == "" {
		return false
	}
	got := requestutil.BearerToken(r)
	return subtle.ConstantTimeCompare([]byte(got), []byte(h.token)) == 1
}
