package http

import (
	nethttp "net/http"

	"github.com/preston-bernstein/court-availability-service/internal/http/handlers"
)

// NewRouter registers HTTP routes on a ServeMux. admin may be nil.
func NewRouter(handler *handlers.Handler, admin *handlers.AdminHandler) nethttp.Handler {
	mux := nethttp.NewServeMux()
	mux.HandleFunc("/health", handler.Health)
	mux.HandleFunc("/ready", handler.Ready)
	mux.HandleFunc("/availability", handler.Availability)
	mux.HandleFunc("/schedule", handler.Schedule)
	mux.HandleFunc("/watches", handler.Watches)
	mux.HandleFunc("/watches/{id}", handler.WatchByID)
	if admin != nil {
		mux.HandleFunc("/admin/cache/purge", admin.PurgeCache)
	}
	return mux
}
