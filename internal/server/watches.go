package server

import (
	"log/slog"

	"github.com/preston-bernstein/court-availability-service/internal/watch"
)

// loadWatches reads the watch list file. A missing path means no watches; a bad file is logged and skipped.
func loadWatches(path string, logger *slog.Logger) []watch.Entry {
	if path == "" {
		return nil
	}
	entries, err := watch.LoadFile(path)
	if err != nil {
		if logger != nil {
			logger.Error("failed to load watches, polling nothing", slog.String("path", path), slog.Any("err", err))
		}
		return nil
	}
	if logger != nil {
		logger.Info("watches loaded", slog.String("path", path), slog.Int("count", len(entries)))
	}
	return entries
}
