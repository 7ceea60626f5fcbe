package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	nethttp "net/http"
	"strconv"
	"strings"
	"time"

	"github.com/preston-bernstein/court-availability-service/internal/domain"
	"github.com/preston-bernstein/court-availability-service/internal/logging"
	"github.com/preston-bernstein/court-availability-service/internal/poller"
	"github.com/preston-bernstein/court-availability-service/internal/providers"
	"github.com/preston-bernstein/court-availability-service/internal/store"
	"github.com/preston-bernstein/court-availability-service/internal/timeutil"
)

const msgUpstreamUnreadable = "upstream page unreadable"

// AvailabilityChecker answers a single court request.
type AvailabilityChecker interface {
	Check(ctx context.Context, req domain.CourtRequest) ([]domain.DateRange, error)
}

// ResultReader exposes the latest watch results.
type ResultReader interface {
	List() []store.WatchResult
	Get(id string) (store.WatchResult, bool)
}

// Handler wires HTTP routes to the checker, the fetcher stack, and the watch results.
type Handler struct {
	checker  AvailabilityChecker
	fetcher  providers.ScheduleFetcher
	results  ResultReader
	loc      *time.Location
	logger   *slog.Logger
	statusFn func() poller.Status
}

// NewHandler constructs a Handler. Dates in queries are read in loc (UTC when nil).
func NewHandler(check AvailabilityChecker, fetcher providers.ScheduleFetcher, results ResultReader, loc *time.Location, logger *slog.Logger, statusFn func() poller.Status) *Handler {
	if loc == nil {
		loc = time.UTC
	}
	return &Handler{
		checker:  check,
		fetcher:  fetcher,
		results:  results,
		loc:      loc,
		logger:   logger,
		statusFn: statusFn,
	}
}

// AvailabilityResponse is the body of GET /availability.
type AvailabilityResponse struct {
	Court     int                `json:"court"`
	Page      int                `json:"page"`
	Window    domain.DateRange   `json:"window"`
	Intervals []domain.DateRange `json:"intervals"`
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic (e.g., for Kubernetes probes).
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	if h.statusFn == nil {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	status := h.statusFn()
	if status.IsReady() {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, nethttp.StatusServiceUnavailable, msg, h.logger)
}

// Availability runs one court request and returns the qualifying free runs.
func (h *Handler) Availability(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	logger := loggerFromContext(r, h.logger)
	if h.checker == nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "checker not configured", logger)
		return
	}

	req, err := h.parseCourtRequest(r)
	if err != nil {
		logging.Warn(logger, "availability bad request", slog.Any("err", err))
		writeError(w, r, nethttp.StatusBadRequest, err.Error(), logger)
		return
	}

	intervals, err := h.checker.Check(r.Context(), req)
	if err != nil {
		h.writeUpstreamError(w, r, err, logger)
		return
	}
	if intervals == nil {
		intervals = []domain.DateRange{}
	}

	logging.Info(logger, "served availability",
		slog.Int(logging.FieldCourt, req.Court.ID),
		slog.String(logging.FieldDate, timeutil.FormatDate(req.DateRange.Start)),
		slog.Int(logging.FieldCount, len(intervals)),
	)
	writeJSON(w, nethttp.StatusOK, AvailabilityResponse{
		Court:     req.Court.ID,
		Page:      req.Court.Page(),
		Window:    req.DateRange,
		Intervals: intervals,
	}, logger)
}

// Schedule returns one parsed grid page, warnings included.
func (h *Handler) Schedule(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	logger := loggerFromContext(r, h.logger)
	if h.fetcher == nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "provider not configured", logger)
		return
	}

	q := r.URL.Query()
	date, err := timeutil.ParseDateIn(strings.TrimSpace(q.Get("date")), h.loc)
	if err != nil {
		writeError(w, r, nethttp.StatusBadRequest, "invalid date format (expected YYYY-MM-DD)", logger)
		return
	}
	page := 0
	if raw := strings.TrimSpace(q.Get("page")); raw != "" {
		page, err = strconv.Atoi(raw)
		if err != nil || page < 0 {
			writeError(w, r, nethttp.StatusBadRequest, "invalid page", logger)
			return
		}
	}

	schedule, err := h.fetcher.FetchSchedule(r.Context(), date, page)
	if err != nil {
		h.writeUpstreamError(w, r, err, logger)
		return
	}
	if len(schedule.Warnings) > 0 {
		logging.Warn(logger, "schedule has parse warnings",
			slog.String(logging.FieldDate, timeutil.FormatDate(date)),
			slog.Int(logging.FieldPage, page),
			slog.Int(logging.FieldCount, len(schedule.Warnings)),
		)
	}
	writeJSON(w, nethttp.StatusOK, schedule, logger)
}

// Watches lists the latest result of every watch.
func (h *Handler) Watches(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	results := []store.WatchResult{}
	if h.results != nil {
		results = append(results, h.results.List()...)
	}
	writeJSON(w, nethttp.StatusOK, map[string]any{"watches": results}, h.logger)
}

// WatchByID returns the latest result of one watch.
func (h *Handler) WatchByID(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		writeError(w, r, nethttp.StatusBadRequest, "watch id required", h.logger)
		return
	}
	if h.results == nil {
		writeError(w, r, nethttp.StatusNotFound, "watch not found", h.logger)
		return
	}
	result, ok := h.results.Get(id)
	if !ok {
		writeError(w, r, nethttp.StatusNotFound, "watch not found", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, result, h.logger)
}

func (h *Handler) writeUpstreamError(w nethttp.ResponseWriter, r *nethttp.Request, err error, logger *slog.Logger) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		writeError(w, r, nethttp.StatusBadRequest, err.Error(), logger)
	case errors.Is(err, providers.ErrProviderUnavailable):
		writeError(w, r, nethttp.StatusServiceUnavailable, "provider unavailable", logger)
	case isParseError(err):
		logging.Error(logger, "upstream page unreadable", err)
		writeError(w, r, nethttp.StatusBadGateway, msgUpstreamUnreadable, logger)
	case isFetchError(err):
		logging.Warn(logger, "upstream fetch failed", slog.Any("err", err))
		writeError(w, r, nethttp.StatusBadGateway, "upstream fetch failed", logger)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeError(w, r, nethttp.StatusGatewayTimeout, "request timed out", logger)
	default:
		logging.Error(logger, "availability check failed", err)
		writeError(w, r, nethttp.StatusInternalServerError, "internal error", logger)
	}
}

func isParseError(err error) bool {
	_, ok := providers.AsParseError(err)
	return ok
}

func isFetchError(err error) bool {
	_, ok := providers.AsFetchError(err)
	return ok
}

// parseCourtRequest reads court, date, start, end, duration, step, and non_overlapping.
// start defaults to 00:00 and end to the following midnight.
func (h *Handler) parseCourtRequest(r *nethttp.Request) (domain.CourtRequest, error) {
	q := r.URL.Query()

	courtID, err := strconv.Atoi(strings.TrimSpace(q.Get("court")))
	if err != nil {
		return domain.CourtRequest{}, errors.New("invalid court (expected a positive integer)")
	}
	day, err := timeutil.ParseDateIn(strings.TrimSpace(q.Get("date")), h.loc)
	if err != nil {
		return domain.CourtRequest{}, errors.New("invalid date format (expected YYYY-MM-DD)")
	}

	start := day
	if raw := q.Get("start"); raw != "" {
		if start, err = timeutil.ParseClock(raw, day); err != nil {
			return domain.CourtRequest{}, errors.New("invalid start (expected HH:MM)")
		}
	}
	end := day.AddDate(0, 0, 1)
	if raw := q.Get("end"); raw != "" {
		if end, err = timeutil.ParseClock(raw, day); err != nil {
			return domain.CourtRequest{}, errors.New("invalid end (expected HH:MM)")
		}
	}

	window := domain.NewDateRange(start, end)
	if raw := q.Get("step"); raw != "" {
		step, err := time.ParseDuration(raw)
		if err != nil {
			return domain.CourtRequest{}, fmt.Errorf("invalid step %q", raw)
		}
		window = window.WithStep(step)
	}

	req := domain.NewCourtRequest(window, domain.Court{ID: courtID})
	if raw := q.Get("duration"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return domain.CourtRequest{}, fmt.Errorf("invalid duration %q", raw)
		}
		req.RequiredInterval = d
	}
	if raw := q.Get("non_overlapping"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return domain.CourtRequest{}, fmt.Errorf("invalid non_overlapping %q", raw)
		}
		req.NonOverlapping = v
	}

	if err := req.Validate(); err != nil {
		return domain.CourtRequest{}, err
	}
	return req, nil
}
