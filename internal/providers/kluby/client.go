package kluby

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/preston-bernstein/court-availability-service/internal/domain"
	"github.com/preston-bernstein/court-availability-service/internal/logging"
	"github.com/preston-bernstein/court-availability-service/internal/providers"
	"github.com/preston-bernstein/court-availability-service/internal/timeutil"
)

// Config controls how the client reaches the venue's booking grid.
type Config struct {
	BaseURL    string
	Club       string
	HTTPClient *http.Client
	Timeout    time.Duration
	Logger     *slog.Logger
}

// Client fetches one page of a day's booking grid and parses it into a schedule.
type Client struct {
	baseURL    string
	club       string
	httpClient httpDoer
	timeout    time.Duration
	logger     *slog.Logger
}

var _ providers.ScheduleFetcher = (*Client)(nil)

// NewClient constructs a grid client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		club:       resolveClub(cfg.Club),
		httpClient: resolveHTTPClient(cfg.HTTPClient, cfg.Timeout),
		timeout:    resolveTimeout(cfg.Timeout),
		logger:     cfg.Logger,
	}
}

// FetchSchedule downloads and parses the grid for date's calendar day and page.
func (c *Client) FetchSchedule(ctx context.Context, date time.Time, page int) (domain.CourtSchedule, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	target := c.scheduleURL(date, page)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return domain.CourtSchedule{}, &providers.FetchError{Provider: ProviderName, URL: target, Err: err}
	}
	req.Header.Set("Accept", "text/html")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.CourtSchedule{}, &providers.FetchError{
			Provider: ProviderName,
			URL:      target,
			Timeout:  isTimeout(err),
			Err:      err,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		fe := &providers.FetchError{Provider: ProviderName, URL: target, StatusCode: resp.StatusCode}
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if msg := strings.TrimSpace(string(body)); msg != "" {
			fe.Err = errors.New(msg)
		}
		return domain.CourtSchedule{}, fe
	}

	g, err := parseGrid(resp.Body, date, domain.CourtsPerPage)
	if err != nil {
		if isTimeout(err) {
			return domain.CourtSchedule{}, &providers.FetchError{Provider: ProviderName, URL: target, Timeout: true, Err: err}
		}
		return domain.CourtSchedule{}, err
	}

	if logger := logging.FromContext(ctx, c.logger); logger != nil && logger.Enabled(ctx, slog.LevelDebug) {
		logger.DebugContext(ctx, "availability grid",
			slog.String(logging.FieldProvider, ProviderName),
			slog.String(logging.FieldDate, timeutil.FormatDate(date)),
			slog.Int(logging.FieldPage, page),
			slog.Int(logging.FieldCount, len(g.cells)),
			slog.String("grid", g.render()),
		)
	}

	return g.schedule(date, page), nil
}

func (c *Client) scheduleURL(date time.Time, page int) string {
	q := url.Values{}
	q.Set("data_grafiku", timeutil.FormatDate(date))
	q.Set("dyscyplina", strconv.Itoa(disciplineTennis))
	q.Set("strona", strconv.Itoa(page))
	return c.baseURL + "/klub/" + url.PathEscape(c.club) + "/dedykowane/grafik?" + q.Encode()
}
