package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/UnknownOlympus/meteogrid/internal/models"
	"golang.org/x/time/rate"
)

// HTTPClient defines the interface for making HTTP requests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Common errors for the weather client.
var (
	ErrEmptyForecast    = errors.New("weather service returned no forecast slots")
	ErrUnexpectedStatus = errors.New("weather service returned unexpected status")
)

// Client queries the weather data service for the forecast of a grid cell.
type Client struct {
	client  HTTPClient
	baseURL string
	limiter *rate.Limiter
	log     *slog.Logger
}

// NewClient creates a client for baseURL. A rateLimit of zero disables limiting.
func NewClient(baseURL string, timeout time.Duration, rateLimit int, log *slog.Logger) *Client {
	limit := rate.Inf
	if rateLimit > 0 {
		limit = rate.Limit(rateLimit)
	}

	return NewClientWithHTTP(
		&http.Client{Timeout: timeout},
		baseURL,
		rate.NewLimiter(limit, max(rateLimit, 1)),
		log,
	)
}

// NewClientWithHTTP allows injecting a custom HTTP client and limiter.
func NewClientWithHTTP(client HTTPClient, baseURL string, limiter *rate.Limiter, log *slog.Logger) *Client {
	return &Client{
		client:  client,
		baseURL: baseURL,
		limiter: limiter,
		log:     log,
	}
}

// Forecast fetches the forecast for cell with GET <baseURL>?x=<X>&y=<Y>.
func (c *Client) Forecast(ctx context.Context, cell models.GridCoordinate) (*Report, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit exceeded: %w", err)
	}

	reqURL, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	query := reqURL.Query()
	query.Set("x", strconv.Itoa(cell.X))
	query.Set("y", strconv.Itoa(cell.Y))
	reqURL.RawQuery = query.Encode()

	c.log.DebugContext(ctx, "Requesting forecast", "url", reqURL.String())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute forecast request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.log.ErrorContext(ctx, "Weather service error", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("%w: %d: %s", ErrUnexpectedStatus, resp.StatusCode, string(body))
	}

	var report Report
	if err = json.NewDecoder(resp.Body).Decode(&report); err != nil {
		return nil, fmt.Errorf("failed to decode forecast response: %w", err)
	}

	if len(report.Data.Slots) == 0 {
		return nil, ErrEmptyForecast
	}

	c.log.DebugContext(ctx, "Forecast received",
		"region", report.Data.RegionFullName, "base_date", report.Data.BaseDate, "slots", len(report.Data.Slots))

	return &report, nil
}
