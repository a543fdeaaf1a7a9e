package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Williamsdg/sportspredictions/internal/metrics"
	"github.com/Williamsdg/sportspredictions/internal/models"

	"github.com/rs/zerolog/log"
)

// ErrUpstream marks every failure to obtain a usable scoreboard: transport
// errors, non-2xx responses and malformed bodies.
var ErrUpstream = errors.New("scoreboard upstream unavailable")

// Scoreboard endpoint families, also used as metric labels
const (
	endpointFootball   = "scoreboard_football"
	endpointBasketball = "scoreboard_basketball"
	endpointSchedule   = "schedule_basketball"
)

// Cache is the read-through store consulted before the network
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Client is the NCAA scoreboard API client
type Client struct {
	baseURL     string
	httpClient  *http.Client
	rateLimiter chan struct{} // Concurrency semaphore
	maxRetries  int
	retryDelay  time.Duration

	cache         Cache
	scoreboardTTL time.Duration
	scheduleTTL   time.Duration
}

// NewClient creates a scoreboard client. maxRetries of zero disables retry;
// maxConcurrent bounds in-flight requests.
func NewClient(baseURL string, timeout time.Duration, maxRetries, maxConcurrent int) *Client {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	rateLimiter := make(chan struct{}, maxConcurrent)
	for i := 0; i < maxConcurrent; i++ {
		rateLimiter <- struct{}{}
	}

	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		rateLimiter: rateLimiter,
		maxRetries:  maxRetries,
		retryDelay:  1 * time.Second,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// WithCache enables the read-through cache
func (c *Client) WithCache(cache Cache, scoreboardTTL, scheduleTTL time.Duration) *Client {
	c.cache = cache
	c.scoreboardTTL = scoreboardTTL
	c.scheduleTTL = scheduleTTL
	return c
}

// ScoreboardPath returns the request path for one sync unit
func ScoreboardPath(sport string, unit models.SyncUnit) (string, error) {
	if err := unit.Validate(sport); err != nil {
		return "", err
	}
	switch sport {
	case models.SportFootball:
		conf := unit.Conference
		if conf == "" {
			conf = models.DefaultConference
		}
		return fmt.Sprintf("/scoreboard/football/fbs/%d/%d/%s", unit.Year, unit.Week, conf), nil
	default:
		return fmt.Sprintf("/scoreboard/basketball-men/d1/%04d/%02d/%02d",
			unit.Date.Year(), int(unit.Date.Month()), unit.Date.Day()), nil
	}
}

// FetchScoreboard fetches the raw game records for one unit. An empty games
// list is a successful result; any failure wraps ErrUpstream.
func (c *Client) FetchScoreboard(ctx context.Context, sport string, unit models.SyncUnit) (*models.Scoreboard, error) {
	path, err := ScoreboardPath(sport, unit)
	if err != nil {
		return nil, err
	}

	endpoint := endpointBasketball
	if sport == models.SportFootball {
		endpoint = endpointFootball
	}

	var sb models.Scoreboard
	if err := c.get(ctx, endpoint, path, c.scoreboardTTL, &sb); err != nil {
		return nil, fmt.Errorf("failed to fetch %s scoreboard for %s: %w", sport, unit.Label(), err)
	}

	return &sb, nil
}

// FetchBasketballSchedule fetches the dates with games for one month
func (c *Client) FetchBasketballSchedule(ctx context.Context, year int, month time.Month) (*models.Schedule, error) {
	path := fmt.Sprintf("/schedule/basketball-men/d1/%04d/%02d", year, int(month))

	var schedule models.Schedule
	if err := c.get(ctx, endpointSchedule, path, c.scheduleTTL, &schedule); err != nil {
		return nil, fmt.Errorf("failed to fetch basketball schedule for %04d-%02d: %w", year, int(month), err)
	}

	return &schedule, nil
}

// get performs a GET against the scoreboard API and decodes the body into v.
// It applies optional retry, the concurrency semaphore and the read-through
// cache; only bodies that decode are cached.
func (c *Client) get(ctx context.Context, endpoint, path string, ttl time.Duration, v any) error {
	if body, ok := c.cached(ctx, path); ok {
		if err := json.Unmarshal(body, v); err == nil {
			return nil
		}
		log.Warn().Str("key", path).Msg("Ignoring undecodable cached response")
	}

	url := c.baseURL + path

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			// Exponential backoff: 1s, 2s, 4s
			backoff := c.retryDelay * time.Duration(1<<uint(attempt-1))
			log.Info().
				Str("url", url).
				Int("attempt", attempt).
				Dur("backoff", backoff).
				Msg("Retrying scoreboard request after backoff")

			select {
			case <-ctx.Done():
				return fmt.Errorf("%w: %v", ErrUpstream, ctx.Err())
			case <-time.After(backoff):
			}
		}

		body, retryable, err := c.do(ctx, endpoint, url)
		if err == nil {
			if err := json.Unmarshal(body, v); err != nil {
				metrics.RecordError("client", "decode")
				return fmt.Errorf("failed to decode %s: %w: %v", path, ErrUpstream, err)
			}
			c.store(ctx, path, body, ttl)
			return nil
		}
		lastErr = err
		if !retryable {
			break
		}
	}

	return lastErr
}

// do performs one attempt and reports whether a failure may be retried
func (c *Client) do(ctx context.Context, endpoint, url string) ([]byte, bool, error) {
	select {
	case <-ctx.Done():
		return nil, false, fmt.Errorf("%w: %v", ErrUpstream, ctx.Err())
	case <-c.rateLimiter:
	}
	defer func() { c.rateLimiter <- struct{}{} }()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "sportspredictions-sync/1.0")

	log.Debug().
		Str("url", url).
		Str("method", req.Method).
		Msg("Making scoreboard request")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RecordAPICall(endpoint, "error", time.Since(start).Seconds())
		return nil, ctx.Err() == nil, fmt.Errorf("%w: request failed: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	metrics.RecordAPICall(endpoint, fmt.Sprintf("%d", resp.StatusCode), time.Since(start).Seconds())
	if err != nil {
		return nil, true, fmt.Errorf("%w: failed to read response body: %v", ErrUpstream, err)
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		log.Debug().
			Str("url", url).
			Int("status", resp.StatusCode).
			Int("size", len(body)).
			Msg("Scoreboard request successful")
		return body, false, nil

	case resp.StatusCode == http.StatusTooManyRequests,
		resp.StatusCode == http.StatusServiceUnavailable,
		resp.StatusCode == http.StatusGatewayTimeout:
		log.Warn().
			Str("url", url).
			Int("status", resp.StatusCode).
			Msg("Received retryable status from scoreboard API")
		return nil, true, fmt.Errorf("%w: retryable status %d", ErrUpstream, resp.StatusCode)

	default:
		return nil, false, fmt.Errorf("%w: status %d: %s", ErrUpstream, resp.StatusCode, truncate(body, 200))
	}
}

func (c *Client) cached(ctx context.Context, key string) ([]byte, bool) {
	if c.cache == nil {
		return nil, false
	}
	start := time.Now()
	body, err := c.cache.Get(ctx, key)
	metrics.RecordCacheOperation("get", time.Since(start).Seconds())
	if err != nil || len(body) == 0 {
		metrics.RecordCacheMiss()
		return nil, false
	}
	metrics.RecordCacheHit()
	return body, true
}

func (c *Client) store(ctx context.Context, key string, body []byte, ttl time.Duration) {
	if c.cache == nil || ttl <= 0 {
		return
	}
	start := time.Now()
	if err := c.cache.Set(ctx, key, body, ttl); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Failed to cache scoreboard response")
	}
	metrics.RecordCacheOperation("set", time.Since(start).Seconds())
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
