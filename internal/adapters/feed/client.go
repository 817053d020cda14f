// Package feed retrieves play-by-play event streams from the NBA
// liveData endpoint with bounded retry.
package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/hoopsight/clutch/internal/domain/model"
	"github.com/hoopsight/clutch/pkg/logger"
	"github.com/hoopsight/clutch/pkg/metrics"
)

// Default feed configuration constants.
const (
	defaultURLTemplate = "https://cdn.nba.com/static/json/liveData/playbyplay/playbyplay_%s.json"
	defaultTimeout     = 15 * time.Second
	defaultMaxAttempts = 3
	defaultBackoff     = 1 * time.Second
)

// defaultHeaders is the client fingerprint the feed expects; requests
// without it are rejected.
func defaultHeaders() map[string]string {
	return map[string]string{
		"User-Agent": "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) " +
			"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/127.0.0.1 Safari/537.36",
		"Referer":    "https://www.nba.com",
		"Accept":     "application/json, text/plain, */*",
		"Connection": "keep-alive",
	}
}

// playByPlayResponse mirrors the feed's JSON envelope: the action list
// sits under game.actions.
type playByPlayResponse struct {
	Game struct {
		GameID  string           `json:"gameId"`
		Actions []model.RawEvent `json:"actions"`
	} `json:"game"`
}

// Client fetches one game's play-by-play from the feed.
type Client struct {
	httpClient  *http.Client
	timeout     time.Duration
	urlTemplate string
	headers     map[string]string
	maxAttempts int
	backoff     time.Duration
	logger      logger.Logger
}

// New creates a feed client with default configuration.
func New(opts ...Option) *Client {
	c := &Client{
		httpClient:  &http.Client{Timeout: defaultTimeout},
		urlTemplate: defaultURLTemplate,
		headers:     defaultHeaders(),
		maxAttempts: defaultMaxAttempts,
		backoff:     defaultBackoff,
	}

	for _, opt := range opts {
		opt(c)
	}

	// Applied after the options so WithTimeout wins regardless of its
	// order relative to WithHTTPClient.
	if c.timeout > 0 {
		c.httpClient.Timeout = c.timeout
	}

	if c.logger == nil {
		c.logger = logger.Get().Named("feed")
	}

	return c
}

// Fetch retrieves the raw event list for one game.
//
// Transient failures (transport errors, non-2xx responses, undecodable
// bodies) are retried up to the attempt cap with a fixed backoff. No
// error crosses this boundary: on exhaustion the result is empty with
// Outcome FetchExhausted, a response carrying zero actions is empty
// with Outcome FetchNoActions, and a context that ends mid-backoff is
// empty with Outcome FetchCanceled. All are reported, none is fatal.
func (c *Client) Fetch(ctx context.Context, gameID string) model.FetchResult {
	url := fmt.Sprintf(c.urlTemplate, gameID)
	res := model.FetchResult{GameID: gameID}

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		res.Attempts = attempt
		metrics.RecordFetchAttempt()

		events, err := c.attempt(ctx, url)
		if err == nil {
			if len(events) == 0 {
				c.logger.Info(ctx, "no actions in play-by-play",
					logger.String("gameID", gameID),
				)
				res.Outcome = model.FetchNoActions
				return res
			}
			res.Events = events
			res.Outcome = model.FetchOK
			return res
		}

		res.LastErr = err
		c.logger.Warn(ctx, "play-by-play fetch failed",
			logger.String("gameID", gameID),
			logger.Int("attempt", attempt),
			logger.Int("maxAttempts", c.maxAttempts),
			logger.Error(err),
		)

		if attempt == c.maxAttempts {
			break
		}
		metrics.RecordFetchRetry()
		select {
		case <-time.After(c.backoff):
		case <-ctx.Done():
			res.LastErr = ctx.Err()
			res.Outcome = model.FetchCanceled
			return res
		}
	}

	res.Outcome = model.FetchExhausted
	metrics.RecordFetchExhausted()
	return res
}

// attempt performs a single request against the feed.
func (c *Client) attempt(ctx context.Context, url string) ([]model.RawEvent, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build feed request: %w", err)
	}
	for key, val := range c.headers {
		req.Header.Set(key, val)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.RecordFetchLatency(time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("feed request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%w: status %d", ErrBadStatus, resp.StatusCode)
	}

	var payload playByPlayResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}

	return payload.Game.Actions, nil
}
