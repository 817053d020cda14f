// Package gameindex discovers game ids for a season from the NBA stats
// leaguegamefinder endpoint.
package gameindex

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/hoopsight/clutch/internal/domain/model"
	"github.com/hoopsight/clutch/pkg/logger"
)

// Default index configuration constants.
const (
	defaultURLTemplate = "https://stats.nba.com/stats/leaguegamefinder?LeagueID=00&SeasonType=Regular+Season&Season=%s"
	defaultTimeout     = 30 * time.Second
	defaultMaxAttempts = 3
	defaultBackoff     = 1 * time.Second
)

// Column names the index must expose.
const (
	colGameID   = "GAME_ID"
	colGameDate = "GAME_DATE"
	colMatchup  = "MATCHUP"
)

// defaultHeaders is the fingerprint stats.nba.com expects.
func defaultHeaders() map[string]string {
	return map[string]string{
		"User-Agent": "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) " +
			"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/127.0.0.1 Safari/537.36",
		"Referer":            "https://www.nba.com",
		"Accept":             "application/json, text/plain, */*",
		"Connection":         "keep-alive",
		"x-nba-stats-origin": "stats",
		"x-nba-stats-token":  "true",
	}
}

// indexResponse mirrors the stats endpoint's tabular envelope.
type indexResponse struct {
	ResultSets []struct {
		Name    string   `json:"name"`
		Headers []string `json:"headers"`
		RowSet  [][]any  `json:"rowSet"`
	} `json:"resultSets"`
}

// Client lists games per season from the index endpoint.
type Client struct {
	httpClient  *http.Client
	timeout     time.Duration
	urlTemplate string
	headers     map[string]string
	maxAttempts int
	backoff     time.Duration
	logger      logger.Logger
}

// New creates an index client with default configuration.
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
		c.logger = logger.Get().Named("gameindex")
	}

	return c
}

// Games lists the unique games for the given seasons, in index order.
//
// A season that keeps failing is logged and skipped; duplicate game ids
// across responses are dropped. An error is returned only when every
// season failed and nothing was collected.
func (c *Client) Games(ctx context.Context, seasons []string) ([]model.GameRef, error) {
	var (
		refs    []model.GameRef
		seen    = make(map[string]struct{})
		lastErr error
	)

	for _, season := range seasons {
		rows, err := c.season(ctx, season)
		if err != nil {
			lastErr = err
			c.logger.Warn(ctx, "season lookup failed",
				logger.String("season", season),
				logger.Error(err),
			)
			continue
		}

		added := 0
		for _, ref := range rows {
			if _, dup := seen[ref.GameID]; dup {
				continue
			}
			seen[ref.GameID] = struct{}{}
			refs = append(refs, ref)
			added++
		}

		c.logger.Info(ctx, "season indexed",
			logger.String("season", season),
			logger.Int("games", added),
		)
	}

	if len(refs) == 0 && lastErr != nil {
		return nil, fmt.Errorf("game index: %w", lastErr)
	}
	return refs, nil
}

// season fetches one season's rows with bounded retry.
func (c *Client) season(ctx context.Context, season string) ([]model.GameRef, error) {
	url := fmt.Sprintf(c.urlTemplate, season)

	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		rows, err := c.attempt(ctx, url)
		if err == nil {
			return rows, nil
		}
		lastErr = err

		if attempt == c.maxAttempts {
			break
		}
		select {
		case <-time.After(c.backoff):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return nil, lastErr
}

// attempt performs a single index request and decodes its row set.
func (c *Client) attempt(ctx context.Context, url string) ([]model.GameRef, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build index request: %w", err)
	}
	for key, val := range c.headers {
		req.Header.Set(key, val)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("index request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%w: status %d", ErrBadStatus, resp.StatusCode)
	}

	var payload indexResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode index body: %w", err)
	}

	return decodeRows(payload)
}

// decodeRows turns the header/rowSet table into GameRef records.
func decodeRows(payload indexResponse) ([]model.GameRef, error) {
	if len(payload.ResultSets) == 0 {
		return nil, ErrNoResultSets
	}
	set := payload.ResultSets[0]

	idx := map[string]int{colGameID: -1, colGameDate: -1, colMatchup: -1}
	for i, h := range set.Headers {
		if _, wanted := idx[h]; wanted {
			idx[h] = i
		}
	}
	for col, i := range idx {
		if i < 0 {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}

	refs := make([]model.GameRef, 0, len(set.RowSet))
	for _, row := range set.RowSet {
		ref := model.GameRef{
			GameID:   stringCell(row, idx[colGameID]),
			GameDate: stringCell(row, idx[colGameDate]),
			Matchup:  stringCell(row, idx[colMatchup]),
		}
		if ref.GameID == "" {
			continue
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

// stringCell reads a row cell as a string, tolerating short rows and
// non-string values.
func stringCell(row []any, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	s, _ := row[i].(string)
	return s
}
