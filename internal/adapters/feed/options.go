// Package feed retrieves play-by-play event streams from the NBA
// liveData endpoint.
package feed

import (
	"net/http"
	"time"

	"github.com/hoopsight/clutch/pkg/logger"
)

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout sets the per-request timeout. It applies to whichever
// HTTP client the Client ends up with, in any option order.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithURLTemplate sets the endpoint template; it must contain one %s
// verb for the game id.
func WithURLTemplate(template string) Option {
	return func(c *Client) {
		if template != "" {
			c.urlTemplate = template
		}
	}
}

// WithMaxAttempts sets the total attempt cap per game.
func WithMaxAttempts(attempts int) Option {
	return func(c *Client) {
		if attempts > 0 {
			c.maxAttempts = attempts
		}
	}
}

// WithBackoff sets the fixed wait between attempts. Zero disables the
// wait, which tests rely on.
func WithBackoff(backoff time.Duration) Option {
	return func(c *Client) {
		if backoff >= 0 {
			c.backoff = backoff
		}
	}
}

// WithHeaders replaces the request header set.
func WithHeaders(headers map[string]string) Option {
	return func(c *Client) {
		if len(headers) > 0 {
			c.headers = headers
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}
