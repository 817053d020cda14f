// Package app provides the collection orchestrator that walks a game
// list, fetches play-by-play, and aggregates the critical windows.
package app

import (
	"context"
	"time"

	"github.com/hoopsight/clutch/internal/domain/model"
	"github.com/hoopsight/clutch/internal/domain/window"
	"github.com/hoopsight/clutch/pkg/logger"
	"github.com/hoopsight/clutch/pkg/metrics"
)

// defaultPacing is the courtesy throttle between processed games. It
// respects the feed's informal rate limits and does not affect output.
const defaultPacing = 300 * time.Millisecond

// Fetcher retrieves raw play-by-play for one game.
type Fetcher interface {
	Fetch(ctx context.Context, gameID string) model.FetchResult
}

// WindowFilter selects the critical subset of a raw event list.
type WindowFilter interface {
	Apply(events []model.RawEvent) window.Result
}

// Summary describes one collection run.
type Summary struct {
	GamesSeen     int // games iterated after the limit cap
	GamesYielding int // games that contributed critical events
	GamesNoData   int // feed answered with zero actions
	GamesFailed   int // every fetch attempt failed
	GamesFiltered int // fetched fine but nothing in the window, or schema unusable
	Events        int // total critical events aggregated
}

// Collector iterates a game list sequentially: each game's fetch runs
// to completion, including its retry loop, before the next game starts.
type Collector struct {
	fetcher Fetcher
	filter  WindowFilter
	pacing  time.Duration
	limit   int
	logger  logger.Logger
}

// Option applies a configuration option to the Collector.
type Option func(*Collector)

// WithLimit caps how many games are processed; 0 means all.
func WithLimit(limit int) Option {
	return func(c *Collector) {
		if limit >= 0 {
			c.limit = limit
		}
	}
}

// WithPacing sets the inter-game delay. Zero disables it.
func WithPacing(pacing time.Duration) Option {
	return func(c *Collector) {
		if pacing >= 0 {
			c.pacing = pacing
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(c *Collector) {
		if l != nil {
			c.logger = l
		}
	}
}

// New constructs a Collector.
func New(fetcher Fetcher, filter WindowFilter, opts ...Option) *Collector {
	c := &Collector{
		fetcher: fetcher,
		filter:  filter,
		pacing:  defaultPacing,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = logger.Get().Named("collector")
	}

	return c
}

// Collect walks the game list in order, up to the limit, and returns the
// concatenation of every game's critical events with per-game metadata
// attached. Empty per-game results are skipped, never fatal; an empty
// aggregate is a valid outcome the caller reports as nothing to persist.
// A canceled context stops the walk and returns the partial aggregate.
func (c *Collector) Collect(ctx context.Context, games []model.GameRef) ([]model.CriticalEvent, Summary) {
	if c.limit > 0 && len(games) > c.limit {
		games = games[:c.limit]
	}

	var (
		aggregate []model.CriticalEvent
		summary   Summary
	)
	summary.GamesSeen = len(games)

	for _, game := range games {
		res := c.fetcher.Fetch(ctx, game.GameID)
		metrics.RecordEventsFetched(len(res.Events))

		if res.Outcome == model.FetchCanceled {
			c.logger.Warn(ctx, "run canceled mid-fetch, stopping",
				logger.String("gameID", game.GameID),
			)
			break
		}

		if res.Empty() {
			metrics.RecordGameSkipped(res.Outcome.String())
			switch res.Outcome {
			case model.FetchExhausted:
				summary.GamesFailed++
				c.logger.Warn(ctx, "giving up on game",
					logger.String("gameID", game.GameID),
					logger.Int("attempts", res.Attempts),
					logger.Error(res.LastErr),
				)
			default:
				summary.GamesNoData++
			}
			continue
		}

		fr := c.filter.Apply(res.Events)
		if fr.Outcome == window.SchemaUnusable {
			c.logger.Warn(ctx, "play-by-play schema unusable",
				logger.String("gameID", game.GameID),
			)
		}
		if fr.ScoresDefaulted {
			c.logger.Warn(ctx, "score fields absent, differential defaulted to 0",
				logger.String("gameID", game.GameID),
			)
		}
		if len(fr.Events) == 0 {
			metrics.RecordGameSkipped(fr.Outcome.String())
			summary.GamesFiltered++
			continue
		}

		for i := range fr.Events {
			fr.Events[i].GameID = game.GameID
			fr.Events[i].GameDate = game.GameDate
			fr.Events[i].Matchup = game.Matchup
		}
		aggregate = append(aggregate, fr.Events...)

		summary.GamesYielding++
		summary.Events += len(fr.Events)
		metrics.RecordGameProcessed()
		metrics.RecordEventsSelected(len(fr.Events))

		c.logger.Debug(ctx, "game collected",
			logger.String("gameID", game.GameID),
			logger.Int("events", len(fr.Events)),
		)

		if !c.pace(ctx) {
			break
		}
	}

	return aggregate, summary
}

// pace sleeps the inter-game delay; false means the context ended.
func (c *Collector) pace(ctx context.Context) bool {
	if c.pacing <= 0 {
		return ctx.Err() == nil
	}
	select {
	case <-time.After(c.pacing):
		return true
	case <-ctx.Done():
		return false
	}
}
