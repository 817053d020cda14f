// Package window selects play-by-play actions inside the critical window:
// the last stretch of the final regulation period plus all of overtime.
package window

import (
	"github.com/hoopsight/clutch/internal/domain/clock"
	"github.com/hoopsight/clutch/internal/domain/model"
)

// Default window boundaries.
const (
	defaultWindowSeconds    = 180
	defaultRegulationPeriod = 4
)

// Outcome explains what the filter produced.
type Outcome int

const (
	// OK means the input was usable and the window predicate was applied.
	OK Outcome = iota

	// NoInput means the raw event list was empty.
	NoInput

	// SchemaUnusable means no record carried a period or no record
	// carried a clock, so the feed schema cannot be windowed.
	SchemaUnusable
)

// String returns a short label for logging and metrics.
func (o Outcome) String() string {
	switch o {
	case OK:
		return "ok"
	case NoInput:
		return "no_input"
	case SchemaUnusable:
		return "schema_unusable"
	default:
		return "unknown"
	}
}

// Result carries the selected events plus degradation signals.
type Result struct {
	Events  []model.CriticalEvent
	Outcome Outcome

	// ScoresDefaulted is set when no record carried either score field,
	// in which case every score differential defaulted to 0.
	ScoresDefaulted bool
}

// Filter applies the critical-window predicate to raw play-by-play.
type Filter struct {
	windowSeconds    int
	regulationPeriod int
}

// New creates a Filter with default window boundaries.
func New(opts ...Option) *Filter {
	f := &Filter{
		windowSeconds:    defaultWindowSeconds,
		regulationPeriod: defaultRegulationPeriod,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Apply computes time-remaining and score-differential for each record
// and selects those inside the critical window, preserving input order.
//
// Selection rule: period == regulationPeriod with time remaining at or
// below the window length (boundary inclusive), or any later period.
// Overtime periods are included whole; the source applies no analogous
// truncation there, and that asymmetry is kept as-is.
func (f *Filter) Apply(events []model.RawEvent) Result {
	if len(events) == 0 {
		return Result{Outcome: NoInput}
	}

	var hasPeriod, hasClock, hasScores bool
	for _, e := range events {
		if e.Period != nil {
			hasPeriod = true
		}
		if e.Clock != nil {
			hasClock = true
		}
		if e.HomeScore != nil || e.AwayScore != nil {
			hasScores = true
		}
	}
	if !hasPeriod || !hasClock {
		return Result{Outcome: SchemaUnusable}
	}

	var selected []model.CriticalEvent
	for _, e := range events {
		remaining := clock.Parse(e.ClockValue())
		period := e.PeriodValue()

		inWindow := (period == f.regulationPeriod && remaining <= f.windowSeconds) ||
			period > f.regulationPeriod
		if !inWindow {
			continue
		}

		selected = append(selected, model.CriticalEvent{
			RawEvent:             e,
			TimeRemainingSeconds: remaining,
			ScoreDifferential:    e.ScoreDiff(),
		})
	}

	return Result{
		Events:          selected,
		Outcome:         OK,
		ScoresDefaulted: !hasScores,
	}
}
