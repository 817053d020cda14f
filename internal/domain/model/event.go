// Package model contains domain records passed between layers.
package model

// GameRef identifies one game as reported by the game index.
type GameRef struct {
	GameID   string `json:"gameId"`
	GameDate string `json:"gameDate"`
	Matchup  string `json:"matchup"`
}

// RawEvent is one play-by-play action as decoded from the feed.
//
// The feed is not schema-guaranteed: period, clock, and the two score
// fields may be absent on any record. Absent fields stay nil so the
// window filter can tell "missing" apart from a real zero.
type RawEvent struct {
	ActionNumber int     `json:"actionNumber"`
	Period       *int    `json:"period"`
	Clock        *string `json:"clock"`
	HomeScore    *int    `json:"homeScore"`
	AwayScore    *int    `json:"awayScore"`
	TeamTricode  string  `json:"teamTricode"`
	ActionType   string  `json:"actionType"`
	SubType      string  `json:"subType"`
	ShotType     string  `json:"shotType"`
	ShotResult   string  `json:"shotResult"`
	Description  string  `json:"description"`
}

// PeriodValue returns the period, or 0 when the feed omitted it.
func (e RawEvent) PeriodValue() int {
	if e.Period == nil {
		return 0
	}
	return *e.Period
}

// ClockValue returns the raw clock string, or "" when the feed omitted it.
func (e RawEvent) ClockValue() string {
	if e.Clock == nil {
		return ""
	}
	return *e.Clock
}

// ScoreDiff returns home minus away, with absent scores treated as 0.
func (e RawEvent) ScoreDiff() int {
	var home, away int
	if e.HomeScore != nil {
		home = *e.HomeScore
	}
	if e.AwayScore != nil {
		away = *e.AwayScore
	}
	return home - away
}

// CriticalEvent is a RawEvent that fell inside the critical window,
// extended with derived fields and per-game metadata.
type CriticalEvent struct {
	RawEvent

	TimeRemainingSeconds int    `json:"timeRemainingSeconds"`
	ScoreDifferential    int    `json:"scoreDiff"`
	GameID               string `json:"gameId"`
	GameDate             string `json:"gameDate"`
	Matchup              string `json:"matchup"`
}

// FetchOutcome explains why a fetch returned the events it did.
type FetchOutcome int

const (
	// FetchOK means the feed answered with at least one action.
	FetchOK FetchOutcome = iota

	// FetchNoActions means the feed answered but carried zero actions.
	FetchNoActions

	// FetchExhausted means every attempt failed.
	FetchExhausted

	// FetchCanceled means the run's context ended before the attempt
	// cap was reached.
	FetchCanceled
)

// String returns a short label for logging and metrics.
func (o FetchOutcome) String() string {
	switch o {
	case FetchOK:
		return "ok"
	case FetchNoActions:
		return "no_actions"
	case FetchExhausted:
		return "exhausted"
	case FetchCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// FetchResult is the outcome of fetching one game's play-by-play.
//
// A fetch never fails with an error: transient feed trouble degrades to
// an empty event list, and Outcome records why the list is empty so
// callers and tests can tell "no data" apart from "retries exhausted".
type FetchResult struct {
	GameID   string
	Events   []RawEvent
	Outcome  FetchOutcome
	Attempts int
	LastErr  error
}

// Empty reports whether the fetch yielded no usable events.
func (r FetchResult) Empty() bool {
	return len(r.Events) == 0
}
