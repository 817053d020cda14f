// Package config defines collector configuration and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load(ctx) layers an optional YAML file and env vars on top.
// - External errors are wrapped via this package's error helpers.
package config

// Config contains process configuration for a collection run.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Seasons lists the NBA seasons to index, e.g. "2023-24".
	Seasons []string `koanf:"seasons"`

	// GameLimit caps how many games are processed per run; 0 means all.
	GameLimit int `koanf:"game_limit"`

	// FeedURLTemplate is the play-by-play endpoint with one %s for the game id.
	FeedURLTemplate string `koanf:"feed_url_template"`

	// IndexURLTemplate is the game-index endpoint with one %s for the season.
	IndexURLTemplate string `koanf:"index_url_template"`

	// FetchTimeoutSec bounds each feed request.
	FetchTimeoutSec int `koanf:"fetch_timeout_sec"`

	// MaxAttempts is the total attempt cap per game.
	MaxAttempts int `koanf:"max_attempts"`

	// RetryBackoffMS is the fixed wait between feed attempts.
	RetryBackoffMS int `koanf:"retry_backoff_ms"`

	// PacingMS is the courtesy delay between processed games.
	PacingMS int `koanf:"pacing_ms"`

	// WindowSeconds is the critical-window length in the final
	// regulation period.
	WindowSeconds int `koanf:"window_seconds"`

	// RegulationPeriod is the final regulation period number.
	RegulationPeriod int `koanf:"regulation_period"`

	// SnapshotDir receives the CSV snapshots.
	SnapshotDir string `koanf:"snapshot_dir"`

	// ArchivePath locates the SQLite archive.
	ArchivePath string `koanf:"archive_path"`

	// MetricsAddr exposes /metrics during the run; empty disables it.
	MetricsAddr string `koanf:"metrics_addr"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		Seasons:          []string{"2020-21", "2021-22", "2022-23", "2023-24"},
		GameLimit:        100,
		FeedURLTemplate:  "https://cdn.nba.com/static/json/liveData/playbyplay/playbyplay_%s.json",
		IndexURLTemplate: "https://stats.nba.com/stats/leaguegamefinder?LeagueID=00&SeasonType=Regular+Season&Season=%s",
		FetchTimeoutSec:  15,
		MaxAttempts:      3,
		RetryBackoffMS:   1000,
		PacingMS:         300,
		WindowSeconds:    180,
		RegulationPeriod: 4,
		SnapshotDir:      "data/raw",
		ArchivePath:      "data/clutch.db",
		MetricsAddr:      "",
	}
}
