package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if CLUTCH_CONFIG is set
//  3. env (prefix CLUTCH_)
func Load(ctx context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("CLUTCH_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	// Environment variables: CLUTCH_GAME_LIMIT, CLUTCH_WINDOW_SECONDS, ...
	// Map env keys like CLUTCH_GAME_LIMIT -> game_limit (flat keys).
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("CLUTCH_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "clutch_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("load env config: %w", err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate rejects configurations the pipeline cannot run with.
func (c *Config) validate() error {
	if len(c.Seasons) == 0 {
		return ErrNoSeasons
	}
	if c.MaxAttempts < 1 {
		return ErrBadAttempts
	}
	if c.WindowSeconds < 1 {
		return ErrBadWindow
	}
	if c.RegulationPeriod < 1 {
		return ErrBadPeriod
	}
	if !strings.Contains(c.FeedURLTemplate, "%s") {
		return ErrBadTemplate
	}
	if !strings.Contains(c.IndexURLTemplate, "%s") {
		return ErrBadTemplate
	}
	return nil
}
