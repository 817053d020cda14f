package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/hoopsight/clutch/internal/adapters/feed"
	"github.com/hoopsight/clutch/internal/adapters/gameindex"
	"github.com/hoopsight/clutch/internal/adapters/store"
	"github.com/hoopsight/clutch/internal/app"
	"github.com/hoopsight/clutch/internal/config"
	"github.com/hoopsight/clutch/internal/domain/window"
	"github.com/hoopsight/clutch/pkg/logger"
	"github.com/hoopsight/clutch/pkg/metrics"
)

// Metrics server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
)

const previewRows = 5

func main() {
	gamesFlag := flag.Int("games", 0, "max games to process this run (0 = config game_limit)")
	flag.Parse()

	_ = godotenv.Load()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info",
			logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	limit := cfg.GameLimit
	if *gamesFlag > 0 {
		limit = *gamesFlag
	}

	if cfg.MetricsAddr != "" {
		go serveMetrics(ctx, log, cfg.MetricsAddr)
	}

	run(ctx, log, cfg, limit)
}

// run executes one collection pass end to end.
func run(ctx context.Context, log logger.Logger, cfg *config.Config, limit int) {
	runID := uuid.NewString()[:8]
	log.Info(ctx, "starting collection run",
		logger.String("runID", runID),
		logger.Any("seasons", cfg.Seasons),
		logger.Int("limit", limit),
	)

	index := gameindex.New(
		gameindex.WithURLTemplate(cfg.IndexURLTemplate),
		gameindex.WithMaxAttempts(cfg.MaxAttempts),
		gameindex.WithBackoff(time.Duration(cfg.RetryBackoffMS)*time.Millisecond),
	)
	games, err := index.Games(ctx, cfg.Seasons)
	if err != nil {
		log.Error(ctx, "game index unavailable", logger.Error(err))
		return
	}
	if len(games) == 0 {
		log.Warn(ctx, "no games found, nothing to collect")
		return
	}
	log.Info(ctx, "games indexed", logger.Int("games", len(games)))

	snapshots, err := store.NewCSV(cfg.SnapshotDir)
	if err != nil {
		log.Error(ctx, "snapshot store unavailable", logger.Error(err))
		return
	}
	if path, err := snapshots.WriteGames(ctx, runID, games); err != nil {
		log.Warn(ctx, "games snapshot not written", logger.Error(err))
	} else {
		log.Info(ctx, "games snapshot written", logger.String("path", path))
	}

	collector := app.New(
		feed.New(
			feed.WithURLTemplate(cfg.FeedURLTemplate),
			feed.WithTimeout(time.Duration(cfg.FetchTimeoutSec)*time.Second),
			feed.WithMaxAttempts(cfg.MaxAttempts),
			feed.WithBackoff(time.Duration(cfg.RetryBackoffMS)*time.Millisecond),
		),
		window.New(
			window.WithWindowSeconds(cfg.WindowSeconds),
			window.WithRegulationPeriod(cfg.RegulationPeriod),
		),
		app.WithLimit(limit),
		app.WithPacing(time.Duration(cfg.PacingMS)*time.Millisecond),
	)

	events, summary := collector.Collect(ctx, games)
	log.Info(ctx, "collection finished",
		logger.String("runID", runID),
		logger.Int("gamesSeen", summary.GamesSeen),
		logger.Int("gamesYielding", summary.GamesYielding),
		logger.Int("gamesNoData", summary.GamesNoData),
		logger.Int("gamesFailed", summary.GamesFailed),
		logger.Int("gamesFiltered", summary.GamesFiltered),
		logger.Int("events", summary.Events),
	)

	if len(events) == 0 {
		log.Warn(ctx, "nothing to persist")
		return
	}

	if path, err := snapshots.WriteCritical(ctx, runID, events); err != nil {
		metrics.RecordStoreWriteError()
		log.Error(ctx, "critical snapshot failed", logger.Error(err))
	} else {
		metrics.RecordStoreWrite()
		log.Info(ctx, "critical snapshot written",
			logger.String("path", path),
			logger.Int("events", len(events)),
		)
	}

	archive, err := store.NewSQLite(cfg.ArchivePath)
	if err != nil {
		metrics.RecordStoreWriteError()
		log.Error(ctx, "archive unavailable", logger.Error(err))
	} else {
		defer archive.Close()
		if _, err := archive.WriteCritical(ctx, runID, events); err != nil {
			metrics.RecordStoreWriteError()
			log.Error(ctx, "archive write failed", logger.Error(err))
		} else {
			metrics.RecordStoreWrite()
			if n, err := archive.CountRun(ctx, runID); err == nil {
				log.Info(ctx, "archive updated", logger.Int("events", n))
			}
		}
	}

	for i, e := range events {
		if i >= previewRows {
			break
		}
		log.Info(ctx, "preview",
			logger.String("gameID", e.GameID),
			logger.String("matchup", e.Matchup),
			logger.Int("period", e.PeriodValue()),
			logger.String("clock", e.ClockValue()),
			logger.Int("timeRemaining", e.TimeRemainingSeconds),
			logger.Int("scoreDiff", e.ScoreDifferential),
		)
	}

	metrics.UpdateLastRunUnix(time.Now().Unix())
}

// serveMetrics exposes /metrics for the duration of the run.
func serveMetrics(ctx context.Context, log logger.Logger, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		<-ctx.Done()
		_ = srv.Close()
	}()

	log.Info(ctx, "serving metrics", logger.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Warn(ctx, "metrics server stopped", logger.Error(err))
	}
}
