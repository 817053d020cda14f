package app_test

import (
	"context"
	"errors"
	"testing"

	"github.com/hoopsight/clutch/internal/app"
	"github.com/hoopsight/clutch/internal/domain/model"
	"github.com/hoopsight/clutch/internal/domain/window"
	"github.com/hoopsight/clutch/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	_ = logger.Init()
}

func ip(v int) *int       { return &v }
func sp(s string) *string { return &s }

// fakeFetcher replays canned results and records call order.
type fakeFetcher struct {
	results map[string]model.FetchResult
	calls   []string
}

func (f *fakeFetcher) Fetch(_ context.Context, gameID string) model.FetchResult {
	f.calls = append(f.calls, gameID)
	res, ok := f.results[gameID]
	if !ok {
		return model.FetchResult{GameID: gameID, Outcome: model.FetchNoActions, Attempts: 1}
	}
	return res
}

func lateGame(clock string, home, away int) []model.RawEvent {
	return []model.RawEvent{
		{Period: ip(1), Clock: sp("10:00"), HomeScore: ip(2), AwayScore: ip(0)},
		{Period: ip(4), Clock: sp(clock), HomeScore: ip(home), AwayScore: ip(away)},
	}
}

func newCollector(f app.Fetcher, opts ...app.Option) *app.Collector {
	opts = append([]app.Option{app.WithPacing(0)}, opts...)
	return app.New(f, window.New(), opts...)
}

func TestCollect(t *testing.T) {
	Convey("Given three games with mixed fetch outcomes", t, func() {
		fetcher := &fakeFetcher{results: map[string]model.FetchResult{
			"g1": {GameID: "g1", Outcome: model.FetchOK, Attempts: 1, Events: lateGame("01:30", 100, 98)},
			"g2": {GameID: "g2", Outcome: model.FetchExhausted, Attempts: 3, LastErr: errors.New("status 502")},
			"g3": {GameID: "g3", Outcome: model.FetchOK, Attempts: 2, Events: lateGame("00:45", 90, 95)},
		}}
		games := []model.GameRef{
			{GameID: "g1", GameDate: "2023-10-24", Matchup: "LAL vs. DEN"},
			{GameID: "g2", GameDate: "2023-10-25", Matchup: "BOS vs. MIA"},
			{GameID: "g3", GameDate: "2023-10-26", Matchup: "GSW @ PHX"},
		}

		Convey("When collecting", func() {
			events, summary := newCollector(fetcher).Collect(context.Background(), games)

			Convey("Then failed games are skipped, not fatal", func() {
				So(summary.GamesSeen, ShouldEqual, 3)
				So(summary.GamesYielding, ShouldEqual, 2)
				So(summary.GamesFailed, ShouldEqual, 1)
				So(summary.Events, ShouldEqual, 2)
				So(len(events), ShouldEqual, 2)
			})

			Convey("Then per-game metadata is attached to every event", func() {
				So(events[0].GameID, ShouldEqual, "g1")
				So(events[0].GameDate, ShouldEqual, "2023-10-24")
				So(events[0].Matchup, ShouldEqual, "LAL vs. DEN")
				So(events[1].GameID, ShouldEqual, "g3")
				So(events[1].Matchup, ShouldEqual, "GSW @ PHX")
			})

			Convey("Then games are processed in list order", func() {
				So(fetcher.calls, ShouldResemble, []string{"g1", "g2", "g3"})
			})
		})
	})
}

func TestCollectLimit(t *testing.T) {
	Convey("Given more games than the limit", t, func() {
		fetcher := &fakeFetcher{results: map[string]model.FetchResult{
			"g1": {GameID: "g1", Outcome: model.FetchOK, Attempts: 1, Events: lateGame("00:10", 80, 80)},
			"g2": {GameID: "g2", Outcome: model.FetchOK, Attempts: 1, Events: lateGame("00:20", 81, 80)},
		}}
		games := []model.GameRef{{GameID: "g1"}, {GameID: "g2"}}

		Convey("When collecting with a limit of one", func() {
			events, summary := newCollector(fetcher, app.WithLimit(1)).Collect(context.Background(), games)

			Convey("Then only the first game is touched", func() {
				So(summary.GamesSeen, ShouldEqual, 1)
				So(len(events), ShouldEqual, 1)
				So(fetcher.calls, ShouldResemble, []string{"g1"})
			})
		})
	})
}

func TestCollectCanceled(t *testing.T) {
	Convey("Given a fetch that reports the run's context ended", t, func() {
		fetcher := &fakeFetcher{results: map[string]model.FetchResult{
			"g1": {GameID: "g1", Outcome: model.FetchOK, Attempts: 1, Events: lateGame("00:50", 101, 100)},
			"g2": {GameID: "g2", Outcome: model.FetchCanceled, Attempts: 1, LastErr: context.Canceled},
			"g3": {GameID: "g3", Outcome: model.FetchOK, Attempts: 1, Events: lateGame("00:40", 90, 92)},
		}}
		games := []model.GameRef{{GameID: "g1"}, {GameID: "g2"}, {GameID: "g3"}}

		Convey("When collecting", func() {
			events, summary := newCollector(fetcher).Collect(context.Background(), games)

			Convey("Then the walk stops with the partial aggregate", func() {
				So(fetcher.calls, ShouldResemble, []string{"g1", "g2"})
				So(len(events), ShouldEqual, 1)
				So(summary.GamesYielding, ShouldEqual, 1)
				So(summary.GamesFailed, ShouldEqual, 0)
			})
		})
	})
}

func TestCollectDegradedGames(t *testing.T) {
	Convey("Given games that fetch fine but filter to nothing", t, func() {
		fetcher := &fakeFetcher{results: map[string]model.FetchResult{
			"early": {GameID: "early", Outcome: model.FetchOK, Attempts: 1, Events: []model.RawEvent{
				{Period: ip(1), Clock: sp("10:00"), HomeScore: ip(4), AwayScore: ip(2)},
			}},
			"broken": {GameID: "broken", Outcome: model.FetchOK, Attempts: 1, Events: []model.RawEvent{
				{ActionType: "unknown"},
			}},
		}}
		games := []model.GameRef{{GameID: "early"}, {GameID: "broken"}}

		Convey("When collecting", func() {
			events, summary := newCollector(fetcher).Collect(context.Background(), games)

			Convey("Then both degrade to skips and the aggregate stays empty", func() {
				So(events, ShouldBeEmpty)
				So(summary.GamesFiltered, ShouldEqual, 2)
				So(summary.GamesYielding, ShouldEqual, 0)
			})
		})
	})
}

func TestCollectDuplicateReference(t *testing.T) {
	Convey("Given the same game listed twice", t, func() {
		fetcher := &fakeFetcher{results: map[string]model.FetchResult{
			"g1": {GameID: "g1", Outcome: model.FetchOK, Attempts: 1, Events: lateGame("00:30", 99, 99)},
		}}
		games := []model.GameRef{{GameID: "g1"}, {GameID: "g1"}}

		Convey("When collecting", func() {
			events, _ := newCollector(fetcher).Collect(context.Background(), games)

			Convey("Then output is duplicated; the orchestrator does not dedupe", func() {
				So(len(events), ShouldEqual, 2)
			})
		})
	})
}

func TestCollectEmptyAggregate(t *testing.T) {
	Convey("Given every game yields nothing", t, func() {
		fetcher := &fakeFetcher{results: map[string]model.FetchResult{}}
		games := []model.GameRef{{GameID: "a"}, {GameID: "b"}}

		Convey("When collecting", func() {
			events, summary := newCollector(fetcher).Collect(context.Background(), games)

			Convey("Then the empty aggregate is returned, not an error", func() {
				So(events, ShouldBeEmpty)
				So(summary.GamesNoData, ShouldEqual, 2)
				So(summary.Events, ShouldEqual, 0)
			})
		})
	})
}
