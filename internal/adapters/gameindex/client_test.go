package gameindex_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hoopsight/clutch/internal/adapters/gameindex"
	"github.com/hoopsight/clutch/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	_ = logger.Init()
}

const indexBody = `{"resultSets":[{
	"name":"LeagueGameFinderResults",
	"headers":["SEASON_ID","TEAM_ABBREVIATION","GAME_ID","GAME_DATE","MATCHUP","WL"],
	"rowSet":[
		["22023","LAL","0022300001","2023-10-24","LAL vs. DEN","L"],
		["22023","DEN","0022300001","2023-10-24","DEN @ LAL","W"],
		["22023","GSW","0022300002","2023-10-24","GSW vs. PHX","W"]
	]
}]}`

func newClient(url string) *gameindex.Client {
	return gameindex.New(
		gameindex.WithURLTemplate(url+"/leaguegamefinder?Season=%s"),
		gameindex.WithMaxAttempts(2),
		gameindex.WithBackoff(0),
	)
}

func TestGames(t *testing.T) {
	Convey("Given an index that lists one season", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(indexBody))
		}))
		defer srv.Close()

		Convey("When listing games", func() {
			refs, err := newClient(srv.URL).Games(context.Background(), []string{"2023-24"})

			Convey("Then duplicate game ids collapse to the first row", func() {
				So(err, ShouldBeNil)
				So(len(refs), ShouldEqual, 2)
				So(refs[0].GameID, ShouldEqual, "0022300001")
				So(refs[0].GameDate, ShouldEqual, "2023-10-24")
				So(refs[0].Matchup, ShouldEqual, "LAL vs. DEN")
				So(refs[1].GameID, ShouldEqual, "0022300002")
			})
		})
	})
}

func TestGamesSeasonDegradation(t *testing.T) {
	Convey("Given an index where one season keeps failing", t, func() {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("Season") == "2022-23" {
				calls.Add(1)
				http.Error(w, "throttled", http.StatusTooManyRequests)
				return
			}
			_, _ = w.Write([]byte(indexBody))
		}))
		defer srv.Close()

		Convey("When listing two seasons", func() {
			refs, err := newClient(srv.URL).Games(context.Background(), []string{"2022-23", "2023-24"})

			Convey("Then the bad season is retried, then skipped", func() {
				So(err, ShouldBeNil)
				So(len(refs), ShouldEqual, 2)
				So(calls.Load(), ShouldEqual, 2)
			})
		})
	})
}

func TestGamesTimeoutOptionOrder(t *testing.T) {
	Convey("Given an index slower than the configured timeout", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
			_, _ = w.Write([]byte(indexBody))
		}))
		defer srv.Close()

		Convey("When the timeout option precedes a custom client", func() {
			client := gameindex.New(
				gameindex.WithTimeout(50*time.Millisecond),
				gameindex.WithHTTPClient(&http.Client{}),
				gameindex.WithURLTemplate(srv.URL+"/leaguegamefinder?Season=%s"),
				gameindex.WithMaxAttempts(1),
				gameindex.WithBackoff(0),
			)
			refs, err := client.Games(context.Background(), []string{"2023-24"})

			Convey("Then the timeout still applies", func() {
				So(refs, ShouldBeEmpty)
				So(err, ShouldNotBeNil)
			})
		})
	})
}

func TestGamesTotalFailure(t *testing.T) {
	Convey("Given an index that always fails", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "down", http.StatusInternalServerError)
		}))
		defer srv.Close()

		Convey("When listing games", func() {
			refs, err := newClient(srv.URL).Games(context.Background(), []string{"2023-24"})

			Convey("Then the failure surfaces to the caller", func() {
				So(refs, ShouldBeEmpty)
				So(errors.Is(err, gameindex.ErrBadStatus), ShouldBeTrue)
			})
		})
	})
}

func TestGamesMissingColumn(t *testing.T) {
	Convey("Given an index response without a MATCHUP column", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"resultSets":[{
				"name":"LeagueGameFinderResults",
				"headers":["GAME_ID","GAME_DATE"],
				"rowSet":[["0022300001","2023-10-24"]]
			}]}`))
		}))
		defer srv.Close()

		Convey("When listing games", func() {
			refs, err := newClient(srv.URL).Games(context.Background(), []string{"2023-24"})

			Convey("Then the schema problem surfaces", func() {
				So(refs, ShouldBeEmpty)
				So(errors.Is(err, gameindex.ErrMissingColumn), ShouldBeTrue)
			})
		})
	})
}

func TestGamesShortRows(t *testing.T) {
	Convey("Given an index response with ragged rows", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"resultSets":[{
				"name":"LeagueGameFinderResults",
				"headers":["GAME_ID","GAME_DATE","MATCHUP"],
				"rowSet":[
					["0022300001","2023-10-24","LAL vs. DEN"],
					["0022300002"],
					[null,"2023-10-25","BOS vs. MIA"]
				]
			}]}`))
		}))
		defer srv.Close()

		Convey("When listing games", func() {
			refs, err := newClient(srv.URL).Games(context.Background(), []string{"2023-24"})

			Convey("Then short cells default and id-less rows are dropped", func() {
				So(err, ShouldBeNil)
				So(len(refs), ShouldEqual, 2)
				So(refs[1].GameID, ShouldEqual, "0022300002")
				So(refs[1].Matchup, ShouldEqual, "")
			})
		})
	})
}
