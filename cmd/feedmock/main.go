// Command feedmock serves deterministic play-by-play JSON in the
// liveData shape, for exercising the collector without the real feed.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
)

const pathPrefix = "/static/json/liveData/playbyplay/playbyplay_"

type action struct {
	ActionNumber int    `json:"actionNumber"`
	Period       int    `json:"period"`
	Clock        string `json:"clock"`
	HomeScore    int    `json:"homeScore"`
	AwayScore    int    `json:"awayScore"`
	ActionType   string `json:"actionType"`
	Description  string `json:"description"`
}

type payload struct {
	Game struct {
		GameID  string   `json:"gameId"`
		Actions []action `json:"actions"`
	} `json:"game"`
}

// mockFeed optionally fails the first N requests per game to exercise
// the collector's retry path.
type mockFeed struct {
	failFirst int

	mu   sync.Mutex
	hits map[string]int
}

func (f *mockFeed) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !strings.HasPrefix(r.URL.Path, pathPrefix) || !strings.HasSuffix(r.URL.Path, ".json") {
		http.NotFound(w, r)
		return
	}
	gameID := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, pathPrefix), ".json")

	f.mu.Lock()
	f.hits[gameID]++
	hit := f.hits[gameID]
	f.mu.Unlock()

	if hit <= f.failFirst {
		log.Printf("game %s: simulated failure %d/%d", gameID, hit, f.failFirst)
		http.Error(w, "simulated feed outage", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(buildGame(gameID))
}

// buildGame emits four regulation periods plus one overtime, mixing the
// clock encodings the real feed uses.
func buildGame(gameID string) payload {
	var p payload
	p.Game.GameID = gameID

	home, away, n := 0, 0, 0
	push := func(period int, clock string, points int) {
		n++
		if n%2 == 0 {
			home += points
		} else {
			away += points
		}
		p.Game.Actions = append(p.Game.Actions, action{
			ActionNumber: n,
			Period:       period,
			Clock:        clock,
			HomeScore:    home,
			AwayScore:    away,
			ActionType:   "2pt",
			Description:  fmt.Sprintf("Jump Shot (%d PTS)", points),
		})
	}

	for period := 1; period <= 4; period++ {
		push(period, "PT11M30.00S", 2)
		push(period, "08:15", 2)
		push(period, "PT3M0.00S", 3)
		push(period, "02:59", 2)
		push(period, "PT0M12.40S", 2)
	}
	push(5, "PT4M30.00S", 2)
	push(5, "00:03", 3)

	return p
}

func main() {
	addr := flag.String("addr", ":8090", "listen address")
	failFirst := flag.Int("fail-first", 0, "fail the first N requests per game with a 500")
	flag.Parse()

	feed := &mockFeed{
		failFirst: *failFirst,
		hits:      make(map[string]int),
	}

	log.Printf("feedmock listening on %s (fail-first=%d)", *addr, *failFirst)
	log.Printf("point the collector at http://localhost%s%s%%s.json", *addr, pathPrefix)
	if err := http.ListenAndServe(*addr, feed); err != nil {
		log.Fatal(err)
	}
}
