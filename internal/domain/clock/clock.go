// Package clock normalizes the feed's heterogeneous game-clock strings.
package clock

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// The liveData feed emits ISO-8601 duration clocks ("PT2M34.00S") where
// either component may be missing.
var (
	durationMinutes = regexp.MustCompile(`(\d+)M`)
	durationSeconds = regexp.MustCompile(`(\d+(\.\d+)?)S`)
)

// Parse converts a clock string into whole seconds remaining in the period.
//
// Supported encodings:
//   - "MM:SS" with an optional fractional second part, truncated
//   - "PT<minutes>M<seconds>S" with the fractional seconds rounded
//   - a bare numeric string, truncated
//
// Empty or unparseable input yields 0. Feed responses are not
// schema-guaranteed, so one malformed timestamp must never abort a game.
func Parse(raw string) int {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0
	}

	if strings.HasPrefix(s, "PT") {
		return parseDuration(s)
	}

	if strings.Contains(s, ":") {
		return parseColon(s)
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 {
		return 0
	}
	return int(f)
}

// parseDuration handles the "PT2M34.00S" form.
func parseDuration(s string) int {
	var minutes int
	if m := durationMinutes.FindStringSubmatch(s); m != nil {
		minutes, _ = strconv.Atoi(m[1])
	}

	var seconds float64
	if m := durationSeconds.FindStringSubmatch(s); m != nil {
		seconds, _ = strconv.ParseFloat(m[1], 64)
	}

	return minutes*60 + int(math.Round(seconds))
}

// parseColon handles the "MM:SS" form. The seconds part may carry a
// fractional component, which is truncated.
func parseColon(s string) int {
	parts := strings.SplitN(s, ":", 2)

	minutes, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || minutes < 0 {
		return 0
	}

	seconds, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil || seconds < 0 {
		return 0
	}

	return minutes*60 + int(seconds)
}
