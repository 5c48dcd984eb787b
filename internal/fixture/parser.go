package fixture

import (
	"regexp"
	"strconv"
	"strings"

	"matchframe/internal/match"
)

// separator matches the team separator token: "vs" in any case, surrounded by
// at least one space on each side.
var separator = regexp.MustCompile(`(?i)\s+vs\s+`)

// Stats summarizes one parse pass for observability.
type Stats struct {
	Lines   int // non-blank input lines
	Parsed  int
	Skipped int
}

// Parse converts loosely-structured multi-line operator text into match
// intents. Malformed lines are skipped, never fatal; output preserves input
// line order. Empty input yields an empty slice.
func Parse(rawText string) ([]match.Intent, Stats) {
	var (
		intents []match.Intent
		stats   Stats
	)
	for _, line := range strings.Split(rawText, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		stats.Lines++
		intent, ok := parseLine(line)
		if !ok {
			stats.Skipped++
			continue
		}
		intents = append(intents, intent)
	}
	stats.Parsed = len(intents)
	return intents, stats
}

// parseLine parses one operator line of the form
//
//	Home Team vs Away Team [odds1 [oddsX [odds2]]] [| manual kickoff]
//
// The pipe splits off an optional manual kickoff override. The primary part
// must split on the "vs" token into exactly two non-empty sides. On the away
// side, a trailing run of up to three numeric tokens is read as the 1/X/2
// odds; whatever precedes them is the away team name.
func parseLine(line string) (match.Intent, bool) {
	primary := line
	manual := ""
	if idx := strings.Index(line, "|"); idx >= 0 {
		primary = line[:idx]
		manual = strings.TrimSpace(line[idx+1:])
	}

	sides := separator.Split(strings.TrimSpace(primary), -1)
	if len(sides) != 2 {
		return match.Intent{}, false
	}
	home := strings.TrimSpace(sides[0])
	right := strings.TrimSpace(sides[1])
	if home == "" || right == "" {
		return match.Intent{}, false
	}

	tokens := strings.Fields(right)
	start := len(tokens)
	for start > 0 && len(tokens)-start < 3 && isOddsToken(tokens[start-1]) {
		start--
	}
	if start == 0 {
		// Every token parsed as a number; keep the first as the team name
		// rather than dropping the line.
		start = 1
	}

	var odds [3]string
	copy(odds[:], tokens[start:])

	return match.Intent{
		HomeTeam:      home,
		AwayTeam:      strings.Join(tokens[:start], " "),
		Odds:          odds,
		ManualKickoff: manual,
	}, true
}

func isOddsToken(token string) bool {
	_, err := strconv.ParseFloat(token, 64)
	return err == nil
}
