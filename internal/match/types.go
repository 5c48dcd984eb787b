package match

import "strings"

// Intent is a parsed, unoptimized candidate match derived from operator text.
type Intent struct {
	HomeTeam string `json:"homeTeam"`
	AwayTeam string `json:"awayTeam"`
	// Odds holds the optional 1/X/2 tokens in fixed order; slots the operator
	// omitted stay empty.
	Odds          [3]string `json:"odds"`
	ManualKickoff string    `json:"manualDateTime,omitempty"`
}

// Record is a backend-optimized match ready for rendering. Records are
// read-only after the optimization call; one Record maps to exactly one
// render job.
type Record struct {
	HomeTeam      string    `json:"homeTeam"`
	AwayTeam      string    `json:"awayTeam"`
	Odds          [3]string `json:"odds"`
	ManualKickoff string    `json:"manualDateTime,omitempty"`
	HomeBadgeURL  string    `json:"homeBadgeUrl,omitempty"`
	FilenameHint  string    `json:"filenameHint,omitempty"`
}

// Fixture is a candidate matchup the backend knows about. Fixtures feed the
// parser indirectly: they are formatted into parser-compatible text lines for
// the operator to review and paste back in.
type Fixture struct {
	HomeTeam string    `json:"homeTeam"`
	AwayTeam string    `json:"awayTeam"`
	Kickoff  string    `json:"kickoff,omitempty"`
	Odds     [3]string `json:"odds"`
}

// Matchup returns the display pairing for log lines and notifications.
func (r Record) Matchup() string {
	home := strings.TrimSpace(r.HomeTeam)
	away := strings.TrimSpace(r.AwayTeam)
	switch {
	case home == "" && away == "":
		return ""
	case home == "":
		return away
	case away == "":
		return home
	}
	return home + " vs " + away
}
