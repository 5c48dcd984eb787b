package fixture

import (
	"strings"

	"matchframe/internal/match"
)

// FormatFixtures renders backend fixtures as parser-compatible input lines,
// one fixture per line, so operators can review and paste them into a batch
// run unchanged.
func FormatFixtures(fixtures []match.Fixture) string {
	lines := make([]string, 0, len(fixtures))
	for _, f := range fixtures {
		home := strings.TrimSpace(f.HomeTeam)
		away := strings.TrimSpace(f.AwayTeam)
		if home == "" || away == "" {
			continue
		}
		var b strings.Builder
		b.WriteString(home)
		b.WriteString(" vs ")
		b.WriteString(away)
		for _, odd := range f.Odds {
			if strings.TrimSpace(odd) == "" {
				break
			}
			b.WriteByte(' ')
			b.WriteString(strings.TrimSpace(odd))
		}
		if kickoff := strings.TrimSpace(f.Kickoff); kickoff != "" {
			b.WriteString(" | ")
			b.WriteString(kickoff)
		}
		lines = append(lines, b.String())
	}
	return strings.Join(lines, "\n")
}
