package assets

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"matchframe/internal/match"
)

// folder case-folds names for comparison; allocated once, safe for
// concurrent use.
var folder = cases.Fold()

// ExpectedFilename derives the deterministic output name for a matchup. The
// template must stay identical to the one the render service uses when it
// writes the file, otherwise reconciliation silently never matches. Names are
// trimmed but otherwise sent as the operator typed them; normalization is
// applied only at comparison time.
func ExpectedFilename(home, away string) string {
	home = strings.TrimSpace(home)
	away = strings.TrimSpace(away)
	if home == "" {
		home = "A"
	}
	if away == "" {
		away = "B"
	}
	return "Match_" + home + "_vs_" + away + ".png"
}

// RecordFilename returns the output name for an optimized record, preferring
// the backend-suggested stem over the client-side guess when present.
func RecordFilename(rec match.Record) string {
	if hint := strings.TrimSpace(rec.FilenameHint); hint != "" {
		if strings.Contains(hint, ".") {
			return hint
		}
		return hint + ".png"
	}
	return ExpectedFilename(rec.HomeTeam, rec.AwayTeam)
}

// Normalize canonicalizes a filename for comparison: Unicode canonical
// composition followed by case folding. Operator-entered team names and
// remote filenames may differ only in diacritic encoding or case.
func Normalize(name string) string {
	return folder.String(norm.NFC.String(name))
}

// Listing is an immutable snapshot of the filenames known to exist in the
// remote asset store. It may be stale until the next refresh; callers decide
// when to capture a new one.
type Listing struct {
	raw        []string
	normalized map[string]struct{}
	capturedAt time.Time
}

// NewListing captures a snapshot of remote filenames.
func NewListing(filenames []string) Listing {
	normalized := make(map[string]struct{}, len(filenames))
	raw := make([]string, len(filenames))
	copy(raw, filenames)
	for _, name := range filenames {
		normalized[Normalize(name)] = struct{}{}
	}
	return Listing{raw: raw, normalized: normalized, capturedAt: time.Now()}
}

// Contains reports whether the listing holds a filename equal to name after
// normalization. Exact match only; no partial or fuzzy matching.
func (l Listing) Contains(name string) bool {
	_, ok := l.normalized[Normalize(name)]
	return ok
}

// IsRendered reports whether a rendered artifact already exists for the
// matchup. The result is idempotent for a given snapshot.
func (l Listing) IsRendered(home, away string) bool {
	return l.Contains(ExpectedFilename(home, away))
}

// IsRenderedRecord reports whether an artifact exists for an optimized
// record, honouring the backend filename hint when present.
func (l Listing) IsRenderedRecord(rec match.Record) bool {
	return l.Contains(RecordFilename(rec))
}

// Filenames returns a copy of the raw snapshot contents.
func (l Listing) Filenames() []string {
	out := make([]string, len(l.raw))
	copy(out, l.raw)
	return out
}

// Len reports the number of known assets.
func (l Listing) Len() int { return len(l.raw) }

// CapturedAt reports when the snapshot was taken; zero for an empty Listing
// that was never captured.
func (l Listing) CapturedAt() time.Time { return l.capturedAt }
