// Package assets decides whether a match already has a rendered artifact in
// the remote store.
//
// The expected output name is derived from the trimmed display team names with
// a fixed template shared with the render service. Comparison against the
// remote listing happens after Unicode canonical normalization and case
// folding, so names differing only in diacritic encoding or case still match.
// A Listing is always a snapshot: refreshed by explicit reconciliation calls,
// never mutated locally.
package assets
