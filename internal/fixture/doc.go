// Package fixture converts free-form operator text into structured match
// intents.
//
// Operators paste semi-structured scouting data; the parser is maximally
// permissive and never blocks a batch on one malformed line. Lines that do
// not split into exactly two team-name sides around the "vs" token are
// counted and skipped. The package also formats backend fixtures back into
// parser-compatible lines so the two representations stay round-trippable.
package fixture
