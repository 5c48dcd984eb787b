// Package batch orchestrates full render runs: parse operator text, submit
// the batch to the studio backend, then render each optimized match strictly
// in submission order. One orchestrator instance serializes runs so the
// single stateful backend session never sees overlapping work.
package batch
