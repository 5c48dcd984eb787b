// Package main hosts the Matchframe CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into batch
// runs, asset maintenance, fixture lookups, and configuration scaffolding.
// One-shot commands drive the engine in-process; `serve` exposes the same
// engine over HTTP for the dashboard, and `status`/`log` query it there.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
