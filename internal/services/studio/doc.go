// Package studio implements the HTTP client for the external render backend.
//
// The backend optimizes a batch of parsed match intents in one call, renders
// one graphic per optimized record against a single stateful session, and
// serves the remote asset listing used for reconciliation. Requests share a
// rate limiter; transport failures and backend-reported failures come back
// tagged with distinct sentinels so callers can log them differently.
package studio
