// Package api exposes the orchestrator, event log, and asset listing to the
// dashboard over HTTP with JSON view models. Runs started through the API
// outlive the initiating request; clients poll /api/status for progress.
package api
