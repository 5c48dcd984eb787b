// Package render drives individual render jobs against the studio backend
// and records their outcomes in the event log.
package render
