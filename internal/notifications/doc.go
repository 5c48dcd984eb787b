// Package notifications delivers batch milestones via pluggable notifiers.
//
// The default implementation publishes to ntfy using the topic configured in
// config.toml and gracefully degrades to a no-op when notifications are
// disabled. Per-category switches let operators keep error alerts while
// silencing the per-render celebration messages.
//
// Extend this package if you need alternative transports; all batch code
// depends only on the simple Service interface.
package notifications
