// Package services holds the error taxonomy and context plumbing shared by
// every component that talks to the studio backend.
//
// Sentinel errors distinguish transport failures (backend unreachable) from
// failures the backend reported itself, and Wrap tags errors with component
// and operation context so callers can classify them without string matching.
// Context helpers carry batch run IDs, match indices, and correlation IDs so
// log lines emitted deep inside a render call still identify their batch.
package services
