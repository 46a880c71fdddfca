package adapter

import "errors"

// Sentinel errors surfaced by [RemoteClient] implementations. Callers match
// them with [errors.Is] to pick run-level policy.
var (
	// ErrUnauthorized is returned on 401/403: the session cookie is
	// invalid or expired. Never retried; retrying a dead session only
	// burns quota.
	ErrUnauthorized = errors.New("geoguessr session unauthorized")

	// ErrTransient wraps network failures and 429/5xx responses that
	// survived the client's retry budget.
	ErrTransient = errors.New("transient geoguessr api failure")

	// ErrNotFound is returned when a game token does not resolve.
	ErrNotFound = errors.New("game not found")
)
