// Package adapter provides the transport layer for communicating with the
// GeoGuessr API.
//
// The primary abstraction is [RemoteClient], which decouples the sync
// services from the HTTP protocol. The package ships a resty-based
// implementation ([NewGeoGuessrClient]) plus a circuit-breaker wrapper
// ([NewBreakerClient]) for the detail endpoint.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrUnauthorized] for 401/403, [ErrTransient] for
// retry-exhausted 5xx).
package adapter

import (
	"context"

	"github.com/colinz11/geoguessr-stats/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/remote_client_mock.go -package=mock

// RemoteClient defines the two calls the sync subsystem makes against the
// GeoGuessr API. Implementations own authentication, pacing, and retry of
// transient failures; callers decide run-level policy from the sentinel
// errors surfaced here.
type RemoteClient interface {
	// ListFeedPage fetches one page of the user's private activity feed.
	// cursor is the opaque pagination token from a prior page, or empty
	// for the first page. Transient failures are retried with bounded
	// backoff before an [ErrTransient]-wrapped error is returned;
	// authentication failures surface immediately as [ErrUnauthorized].
	ListFeedPage(ctx context.Context, cursor string) (models.FeedPage, error)

	// FetchGameDetail fetches the full detail payload for one game token.
	// Error semantics match ListFeedPage, plus [ErrNotFound] when the
	// token does not resolve to a game.
	FetchGameDetail(ctx context.Context, token string) (models.GameDetail, error)
}

// Factory builds a RemoteClient bound to one user's session cookie. The
// orchestrator creates a client per run so concurrent runs for different
// users never share credentials.
type Factory func(session string) RemoteClient
