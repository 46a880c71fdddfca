// Package service contains the sync subsystem: the feed paginator, the
// detail normalizer, and the orchestrator that sequences one sync run per
// user and reports its progress.
package service

import (
	"context"

	"github.com/colinz11/geoguessr-stats/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/syncer_mock.go -package=mock

// ProgressObserver receives progress events during a run: one after every
// phase transition and one after every identifier, processed or failed. It
// is the
// sole side channel for status reporting; implementations must be fast and
// non-blocking.
type ProgressObserver func(models.Progress)

// SyncOptions tunes one sync run.
type SyncOptions struct {
	// MaxPages overrides the configured feed page cap when positive.
	MaxPages int

	// Session overrides the configured session cookie when set, letting
	// callers sync an account other than the default one.
	Session string

	// Observer, when set, receives progress events for this run in
	// addition to the orchestrator's own status registry.
	Observer ProgressObserver
}

// Syncer runs and supervises sync runs, at most one per user at a time.
type Syncer interface {
	// Start launches a run in the background and returns its run ID.
	// Returns [ErrSyncAlreadyRunning] when a run is already active for
	// userID.
	Start(ctx context.Context, userID string, opts SyncOptions) (string, error)

	// Run executes a run synchronously and returns its result. The
	// error is non-nil only for run-level fatal conditions (invalid
	// session, feed unavailable); per-item failures are reported inside
	// the result.
	Run(ctx context.Context, userID string, opts SyncOptions) (models.SyncResult, error)

	// Status returns the non-blocking snapshot of the user's current or
	// most recent run. A user that never synced reports PhaseIdle.
	Status(userID string) models.SyncStatus

	// Cancel requests cooperative cancellation of the user's active run.
	// The run stops at the next identifier boundary; the in-flight call
	// is allowed to finish. Returns [ErrSyncNotRunning] when no run is
	// active.
	Cancel(userID string) error
}
