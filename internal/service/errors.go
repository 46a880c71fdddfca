package service

import "errors"

var (
	// ErrSyncAlreadyRunning is returned by Start and Run when the user
	// already has an active run.
	ErrSyncAlreadyRunning = errors.New("sync already running for user")

	// ErrSyncNotRunning is returned by Cancel when there is no active
	// run to cancel.
	ErrSyncNotRunning = errors.New("no sync running for user")

	// ErrFeedUnavailable is returned when not a single feed page could
	// be fetched, leaving the run with nothing to do.
	ErrFeedUnavailable = errors.New("feed unavailable")
)
