package models

import "time"

// Phase is the lifecycle stage of a sync run.
type Phase string

const (
	PhaseIdle            Phase = "idle"
	PhaseFetchingFeed    Phase = "fetching_feed"
	PhaseFetchingDetails Phase = "fetching_details"
	PhaseCompleted       Phase = "completed"
	PhaseFailed          Phase = "failed"
	PhaseCancelled       Phase = "cancelled"
)

// Terminal reports whether the phase marks the end of a run.
func (p Phase) Terminal() bool {
	return p == PhaseCompleted || p == PhaseFailed || p == PhaseCancelled
}

// SyncError is one recoverable failure collected during a run. GameToken
// is empty for page-level failures.
type SyncError struct {
	GameToken string `json:"game_token,omitempty"`
	Message   string `json:"message"`
}

// SyncResult is the immutable summary of one finished run.
//
// Success means "no errors were collected"; a run that committed some
// games while others failed completes with Success=false and a non-empty
// Errors list. Callers must inspect both fields.
type SyncResult struct {
	Success        bool        `json:"success"`
	ItemsProcessed int         `json:"items_processed"`
	ItemsCreated   int         `json:"items_created"`
	ItemsUpdated   int         `json:"items_updated"`
	Errors         []SyncError `json:"errors"`

	// DurationMS is the run's wall-clock duration in milliseconds. Kept
	// as a plain integer so the JSON value is milliseconds, not the
	// nanosecond count a time.Duration would marshal to.
	DurationMS int64 `json:"duration_ms"`
}

// Progress is one progress event emitted to the run's observer after each
// phase transition and after each processed identifier.
type Progress struct {
	RunID     string `json:"run_id"`
	Phase     Phase  `json:"phase"`
	Processed int    `json:"processed"`
	Total     int    `json:"total"`
	Message   string `json:"message,omitempty"`
}

// SyncStatus is the poll-friendly snapshot of a user's current or most
// recent run. Result is nil while a run is in flight.
type SyncStatus struct {
	RunID     string      `json:"run_id,omitempty"`
	Phase     Phase       `json:"phase"`
	Processed int         `json:"processed"`
	Total     int         `json:"total"`
	Errors    []SyncError `json:"errors,omitempty"`
	LastSync  *time.Time  `json:"last_sync,omitempty"`
	Result    *SyncResult `json:"result,omitempty"`
}
