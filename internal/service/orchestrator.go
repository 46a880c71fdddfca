package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/colinz11/geoguessr-stats/internal/adapter"
	"github.com/colinz11/geoguessr-stats/internal/config"
	"github.com/colinz11/geoguessr-stats/internal/logger"
	"github.com/colinz11/geoguessr-stats/internal/store"
	"github.com/colinz11/geoguessr-stats/models"
)

// runState is the orchestrator's live bookkeeping for one run. All fields
// are guarded by the orchestrator mutex; snapshots leave the lock as copies.
type runState struct {
	runID     string
	phase     models.Phase
	processed int
	total     int
	errors    []models.SyncError
	lastSync  *time.Time
	result    *models.SyncResult
	cancel    context.CancelFunc
	observer  ProgressObserver
}

type syncOrchestrator struct {
	clients        adapter.Factory
	games          store.GameRepository
	cfg            config.Sync
	defaultSession string
	logger         *logger.Logger

	mu   sync.Mutex
	runs map[string]*runState
}

// NewSyncOrchestrator builds the Syncer. clients produces one remote client
// per run so concurrent runs for different users never share credentials;
// defaultSession is used when SyncOptions carries no session of its own.
func NewSyncOrchestrator(clients adapter.Factory, games store.GameRepository, cfg config.Sync, defaultSession string, log *logger.Logger) Syncer {
	return &syncOrchestrator{
		clients:        clients,
		games:          games,
		cfg:            cfg,
		defaultSession: defaultSession,
		logger:         log,
		runs:           make(map[string]*runState),
	}
}

func (o *syncOrchestrator) Start(ctx context.Context, userID string, opts SyncOptions) (string, error) {
	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))

	st, err := o.register(userID, cancel, opts)
	if err != nil {
		cancel()
		return "", err
	}

	go func() {
		if _, err := o.execute(runCtx, userID, st, opts); err != nil {
			o.logger.Error().Err(err).
				Str("user_id", userID).
				Str("run_id", st.runID).
				Msg("background sync run failed")
		}
	}()

	return st.runID, nil
}

func (o *syncOrchestrator) Run(ctx context.Context, userID string, opts SyncOptions) (models.SyncResult, error) {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	st, err := o.register(userID, cancel, opts)
	if err != nil {
		return models.SyncResult{}, err
	}

	return o.execute(runCtx, userID, st, opts)
}

func (o *syncOrchestrator) Status(userID string) models.SyncStatus {
	o.mu.Lock()
	defer o.mu.Unlock()

	st, ok := o.runs[userID]
	if !ok {
		return models.SyncStatus{Phase: models.PhaseIdle}
	}

	status := models.SyncStatus{
		RunID:     st.runID,
		Phase:     st.phase,
		Processed: st.processed,
		Total:     st.total,
		Errors:    append([]models.SyncError(nil), st.errors...),
		LastSync:  st.lastSync,
	}
	if st.result != nil {
		result := *st.result
		status.Result = &result
	}
	return status
}

func (o *syncOrchestrator) Cancel(userID string) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	st, ok := o.runs[userID]
	if !ok || st.phase.Terminal() {
		return ErrSyncNotRunning
	}

	o.logger.Info().Str("user_id", userID).Str("run_id", st.runID).Msg("cancelling sync run")
	st.cancel()
	return nil
}

// register claims the per-user run slot. A previous terminal run is replaced;
// an active one rejects the new run with [ErrSyncAlreadyRunning].
func (o *syncOrchestrator) register(userID string, cancel context.CancelFunc, opts SyncOptions) (*runState, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if prev, ok := o.runs[userID]; ok && !prev.phase.Terminal() {
		return nil, ErrSyncAlreadyRunning
	}

	st := &runState{
		runID:    uuid.NewString(),
		phase:    models.PhaseIdle,
		cancel:   cancel,
		observer: opts.Observer,
	}
	o.runs[userID] = st
	return st, nil
}

// execute drives one run through its phases. Per-item failures are collected
// into the result; only an unusable session or a fully unreachable feed
// aborts the run with an error.
func (o *syncOrchestrator) execute(ctx context.Context, userID string, st *runState, opts SyncOptions) (models.SyncResult, error) {
	started := time.Now()
	log := &logger.Logger{Logger: o.logger.With().
		Str("user_id", userID).
		Str("run_id", st.runID).
		Logger()}
	ctx = log.WithContext(ctx)

	log.Info().Msg("sync run started")

	client := o.clients(o.session(opts))
	tokens, pageErrors, err := o.collectTokens(ctx, client, st, opts)
	if err != nil {
		return o.finish(ctx, st, started, pageErrors, err)
	}

	o.transition(st, models.PhaseFetchingDetails, 0, len(tokens), "fetching game details")

	created, updated := 0, 0
	errs := pageErrors

	for _, token := range tokens {
		if ctx.Err() != nil {
			break
		}

		isNew, itemErr := o.syncGame(ctx, client, userID, token)
		switch {
		case itemErr == nil:
			o.advance(st, token)
		case errors.Is(itemErr, errSkipped):
			o.advance(st, token)
			continue
		case errors.Is(itemErr, context.Canceled), errors.Is(itemErr, context.DeadlineExceeded):
			// Cancellation is not an item failure; the loop exits at
			// the top of the next iteration.
			continue
		case errors.Is(itemErr, adapter.ErrUnauthorized):
			errs = append(errs, models.SyncError{GameToken: token, Message: itemErr.Error()})
			o.record(st, models.SyncError{GameToken: token, Message: itemErr.Error()})
			return o.finish(ctx, st, started, errs, itemErr)
		default:
			log.Warn().Err(itemErr).Str("game_token", token).Msg("game sync failed")
			errs = append(errs, models.SyncError{GameToken: token, Message: itemErr.Error()})
			o.record(st, models.SyncError{GameToken: token, Message: itemErr.Error()})
			continue
		}

		if isNew {
			created++
		} else {
			updated++
		}
	}

	result := models.SyncResult{
		Success:        len(errs) == 0 && ctx.Err() == nil,
		ItemsProcessed: o.snapshot(st).Processed,
		ItemsCreated:   created,
		ItemsUpdated:   updated,
		Errors:         errs,
	}
	return o.finish(ctx, st, started, errs, nil, result)
}

// errSkipped marks a game whose details are already persisted; it never
// leaves syncGame's callers.
var errSkipped = errors.New("already synced")

// syncGame fetches, normalizes and persists one game. The details_fetched
// flag is written only after the round set committed, so a run interrupted
// between the two writes re-fetches the game next time instead of skipping
// a half-synced row.
func (o *syncOrchestrator) syncGame(ctx context.Context, client adapter.RemoteClient, userID, token string) (isNew bool, err error) {
	log := logger.FromContext(ctx)

	done, err := o.games.DetailsFetched(ctx, token)
	if err != nil {
		return false, fmt.Errorf("probe game %s: %w", token, err)
	}
	if done {
		log.Debug().Str("game_token", token).Msg("details already fetched, skipping")
		return false, errSkipped
	}

	detail, err := client.FetchGameDetail(ctx, token)
	if err != nil {
		return false, fmt.Errorf("fetch game %s: %w", token, err)
	}

	game := BuildGame(userID, detail)
	rounds, warnings := BuildRounds(detail)
	for _, w := range warnings {
		log.Warn().Str("game_token", token).Msg(w)
	}

	gameID, isNew, err := o.games.UpsertGame(ctx, game)
	if err != nil {
		return false, fmt.Errorf("persist game %s: %w", token, err)
	}
	if err := o.games.ReplaceRounds(ctx, gameID, rounds); err != nil {
		return isNew, fmt.Errorf("persist rounds of game %s: %w", token, err)
	}

	game.ID = gameID
	game.DetailsFetched = true
	if _, _, err := o.games.UpsertGame(ctx, game); err != nil {
		return isNew, fmt.Errorf("mark game %s fetched: %w", token, err)
	}

	return isNew, nil
}

func (o *syncOrchestrator) collectTokens(ctx context.Context, client adapter.RemoteClient, st *runState, opts SyncOptions) ([]string, []models.SyncError, error) {
	o.transition(st, models.PhaseFetchingFeed, 0, 0, "walking activity feed")

	cfg := o.cfg
	if opts.MaxPages > 0 {
		cfg.MaxPages = opts.MaxPages
	}

	paginator := NewFeedPaginator(client, cfg, logger.FromContext(ctx))
	tokens, pageErrors, err := paginator.CollectGameTokens(ctx)
	for _, pe := range pageErrors {
		o.record(st, pe)
	}
	return tokens, pageErrors, err
}

func (o *syncOrchestrator) session(opts SyncOptions) string {
	if opts.Session != "" {
		return opts.Session
	}
	return o.defaultSession
}

// finish settles the run into its terminal phase and result. The optional
// trailing result argument carries the already-built summary for successful
// completions; failures and cancellations build a partial one here.
func (o *syncOrchestrator) finish(ctx context.Context, st *runState, started time.Time, errs []models.SyncError, runErr error, results ...models.SyncResult) (models.SyncResult, error) {
	log := logger.FromContext(ctx)

	var result models.SyncResult
	if len(results) > 0 {
		result = results[0]
	} else {
		result = models.SyncResult{
			Success:        false,
			ItemsProcessed: o.snapshot(st).Processed,
			Errors:         errs,
		}
	}
	result.DurationMS = time.Since(started).Milliseconds()
	if result.Errors == nil {
		result.Errors = []models.SyncError{}
	}

	phase := models.PhaseCompleted
	switch {
	case runErr != nil:
		phase = models.PhaseFailed
	case ctx.Err() != nil:
		phase = models.PhaseCancelled
	}

	now := time.Now()
	o.mu.Lock()
	st.phase = phase
	st.result = &result
	st.lastSync = &now
	observer := st.observer
	progress := models.Progress{RunID: st.runID, Phase: phase, Processed: st.processed, Total: st.total}
	o.mu.Unlock()

	o.notify(observer, progress)

	log.Info().
		Str("phase", string(phase)).
		Int("processed", result.ItemsProcessed).
		Int("created", result.ItemsCreated).
		Int("updated", result.ItemsUpdated).
		Int("errors", len(result.Errors)).
		Int64("duration_ms", result.DurationMS).
		Msg("sync run finished")

	return result, runErr
}

// transition moves the run into phase and emits a progress event.
func (o *syncOrchestrator) transition(st *runState, phase models.Phase, processed, total int, msg string) {
	o.mu.Lock()
	st.phase = phase
	st.processed = processed
	st.total = total
	observer := st.observer
	progress := models.Progress{RunID: st.runID, Phase: phase, Processed: processed, Total: total, Message: msg}
	o.mu.Unlock()

	o.notify(observer, progress)
}

// advance counts one processed identifier and emits a progress event.
func (o *syncOrchestrator) advance(st *runState, token string) {
	o.mu.Lock()
	st.processed++
	observer := st.observer
	progress := models.Progress{
		RunID:     st.runID,
		Phase:     st.phase,
		Processed: st.processed,
		Total:     st.total,
		Message:   token,
	}
	o.mu.Unlock()

	o.notify(observer, progress)
}

// record appends a recoverable error to the live status and emits a
// progress event for it, so observers see failed identifiers as well as
// successful ones.
func (o *syncOrchestrator) record(st *runState, syncErr models.SyncError) {
	o.mu.Lock()
	st.errors = append(st.errors, syncErr)
	observer := st.observer
	progress := models.Progress{
		RunID:     st.runID,
		Phase:     st.phase,
		Processed: st.processed,
		Total:     st.total,
		Message:   syncErr.Message,
	}
	o.mu.Unlock()

	o.notify(observer, progress)
}

func (o *syncOrchestrator) snapshot(st *runState) models.Progress {
	o.mu.Lock()
	defer o.mu.Unlock()
	return models.Progress{RunID: st.runID, Phase: st.phase, Processed: st.processed, Total: st.total}
}

func (o *syncOrchestrator) notify(observer ProgressObserver, progress models.Progress) {
	if observer != nil {
		observer(progress)
	}
}
