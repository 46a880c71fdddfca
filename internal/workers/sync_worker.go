package workers

import (
	"context"
	"errors"
	"time"

	"github.com/colinz11/geoguessr-stats/internal/logger"
	"github.com/colinz11/geoguessr-stats/internal/service"
)

// syncWorker periodically re-syncs the configured user's game history so
// newly played games show up without anyone calling the HTTP API.
type syncWorker struct {
	syncer   service.Syncer
	userID   string
	interval time.Duration
	logger   *logger.Logger

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

func NewSyncWorker(syncer service.Syncer, userID string, interval time.Duration, log *logger.Logger) Worker {
	ctx, cancel := context.WithCancel(context.Background())
	return &syncWorker{
		syncer:   syncer,
		userID:   userID,
		interval: interval,
		logger:   log,
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
}

func (s *syncWorker) Run() {
	s.logger.Info().
		Str("user_id", s.userID).
		Dur("interval", s.interval).
		Msg("periodic sync worker started")

	go s.loop()
}

func (s *syncWorker) Stop() {
	s.cancel()
	<-s.done
	s.logger.Info().Str("user_id", s.userID).Msg("periodic sync worker stopped")
}

func (s *syncWorker) loop() {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.runOnce()
		}
	}
}

func (s *syncWorker) runOnce() {
	result, err := s.syncer.Run(s.ctx, s.userID, service.SyncOptions{})
	switch {
	case errors.Is(err, service.ErrSyncAlreadyRunning):
		s.logger.Debug().Str("user_id", s.userID).Msg("sync already in flight, skipping tick")
	case err != nil:
		s.logger.Error().Err(err).Str("user_id", s.userID).Msg("periodic sync failed")
	default:
		s.logger.Info().
			Str("user_id", s.userID).
			Int("processed", result.ItemsProcessed).
			Int("created", result.ItemsCreated).
			Int("updated", result.ItemsUpdated).
			Int("errors", len(result.Errors)).
			Msg("periodic sync finished")
	}
}
