package workers

import (
	"github.com/colinz11/geoguessr-stats/internal/config"
	"github.com/colinz11/geoguessr-stats/internal/logger"
	"github.com/colinz11/geoguessr-stats/internal/service"
)

type Workers struct {
	workers []Worker
}

// NewWorkers assembles the application's background workers. The periodic
// sync worker is registered only when both a sync interval and a default
// user are configured.
func NewWorkers(services *service.Services, cfg *config.StructuredConfig, log *logger.Logger) *Workers {
	var ws []Worker

	if cfg.Workers.SyncInterval > 0 && cfg.App.UserID != "" {
		ws = append(ws, NewSyncWorker(services.Sync, cfg.App.UserID, cfg.Workers.SyncInterval, log))
	} else {
		log.Info().Msg("periodic sync worker disabled")
	}

	return &Workers{workers: ws}
}

func (w *Workers) Run() {
	for _, worker := range w.workers {
		worker.Run()
	}
}

func (w *Workers) Stop() {
	for _, worker := range w.workers {
		worker.Stop()
	}
}
