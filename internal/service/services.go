package service

import (
	"github.com/colinz11/geoguessr-stats/internal/adapter"
	"github.com/colinz11/geoguessr-stats/internal/config"
	"github.com/colinz11/geoguessr-stats/internal/logger"
	"github.com/colinz11/geoguessr-stats/internal/store"
)

// Services aggregates the application's service layer for injection into
// the transport layer and the background workers.
type Services struct {
	Sync  Syncer
	Games store.GameRepository
}

// NewServices wires the service layer. Remote clients produced for sync runs
// are wrapped with the detail-endpoint circuit breaker here, so every caller
// of the Syncer gets the same protection without knowing about it.
func NewServices(repos *store.Repositories, clients adapter.Factory, cfg *config.StructuredConfig, log *logger.Logger) *Services {
	guarded := adapter.Factory(func(session string) adapter.RemoteClient {
		return adapter.NewBreakerClient(clients(session), log)
	})

	return &Services{
		Sync:  NewSyncOrchestrator(guarded, repos.Games, cfg.Sync, cfg.Remote.Session, log),
		Games: repos.Games,
	}
}
