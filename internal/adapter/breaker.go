package adapter

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/colinz11/geoguessr-stats/internal/logger"
	"github.com/colinz11/geoguessr-stats/models"
)

// breakerClient wraps a [RemoteClient] with a circuit breaker on the game
// detail endpoint. A long run can issue hundreds of detail fetches; once
// the API starts failing consistently the breaker fails the remaining
// fetches fast instead of spending a full retry budget on each one.
//
// The feed endpoint is not wrapped: the paginator has its own page-level
// failure policy and issues far fewer calls.
type breakerClient struct {
	inner RemoteClient
	cb    *gobreaker.CircuitBreaker[models.GameDetail]
}

// NewBreakerClient wraps inner with a circuit breaker on FetchGameDetail.
//
// Settings: the breaker opens after 5 consecutive failures, stays open for
// 30 seconds, and allows 1 trial request in half-open state. Auth and
// not-found responses do not count as failures: they say nothing about
// API health.
func NewBreakerClient(inner RemoteClient, log *logger.Logger) RemoteClient {
	settings := gobreaker.Settings{
		Name:        "geoguessr-game-detail",
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			return errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrNotFound)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state change")
		},
	}

	return &breakerClient{
		inner: inner,
		cb:    gobreaker.NewCircuitBreaker[models.GameDetail](settings),
	}
}

func (b *breakerClient) ListFeedPage(ctx context.Context, cursor string) (models.FeedPage, error) {
	return b.inner.ListFeedPage(ctx, cursor)
}

func (b *breakerClient) FetchGameDetail(ctx context.Context, token string) (models.GameDetail, error) {
	detail, err := b.cb.Execute(func() (models.GameDetail, error) {
		return b.inner.FetchGameDetail(ctx, token)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return models.GameDetail{}, fmt.Errorf("%w: circuit breaker open", ErrTransient)
		}
		return models.GameDetail{}, err
	}
	return detail, nil
}
