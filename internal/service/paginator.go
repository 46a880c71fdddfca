package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/colinz11/geoguessr-stats/internal/adapter"
	"github.com/colinz11/geoguessr-stats/internal/config"
	"github.com/colinz11/geoguessr-stats/internal/logger"
	"github.com/colinz11/geoguessr-stats/models"
)

// FeedPaginator walks the activity feed page by page and collects played-game
// tokens. Tokens are deduplicated across pages and returned in discovery
// order (newest first, matching the feed).
type FeedPaginator struct {
	client adapter.RemoteClient
	cfg    config.Sync
	logger *logger.Logger
}

// NewFeedPaginator builds a paginator for one run. cfg.MaxPages, when
// positive, caps the number of pages fetched.
func NewFeedPaginator(client adapter.RemoteClient, cfg config.Sync, log *logger.Logger) *FeedPaginator {
	return &FeedPaginator{client: client, cfg: cfg, logger: log}
}

// CollectGameTokens fetches feed pages until one of the stop conditions is
// hit: the feed returns an empty pagination token, the page cap is reached,
// or cfg.EmptyPageThreshold consecutive pages yield no new tokens.
//
// A page that keeps failing after its retry budget ends the walk early: the
// cursor cannot advance past it, so the tokens collected up to that point
// are returned together with a [models.SyncError] describing the lost tail.
// Only two conditions are fatal: an invalid session, and the very first page
// being unreachable ([ErrFeedUnavailable]).
func (p *FeedPaginator) CollectGameTokens(ctx context.Context) ([]string, []models.SyncError, error) {
	log := p.logger.With().Str("func", "CollectGameTokens").Logger()

	seen := make(map[string]struct{})
	var tokens []string
	var pageErrors []models.SyncError

	cursor := ""
	pages := 0
	staleStreak := 0

	for {
		page, err := p.fetchPage(ctx, cursor)
		if err != nil {
			if errors.Is(err, adapter.ErrUnauthorized) || errors.Is(err, context.Canceled) {
				return nil, pageErrors, err
			}
			if pages == 0 {
				return nil, pageErrors, fmt.Errorf("%w: %w", ErrFeedUnavailable, err)
			}

			// The cursor cannot move past a broken page, so the
			// remaining tail is unreachable this run. Keep what we
			// have and report the gap.
			log.Warn().Err(err).Int("pages", pages).Msg("feed page unreachable, stopping pagination")
			pageErrors = append(pageErrors, models.SyncError{
				Message: fmt.Sprintf("feed page %d unreachable, remaining history skipped: %v", pages+1, err),
			})
			return tokens, pageErrors, nil
		}
		pages++

		fresh := 0
		for _, entry := range page.Entries {
			payloads, perr := entry.GamePayloads()
			if perr != nil {
				log.Warn().Err(perr).Msg("skipping malformed feed entry")
				continue
			}
			for _, payload := range payloads {
				if payload.GameToken == "" {
					continue
				}
				if _, ok := seen[payload.GameToken]; ok {
					continue
				}
				seen[payload.GameToken] = struct{}{}
				tokens = append(tokens, payload.GameToken)
				fresh++
			}
		}

		if fresh == 0 {
			staleStreak++
		} else {
			staleStreak = 0
		}

		log.Debug().Int("page", pages).Int("new_tokens", fresh).Int("total", len(tokens)).Msg("feed page processed")

		switch {
		case page.PaginationToken == "":
			return tokens, pageErrors, nil
		case p.cfg.MaxPages > 0 && pages >= p.cfg.MaxPages:
			log.Info().Int("pages", pages).Msg("page cap reached")
			return tokens, pageErrors, nil
		case staleStreak >= p.cfg.EmptyPageThreshold:
			log.Info().Int("stale_pages", staleStreak).Msg("no new tokens in consecutive pages, stopping")
			return tokens, pageErrors, nil
		}

		cursor = page.PaginationToken
	}
}

// fetchPage requests one feed page, retrying transient failures up to
// cfg.PageRetryBudget times with cfg.PageCooldown between attempts.
func (p *FeedPaginator) fetchPage(ctx context.Context, cursor string) (models.FeedPage, error) {
	var lastErr error

	for attempt := 0; attempt <= p.cfg.PageRetryBudget; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return models.FeedPage{}, ctx.Err()
			case <-time.After(p.cfg.PageCooldown):
			}
		}

		page, err := p.client.ListFeedPage(ctx, cursor)
		if err == nil {
			return page, nil
		}
		if !errors.Is(err, adapter.ErrTransient) {
			return models.FeedPage{}, err
		}
		lastErr = err
	}

	return models.FeedPage{}, lastErr
}
