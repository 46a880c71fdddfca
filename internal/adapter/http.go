package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"

	"github.com/colinz11/geoguessr-stats/internal/config"
	"github.com/colinz11/geoguessr-stats/internal/logger"
	"github.com/colinz11/geoguessr-stats/models"
)

const (
	feedPath       = "/api/v4/feed/private"
	gameDetailPath = "/api/v3/games/{token}"

	sessionCookieName = "_ncfa"

	// initialBackoff doubles on every retry (500ms, 1s, 2s, ...).
	initialBackoff = 500 * time.Millisecond
)

type geoGuessrClient struct {
	client  *resty.Client
	session string

	limiter    *rate.Limiter
	maxRetries int

	logger *logger.Logger
}

// NewGeoGuessrClient constructs a [RemoteClient] talking to the GeoGuessr
// API at cfg.BaseURL, authenticated by the session cookie value. Every
// request passes the shared rate limiter first; transient failures are
// retried up to cfg.MaxRetries times with exponential backoff.
func NewGeoGuessrClient(cfg config.Remote, session string, log *logger.Logger) RemoteClient {
	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.RequestTimeout)

	return &geoGuessrClient{
		client:     cli,
		session:    strings.TrimSpace(session),
		limiter:    rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
		maxRetries: cfg.MaxRetries,
		logger:     log,
	}
}

// NewFactory returns a [Factory] that builds one client per session cookie
// from the shared remote configuration.
func NewFactory(cfg config.Remote, log *logger.Logger) Factory {
	return func(session string) RemoteClient {
		return NewGeoGuessrClient(cfg, session, log)
	}
}

// ListFeedPage implements [RemoteClient]. It GETs one page of the private
// feed, passing cursor as the paginationToken query parameter when set.
func (g *geoGuessrClient) ListFeedPage(ctx context.Context, cursor string) (models.FeedPage, error) {
	query := map[string]string{}
	if cursor != "" {
		query["paginationToken"] = cursor
	}

	var page models.FeedPage
	if err := g.get(ctx, feedPath, nil, query, &page); err != nil {
		return models.FeedPage{}, fmt.Errorf("list feed page: %w", err)
	}
	return page, nil
}

// FetchGameDetail implements [RemoteClient]. It GETs the full detail
// payload for one game token.
func (g *geoGuessrClient) FetchGameDetail(ctx context.Context, token string) (models.GameDetail, error) {
	if strings.TrimSpace(token) == "" {
		return models.GameDetail{}, errors.New("empty game token")
	}

	var detail models.GameDetail
	if err := g.get(ctx, gameDetailPath, map[string]string{"token": token}, nil, &detail); err != nil {
		return models.GameDetail{}, fmt.Errorf("fetch game detail %s: %w", token, err)
	}
	return detail, nil
}

// get performs one authenticated GET with pacing, bounded retry of
// transient failures, and JSON decoding into out.
//
// Retry policy: [ErrUnauthorized], [ErrNotFound], and other 4xx responses
// return immediately; transport errors and [ErrTransient] responses retry
// with exponential backoff until the attempt budget is spent. Backoff
// waits observe ctx.
func (g *geoGuessrClient) get(ctx context.Context, path string, pathParams, query map[string]string, out any) error {
	log := logger.FromContext(ctx)

	var lastErr error
	for attempt := 0; attempt <= g.maxRetries; attempt++ {
		if err := g.limiter.Wait(ctx); err != nil {
			return err
		}

		req := g.client.R().
			SetContext(ctx).
			SetHeader("Cookie", sessionCookieName+"="+g.session)
		if len(pathParams) > 0 {
			req.SetPathParams(pathParams)
		}
		if len(query) > 0 {
			req.SetQueryParams(query)
		}

		resp, err := req.Get(path)
		switch {
		case err != nil:
			lastErr = fmt.Errorf("%w: %v", ErrTransient, err)
		default:
			mapped := mapHTTPError(resp)
			if mapped == nil {
				if err := json.Unmarshal(resp.Body(), out); err != nil {
					return fmt.Errorf("decode response: %w", err)
				}
				return nil
			}
			if !errors.Is(mapped, ErrTransient) {
				return mapped
			}
			lastErr = mapped
		}

		if attempt == g.maxRetries {
			break
		}

		backoff := initialBackoff << attempt
		log.Warn().
			Str("path", path).
			Int("attempt", attempt+1).
			Dur("backoff", backoff).
			Err(lastErr).
			Msg("transient api failure, backing off")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}

	return fmt.Errorf("request failed after %d attempts: %w", g.maxRetries+1, lastErr)
}
