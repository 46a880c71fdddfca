package adapter

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colinz11/geoguessr-stats/internal/config"
	"github.com/colinz11/geoguessr-stats/internal/logger"
	"github.com/colinz11/geoguessr-stats/models"
)

func testRemoteConfig(baseURL string) config.Remote {
	return config.Remote{
		BaseURL:           baseURL,
		RequestTimeout:    5 * time.Second,
		MaxRetries:        1,
		RequestsPerSecond: 1000, // no pacing delays in tests
	}
}

// TestListFeedPage_DecodesPageAndSendsAuth verifies the happy path: the
// session cookie and pagination token are sent and the page is decoded.
func TestListFeedPage_DecodesPageAndSendsAuth(t *testing.T) {
	var gotCookie, gotToken string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v4/feed/private", r.URL.Path)
		gotCookie = r.Header.Get("Cookie")
		gotToken = r.URL.Query().Get("paginationToken")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"entries": [{"type": 1, "payload": "{\"gameToken\": \"g1\"}"}],
			"paginationToken": "next-page"
		}`))
	}))
	defer srv.Close()

	client := NewGeoGuessrClient(testRemoteConfig(srv.URL), "secret-cookie", logger.Nop())

	page, err := client.ListFeedPage(context.Background(), "cursor-1")
	require.NoError(t, err)

	assert.Equal(t, "_ncfa=secret-cookie", gotCookie)
	assert.Equal(t, "cursor-1", gotToken)
	assert.Equal(t, "next-page", page.PaginationToken)
	require.Len(t, page.Entries, 1)

	payloads, err := page.Entries[0].GamePayloads()
	require.NoError(t, err)
	require.Len(t, payloads, 1)
	assert.Equal(t, "g1", payloads[0].GameToken)
}

// TestListFeedPage_FirstPageOmitsToken verifies that an empty cursor sends
// no paginationToken parameter.
func TestListFeedPage_FirstPageOmitsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.False(t, r.URL.Query().Has("paginationToken"))
		_, _ = w.Write([]byte(`{"entries": [], "paginationToken": ""}`))
	}))
	defer srv.Close()

	client := NewGeoGuessrClient(testRemoteConfig(srv.URL), "cookie", logger.Nop())

	page, err := client.ListFeedPage(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, page.PaginationToken)
}

// TestGet_RetriesTransientFailures verifies that a 500 is retried and the
// second attempt can succeed.
func TestGet_RetriesTransientFailures(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`{"entries": [], "paginationToken": ""}`))
	}))
	defer srv.Close()

	client := NewGeoGuessrClient(testRemoteConfig(srv.URL), "cookie", logger.Nop())

	_, err := client.ListFeedPage(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
}

// TestGet_TransientBudgetExhausted verifies that a persistent 503 surfaces
// as ErrTransient after the attempt budget is spent.
func TestGet_TransientBudgetExhausted(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewGeoGuessrClient(testRemoteConfig(srv.URL), "cookie", logger.Nop())

	_, err := client.ListFeedPage(context.Background(), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransient)
	assert.Equal(t, 2, attempts) // initial + 1 retry
}

// TestGet_AuthFailureIsNotRetried verifies that 401 fails immediately with
// ErrUnauthorized: the session is dead, retrying wastes quota.
func TestGet_AuthFailureIsNotRetried(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		http.Error(w, "bad session", http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewGeoGuessrClient(testRemoteConfig(srv.URL), "cookie", logger.Nop())

	_, err := client.ListFeedPage(context.Background(), "")
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, 1, attempts)
}

// TestFetchGameDetail_NotFound verifies the 404 mapping.
func TestFetchGameDetail_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such game", http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewGeoGuessrClient(testRemoteConfig(srv.URL), "cookie", logger.Nop())

	_, err := client.FetchGameDetail(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

// TestFetchGameDetail_DecodesDetail verifies path construction and payload
// decoding for the detail endpoint.
func TestFetchGameDetail_DecodesDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v3/games/abc123", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"token": "abc123",
			"mapName": "World",
			"rounds": [{"lat": 59.3, "lng": 18.1, "streakLocationCode": "se"}],
			"player": {"totalScore": {"amount": "5000"}, "guesses": [{"lat": 59.2, "lng": 18.0, "roundScoreInPoints": 5000}]}
		}`))
	}))
	defer srv.Close()

	client := NewGeoGuessrClient(testRemoteConfig(srv.URL), "cookie", logger.Nop())

	detail, err := client.FetchGameDetail(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Equal(t, "abc123", detail.Token)
	assert.Equal(t, "World", detail.MapName)
	assert.Equal(t, 5000, detail.Player.TotalScore.Amount)
	require.Len(t, detail.Rounds, 1)
	assert.Equal(t, "se", detail.Rounds[0].StreakLocationCode)
}

// ── breaker ───────────────────────────────────────────────────────────────────

type failingClient struct {
	calls int
	err   error
}

func (f *failingClient) ListFeedPage(ctx context.Context, cursor string) (models.FeedPage, error) {
	return models.FeedPage{}, nil
}

func (f *failingClient) FetchGameDetail(ctx context.Context, token string) (models.GameDetail, error) {
	f.calls++
	if f.err != nil {
		return models.GameDetail{}, f.err
	}
	return models.GameDetail{Token: token}, nil
}

// TestBreakerClient_OpensAfterConsecutiveFailures verifies that repeated
// transient failures trip the breaker and later calls fail fast without
// reaching the inner client.
func TestBreakerClient_OpensAfterConsecutiveFailures(t *testing.T) {
	inner := &failingClient{err: ErrTransient}
	client := NewBreakerClient(inner, logger.Nop())

	for i := 0; i < 5; i++ {
		_, err := client.FetchGameDetail(context.Background(), "g")
		require.Error(t, err)
	}
	require.Equal(t, 5, inner.calls)

	_, err := client.FetchGameDetail(context.Background(), "g")
	assert.ErrorIs(t, err, ErrTransient)
	assert.Equal(t, 5, inner.calls, "open breaker must not call the inner client")
}

// TestBreakerClient_NotFoundDoesNotTrip verifies that not-found responses
// are not counted as API health failures.
func TestBreakerClient_NotFoundDoesNotTrip(t *testing.T) {
	inner := &failingClient{err: ErrNotFound}
	client := NewBreakerClient(inner, logger.Nop())

	for i := 0; i < 10; i++ {
		_, err := client.FetchGameDetail(context.Background(), "g")
		assert.ErrorIs(t, err, ErrNotFound)
	}
	assert.Equal(t, 10, inner.calls)
}

// TestBreakerClient_PassesThroughFeed verifies that the feed endpoint is
// not wrapped by the breaker.
func TestBreakerClient_PassesThroughFeed(t *testing.T) {
	inner := &failingClient{err: errors.New("detail only")}
	client := NewBreakerClient(inner, logger.Nop())

	_, err := client.ListFeedPage(context.Background(), "")
	assert.NoError(t, err)
}
