package service_test

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/colinz11/geoguessr-stats/internal/adapter"
	"github.com/colinz11/geoguessr-stats/internal/logger"
	"github.com/colinz11/geoguessr-stats/internal/mock"
	"github.com/colinz11/geoguessr-stats/internal/service"
	"github.com/colinz11/geoguessr-stats/internal/store"
	"github.com/colinz11/geoguessr-stats/models"
)

// fakeRemote serves canned feed pages (keyed by cursor) and game details.
// Optional gates let tests hold a call open to observe mid-run behavior.
type fakeRemote struct {
	pages      map[string]models.FeedPage
	details    map[string]models.GameDetail
	detailErrs map[string]error
	feedErr    error

	detailStarted chan struct{} // closed when the first detail fetch begins
	detailProceed chan struct{} // when set, detail fetches wait on it

	mu          sync.Mutex
	startedOnce sync.Once
	detailCalls map[string]int
}

func (f *fakeRemote) ListFeedPage(_ context.Context, cursor string) (models.FeedPage, error) {
	if f.feedErr != nil {
		return models.FeedPage{}, f.feedErr
	}
	page, ok := f.pages[cursor]
	if !ok {
		return models.FeedPage{}, fmt.Errorf("%w: unknown cursor %q", adapter.ErrNotFound, cursor)
	}
	return page, nil
}

func (f *fakeRemote) FetchGameDetail(_ context.Context, token string) (models.GameDetail, error) {
	f.mu.Lock()
	if f.detailCalls == nil {
		f.detailCalls = make(map[string]int)
	}
	f.detailCalls[token]++
	f.mu.Unlock()

	if f.detailStarted != nil {
		f.startedOnce.Do(func() { close(f.detailStarted) })
	}
	if f.detailProceed != nil {
		<-f.detailProceed
	}

	if err := f.detailErrs[token]; err != nil {
		return models.GameDetail{}, err
	}
	detail, ok := f.details[token]
	if !ok {
		return models.GameDetail{}, fmt.Errorf("fetch game detail %s: %w", token, adapter.ErrNotFound)
	}
	return detail, nil
}

func (f *fakeRemote) calls(token string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.detailCalls[token]
}

// fakeRepo is an in-memory GameRepository honoring the natural-key upsert
// and whole-set round replacement contracts.
type fakeRepo struct {
	mu     sync.Mutex
	nextID int64
	games  map[string]models.Game
	rounds map[int64][]models.Round

	replaceErrs map[string]error // keyed by game token
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		games:  make(map[string]models.Game),
		rounds: make(map[int64][]models.Round),
	}
}

func (r *fakeRepo) UpsertGame(_ context.Context, game models.Game) (int64, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.games[game.GameToken]; ok {
		game.ID = existing.ID
		r.games[game.GameToken] = game
		return existing.ID, false, nil
	}

	r.nextID++
	game.ID = r.nextID
	r.games[game.GameToken] = game
	return game.ID, true, nil
}

func (r *fakeRepo) ReplaceRounds(_ context.Context, gameID int64, rounds []models.Round) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for token, game := range r.games {
		if game.ID == gameID {
			if err := r.replaceErrs[token]; err != nil {
				return err
			}
		}
	}

	replaced := make([]models.Round, len(rounds))
	copy(replaced, rounds)
	for i := range replaced {
		replaced[i].GameID = gameID
	}
	r.rounds[gameID] = replaced
	return nil
}

func (r *fakeRepo) DetailsFetched(_ context.Context, gameToken string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	game, ok := r.games[gameToken]
	if !ok {
		return false, nil
	}
	return game.DetailsFetched, nil
}

func (r *fakeRepo) GetGameByToken(_ context.Context, gameToken string) (models.Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	game, ok := r.games[gameToken]
	if !ok {
		return models.Game{}, store.ErrGameNotFound
	}
	return game, nil
}

func (r *fakeRepo) GetRounds(_ context.Context, gameID int64) ([]models.Round, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Round(nil), r.rounds[gameID]...), nil
}

func (r *fakeRepo) ListGames(_ context.Context, _ models.GameFilter) ([]models.Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	games := make([]models.Game, 0, len(r.games))
	for _, game := range r.games {
		games = append(games, game)
	}
	return games, nil
}

func (r *fakeRepo) seed(game models.Game, rounds []models.Round) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	game.ID = r.nextID
	r.games[game.GameToken] = game
	r.rounds[game.ID] = append([]models.Round(nil), rounds...)
}

func newSyncer(remote adapter.RemoteClient, repo store.GameRepository) service.Syncer {
	factory := adapter.Factory(func(string) adapter.RemoteClient { return remote })
	return service.NewSyncOrchestrator(factory, repo, testSyncConfig(), "test-session", logger.Nop())
}

// detailFor builds a detail payload with n perfectly matching rounds.
func detailFor(token string, n int) models.GameDetail {
	detail := models.GameDetail{
		Token:   token,
		Mode:    "standard",
		MapSlug: "world",
		MapName: "World",
		Player:  models.DetailPlayer{TotalScore: models.ScoreAmount{Amount: n * 5000}},
	}
	start := time.Date(2026, 5, 12, 9, 30, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		detail.Rounds = append(detail.Rounds, models.DetailRound{
			Lat: 59.33, Lng: 18.06, StreakLocationCode: "se",
			StartTime: start.Add(time.Duration(i) * time.Minute),
		})
		detail.Player.Guesses = append(detail.Player.Guesses, models.DetailGuess{
			Lat: 59.34, Lng: 18.07, RoundScoreInPoints: 5000,
			DistanceInMeters: 0, Time: 42, StreakLocationCode: "SE",
		})
	}
	return detail
}

func singlePageRemote(details map[string]models.GameDetail, tokens ...string) *fakeRemote {
	return &fakeRemote{
		pages:   map[string]models.FeedPage{"": feedPage("", tokens...)},
		details: details,
	}
}

func TestSyncRun_SingleGame(t *testing.T) {
	remote := singlePageRemote(map[string]models.GameDetail{"g1": detailFor("g1", 1)}, "g1")
	repo := newFakeRepo()
	syncer := newSyncer(remote, repo)

	result, err := syncer.Run(context.Background(), "u1", service.SyncOptions{})
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, 1, result.ItemsProcessed)
	assert.Equal(t, 1, result.ItemsCreated)
	assert.Equal(t, 0, result.ItemsUpdated)
	assert.NotNil(t, result.Errors, "a clean run serializes errors as an empty list")
	assert.Empty(t, result.Errors)

	game, err := repo.GetGameByToken(context.Background(), "g1")
	require.NoError(t, err)
	assert.Equal(t, "u1", game.UserID)
	assert.Equal(t, 5000, game.Points)
	assert.True(t, game.DetailsFetched)
	assert.Equal(t, time.Date(2026, 5, 12, 9, 30, 0, 0, time.UTC), game.PlayedAt)

	rounds, err := repo.GetRounds(context.Background(), game.ID)
	require.NoError(t, err)
	require.Len(t, rounds, 1)
	assert.Equal(t, 5000, rounds[0].Score)
	assert.Zero(t, rounds[0].DistanceKM)
	assert.True(t, rounds[0].IsCorrectCountry, "se vs SE must match case-insensitively")
}

func TestSyncRun_SecondRunCreatesNothing(t *testing.T) {
	remote := singlePageRemote(map[string]models.GameDetail{
		"g1": detailFor("g1", 5),
		"g2": detailFor("g2", 5),
	}, "g1", "g2")
	repo := newFakeRepo()
	syncer := newSyncer(remote, repo)

	first, err := syncer.Run(context.Background(), "u1", service.SyncOptions{})
	require.NoError(t, err)
	require.Equal(t, 2, first.ItemsCreated)

	second, err := syncer.Run(context.Background(), "u1", service.SyncOptions{})
	require.NoError(t, err)

	assert.True(t, second.Success)
	assert.Equal(t, 0, second.ItemsCreated)
	assert.Equal(t, 0, second.ItemsUpdated)
	assert.Equal(t, 2, second.ItemsProcessed)
	assert.Equal(t, 1, remote.calls("g1"), "persisted games must not be re-fetched")
	assert.Equal(t, 1, remote.calls("g2"))
}

func TestSyncRun_PartialFailure(t *testing.T) {
	details := make(map[string]models.GameDetail)
	tokens := []string{"g1", "g2", "g3", "g4", "g5"}
	for _, token := range tokens {
		details[token] = detailFor(token, 2)
	}

	remote := singlePageRemote(details, tokens...)
	remote.detailErrs = map[string]error{
		"g3": fmt.Errorf("%w: status 500", adapter.ErrTransient),
	}
	repo := newFakeRepo()
	syncer := newSyncer(remote, repo)

	result, err := syncer.Run(context.Background(), "u1", service.SyncOptions{})
	require.NoError(t, err, "a single broken game must not fail the run")

	assert.False(t, result.Success)
	assert.Equal(t, 4, result.ItemsProcessed)
	assert.Equal(t, 4, result.ItemsCreated)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "g3", result.Errors[0].GameToken)

	_, err = repo.GetGameByToken(context.Background(), "g3")
	assert.ErrorIs(t, err, store.ErrGameNotFound)
	_, err = repo.GetGameByToken(context.Background(), "g4")
	assert.NoError(t, err, "games after the broken one must still be committed")
}

func TestSyncRun_ReplacesRoundSet(t *testing.T) {
	// A previous partial sync left 5 rounds but never set details_fetched,
	// so the game is re-fetched; the fresh payload has only 3 rounds.
	repo := newFakeRepo()
	repo.seed(models.Game{UserID: "u1", GameToken: "g1"}, []models.Round{
		{RoundNumber: 1}, {RoundNumber: 2}, {RoundNumber: 3}, {RoundNumber: 4}, {RoundNumber: 5},
	})

	remote := singlePageRemote(map[string]models.GameDetail{"g1": detailFor("g1", 3)}, "g1")
	syncer := newSyncer(remote, repo)

	result, err := syncer.Run(context.Background(), "u1", service.SyncOptions{})
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, 0, result.ItemsCreated)
	assert.Equal(t, 1, result.ItemsUpdated)

	game, err := repo.GetGameByToken(context.Background(), "g1")
	require.NoError(t, err)
	rounds, err := repo.GetRounds(context.Background(), game.ID)
	require.NoError(t, err)
	require.Len(t, rounds, 3, "stale rounds must be replaced, not merged")
	for i, round := range rounds {
		assert.Equal(t, i+1, round.RoundNumber)
	}
}

func TestSyncRun_RoundWriteFailureLeavesGameRefetchable(t *testing.T) {
	remote := singlePageRemote(map[string]models.GameDetail{"g1": detailFor("g1", 2)}, "g1")
	repo := newFakeRepo()
	repo.replaceErrs = map[string]error{"g1": store.ErrExecutingStatement}
	syncer := newSyncer(remote, repo)

	result, err := syncer.Run(context.Background(), "u1", service.SyncOptions{})
	require.NoError(t, err)

	assert.False(t, result.Success)
	require.Len(t, result.Errors, 1)

	// The parent row exists but must not carry the fetched flag: the next
	// run has to retry the whole game.
	done, err := repo.DetailsFetched(context.Background(), "g1")
	require.NoError(t, err)
	assert.False(t, done)
}

func TestSyncRun_AuthFailureFailsRun(t *testing.T) {
	remote := &fakeRemote{feedErr: fmt.Errorf("list feed page: %w", adapter.ErrUnauthorized)}
	syncer := newSyncer(remote, newFakeRepo())

	_, err := syncer.Run(context.Background(), "u1", service.SyncOptions{})
	require.ErrorIs(t, err, adapter.ErrUnauthorized)

	status := syncer.Status("u1")
	assert.Equal(t, models.PhaseFailed, status.Phase)
	require.NotNil(t, status.Result)
	assert.False(t, status.Result.Success)
}

func TestSyncRun_EmitsProgress(t *testing.T) {
	remote := singlePageRemote(map[string]models.GameDetail{
		"g1": detailFor("g1", 1),
		"g2": detailFor("g2", 1),
	}, "g1", "g2")
	syncer := newSyncer(remote, newFakeRepo())

	var mu sync.Mutex
	var events []models.Progress
	observer := func(p models.Progress) {
		mu.Lock()
		events = append(events, p)
		mu.Unlock()
	}

	_, err := syncer.Run(context.Background(), "u1", service.SyncOptions{Observer: observer})
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, events)
	assert.Equal(t, models.PhaseFetchingFeed, events[0].Phase)
	assert.Equal(t, models.PhaseCompleted, events[len(events)-1].Phase)

	var perItem int
	for _, event := range events {
		require.NotEmpty(t, event.RunID)
		if event.Phase == models.PhaseFetchingDetails && event.Message != "" && event.Message != "fetching game details" {
			perItem++
		}
	}
	assert.Equal(t, 2, perItem, "one event per processed identifier")
}

func TestSyncRun_EmitsProgressForFailedGame(t *testing.T) {
	remote := singlePageRemote(map[string]models.GameDetail{"g1": detailFor("g1", 1)}, "g1", "g2")
	remote.detailErrs = map[string]error{
		"g2": fmt.Errorf("%w: status 500", adapter.ErrTransient),
	}
	syncer := newSyncer(remote, newFakeRepo())

	var mu sync.Mutex
	var events []models.Progress
	observer := func(p models.Progress) {
		mu.Lock()
		events = append(events, p)
		mu.Unlock()
	}

	_, err := syncer.Run(context.Background(), "u1", service.SyncOptions{Observer: observer})
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	var failureEvents int
	for _, event := range events {
		if event.Phase == models.PhaseFetchingDetails && strings.Contains(event.Message, "g2") {
			failureEvents++
		}
	}
	assert.Equal(t, 1, failureEvents, "a failed identifier must surface to the observer")
}

func TestSync_OneRunPerUser(t *testing.T) {
	remote := singlePageRemote(map[string]models.GameDetail{"g1": detailFor("g1", 1)}, "g1")
	remote.detailStarted = make(chan struct{})
	remote.detailProceed = make(chan struct{})
	syncer := newSyncer(remote, newFakeRepo())

	_, err := syncer.Start(context.Background(), "u1", service.SyncOptions{})
	require.NoError(t, err)
	<-remote.detailStarted

	_, err = syncer.Start(context.Background(), "u1", service.SyncOptions{})
	assert.ErrorIs(t, err, service.ErrSyncAlreadyRunning)
	_, err = syncer.Run(context.Background(), "u1", service.SyncOptions{})
	assert.ErrorIs(t, err, service.ErrSyncAlreadyRunning)

	// A different user is unaffected by u1's run guard.
	assert.Equal(t, models.PhaseIdle, syncer.Status("u2").Phase)

	close(remote.detailProceed)
	require.Eventually(t, func() bool {
		return syncer.Status("u1").Phase == models.PhaseCompleted
	}, 2*time.Second, 10*time.Millisecond)

	// The slot is free again once the run is terminal.
	_, err = syncer.Start(context.Background(), "u1", service.SyncOptions{})
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		return syncer.Status("u1").Phase.Terminal()
	}, 2*time.Second, 10*time.Millisecond)
}

func TestSync_CancelStopsAtNextIdentifier(t *testing.T) {
	remote := singlePageRemote(map[string]models.GameDetail{
		"g1": detailFor("g1", 1),
		"g2": detailFor("g2", 1),
	}, "g1", "g2")
	remote.detailStarted = make(chan struct{})
	remote.detailProceed = make(chan struct{})
	syncer := newSyncer(remote, newFakeRepo())

	_, err := syncer.Start(context.Background(), "u1", service.SyncOptions{})
	require.NoError(t, err)
	<-remote.detailStarted

	require.NoError(t, syncer.Cancel("u1"))
	close(remote.detailProceed) // let the in-flight fetch finish

	require.Eventually(t, func() bool {
		return syncer.Status("u1").Phase == models.PhaseCancelled
	}, 2*time.Second, 10*time.Millisecond)

	status := syncer.Status("u1")
	require.NotNil(t, status.Result)
	assert.False(t, status.Result.Success)
	assert.Equal(t, 1, status.Result.ItemsProcessed, "the in-flight game finishes, the rest are abandoned")
	assert.Equal(t, 0, remote.calls("g2"))

	assert.ErrorIs(t, syncer.Cancel("u1"), service.ErrSyncNotRunning)
}

func TestSync_StatusForUnknownUser(t *testing.T) {
	syncer := newSyncer(&fakeRemote{}, newFakeRepo())

	status := syncer.Status("nobody")
	assert.Equal(t, models.PhaseIdle, status.Phase)
	assert.Nil(t, status.Result)
	assert.ErrorIs(t, syncer.Cancel("nobody"), service.ErrSyncNotRunning)
}

func TestSyncRun_SkipProbeShortCircuits(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockGameRepository(ctrl)
	remote := singlePageRemote(nil, "g1")

	repo.EXPECT().DetailsFetched(gomock.Any(), "g1").Return(true, nil)

	syncer := newSyncer(remote, repo)
	result, err := syncer.Run(context.Background(), "u1", service.SyncOptions{})
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, 1, result.ItemsProcessed)
	assert.Equal(t, 0, result.ItemsCreated)
	assert.Equal(t, 0, remote.calls("g1"), "no detail fetch for an already-persisted game")
}
