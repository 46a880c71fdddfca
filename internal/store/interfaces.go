// Package store contains the PostgreSQL persistence layer for synced games
// and rounds.
//
// Repositories return the sentinel errors declared in errors.go; callers
// match them with [errors.Is]. All methods obtain a context-scoped logger
// via [logger.FromContext] for structured tracing of database interactions.
package store

import (
	"context"

	"github.com/colinz11/geoguessr-stats/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/game_repository_mock.go -package=mock

// GameRepository persists games and their rounds.
//
// UpsertGame and ReplaceRounds together form the resync contract: the game
// row is replaced whole by natural key, and the round set is replaced as
// one unit because only the freshest detail payload knows the authoritative
// round count and order.
type GameRepository interface {
	// UpsertGame looks the game up by its natural key (GameToken). When
	// absent it inserts and returns isNew=true; when present it
	// overwrites all mutable fields in place (whole-record replace, not
	// field merge) and returns isNew=false. The returned id is the
	// database key either way.
	UpsertGame(ctx context.Context, game models.Game) (id int64, isNew bool, err error)

	// ReplaceRounds deletes every existing round of gameID and inserts
	// rounds in sequence order, inside one transaction. Passing an empty
	// slice clears the game's rounds.
	ReplaceRounds(ctx context.Context, gameID int64, rounds []models.Round) error

	// DetailsFetched reports whether a game with the given token exists
	// and carries the details_fetched flag. A missing game reports
	// (false, nil): it simply has not been synced yet.
	DetailsFetched(ctx context.Context, gameToken string) (bool, error)

	// GetGameByToken fetches one game by natural key. Returns
	// [ErrGameNotFound] when no row matches.
	GetGameByToken(ctx context.Context, gameToken string) (models.Game, error)

	// GetRounds returns the rounds of gameID ordered by round number.
	GetRounds(ctx context.Context, gameID int64) ([]models.Round, error)

	// ListGames returns games matching filter, most recent first.
	ListGames(ctx context.Context, filter models.GameFilter) ([]models.Game, error)
}
