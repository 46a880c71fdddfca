package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"

	"github.com/colinz11/geoguessr-stats/internal/logger"
	"github.com/colinz11/geoguessr-stats/models"
)

// gameRepository is the PostgreSQL-backed implementation of
// [GameRepository]. It executes all game and round operations directly
// against the "games" and "rounds" tables using the embedded [*DB]
// connection.
type gameRepository struct {
	*DB
	logger *logger.Logger
}

// NewGameRepository constructs a [GameRepository] backed by the provided
// database connection and logger.
//
// The logger parameter is stored for fallback logging; most methods prefer
// the context-scoped logger obtained via [logger.FromContext].
func NewGameRepository(db *DB, logger *logger.Logger) GameRepository {
	logger.Debug().Msg("creating game repository")
	return &gameRepository{
		DB:     db,
		logger: logger,
	}
}

// UpsertGame implements [GameRepository]. The lookup-then-write pair is not
// guarded against concurrent writers of the same token; the orchestrator's
// one-run-per-user rule is the concurrency control.
func (g *gameRepository) UpsertGame(ctx context.Context, game models.Game) (int64, bool, error) {
	log := logger.FromContext(ctx)

	var id int64
	err := g.DB.QueryRowContext(ctx, findGameIDByToken, game.GameToken).Scan(&id)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		return g.insertGame(ctx, game)
	case err != nil:
		log.Err(err).
			Str("func", "gameRepository.UpsertGame").
			Str("game_token", game.GameToken).
			Msg("failed to look up game by token")
		return 0, false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if err := g.updateGame(ctx, id, game); err != nil {
		return 0, false, err
	}
	return id, false, nil
}

func (g *gameRepository) insertGame(ctx context.Context, game models.Game) (int64, bool, error) {
	log := logger.FromContext(ctx)

	var id int64
	err := g.DB.QueryRowContext(ctx, insertGame,
		game.UserID,
		game.GameToken,
		game.Mode,
		game.MapSlug,
		game.MapName,
		game.Points,
		game.PlayedAt,
		game.ForbidMoving,
		game.ForbidZooming,
		game.ForbidRotating,
		game.Bounds.MinLat,
		game.Bounds.MinLng,
		game.Bounds.MaxLat,
		game.Bounds.MaxLng,
		game.DetailsFetched,
	).Scan(&id)
	if err != nil {
		log.Err(err).
			Str("func", "gameRepository.insertGame").
			Str("game_token", game.GameToken).
			Msg("failed to insert game")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return 0, false, ErrDuplicateGameToken
		default:
			return 0, false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	return id, true, nil
}

func (g *gameRepository) updateGame(ctx context.Context, id int64, game models.Game) error {
	log := logger.FromContext(ctx)

	res, err := g.DB.ExecContext(ctx, updateGameByID,
		id,
		game.UserID,
		game.Mode,
		game.MapSlug,
		game.MapName,
		game.Points,
		game.PlayedAt,
		game.ForbidMoving,
		game.ForbidZooming,
		game.ForbidRotating,
		game.Bounds.MinLat,
		game.Bounds.MinLng,
		game.Bounds.MaxLat,
		game.Bounds.MaxLng,
		game.DetailsFetched,
	)
	if err != nil {
		log.Err(err).
			Str("func", "gameRepository.updateGame").
			Str("game_token", game.GameToken).
			Msg("failed to update game")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrGameNotSaved
	}

	return nil
}

// ReplaceRounds implements [GameRepository]. Delete and bulk insert run in
// one transaction, so readers never observe a partially replaced round set.
func (g *gameRepository) ReplaceRounds(ctx context.Context, gameID int64, rounds []models.Round) error {
	log := logger.FromContext(ctx)

	tx, err := g.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "gameRepository.ReplaceRounds").
			Int64("game_id", gameID).
			Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err = tx.ExecContext(ctx, deleteRoundsByGame, gameID); err != nil {
		log.Err(err).
			Str("func", "gameRepository.ReplaceRounds").
			Int64("game_id", gameID).
			Msg("failed to delete existing rounds")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if len(rounds) > 0 {
		builder := sq.Insert("rounds").
			Columns("game_id", "round_number",
				"actual_lat", "actual_lng", "actual_country",
				"guess_lat", "guess_lng", "guessed_country",
				"score", "distance_meters", "distance_km", "time_seconds", "is_correct_country").
			PlaceholderFormat(sq.Dollar)

		for _, r := range rounds {
			builder = builder.Values(gameID, r.RoundNumber,
				r.ActualLat, r.ActualLng, r.ActualCountry,
				r.GuessLat, r.GuessLng, r.GuessedCountry,
				r.Score, r.DistanceMeters, r.DistanceKM, r.TimeSeconds, r.IsCorrectCountry)
		}

		query, args, err := builder.ToSql()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}

		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			log.Err(err).
				Str("func", "gameRepository.ReplaceRounds").
				Int64("game_id", gameID).
				Int("rounds", len(rounds)).
				Msg("failed to insert rounds")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

// DetailsFetched implements [GameRepository].
func (g *gameRepository) DetailsFetched(ctx context.Context, gameToken string) (bool, error) {
	log := logger.FromContext(ctx)

	var fetched bool
	err := g.DB.QueryRowContext(ctx, detailsFetchedByToken, gameToken).Scan(&fetched)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return false, nil
	case err != nil:
		log.Err(err).
			Str("func", "gameRepository.DetailsFetched").
			Str("game_token", gameToken).
			Msg("failed to query details_fetched flag")
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return fetched, nil
}

// GetGameByToken implements [GameRepository].
func (g *gameRepository) GetGameByToken(ctx context.Context, gameToken string) (models.Game, error) {
	log := logger.FromContext(ctx)

	var game models.Game
	err := g.DB.QueryRowContext(ctx, findGameByToken, gameToken).Scan(
		&game.ID,
		&game.UserID,
		&game.GameToken,
		&game.Mode,
		&game.MapSlug,
		&game.MapName,
		&game.Points,
		&game.PlayedAt,
		&game.ForbidMoving,
		&game.ForbidZooming,
		&game.ForbidRotating,
		&game.Bounds.MinLat,
		&game.Bounds.MinLng,
		&game.Bounds.MaxLat,
		&game.Bounds.MaxLng,
		&game.DetailsFetched,
	)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.Game{}, ErrGameNotFound
	case err != nil:
		log.Err(err).
			Str("func", "gameRepository.GetGameByToken").
			Str("game_token", gameToken).
			Msg("failed to scan game row")
		return models.Game{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return game, nil
}

// GetRounds implements [GameRepository].
func (g *gameRepository) GetRounds(ctx context.Context, gameID int64) ([]models.Round, error) {
	log := logger.FromContext(ctx)

	rows, err := g.DB.QueryContext(ctx, getRoundsByGame, gameID)
	if err != nil {
		log.Err(err).
			Str("func", "gameRepository.GetRounds").
			Int64("game_id", gameID).
			Msg("failed to execute rounds query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	rounds := make([]models.Round, 0, 5)
	for rows.Next() {
		var r models.Round
		if err := rows.Scan(
			&r.ID,
			&r.GameID,
			&r.RoundNumber,
			&r.ActualLat,
			&r.ActualLng,
			&r.ActualCountry,
			&r.GuessLat,
			&r.GuessLng,
			&r.GuessedCountry,
			&r.Score,
			&r.DistanceMeters,
			&r.DistanceKM,
			&r.TimeSeconds,
			&r.IsCorrectCountry,
		); err != nil {
			log.Err(err).
				Str("func", "gameRepository.GetRounds").
				Int64("game_id", gameID).
				Msg("failed to scan round row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		rounds = append(rounds, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return rounds, nil
}

// ListGames implements [GameRepository]. The filter is assembled with
// squirrel so optional criteria compose without manual placeholder
// bookkeeping.
func (g *gameRepository) ListGames(ctx context.Context, filter models.GameFilter) ([]models.Game, error) {
	log := logger.FromContext(ctx)

	builder := sq.Select("id", "user_id", "game_token", "mode", "map_slug", "map_name",
		"points", "played_at",
		"forbid_moving", "forbid_zooming", "forbid_rotating",
		"min_lat", "min_lng", "max_lat", "max_lng", "details_fetched").
		From("games").
		OrderBy("played_at DESC").
		PlaceholderFormat(sq.Dollar)

	if filter.UserID != "" {
		builder = builder.Where(sq.Eq{"user_id": filter.UserID})
	}
	if filter.Mode != "" {
		builder = builder.Where(sq.Eq{"mode": filter.Mode})
	}
	if filter.MapSlug != "" {
		builder = builder.Where(sq.Eq{"map_slug": filter.MapSlug})
	}
	if !filter.PlayedAfter.IsZero() {
		builder = builder.Where(sq.GtOrEq{"played_at": filter.PlayedAfter})
	}
	if filter.Limit > 0 {
		builder = builder.Limit(filter.Limit)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := g.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "gameRepository.ListGames").
			Str("user_id", filter.UserID).
			Msg("failed to execute games query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	games := make([]models.Game, 0, 50)
	for rows.Next() {
		var game models.Game
		if err := rows.Scan(
			&game.ID,
			&game.UserID,
			&game.GameToken,
			&game.Mode,
			&game.MapSlug,
			&game.MapName,
			&game.Points,
			&game.PlayedAt,
			&game.ForbidMoving,
			&game.ForbidZooming,
			&game.ForbidRotating,
			&game.Bounds.MinLat,
			&game.Bounds.MinLng,
			&game.Bounds.MaxLat,
			&game.Bounds.MaxLng,
			&game.DetailsFetched,
		); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		games = append(games, game)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return games, nil
}
