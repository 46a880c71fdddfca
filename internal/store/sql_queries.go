package store

const (
	gameColumns = `id, user_id, game_token, mode, map_slug, map_name, points, played_at,
		forbid_moving, forbid_zooming, forbid_rotating,
		min_lat, min_lng, max_lat, max_lng, details_fetched`

	findGameByToken = `SELECT ` + gameColumns + `
		FROM games
		WHERE game_token = $1;`

	findGameIDByToken = `SELECT id
		FROM games
		WHERE game_token = $1;`

	detailsFetchedByToken = `SELECT details_fetched
		FROM games
		WHERE game_token = $1;`

	insertGame = `INSERT INTO games (
			user_id,
			game_token,
			mode,
			map_slug,
			map_name,
			points,
			played_at,
			forbid_moving,
			forbid_zooming,
			forbid_rotating,
			min_lat,
			min_lng,
			max_lat,
			max_lng,
			details_fetched
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id;`

	updateGameByID = `UPDATE games
		SET user_id = $2,
			mode = $3,
			map_slug = $4,
			map_name = $5,
			points = $6,
			played_at = $7,
			forbid_moving = $8,
			forbid_zooming = $9,
			forbid_rotating = $10,
			min_lat = $11,
			min_lng = $12,
			max_lat = $13,
			max_lng = $14,
			details_fetched = $15
		WHERE id = $1;`

	deleteRoundsByGame = `DELETE FROM rounds
		WHERE game_id = $1;`

	getRoundsByGame = `SELECT id, game_id, round_number,
			actual_lat, actual_lng, actual_country,
			guess_lat, guess_lng, guessed_country,
			score, distance_meters, distance_km, time_seconds, is_correct_country
		FROM rounds
		WHERE game_id = $1
		ORDER BY round_number;`
)
