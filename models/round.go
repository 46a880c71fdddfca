package models

// Round is one round of a persisted game, keyed by (GameID, RoundNumber).
// RoundNumber runs 1..N in the order the rounds were played; N is at most 5.
//
// Rounds are owned exclusively by their game: a re-sync replaces the whole
// round set for the game in one operation, never individual rows.
type Round struct {
	ID          int64 `json:"id"`
	GameID      int64 `json:"game_id"`
	RoundNumber int   `json:"round_number"`

	ActualLat     float64 `json:"actual_lat"`
	ActualLng     float64 `json:"actual_lng"`
	ActualCountry string  `json:"actual_country"`

	GuessLat       float64 `json:"guess_lat"`
	GuessLng       float64 `json:"guess_lng"`
	GuessedCountry string  `json:"guessed_country"`

	// Score is bounded [0, 5000] by the game rules.
	Score          int     `json:"score"`
	DistanceMeters float64 `json:"distance_meters"`
	DistanceKM     float64 `json:"distance_km"`
	TimeSeconds    int     `json:"time_seconds"`

	// IsCorrectCountry is derived at normalization time: true when the
	// actual and guessed country codes match case-insensitively.
	IsCorrectCountry bool `json:"is_correct_country"`
}
