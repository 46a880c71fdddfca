package service

import (
	"fmt"
	"strings"

	"github.com/colinz11/geoguessr-stats/models"
)

const metersPerKilometer = 1000.0

// BuildGame flattens a detail payload into a persistable [models.Game].
// PlayedAt is taken from the start of the first round; games with no rounds
// keep the zero time.
func BuildGame(userID string, detail models.GameDetail) models.Game {
	game := models.Game{
		UserID:         userID,
		GameToken:      detail.Token,
		Mode:           detail.Mode,
		MapSlug:        detail.MapSlug,
		MapName:        detail.MapName,
		Points:         detail.Player.TotalScore.Amount,
		ForbidMoving:   detail.ForbidMoving,
		ForbidZooming:  detail.ForbidZooming,
		ForbidRotating: detail.ForbidRotating,
		Bounds: models.Bounds{
			MinLat: detail.Bounds.Min.Lat,
			MinLng: detail.Bounds.Min.Lng,
			MaxLat: detail.Bounds.Max.Lat,
			MaxLng: detail.Bounds.Max.Lng,
		},
	}

	if len(detail.Rounds) > 0 {
		game.PlayedAt = detail.Rounds[0].StartTime
	}

	return game
}

// BuildRounds zips the detail's actual locations with the player's guesses
// by position. The two lists are parallel in a well-formed payload; when one
// side is missing at an index, that round is dropped and a warning describing
// the gap is returned alongside the survivors. Round numbers always reflect
// play order, so a dropped round leaves a visible hole rather than renumbering
// its successors.
func BuildRounds(detail models.GameDetail) ([]models.Round, []string) {
	actuals := detail.Rounds
	guesses := detail.Player.Guesses

	n := len(actuals)
	if len(guesses) > n {
		n = len(guesses)
	}

	rounds := make([]models.Round, 0, n)
	var warnings []string

	for i := 0; i < n; i++ {
		if i >= len(actuals) {
			warnings = append(warnings, fmt.Sprintf("round %d: guess without an actual location, dropped", i+1))
			continue
		}
		if i >= len(guesses) {
			warnings = append(warnings, fmt.Sprintf("round %d: actual location without a guess, dropped", i+1))
			continue
		}

		actual, guess := actuals[i], guesses[i]
		rounds = append(rounds, models.Round{
			RoundNumber:      i + 1,
			ActualLat:        actual.Lat,
			ActualLng:        actual.Lng,
			ActualCountry:    actual.StreakLocationCode,
			GuessLat:         guess.Lat,
			GuessLng:         guess.Lng,
			GuessedCountry:   guess.StreakLocationCode,
			Score:            guess.RoundScoreInPoints,
			DistanceMeters:   guess.DistanceInMeters,
			DistanceKM:       guess.DistanceInMeters / metersPerKilometer,
			TimeSeconds:      guess.Time,
			IsCorrectCountry: isSameCountry(actual.StreakLocationCode, guess.StreakLocationCode),
		})
	}

	return rounds, warnings
}

// isSameCountry compares two country codes case-insensitively; two empty
// codes never count as a match.
func isSameCountry(actual, guessed string) bool {
	if actual == "" || guessed == "" {
		return false
	}
	return strings.EqualFold(actual, guessed)
}
