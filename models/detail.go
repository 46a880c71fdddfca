package models

import "time"

// GameDetail is the full per-game record served by the game detail
// endpoint: the authoritative source for rounds and guesses.
type GameDetail struct {
	Token          string       `json:"token"`
	Mode           string       `json:"mode"`
	MapSlug        string       `json:"map"`
	MapName        string       `json:"mapName"`
	ForbidMoving   bool         `json:"forbidMoving"`
	ForbidZooming  bool         `json:"forbidZooming"`
	ForbidRotating bool         `json:"forbidRotating"`
	Bounds         DetailBounds  `json:"bounds"`
	Rounds         []DetailRound `json:"rounds"`
	Player         DetailPlayer  `json:"player"`
}

// DetailBounds mirrors the nested min/max coordinate pairs of the detail
// payload before they are flattened into [Bounds].
type DetailBounds struct {
	Min LatLng `json:"min"`
	Max LatLng `json:"max"`
}

type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// DetailRound is the actual (ground-truth) location of one round.
type DetailRound struct {
	Lat                float64   `json:"lat"`
	Lng                float64   `json:"lng"`
	StreakLocationCode string    `json:"streakLocationCode"`
	StartTime          time.Time `json:"startTime"`
}

// DetailPlayer carries the syncing player's results for the game.
type DetailPlayer struct {
	TotalScore ScoreAmount   `json:"totalScore"`
	Guesses    []DetailGuess `json:"guesses"`
}

type ScoreAmount struct {
	Amount int `json:"amount,string"`
}

// DetailGuess is the player's guess for one round, positionally aligned
// with [GameDetail.Rounds].
type DetailGuess struct {
	Lat                float64 `json:"lat"`
	Lng                float64 `json:"lng"`
	RoundScoreInPoints int     `json:"roundScoreInPoints"`
	DistanceInMeters   float64 `json:"distanceInMeters"`
	Time               int     `json:"time"`
	StreakLocationCode string  `json:"streakLocationCode"`
}
