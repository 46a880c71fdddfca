package models

import "time"

// Game is one completed GeoGuessr game as persisted in the "games" table.
// GameToken is the natural key: re-syncing the same token updates the
// existing row, it never creates a second one.
type Game struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	GameToken string    `json:"game_token"`
	Mode      string    `json:"mode"`
	MapSlug   string    `json:"map_slug"`
	MapName   string    `json:"map_name"`
	Points    int       `json:"points"`
	PlayedAt  time.Time `json:"played_at"`

	ForbidMoving   bool `json:"forbid_moving"`
	ForbidZooming  bool `json:"forbid_zooming"`
	ForbidRotating bool `json:"forbid_rotating"`

	Bounds Bounds `json:"bounds"`

	// DetailsFetched marks that the per-round detail payload has been
	// downloaded and normalized. It is the idempotent skip signal: the
	// orchestrator never re-fetches a game whose row carries this flag.
	DetailsFetched bool `json:"details_fetched"`
}

// Bounds is the geographic bounding box of the game's map.
type Bounds struct {
	MinLat float64 `json:"min_lat"`
	MinLng float64 `json:"min_lng"`
	MaxLat float64 `json:"max_lat"`
	MaxLng float64 `json:"max_lng"`
}

// GameFilter narrows ListGames results. Zero values mean "no filter".
type GameFilter struct {
	UserID      string
	Mode        string
	MapSlug     string
	PlayedAfter time.Time
	Limit       uint64
}
