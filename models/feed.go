package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// FeedEntryPlayedGame is the feed entry type for a finished game.
const FeedEntryPlayedGame = 1

// FeedPage is one page of the user's private activity feed.
// PaginationToken is opaque; an empty token on a response means the feed
// has no further pages.
type FeedPage struct {
	Entries         []FeedEntry `json:"entries"`
	PaginationToken string      `json:"paginationToken"`
}

// FeedEntry is a single activity item. Payload is kept raw because its
// shape depends on Type and, for played games, may be either one object
// or a batch array of objects.
type FeedEntry struct {
	Type    int             `json:"type"`
	Time    time.Time       `json:"time"`
	Payload json.RawMessage `json:"payload"`
}

// GamePayload is the played-game activity payload carried by a feed entry.
type GamePayload struct {
	GameToken string `json:"gameToken"`
	GameMode  string `json:"gameMode"`
	MapSlug   string `json:"mapSlug"`
	MapName   string `json:"mapName"`
	Points    int    `json:"points"`
}

// GamePayloads resolves the entry payload into a uniform slice. The feed
// serves the payload either as a single object or as an array of objects
// (batched entries); both shapes are decoded here, once, so callers never
// branch on the raw JSON again. The payload itself may additionally be
// wrapped in a JSON string.
//
// Entries that are not of type [FeedEntryPlayedGame] resolve to nil.
func (e FeedEntry) GamePayloads() ([]GamePayload, error) {
	if e.Type != FeedEntryPlayedGame || len(e.Payload) == 0 {
		return nil, nil
	}

	raw := bytes.TrimSpace(e.Payload)

	// Some feed responses double-encode the payload as a JSON string.
	if len(raw) > 0 && raw[0] == '"' {
		var inner string
		if err := json.Unmarshal(raw, &inner); err != nil {
			return nil, fmt.Errorf("unwrap feed payload string: %w", err)
		}
		raw = bytes.TrimSpace([]byte(inner))
	}

	if len(raw) == 0 {
		return nil, nil
	}

	if raw[0] == '[' {
		var batch []GamePayload
		if err := json.Unmarshal(raw, &batch); err != nil {
			return nil, fmt.Errorf("decode feed payload batch: %w", err)
		}
		return batch, nil
	}

	var single GamePayload
	if err := json.Unmarshal(raw, &single); err != nil {
		return nil, fmt.Errorf("decode feed payload: %w", err)
	}
	return []GamePayload{single}, nil
}
