package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/colinz11/geoguessr-stats/internal/logger"
	"github.com/colinz11/geoguessr-stats/internal/utils"
	"github.com/colinz11/geoguessr-stats/models"
)

type gameWithRounds struct {
	Game   models.Game    `json:"game"`
	Rounds []models.Round `json:"rounds"`
}

func (h *Handler) listGames(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	query := r.URL.Query()
	filter := models.GameFilter{
		UserID:  query.Get("user_id"),
		Mode:    query.Get("mode"),
		MapSlug: query.Get("map"),
	}

	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			utils.WriteJSONError(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		filter.Limit = limit
	}
	if raw := query.Get("played_after"); raw != "" {
		playedAfter, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			utils.WriteJSONError(w, "played_after must be an RFC 3339 timestamp", http.StatusBadRequest)
			return
		}
		filter.PlayedAfter = playedAfter
	}

	games, err := h.services.Games.ListGames(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("listing games failed")
		utils.WriteJSONError(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, games, http.StatusOK)
}

func (h *Handler) getGame(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	token := chi.URLParam(r, "token")

	game, err := h.services.Games.GetGameByToken(ctx, token)
	if err != nil {
		utils.WriteJSONError(w, err.Error(), statusFromError(err))
		return
	}

	rounds, err := h.services.Games.GetRounds(ctx, game.ID)
	if err != nil {
		log.Error().Err(err).Str("game_token", token).Msg("loading rounds failed")
		utils.WriteJSONError(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, gameWithRounds{Game: game, Rounds: rounds}, http.StatusOK)
}
