package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/colinz11/geoguessr-stats/internal/logger"
	"github.com/colinz11/geoguessr-stats/internal/service"
	"github.com/colinz11/geoguessr-stats/internal/utils"
)

type syncRequest struct {
	UserID string `json:"user_id"`

	// MaxPages, when positive, caps the feed pages walked by this run.
	MaxPages int `json:"max_pages,omitempty"`

	// Session optionally overrides the configured session cookie.
	Session string `json:"session,omitempty"`
}

type syncStartedResponse struct {
	RunID string `json:"run_id"`
}

func (h *Handler) startSync(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req syncRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.UserID) == "" {
		utils.WriteJSONError(w, "user_id is required", http.StatusBadRequest)
		return
	}

	runID, err := h.services.Sync.Start(ctx, req.UserID, service.SyncOptions{
		MaxPages: req.MaxPages,
		Session:  req.Session,
	})
	if err != nil {
		log.Warn().Err(err).Str("user_id", req.UserID).Msg("sync start rejected")
		utils.WriteJSONError(w, err.Error(), statusFromError(err))
		return
	}

	log.Info().Str("user_id", req.UserID).Str("run_id", runID).Msg("sync run accepted")
	utils.WriteJSON(w, syncStartedResponse{RunID: runID}, http.StatusAccepted)
}

func (h *Handler) syncStatus(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		utils.WriteJSONError(w, "user_id is required", http.StatusBadRequest)
		return
	}

	utils.WriteJSON(w, h.services.Sync.Status(userID), http.StatusOK)
}

func (h *Handler) cancelSync(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req syncRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.UserID) == "" {
		utils.WriteJSONError(w, "user_id is required", http.StatusBadRequest)
		return
	}

	if err := h.services.Sync.Cancel(req.UserID); err != nil {
		utils.WriteJSONError(w, err.Error(), statusFromError(err))
		return
	}

	log.Info().Str("user_id", req.UserID).Msg("sync cancellation requested")
	utils.WriteJSON(w, map[string]string{"status": "cancelling"}, http.StatusOK)
}
