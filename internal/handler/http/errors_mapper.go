package http

import (
	"errors"
	"net/http"

	"github.com/colinz11/geoguessr-stats/internal/adapter"
	"github.com/colinz11/geoguessr-stats/internal/service"
	"github.com/colinz11/geoguessr-stats/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrSyncAlreadyRunning: http.StatusConflict,
	service.ErrSyncNotRunning:     http.StatusConflict,
	service.ErrFeedUnavailable:    http.StatusBadGateway,

	adapter.ErrUnauthorized: http.StatusBadGateway,
	adapter.ErrTransient:    http.StatusBadGateway,
	adapter.ErrNotFound:     http.StatusBadGateway,

	store.ErrGameNotFound:       http.StatusNotFound,
	store.ErrGameNotSaved:       http.StatusInternalServerError,
	store.ErrDuplicateGameToken: http.StatusConflict,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrExecutingStatement:   http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
