package http

import (
	"errors"
	"net/http"

	"github.com/oyugijr/EchoTask/internal/service"
	"github.com/oyugijr/EchoTask/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrEmptyDeviceID:           http.StatusBadRequest,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,

	store.ErrNoteNotFound:            http.StatusNotFound,
	store.ErrNoteNotSaved:            http.StatusInternalServerError,
	store.ErrDeviceNotFound:          http.StatusNotFound,
	store.ErrDeviceAlreadyRegistered: http.StatusConflict,

	store.ErrBuildingSQLQuery:   http.StatusInternalServerError,
	store.ErrExecutingQuery:     http.StatusInternalServerError,
	store.ErrExecutingStatement: http.StatusInternalServerError,
	store.ErrScanningRow:        http.StatusInternalServerError,
	store.ErrScanningRows:       http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
