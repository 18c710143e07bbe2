package http

import (
	"errors"
	"net/http"

	"github.com/boletapp/gastify-sync/internal/service"
	"github.com/boletapp/gastify-sync/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrEmptyUpdate:             http.StatusBadRequest,
	service.ErrPageLimitOutOfRange:     http.StatusBadRequest,
	service.ErrWrongPassword:           http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrNotGroupMember:          http.StatusForbidden,
	service.ErrNotOwner:                http.StatusForbidden,
	service.ErrAlreadyMember:           http.StatusConflict,
	service.ErrGroupFull:               http.StatusConflict,
	service.ErrTransactionDeleted:      http.StatusConflict,

	// An expired checkpoint is not a client bug: the data it points at is
	// simply gone. 410 tells the client to reconcile instead of retrying.
	service.ErrCheckpointTooOld: http.StatusGone,

	store.ErrLoginAlreadyExists:  http.StatusConflict,
	store.ErrNoUserWasFound:      http.StatusNotFound,
	store.ErrGroupNotFound:       http.StatusNotFound,
	store.ErrTransactionNotFound: http.StatusNotFound,
	store.ErrTransactionNotSaved: http.StatusInternalServerError,
	store.ErrVersionConflict:     http.StatusConflict,

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
