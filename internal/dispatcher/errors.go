package dispatcher

import (
	"errors"
	"net/http"

	"github.com/weiawesome/stream-service/internal/domain"
)

const internalErrorMessage = "Internal server error"

// translate maps an action failure to the status code and message sent to
// the client. Persistence details never leave the process.
func translate(err error) (int, string) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrPersistence):
		return status, internalErrorMessage
	case errors.Is(err, domain.ErrBadRequest):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrRoomExists):
		status = http.StatusConflict
	default:
		return status, internalErrorMessage
	}

	var de *domain.Error
	if errors.As(err, &de) && de.Message != "" {
		return status, de.Message
	}
	return status, err.Error()
}
