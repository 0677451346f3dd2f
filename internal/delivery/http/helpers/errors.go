package helpers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"eventbooking/internal/domain"
)

// WriteServiceError maps a service error onto the envelope. Client faults carry
// the error text; anything unclassified is logged and answered with a generic 500.
func WriteServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var maxBytes *http.MaxBytesError
	switch {
	case errors.Is(err, domain.ErrInvalidArgument):
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		WriteJSONError(w, http.StatusUnauthorized, ErrCodeUnauthorized, "invalid credentials")
	case errors.Is(err, domain.ErrForbidden):
		WriteJSONError(w, http.StatusForbidden, ErrCodeForbidden, "forbidden")
	case errors.Is(err, domain.ErrNotFound):
		WriteJSONError(w, http.StatusNotFound, ErrCodeNotFound, "not found")
	case errors.Is(err, domain.ErrDuplicate):
		WriteJSONError(w, http.StatusConflict, ErrCodeConflict, duplicateMessage(err))
	case errors.Is(err, domain.ErrEventFull):
		WriteJSONError(w, http.StatusConflict, ErrCodeConflict, domain.ErrEventFull.Error())
	case errors.Is(err, domain.ErrAlreadyBooked):
		WriteJSONError(w, http.StatusConflict, ErrCodeConflict, domain.ErrAlreadyBooked.Error())
	case errors.Is(err, domain.ErrTooLarge), errors.As(err, &maxBytes):
		WriteJSONError(w, http.StatusRequestEntityTooLarge, ErrCodePayloadTooLarge, "file too large")
	default:
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		WriteJSONError(w, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")
	}
}

func duplicateMessage(err error) string {
	var dup *domain.DuplicateFieldError
	if errors.As(err, &dup) {
		return dup.Error()
	}
	return err.Error()
}

// PathID parses a positive numeric path parameter. On failure it writes a 400 and returns false.
func PathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	raw := r.PathValue(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, "invalid "+name)
		return 0, false
	}
	return id, true
}
