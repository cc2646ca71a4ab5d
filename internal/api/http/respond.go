package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"rental-ops-backend/internal/domain"
	"rental-ops-backend/internal/logger"
	"rental-ops-backend/internal/ops"
	"rental-ops-backend/internal/service"
	"rental-ops-backend/internal/storage"
)

type errorResponse struct {
	Error          string              `json:"error"`
	BlockingIssues []ops.BlockingIssue `json:"blockingIssues,omitempty"`
	MissingItems   []ops.MissingItem   `json:"missingItems,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeError maps service errors onto HTTP statuses. Unknown errors are logged
// and reported as 500 without leaking details.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var blocked *service.BlockedError
	var incomplete *service.IncompleteError

	switch {
	case errors.As(err, &blocked):
		writeJSON(w, http.StatusConflict, errorResponse{Error: service.ErrWorkflowBlocked.Error(), BlockingIssues: blocked.Issues})
	case errors.As(err, &incomplete):
		writeJSON(w, http.StatusConflict, errorResponse{Error: service.ErrStepsIncomplete.Error(), MissingItems: incomplete.Missing})
	case errors.Is(err, service.ErrBookingNotFound), errors.Is(err, domain.ErrNotFound), errors.Is(err, storage.ErrNotFound):
		writeMessage(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidTransition), errors.Is(err, service.ErrNotDelivery), errors.Is(err, ops.ErrBookingClosed):
		writeMessage(w, http.StatusConflict, err.Error())
	case errors.Is(err, ops.ErrReasonRequired), errors.Is(err, ops.ErrEndBeforeStart), errors.Is(err, service.ErrInvalidPhoto), errors.Is(err, service.ErrInvalidDriver):
		writeMessage(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, storage.ErrTooLarge):
		writeMessage(w, http.StatusRequestEntityTooLarge, err.Error())
	case errors.Is(err, storage.ErrInvalidKey):
		writeMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		writeMessage(w, http.StatusUnauthorized, err.Error())
	default:
		logger.Error("request failed", "route", routeKey(r), "error", err)
		writeMessage(w, http.StatusInternalServerError, "internal error")
	}
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
