package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"soundhub/internal/middleware"
	"soundhub/internal/model"

	"github.com/rs/zerolog"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError writes an error response with the given status code and message.
func writeError(w http.ResponseWriter, r *http.Request, status int, message string, logger zerolog.Logger) {
	correlationID := middleware.CorrelationID(r.Context())
	logger.Error().
		Str("error", message).
		Int("status", status).
		Str("correlation_id", correlationID).
		Msg("handler error")
	writeJSON(w, status, model.ErrorResponse{Message: message, CorrelationID: correlationID})
}

// domainStatus maps a business-rule violation to its HTTP status. Anything
// that is not a DomainError is a storage or collaborator failure and gets a
// generic 500.
func domainStatus(err error) (int, string, bool) {
	var domainErr *model.DomainError
	if !errors.As(err, &domainErr) {
		return 0, "", false
	}

	status := http.StatusBadRequest
	switch domainErr.Code {
	case model.ErrCodeOrderNotFound:
		status = http.StatusNotFound
	case model.ErrCodeInvalidCredentials:
		status = http.StatusUnauthorized
	case model.ErrCodeAccountLocked:
		status = http.StatusForbidden
	}
	return status, domainErr.Message, true
}
