package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/marmalade-labs/banter/internal/blog"
	"github.com/marmalade-labs/banter/internal/chat"
	"github.com/marmalade-labs/banter/internal/log"
	"github.com/marmalade-labs/banter/internal/message"
)

// writeJSON writes a JSON response with the given status code.
// Note: if encoding fails after WriteHeader, the status is already sent;
// the error is only logged.
func writeJSON(w http.ResponseWriter, logger log.Logger, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", "error", err)
	}
}

// ErrorResponse is the JSON shape of every error the API returns.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, logger log.Logger, status int, code, msg string) {
	writeJSON(w, logger, status, ErrorResponse{Error: code, Message: msg})
}

// writeDomainError maps a domain error onto an HTTP error response.
//
// Mapping: validation failures 400, unknown lookups 404, duplicate email
// 409, model generation failures 502, everything else 500 with the detail
// withheld from the client.
func writeDomainError(w http.ResponseWriter, logger log.Logger, err error) {
	switch {
	case errors.Is(err, chat.ErrInvalidMessage),
		errors.Is(err, chat.ErrUnknownCharacter),
		errors.Is(err, message.ErrInvalidContent),
		errors.Is(err, message.ErrInvalidRole),
		errors.Is(err, blog.ErrValidation):
		writeError(w, logger, http.StatusBadRequest, "validation_error", err.Error())
	case errors.Is(err, blog.ErrNotFound):
		writeError(w, logger, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, blog.ErrDuplicateEmail):
		writeError(w, logger, http.StatusConflict, "duplicate_email", err.Error())
	case errors.Is(err, chat.ErrGeneration):
		writeError(w, logger, http.StatusBadGateway, "generation_failed", err.Error())
	default:
		logger.Error("internal error", "error", err)
		writeError(w, logger, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
