// Package rest serves the explorer's JSON API: network listings plus the
// performance, ICM and staking views synthesized for them.
package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/birddigital/avax-l1-explorer/internal/middleware"
	"github.com/birddigital/avax-l1-explorer/internal/validation"
)

// ErrorResponse is the body of every non-2xx JSON response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg, detail string) {
	writeJSON(w, status, ErrorResponse{Error: msg, Message: detail})
}

// NotFound answers unknown routes
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "Not found", r.URL.Path)
}

// MethodNotAllowed answers known routes called with the wrong method
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "Method not allowed", "")
}

// badRequest reports a query validation failure
func badRequest(w http.ResponseWriter, err error) {
	writeError(w, http.StatusBadRequest, "Invalid request", err.Error())
}

// failed logs err against the request and answers 500 with msg
func failed(w http.ResponseWriter, r *http.Request, err error, msg string) {
	if errors.Is(err, validation.ErrValidation) {
		badRequest(w, err)
		return
	}
	logger := requestLogger(r)
	logger.Error().Err(err).Msg("request_failed")
	writeError(w, http.StatusInternalServerError, msg, err.Error())
}

func requestLogger(r *http.Request) zerolog.Logger {
	return middleware.MustLoggerFromContext(r.Context())
}
