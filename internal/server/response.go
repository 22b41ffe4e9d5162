package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/at-ishikawa/hanfr/internal/quiz"
	"github.com/at-ishikawa/hanfr/internal/search"
	"github.com/at-ishikawa/hanfr/internal/state"
)

const maxRequestBodyBytes = 1 << 20

// badRequestError is an invalid request body or parameter.
type badRequestError struct {
	reason string
}

func (e *badRequestError) Error() string {
	return e.reason
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Default().Warn("failed to write a response", slog.Any("error", err))
	}
}

// writeError maps err to a status code. Unknown errors are logged and hidden
// behind a generic message.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		badRequestErr   *badRequestError
		validationErr   *search.ValidationError
		configErr       *search.ConfigurationError
		upstreamErr     *search.UpstreamError
		insufficientErr *quiz.InsufficientDataError
	)
	switch {
	case errors.As(err, &badRequestErr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: badRequestErr.reason})
	case errors.As(err, &validationErr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: validationErr.Reason})
	case errors.As(err, &configErr):
		slog.Default().Error("server misconfiguration", slog.Any("error", err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: configErr.Error()})
	case errors.As(err, &upstreamErr):
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: upstreamErr.Error()})
	case errors.As(err, &insufficientErr):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: insufficientErr.Reason})
	case errors.Is(err, state.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	default:
		logRequestError(r, err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Unexpected server error"})
	}
}

// decodeJSON decodes the request body into dst and validates it.
// An empty body leaves dst unchanged.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return &badRequestError{reason: fmt.Sprintf("invalid request body: %v", err)}
	}
	if err := s.validator.Struct(dst); err != nil {
		return &badRequestError{reason: err.Error()}
	}
	return nil
}
