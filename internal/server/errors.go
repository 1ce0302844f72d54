package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/task-recommender/internal/db"
	"github.com/jonathan/task-recommender/internal/embedding"
	"github.com/jonathan/task-recommender/internal/metrics"
	"github.com/jonathan/task-recommender/internal/schemas"
	"github.com/jonathan/task-recommender/internal/types"
)

// ErrorResponse is the JSON body of every error reply.
type ErrorResponse struct {
	Error string `json:"error"`
	Tag   string `json:"tag,omitempty"` // set when a tag is missing from the vector model
}

// ErrBadRequest indicates a malformed request: bad body JSON or query parameters
type ErrBadRequest struct {
	Message string
	Cause   error
}

func (e *ErrBadRequest) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ErrBadRequest) Unwrap() error {
	return e.Cause
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		badRequest    *ErrBadRequest
		invalidEntity *types.InvalidEntityError
		schemaErr     *schemas.ValidationError
	)
	switch {
	case errors.As(err, &badRequest), errors.As(err, &invalidEntity), errors.As(err, &schemaErr):
		return http.StatusBadRequest
	case errors.Is(err, embedding.ErrUnknownTag):
		return http.StatusUnprocessableEntity
	case errors.Is(err, db.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// outcome maps an error to a metrics outcome label.
func outcome(err error) string {
	switch HTTPStatus(err) {
	case http.StatusBadRequest:
		return metrics.OutcomeInvalid
	case http.StatusUnprocessableEntity:
		return metrics.OutcomeUnknownTag
	default:
		return metrics.OutcomeError
	}
}

// errorBody builds the client-facing error. Internal failures are not echoed.
func errorBody(err error, status int) ErrorResponse {
	resp := ErrorResponse{Error: err.Error()}

	var schemaErr *schemas.ValidationError
	if errors.As(err, &schemaErr) {
		resp.Error = "invalid request body: " + schemaErr.First()
	}

	var unknown *embedding.UnknownTagError
	if errors.As(err, &unknown) {
		resp.Tag = unknown.Tag
	}

	if status >= http.StatusInternalServerError {
		resp.Error = http.StatusText(status)
	}
	return resp
}
