// Package response centralizes HTTP response shapes and helpers.
// Handlers rely on it to keep controllers thin and uniform.
package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/cricket-scoring-service/internal/engine"
	"github.com/maxviazov/cricket-scoring-service/internal/model"
	"github.com/maxviazov/cricket-scoring-service/internal/repository"
	"github.com/maxviazov/cricket-scoring-service/internal/stats"
)

// ErrorPayload is the canonical error envelope returned by the API.
type ErrorPayload struct {
	Error       string             `json:"error"`
	Message     string             `json:"message,omitempty"`
	FieldErrors []model.FieldError `json:"field_errors,omitempty"`
}

// MapError converts a domain / infrastructure error into an HTTP status and payload.
func MapError(err error) (int, ErrorPayload) {
	if err == nil {
		return http.StatusOK, ErrorPayload{Error: "ok"}
	}

	if errors.Is(err, model.ErrInvalidInput) {
		return http.StatusBadRequest, ErrorPayload{
			Error:       "invalid_input",
			Message:     "one or more fields are invalid",
			FieldErrors: model.FieldErrors(err),
		}
	}

	switch {
	case errors.Is(err, engine.ErrUnknownFormat), errors.Is(err, engine.ErrInvalidTeams):
		return http.StatusBadRequest, ErrorPayload{Error: "invalid_input", Message: err.Error()}
	case errors.Is(err, repository.ErrNotFound),
		errors.Is(err, stats.ErrPlayerNotTracked),
		errors.Is(err, stats.ErrTeamNotTracked):
		return http.StatusNotFound, ErrorPayload{Error: "not_found", Message: err.Error()}
	case errors.Is(err, stats.ErrNoPlayersTracked), errors.Is(err, stats.ErrNoCenturyScorer):
		return http.StatusNotFound, ErrorPayload{Error: "no_leader", Message: err.Error()}
	case errors.Is(err, engine.ErrMatchAlreadyStarted),
		errors.Is(err, engine.ErrMatchNotInProgress),
		errors.Is(err, engine.ErrMatchFinished),
		errors.Is(err, engine.ErrNoActiveInnings),
		errors.Is(err, engine.ErrInningsClosed),
		errors.Is(err, engine.ErrNoDayLimit),
		errors.Is(err, engine.ErrReentrantDelivery),
		errors.Is(err, engine.ErrStrikerNotAtCrease):
		return http.StatusConflict, ErrorPayload{Error: "match_state", Message: err.Error()}
	case errors.Is(err, repository.ErrAlreadyExists):
		return http.StatusConflict, ErrorPayload{Error: "already_exists"}
	case errors.Is(err, repository.ErrConflict):
		return http.StatusConflict, ErrorPayload{Error: "conflict"}
	default:
		return http.StatusInternalServerError, ErrorPayload{Error: "internal_error"}
	}
}

// WriteError writes an error response and aborts the context.
func WriteError(c *gin.Context, err error) {
	status, payload := MapError(err)
	c.AbortWithStatusJSON(status, payload)
}

// WriteData writes a successful JSON response.
func WriteData(c *gin.Context, status int, data any) {
	c.JSON(status, data)
}
