package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/syedahamedali2521/sentiment-analysis-app/internal/adapter/csvinput"
	"github.com/syedahamedali2521/sentiment-analysis-app/internal/usecase"
)

// ErrorResponse represents a structured error response
type ErrorResponse struct {
	StatusCode int
	Code       string
	Message    string
}

// MapUsecaseError maps usecase errors to HTTP error responses.
// It provides consistent error handling across all handlers.
func MapUsecaseError(err error) ErrorResponse {
	var invalid *invalidRequestError
	switch {
	case errors.As(err, &invalid),
		errors.Is(err, usecase.ErrInvalidInput),
		errors.Is(err, usecase.ErrBatchTooLarge),
		errors.Is(err, csvinput.ErrMissingTextColumn),
		errors.Is(err, csvinput.ErrEmptyFile):
		return ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Code:       "INVALID_REQUEST",
			Message:    err.Error(),
		}
	case errors.Is(err, usecase.ErrModelLoad):
		return ErrorResponse{
			StatusCode: http.StatusServiceUnavailable,
			Code:       "MODEL_UNAVAILABLE",
			Message:    err.Error(),
		}
	default:
		return ErrorResponse{
			StatusCode: http.StatusInternalServerError,
			Code:       "INTERNAL_ERROR",
			Message:    "prediction failed",
		}
	}
}

// HandleUsecaseError handles a usecase error by sending an appropriate HTTP response.
// It maps the error to an HTTP status and sends a JSON error response.
func HandleUsecaseError(c *gin.Context, err error) {
	_ = c.Error(err)
	errResp := MapUsecaseError(err)
	respondError(c, errResp.StatusCode, errResp.Code, errResp.Message)
}

// HandleInvalidRequest handles a generic invalid request error.
func HandleInvalidRequest(c *gin.Context, message string) {
	respondError(c, http.StatusBadRequest, "INVALID_REQUEST", message)
}

// invalidRequestError marks an upload error as a client error
type invalidRequestError struct {
	err error
}

func (e *invalidRequestError) Error() string { return e.err.Error() }
func (e *invalidRequestError) Unwrap() error { return e.err }

func asInvalidRequest(err error) error {
	return &invalidRequestError{err: err}
}
