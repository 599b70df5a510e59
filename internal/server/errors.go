package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/smallbiznis/papermill/internal/document"
	"github.com/smallbiznis/papermill/internal/render"
)

// APIError is the JSON error envelope returned by every endpoint.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func (e *APIError) Error() string { return e.Code + ": " + e.Message }

var (
	ErrNotFound = &APIError{Status: http.StatusNotFound, Code: "not_found", Message: "resource not found"}

	errRateLimited = &APIError{Status: http.StatusTooManyRequests, Code: "rate_limited", Message: "too many render requests"}
)

func invalidRequestError() *APIError {
	return &APIError{Status: http.StatusBadRequest, Code: "invalid_request", Message: "request body could not be parsed"}
}

func newValidationError(field, code, message string) *APIError {
	return &APIError{Status: http.StatusBadRequest, Code: code, Message: message, Field: field}
}

// AbortWithError maps an error to its HTTP response. Domain validation
// errors become 400s; layout invariant violations are genuine server bugs
// and stay 500s.
func AbortWithError(c *gin.Context, err error) {
	var apiErr *APIError
	switch {
	case errors.As(err, &apiErr):
	case errors.Is(err, document.ErrInvalidKind):
		apiErr = newValidationError("kind", "invalid_kind", "unknown document kind")
	case errors.Is(err, document.ErrMissingNumber):
		apiErr = newValidationError("number", "missing_number", "document number is required")
	case errors.Is(err, render.ErrNilDocument):
		apiErr = invalidRequestError()
	default:
		apiErr = &APIError{Status: http.StatusInternalServerError, Code: "internal_error", Message: "render failed"}
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(apiErr.Status, gin.H{"error": apiErr})
}
