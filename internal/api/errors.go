package api

import (
	"errors"
	"net/http"

	"github.com/backoffice-kit/backoffice/pkg/engine"
	"github.com/backoffice-kit/backoffice/pkg/schema"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every non-validation error.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// ValidationErrorResponse is the 400 body. It carries the field, row and
// global error lists next to the usual error code.
type ValidationErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	schema.ValidationErrorShape
}

const (
	codeValidation  = "validation_failed"
	codeNotFound    = "not_found"
	codeInternal    = "internal_error"
	codeRateLimited = "rate_limit_exceeded"
)

// respondError writes the status and body matching err and attaches err
// to the context so the request logger reports it.
func respondError(c *gin.Context, err error) {
	var verr *schema.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, ValidationErrorResponse{
			Error:                codeValidation,
			Message:              "Validation failed",
			ValidationErrorShape: verr.ValidationErrorShape,
		})
	case errors.Is(err, engine.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: codeNotFound, Message: err.Error()})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: codeInternal, Message: "Internal server error"})
	}
}
