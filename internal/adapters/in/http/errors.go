package http

import (
	"errors"
	"net/http"

	"warehouse/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// ErrorResponse is the JSON error body returned by every endpoint.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// errorJSON maps an application error to an HTTP status and writes the
// error body. Unrecognized errors become 500 without leaking internals.
func errorJSON(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError

	var validationErrs validator.ValidationErrors

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrInvalidStateTransition),
		errors.Is(err, errs.ErrInsufficientQuantity):
		status = http.StatusConflict
	case errors.Is(err, errs.ErrDependencyFailure):
		status = http.StatusBadGateway
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.As(err, &validationErrs):
		status = http.StatusBadRequest
	}

	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "Internal server error"
	}

	return ctx.JSON(status, ErrorResponse{Code: status, Message: message})
}

// badRequest writes a 400 with the given message. Used for malformed
// request bodies and path parameters before any command is built.
func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}
