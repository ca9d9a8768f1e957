package http

import (
	"errors"
	"net/http"

	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the JSON body returned for every failed request.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// respondError maps domain error categories onto HTTP statuses: validation
// failures are 400, missing objects 404, authorization failures 403, and
// state conflicts of any kind 409.
func respondError(ctx echo.Context, err error) error {
	return ctx.JSON(statusFromError(err), ErrorResponse{
		Code:    statusFromError(err),
		Message: err.Error(),
	})
}

func statusFromError(err error) int {
	switch {
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrNotAuthorized):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrInvalidStateTransition),
		errors.Is(err, errs.ErrBusinessRuleViolated),
		errors.Is(err, errs.ErrConcurrencyConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
