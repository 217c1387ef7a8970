package http

import (
	"errors"
	"log/slog"
	"net/http"

	"baggage/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const (
	msgBaggageNotFound  = "Baggage not found"
	msgProfileNotFound  = "User profile not found"
	msgPermissionDenied = "Permission denied. Staff privileges required."
	msgConflict         = "The baggage was modified concurrently, please retry."
	msgInternal         = "Internal server error"
)

// writeError maps the error taxonomy onto HTTP status codes.
func writeError(c echo.Context, logger *slog.Logger, err error) error {
	var notFound *errs.ObjectNotFoundError

	switch {
	case errs.IsValidation(err):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.As(err, &notFound):
		if notFound.ParamName == "actor profile" {
			return c.JSON(http.StatusNotFound, ErrorResponse{Error: msgProfileNotFound})
		}
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: msgBaggageNotFound})
	case errors.Is(err, errs.ErrPermissionDenied):
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: msgPermissionDenied})
	case errors.Is(err, errs.ErrConflict):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: msgConflict})
	default:
		logger.ErrorContext(c.Request().Context(), "request failed",
			"method", c.Request().Method,
			"path", c.Path(),
			"error", err,
		)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: msgInternal})
	}
}
