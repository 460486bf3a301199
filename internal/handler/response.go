package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"newsdesk/internal/service"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeServiceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrInvalid):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	case errors.Is(err, service.ErrRateLimited):
		return c.JSON(http.StatusTooManyRequests, errorResponse{Error: "rate limited"})
	case errors.Is(err, service.ErrFeedUnavailable), errors.Is(err, service.ErrUpstreamRejected):
		return c.JSON(http.StatusBadGateway, errorResponse{Error: "upstream unavailable"})
	default:
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

// Error returns a JSON error response with the given status and message
func Error(c echo.Context, status int, message string) error {
	return c.JSON(status, errorResponse{Error: message})
}
