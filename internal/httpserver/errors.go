package httpserver

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/sharded_shop/internal/service"
)

// serviceError logs err under event and maps it to the response status.
func serviceError(l *slog.Logger, event string, err error) error {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		l.Warn(event, "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, echo.Map{"message": "invalid body", "details": verr.Details})
	case errors.Is(err, service.ErrValidation):
		l.Warn(event, "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	case errors.Is(err, service.ErrNotFound):
		l.Warn(event, "status", 404, "reason", "not found", "error", err)
		return echo.NewHTTPError(http.StatusNotFound, "not found")
	case errors.Is(err, service.ErrConflict):
		l.Warn(event, "status", 409, "reason", "already exists", "error", err)
		return echo.NewHTTPError(http.StatusConflict, "already exists")
	case errors.Is(err, service.ErrSearchDisabled):
		l.Warn(event, "status", 503, "reason", "search disabled", "error", err)
		return echo.NewHTTPError(http.StatusServiceUnavailable, "search is not available")
	default:
		l.Error(event, "status", 500, "reason", "internal error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
