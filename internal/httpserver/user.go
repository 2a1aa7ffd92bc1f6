package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/sharded_shop/internal/transport"
	"github.com/Skotchmaster/sharded_shop/pkg/logging"
)

func (h *ShopHTTP) CreateUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.create")

	var req transport.CreateUserRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("user_create_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	u, err := h.Svc.CreateUser(ctx, req)
	if err != nil {
		return serviceError(l, "user_create_error", err)
	}

	l.Info("user_create_success", "user_id", u.ID)
	return c.JSON(http.StatusCreated, u)
}

func (h *ShopHTTP) ListUsers(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.list")

	items, err := h.Svc.ListUsers(ctx, listQuery(c))
	if err != nil {
		return serviceError(l, "user_list_error", err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *ShopHTTP) GetUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.get")

	id, err := parseID(c)
	if err != nil {
		l.Warn("user_get_error", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	u, err := h.Svc.GetUser(ctx, id)
	if err != nil {
		return serviceError(l, "user_get_error", err)
	}
	return c.JSON(http.StatusOK, u)
}

func (h *ShopHTTP) GetUserByEmail(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.get_by_email")

	u, err := h.Svc.GetUserByEmail(ctx, c.QueryParam("email"))
	if err != nil {
		return serviceError(l, "user_get_error", err)
	}
	return c.JSON(http.StatusOK, u)
}

func (h *ShopHTTP) PatchUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.patch")

	id, err := parseID(c)
	if err != nil {
		l.Warn("user_patch_error", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	var req transport.PatchUserRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("user_patch_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	u, err := h.Svc.UpdateUser(ctx, id, req)
	if err != nil {
		return serviceError(l, "user_patch_error", err)
	}

	l.Info("user_patch_success", "user_id", u.ID)
	return c.JSON(http.StatusOK, u)
}

func (h *ShopHTTP) DeleteUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "user.delete")

	id, err := parseID(c)
	if err != nil {
		l.Warn("user_delete_error", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	if err := h.Svc.DeleteUser(ctx, id); err != nil {
		return serviceError(l, "user_delete_error", err)
	}

	l.Info("user_delete_success", "user_id", id)
	return c.NoContent(http.StatusNoContent)
}
