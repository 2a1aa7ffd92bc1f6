package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/sharded_shop/internal/transport"
	"github.com/Skotchmaster/sharded_shop/internal/util"
	"github.com/Skotchmaster/sharded_shop/pkg/logging"
)

func listQuery(c echo.Context) transport.ListQuery {
	return transport.ListQuery{
		Skip:  util.ParseIntDefault(c.QueryParam("skip"), util.DefaultSkip),
		Limit: util.ParseIntDefault(c.QueryParam("limit"), util.DefaultLimit),
	}
}

func (h *ShopHTTP) CreateCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.create")

	var req transport.CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("category_create_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	cat, err := h.Svc.CreateCategory(ctx, req)
	if err != nil {
		return serviceError(l, "category_create_error", err)
	}

	l.Info("category_create_success", "category_id", cat.ID)
	return c.JSON(http.StatusCreated, cat)
}

func (h *ShopHTTP) ListCategories(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.list")

	items, err := h.Svc.ListCategories(ctx, listQuery(c))
	if err != nil {
		return serviceError(l, "category_list_error", err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *ShopHTTP) GetCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "category.get")

	id, err := parseID(c)
	if err != nil {
		l.Warn("category_get_error", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	cat, err := h.Svc.GetCategory(ctx, id)
	if err != nil {
		return serviceError(l, "category_get_error", err)
	}
	return c.JSON(http.StatusOK, cat)
}

func (h *ShopHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create")

	var req transport.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("product_create_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	p, err := h.Svc.CreateProduct(ctx, req)
	if err != nil {
		return serviceError(l, "product_create_error", err)
	}

	l.Info("product_create_success", "product_id", p.ID)
	return c.JSON(http.StatusCreated, p)
}

func (h *ShopHTTP) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.list")

	items, err := h.Svc.ListProducts(ctx, listQuery(c))
	if err != nil {
		return serviceError(l, "product_list_error", err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *ShopHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get")

	id, err := parseID(c)
	if err != nil {
		l.Warn("product_get_error", "status", 400, "reason", "id is not an integer", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}

	p, err := h.Svc.GetProduct(ctx, id)
	if err != nil {
		return serviceError(l, "product_get_error", err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ShopHTTP) SearchProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.search")

	q := listQuery(c)
	total, items, err := h.Svc.SearchProducts(ctx, transport.SearchQuery{
		Q:     c.QueryParam("q"),
		Skip:  q.Skip,
		Limit: q.Limit,
	})
	if err != nil {
		return serviceError(l, "product_search_error", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"total": total, "products": items})
}
