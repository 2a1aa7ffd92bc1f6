package httpserver

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/sharded_shop/internal/service"
	"github.com/Skotchmaster/sharded_shop/pkg/logging"
	loggingmw "github.com/Skotchmaster/sharded_shop/pkg/middleware/logging"
)

const HeaderShard = "X-Shard"

type ShopHTTP struct {
	Svc *service.ShopService
}

type Deps struct {
	ShopHandler *ShopHTTP
}

// Common is the middleware stack every instance runs before routing.
func Common(l *slog.Logger) []echo.MiddlewareFunc {
	return []echo.MiddlewareFunc{
		echomw.Recover(),
		echomw.RequestID(),
		loggingmw.RequestLogger(l),
		echomw.Secure(),
	}
}

// ShardHeader tags every response with the shard that served it.
func ShardHeader(shardID string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Response().Header().Set(HeaderShard, shardID)
			return next(c)
		}
	}
}

func (h *ShopHTTP) Ready(c echo.Context) error {
	ctx := c.Request().Context()
	if err := h.Svc.Ready(ctx); err != nil {
		logging.FromContext(ctx).Warn("ready_check_failed", "status", 503, "error", err)
		return c.NoContent(http.StatusServiceUnavailable)
	}
	return c.NoContent(http.StatusOK)
}

func Register(e *echo.Echo, d *Deps) {
	h := d.ShopHandler
	e.Use(ShardHeader(h.Svc.Shard()))

	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", h.Ready)

	api := e.Group("/api")

	categories := api.Group("/categories")
	categories.POST("", h.CreateCategory)
	categories.GET("", h.ListCategories)
	categories.GET("/:id", h.GetCategory)

	products := api.Group("/products")
	products.POST("", h.CreateProduct)
	products.GET("", h.ListProducts)
	products.GET("/search", h.SearchProducts)
	products.GET("/:id", h.GetProduct)

	users := api.Group("/users")
	users.POST("", h.CreateUser)
	users.GET("", h.ListUsers)
	users.GET("/by-email", h.GetUserByEmail)
	users.GET("/:id", h.GetUser)
	users.PATCH("/:id", h.PatchUser)
	users.DELETE("/:id", h.DeleteUser)
}
