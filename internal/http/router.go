package http

import (
	nethttp "net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"newsdesk/internal/handler"
	"newsdesk/internal/view"
)

func NewRouter(
	pageHandler *handler.PageHandler,
	articleHandler *handler.ArticleHandler,
	proxyHandler *handler.ProxyHandler,
	staticDir string,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(RequestLoggerMiddleware())
	e.Renderer = view.NewRenderer()

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(nethttp.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api")
	articleHandler.RegisterRoutes(api)
	proxyHandler.RegisterRoutes(api)

	pageHandler.Register(e)
	registerStatic(e, staticDir)

	return e
}
