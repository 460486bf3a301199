package http

import (
	"os"

	"github.com/labstack/echo/v4"

	"newsdesk/internal/logger"
)

// registerStatic serves an optional assets directory (stylesheets, fonts)
// under /assets. The card page works without it.
func registerStatic(e *echo.Echo, dir string) {
	if dir == "" {
		return
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		logger.Warn("static assets dir missing",
			"module", "http", "action", "request", "resource", "http", "result", "failed",
			"dir", dir)
		return
	}

	logger.Info("static assets enabled",
		"module", "http", "action", "request", "resource", "http", "result", "ok",
		"dir", dir)
	e.Static("/assets", dir)
}
