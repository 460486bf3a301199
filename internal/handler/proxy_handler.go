package handler

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"newsdesk/internal/logger"
	"newsdesk/internal/service"
)

const cacheMaxAge = 86400 // 1 day

func safeHost(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return parsed.Host
}

type ProxyHandler struct {
	proxy service.ProxyService
	cards service.CardService
}

func NewProxyHandler(proxy service.ProxyService, cards service.CardService) *ProxyHandler {
	return &ProxyHandler{proxy: proxy, cards: cards}
}

func (h *ProxyHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/proxy/image/:encoded", h.Image)
	g.GET("/proxy/favicon/:host", h.Favicon)
}

// Image proxies an article image with one-shot placeholder fallback.
// @Summary Proxy an article image
// @Description Fetches the image; on failure serves the article's deterministic placeholder instead
// @Tags proxy
// @Produce octet-stream
// @Param encoded path string true "Base64 URL-safe encoded image URL"
// @Param title query string false "Article title, seeds the placeholder"
// @Param size query string false "Card size variant (large, small, default)"
// @Success 200 {file} binary
// @Failure 400 {object} errorResponse
// @Failure 429 {object} errorResponse
// @Failure 502 {object} errorResponse
// @Router /api/proxy/image/{encoded} [get]
func (h *ProxyHandler) Image(c echo.Context) error {
	encoded := c.Param("encoded")
	decoded, err := base64.URLEncoding.DecodeString(encoded)
	if err != nil {
		logger.Debug("proxy image invalid encoding",
			"module", "handler", "action", "request", "resource", "proxy", "result", "failed",
			"error", err)
		return Error(c, http.StatusBadRequest, "invalid encoding")
	}
	imageURL := string(decoded)

	fallbackURL := ""
	if title := c.QueryParam("title"); title != "" {
		fallbackURL = h.cards.PlaceholderURL(title, service.CardSize(c.QueryParam("size")))
	}

	result, err := h.proxy.FetchImage(c.Request().Context(), imageURL, fallbackURL)
	if err != nil {
		logger.Warn("proxy image fetch failed",
			"module", "handler", "action", "fetch", "resource", "proxy", "result", "failed",
			"host", safeHost(imageURL), "error", err)
		return writeServiceError(c, err)
	}

	c.Response().Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", cacheMaxAge))
	c.Response().Header().Set("X-Content-Type-Options", "nosniff")
	if result.Fallback {
		c.Response().Header().Set("X-Newsdesk-Fallback", "placeholder")
	}
	return c.Blob(http.StatusOK, result.ContentType, result.Data)
}

// Favicon proxies a source favicon, hiding it on failure.
// @Summary Proxy a source favicon
// @Description Fetches the favicon for a host; failures respond 204 so the card hides the element
// @Tags proxy
// @Produce octet-stream
// @Param host path string true "Source hostname"
// @Success 200 {file} binary
// @Success 204 "No Content"
// @Router /api/proxy/favicon/{host} [get]
func (h *ProxyHandler) Favicon(c echo.Context) error {
	host := c.Param("host")

	result, err := h.proxy.FetchFavicon(c.Request().Context(), host)
	if err != nil {
		logger.Debug("favicon fetch failed, hiding element",
			"module", "handler", "action", "fetch", "resource", "favicon", "result", "failed",
			"host", host, "error", err)
		return c.NoContent(http.StatusNoContent)
	}

	c.Response().Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", cacheMaxAge))
	return c.Blob(http.StatusOK, result.ContentType, result.Data)
}
