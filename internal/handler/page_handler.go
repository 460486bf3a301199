package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"newsdesk/internal/logger"
	"newsdesk/internal/service"
)

type PageHandler struct {
	timeline service.TimelineService
	cards    service.CardService
}

func NewPageHandler(timeline service.TimelineService, cards service.CardService) *PageHandler {
	return &PageHandler{timeline: timeline, cards: cards}
}

func (h *PageHandler) Register(e *echo.Echo) {
	e.GET("/", h.Home)
}

// Home renders the card page. A feed failure renders the empty state; the page
// itself never errors.
func (h *PageHandler) Home(c echo.Context) error {
	timeline, err := h.timeline.Build(c.Request().Context())
	if err != nil {
		logger.Warn("page rendering empty state",
			"module", "handler", "action", "render", "resource", "page", "result", "failed",
			"error", err)
	}

	page := h.cards.BuildPage(c.Request().Context(), timeline, err != nil)
	return c.Render(http.StatusOK, "home", page)
}
