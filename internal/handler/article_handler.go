package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"newsdesk/internal/logger"
	"newsdesk/internal/service"
)

type ArticleHandler struct {
	timeline service.TimelineService
}

type articleResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Summary     string `json:"summary"`
	URL         string `json:"url"`
	Source      string `json:"source"`
	Category    string `json:"category"`
	ImageURL    string `json:"imageUrl,omitempty"`
	Date        string `json:"date"`
	PublishedAt string `json:"publishedAt"`
}

type timelineResponse struct {
	Featured  []articleResponse `json:"featured"`
	Remaining []articleResponse `json:"remaining"`
}

func NewArticleHandler(timeline service.TimelineService) *ArticleHandler {
	return &ArticleHandler{timeline: timeline}
}

func (h *ArticleHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/articles", h.List)
	g.GET("/timeline", h.Timeline)
}

// List returns all parseable articles, newest first.
// @Summary List articles
// @Description Get every article with a parseable date, newest first
// @Tags articles
// @Produce json
// @Success 200 {array} articleResponse
// @Router /articles [get]
func (h *ArticleHandler) List(c echo.Context) error {
	timeline, err := h.timeline.Build(c.Request().Context())
	if err != nil {
		logger.Warn("article list degraded to empty",
			"module", "handler", "action", "list", "resource", "article", "result", "failed",
			"error", err)
	}

	all := timeline.All()
	response := make([]articleResponse, 0, len(all))
	for _, a := range all {
		response = append(response, toArticleResponse(a))
	}
	return c.JSON(http.StatusOK, response)
}

// Timeline returns the featured/remaining partition.
// @Summary Get the timeline partition
// @Description The four most recent articles form the featured set, the rest the remaining set
// @Tags articles
// @Produce json
// @Success 200 {object} timelineResponse
// @Router /timeline [get]
func (h *ArticleHandler) Timeline(c echo.Context) error {
	timeline, err := h.timeline.Build(c.Request().Context())
	if err != nil {
		logger.Warn("timeline degraded to empty",
			"module", "handler", "action", "list", "resource", "article", "result", "failed",
			"error", err)
	}

	response := timelineResponse{
		Featured:  make([]articleResponse, 0, len(timeline.Featured)),
		Remaining: make([]articleResponse, 0, len(timeline.Remaining)),
	}
	for _, a := range timeline.Featured {
		response.Featured = append(response.Featured, toArticleResponse(a))
	}
	for _, a := range timeline.Remaining {
		response.Remaining = append(response.Remaining, toArticleResponse(a))
	}
	return c.JSON(http.StatusOK, response)
}

func toArticleResponse(a service.TimedArticle) articleResponse {
	return articleResponse{
		ID:          service.ArticleID(a.URL),
		Title:       a.Title,
		Summary:     a.Summary,
		URL:         a.URL,
		Source:      a.Source,
		Category:    a.Category,
		ImageURL:    a.ImageURL,
		Date:        a.DisplayDate(),
		PublishedAt: a.PublishedAt.UTC().Format(time.RFC3339),
	}
}
