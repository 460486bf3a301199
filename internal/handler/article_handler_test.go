package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"newsdesk/internal/handler"
	"newsdesk/internal/model"
	"newsdesk/internal/service"
)

type fakeTimeline struct {
	timeline service.Timeline
	err      error
}

func (f *fakeTimeline) Build(ctx context.Context) (service.Timeline, error) {
	return f.timeline, f.err
}

func timedAt(title, url string, published time.Time) service.TimedArticle {
	return service.TimedArticle{
		Article:     model.Article{Title: title, URL: url, Source: "Example", Category: "News", RawDate: "5/4/2025"},
		PublishedAt: published,
	}
}

func newArticleRouter(timeline service.TimelineService) *echo.Echo {
	e := echo.New()
	handler.NewArticleHandler(timeline).RegisterRoutes(e.Group("/api"))
	return e
}

func TestArticleHandler_List(t *testing.T) {
	now := time.Date(2025, 5, 4, 12, 0, 0, 0, time.UTC)
	timeline := &fakeTimeline{timeline: service.Timeline{
		Featured: []service.TimedArticle{
			timedAt("first", "https://example.com/1", now),
			timedAt("second", "https://example.com/2", now.Add(-time.Hour)),
		},
		Remaining: []service.TimedArticle{
			timedAt("third", "https://example.com/3", now.Add(-2*time.Hour)),
		},
	}}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/articles", nil)
	newArticleRouter(timeline).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 3)
	require.Equal(t, "first", body[0]["title"])
	require.Equal(t, "third", body[2]["title"])
	require.Equal(t, "4 May 2025", body[0]["date"])
	require.NotEmpty(t, body[0]["id"])
}

func TestArticleHandler_Timeline(t *testing.T) {
	now := time.Date(2025, 5, 4, 12, 0, 0, 0, time.UTC)
	timeline := &fakeTimeline{timeline: service.Timeline{
		Featured:  []service.TimedArticle{timedAt("a", "https://example.com/a", now)},
		Remaining: []service.TimedArticle{timedAt("b", "https://example.com/b", now.Add(-time.Hour))},
	}}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/timeline", nil)
	newArticleRouter(timeline).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Featured  []map[string]any `json:"featured"`
		Remaining []map[string]any `json:"remaining"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Featured, 1)
	require.Len(t, body.Remaining, 1)
	require.Equal(t, "a", body.Featured[0]["title"])
}

func TestArticleHandler_FeedFailureDegradesToEmptyList(t *testing.T) {
	timeline := &fakeTimeline{err: service.ErrFeedUnavailable}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/articles", nil)
	newArticleRouter(timeline).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, "[]", rec.Body.String())
}
