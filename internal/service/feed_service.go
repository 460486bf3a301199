package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"newsdesk/internal/config"
	"newsdesk/internal/feed"
	"newsdesk/internal/logger"
	"newsdesk/internal/metrics"
	"newsdesk/internal/model"
	"newsdesk/internal/network"
)

const feedTimeout = 20 * time.Second

// FeedService loads the configured feed. Every call refetches; there is no
// cache and no retry.
type FeedService interface {
	Load(ctx context.Context) model.FeedResult
}

type feedService struct {
	feedURL       string
	clientFactory *network.ClientFactory
}

func NewFeedService(feedURL string, clientFactory *network.ClientFactory) FeedService {
	if clientFactory == nil {
		clientFactory = network.NewClientFactory()
	}
	return &feedService{feedURL: feedURL, clientFactory: clientFactory}
}

// Load fetches and parses the feed. Fetch errors and non-success statuses
// degrade to an empty article list with the failure recorded on the result,
// never a propagated error.
func (s *feedService) Load(ctx context.Context) model.FeedResult {
	metrics.FeedFetches.Inc()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.feedURL, nil)
	if err != nil {
		return s.failed(fmt.Errorf("%w: %v", ErrFeedUnavailable, err))
	}
	req.Header.Set("User-Agent", config.UserAgent)
	req.Header.Set("Cache-Control", "no-cache")

	client := s.clientFactory.NewHTTPClient(feedTimeout)
	resp, err := client.Do(req)
	if err != nil {
		return s.failed(fmt.Errorf("%w: %v", ErrFeedUnavailable, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return s.failed(fmt.Errorf("%w: status %d", ErrFeedUnavailable, resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return s.failed(fmt.Errorf("%w: %v", ErrFeedUnavailable, err))
	}

	rows := feed.ParseTable(string(body))
	articles, skipped := feed.RowsToArticles(rows)
	metrics.RowsSkipped.Add(float64(skipped))

	logger.Info("feed loaded",
		"module", "service", "action", "fetch", "resource", "feed", "result", "ok",
		"articles", len(articles), "rows_skipped", skipped)
	return model.FeedResult{Articles: articles}
}

func (s *feedService) failed(err error) model.FeedResult {
	metrics.FeedFetchFailures.Inc()
	logger.Warn("feed load failed",
		"module", "service", "action", "fetch", "resource", "feed", "result", "failed",
		"error", err)
	return model.FeedResult{Err: err}
}
