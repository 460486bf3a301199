package service

import (
	"context"
	"slices"
	"time"

	"newsdesk/internal/feed"
	"newsdesk/internal/logger"
	"newsdesk/internal/metrics"
	"newsdesk/internal/model"
)

// featuredCount is the size of the featured set: one primary card plus up to
// three secondary cards.
const featuredCount = 4

// TimedArticle is an article with its derived sort key attached.
type TimedArticle struct {
	model.Article
	PublishedAt time.Time
}

// DisplayDate renders the raw feed date for presentation, falling back to the
// raw text when it cannot be parsed.
func (a TimedArticle) DisplayDate() string {
	return feed.FormatArticleDate(a.RawDate)
}

// Timeline is the ordered, partitioned view of the feed. Both slices are
// newest-first; Featured holds at most featuredCount articles.
type Timeline struct {
	Featured  []TimedArticle
	Remaining []TimedArticle
}

func (t Timeline) Total() int {
	return len(t.Featured) + len(t.Remaining)
}

// All returns featured and remaining as one newest-first slice.
func (t Timeline) All() []TimedArticle {
	all := make([]TimedArticle, 0, t.Total())
	all = append(all, t.Featured...)
	all = append(all, t.Remaining...)
	return all
}

type TimelineService interface {
	// Build loads the feed and derives the ordered partition. A feed failure
	// is returned alongside an empty timeline; callers render the empty state.
	Build(ctx context.Context) (Timeline, error)
}

type timelineService struct {
	feeds FeedService
}

func NewTimelineService(feeds FeedService) TimelineService {
	return &timelineService{feeds: feeds}
}

func (s *timelineService) Build(ctx context.Context) (Timeline, error) {
	result := s.feeds.Load(ctx)

	timed := make([]TimedArticle, 0, len(result.Articles))
	for _, a := range result.Articles {
		published, ok := feed.ParseArticleDate(a.RawDate)
		if !ok {
			metrics.DatesUnparseable.Inc()
			logger.Debug("article excluded from timeline",
				"module", "service", "action", "order", "resource", "article", "result", "skipped",
				"title", a.Title, "date", a.RawDate)
			continue
		}
		timed = append(timed, TimedArticle{Article: a, PublishedAt: published})
	}

	// Stable sort so that equal instants keep feed order.
	slices.SortStableFunc(timed, func(a, b TimedArticle) int {
		return b.PublishedAt.Compare(a.PublishedAt)
	})

	split := min(featuredCount, len(timed))
	return Timeline{Featured: timed[:split], Remaining: timed[split:]}, result.Err
}
