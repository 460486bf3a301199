package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	FeedFetches = promauto.NewCounter(prometheus.CounterOpts{
		Name: "newsdesk_feed_fetches_total",
		Help: "Feed fetch attempts.",
	})
	FeedFetchFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "newsdesk_feed_fetch_failures_total",
		Help: "Feed fetches that degraded to an empty article list.",
	})
	RowsSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "newsdesk_feed_rows_skipped_total",
		Help: "Feed rows dropped for a missing title or url.",
	})
	DatesUnparseable = promauto.NewCounter(prometheus.CounterOpts{
		Name: "newsdesk_dates_unparseable_total",
		Help: "Articles excluded from the timeline because no date format matched.",
	})
	ProxyFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "newsdesk_proxy_fallbacks_total",
		Help: "Image proxy requests that swapped to the placeholder.",
	})
)
