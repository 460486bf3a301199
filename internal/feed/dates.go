package feed

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"newsdesk/internal/logger"
)

// Known feed date layouts, tried in priority order. The free-form parse runs
// last so it can never shadow an exact layout.
var dateLayouts = []string{
	"1/2/2006",   // month/day/year as the sheet formats it
	"2006-01-02", // ISO date without a time component
}

const displayLayout = "2 Jan 2006"

// ParseArticleDate normalizes a raw feed date into an instant. The boolean is
// false when the input is absent or no attempt produced a valid instant; there
// is no sentinel time to compare against.
func ParseArticleDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	if t, err := dateparse.ParseAny(raw); err == nil {
		return t, true
	}
	logger.Debug("unparseable article date",
		"module", "feed", "action", "parse", "resource", "date", "result", "failed",
		"raw", raw)
	return time.Time{}, false
}

// FormatArticleDate renders a raw feed date as "<day> <abbreviated month>
// <year>", e.g. "4 May 2025". Unparseable input comes back unchanged rather
// than as an error token.
func FormatArticleDate(raw string) string {
	t, ok := ParseArticleDate(raw)
	if !ok {
		return raw
	}
	return t.Format(displayLayout)
}
