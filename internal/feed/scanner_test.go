package feed_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"newsdesk/internal/feed"
)

const sampleFeed = `Title,Date,Image,Summary,URL,Source
First story,5/4/2025,https://cdn.example.com/a.jpg,Something happened,https://example.com/1,Example News
Second story,2025-05-03,,,https://example.com/2,
,5/2/2025,,No title here,https://example.com/3,Example News
Third story,5/1/2025,,Missing link,,Example News
`

func TestParseTable_QuotedFields(t *testing.T) {
	rows := feed.ParseTable(`a,"b,c",d`)
	require.Len(t, rows, 1)
	require.Equal(t, []string{"a", "b,c", "d"}, rows[0])
}

func TestParseTable_DoubledQuote(t *testing.T) {
	rows := feed.ParseTable(`"He said ""hi""",x`)
	require.Len(t, rows, 1)
	require.Equal(t, `He said "hi"`, rows[0][0])
}

func TestParseTable_TrimsFields(t *testing.T) {
	rows := feed.ParseTable("  a  ,  b  ")
	require.Equal(t, []string{"a", "b"}, rows[0])
}

func TestParseTable_SkipsBlankLinesAndCR(t *testing.T) {
	rows := feed.ParseTable("a,b\r\n\r\nc,d\n")
	require.Len(t, rows, 2)
	require.Equal(t, []string{"a", "b"}, rows[0])
	require.Equal(t, []string{"c", "d"}, rows[1])
}

func TestRowsToArticles_DropsHeaderAndMalformedRows(t *testing.T) {
	rows := feed.ParseTable(sampleFeed)
	articles, skipped := feed.RowsToArticles(rows)

	// Header dropped; the rows missing a title or url are skipped.
	require.Len(t, articles, 2)
	require.Equal(t, 2, skipped)

	require.Equal(t, "First story", articles[0].Title)
	require.Equal(t, "https://example.com/1", articles[0].URL)
	require.Equal(t, "https://cdn.example.com/a.jpg", articles[0].ImageURL)
	require.Equal(t, "5/4/2025", articles[0].RawDate)
	require.Equal(t, "Example News", articles[0].Source)
	require.Equal(t, "News", articles[0].Category)

	for _, a := range articles {
		require.NotEmpty(t, a.Title)
		require.NotEmpty(t, a.URL)
	}
}

func TestRowsToArticles_Defaults(t *testing.T) {
	rows := feed.ParseTable(sampleFeed)
	articles, _ := feed.RowsToArticles(rows)

	// Second story has no summary and no source.
	require.Equal(t, "No summary available.", articles[1].Summary)
	require.Equal(t, "Unknown source", articles[1].Source)
	require.Empty(t, articles[1].ImageURL)
}

func TestRowsToArticles_EmptyInput(t *testing.T) {
	articles, skipped := feed.RowsToArticles(nil)
	require.Empty(t, articles)
	require.Zero(t, skipped)

	// A header-only feed yields no articles.
	articles, skipped = feed.RowsToArticles(feed.ParseTable("Title,Date,Image,Summary,URL,Source"))
	require.Empty(t, articles)
	require.Zero(t, skipped)
}

func TestRowsToArticles_ShortRows(t *testing.T) {
	articles, skipped := feed.RowsToArticles([][]string{
		{"Title", "Date", "Image", "Summary", "URL", "Source"},
		{"Only a title"},
	})
	require.Empty(t, articles)
	require.Equal(t, 1, skipped)
}
