package feed

import (
	"strings"

	"newsdesk/internal/logger"
	"newsdesk/internal/model"
)

// Fixed column positions of the spreadsheet export.
const (
	colTitle = iota
	colDate
	colImageURL
	colSummary
	colURL
	colSource
)

const (
	defaultSummary  = "No summary available."
	defaultSource   = "Unknown source"
	defaultCategory = "News" // not yet sourced from the feed
)

// ParseTable splits raw tabular text into rows of fields. Each line is scanned
// left to right with an in-quotes flag: a doubled quote inside a quoted field
// emits one literal quote, any other quote toggles the flag, and a comma
// outside quotes ends the current field. Fields are trimmed of surrounding
// whitespace. Fields containing literal newlines are not supported; the
// scanner is line-based by contract.
func ParseTable(raw string) [][]string {
	lines := strings.Split(raw, "\n")
	rows := make([][]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		rows = append(rows, scanLine(line))
	}
	return rows
}

func scanLine(line string) []string {
	var fields []string
	var field strings.Builder
	inQuotes := false

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == '"':
			if inQuotes && i+1 < len(runes) && runes[i+1] == '"' {
				field.WriteRune('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case r == ',' && !inQuotes:
			fields = append(fields, strings.TrimSpace(field.String()))
			field.Reset()
		default:
			field.WriteRune(r)
		}
	}
	fields = append(fields, strings.TrimSpace(field.String()))
	return fields
}

// RowsToArticles maps parsed rows to articles. The first row is a header and
// is dropped unconditionally. A row is kept only when both title and url are
// non-empty; skipped rows log a diagnostic and are never an error. Returns the
// number of rows skipped alongside the articles.
func RowsToArticles(rows [][]string) ([]model.Article, int) {
	if len(rows) == 0 {
		return nil, 0
	}

	articles := make([]model.Article, 0, len(rows)-1)
	skipped := 0
	for i, row := range rows[1:] {
		title := fieldAt(row, colTitle)
		url := fieldAt(row, colURL)
		if title == "" || url == "" {
			skipped++
			logger.Warn("feed row skipped",
				"module", "feed", "action", "parse", "resource", "article", "result", "skipped",
				"row", i+2, "has_title", title != "", "has_url", url != "")
			continue
		}

		summary := fieldAt(row, colSummary)
		if summary == "" {
			summary = defaultSummary
		}
		source := fieldAt(row, colSource)
		if source == "" {
			source = defaultSource
		}

		articles = append(articles, model.Article{
			Title:    title,
			Summary:  summary,
			URL:      url,
			Source:   source,
			Category: defaultCategory,
			ImageURL: fieldAt(row, colImageURL),
			RawDate:  fieldAt(row, colDate),
		})
	}
	return articles, skipped
}

func fieldAt(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
