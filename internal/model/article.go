package model

// Article is one feed row mapped to named fields. Articles are built once
// during ingestion and never mutated afterwards; ordering is derived at serve
// time from RawDate.
type Article struct {
	Title    string
	Summary  string
	URL      string
	Source   string
	Category string
	ImageURL string // empty means "no image"; the card layer substitutes a placeholder
	RawDate  string // unparsed feed text, normalized downstream
}

// FeedResult is the outcome of one feed load. A fetch failure degrades to an
// empty article list with Err recording what happened, so callers can render
// the empty state while tests still see the failure.
type FeedResult struct {
	Articles []Article
	Err      error
}

func (r FeedResult) Failed() bool {
	return r.Err != nil
}
