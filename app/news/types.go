package news

import (
	"context"
	"fmt"
)

// RawArticle is an article as returned by an upstream source. Upstream data
// is unstable: no unique key is guaranteed and description or content may be
// absent. ID is assigned at the source boundary via DeriveID.
type RawArticle struct {
	ID          string `json:"articleId"`
	Source      string `json:"source"`
	Author      string `json:"author"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	ImageURL    string `json:"imageUrl"`
	PublishedAt string `json:"publishedAt"`
	Content     string `json:"content"`
}

type Response struct {
	TotalResults int          `json:"totalResults"`
	Articles     []RawArticle `json:"articles"`
}

type HeadlinesOptions struct {
	Category string
	Country  string
	PageSize int
	Page     int
}

type SearchOptions struct {
	Query    string
	SortBy   string
	PageSize int
	Page     int
}

// Source is an upstream news provider.
type Source interface {
	Headlines(ctx context.Context, opts HeadlinesOptions) (*Response, error)
	Search(ctx context.Context, opts SearchOptions) (*Response, error)
}

// FetchError is returned for any upstream fetch failure: network errors,
// non-2xx responses, rate limits, or a missing API key. It propagates to the
// caller unchanged; retry policy belongs to the upstream source.
type FetchError struct {
	Op         string
	StatusCode int
	Message    string
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("news %s: %s (status %d)", e.Op, e.Message, e.StatusCode)
	}
	return fmt.Sprintf("news %s: %s", e.Op, e.Message)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
