package database

import (
	"time"
)

// NewArticleFields carries the upstream article fields used when an upsert
// has to create the record.
type NewArticleFields struct {
	Source      string
	Author      string
	Title       string
	Description string
	URL         string
	ImageURL    string
	PublishedAt time.Time
	Content     string
	Category    string
}

type ArticleRepository interface {
	GetByArticleID(articleID string) (*Article, error)

	// UpsertSummary writes summary and summary_generated_at together,
	// creating the record from fields when absent. The write is atomic per
	// record: a summary without its timestamp is never observable.
	UpsertSummary(articleID, summary string, fields NewArticleFields) (*Article, error)

	IncrementViewCount(articleID string) error
	IncrementSaveCount(articleID string) error

	GetArticleCount() (int, error)
	GetSummaryStats() (total int, summarized int, err error)
}
