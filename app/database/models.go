package database

import (
	"time"
)

// Article is a persisted article record. ArticleID is the derived identity
// and is immutable once assigned; Summary is empty until the first
// successful generation, and SummaryGeneratedAt is set whenever Summary is
// written.
type Article struct {
	ID                 string // Database UUID
	ArticleID          string // Derived identity (see news.DeriveID)
	Source             string
	Author             string
	Title              string
	Description        string
	URL                string
	ImageURL           string
	PublishedAt        time.Time
	Content            string
	Category           string
	Summary            string
	SummaryGeneratedAt *time.Time
	ViewCount          int
	SaveCount          int
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// HasSummary reports whether a summary has been generated for the record.
func (a *Article) HasSummary() bool {
	return a.Summary != "" && a.SummaryGeneratedAt != nil
}

const CategoryGeneral = "general"

// Categories lists the valid article categories.
var Categories = []string{
	"technology",
	"business",
	"science",
	"health",
	"entertainment",
	"sports",
	CategoryGeneral,
}

func ValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// NormalizeCategory maps an arbitrary category hint onto a valid category,
// defaulting to "general" for empty or unknown values.
func NormalizeCategory(category string) string {
	if ValidCategory(category) {
		return category
	}
	return CategoryGeneral
}
