package database

import (
	"testing"
	"time"
)

func TestNormalizeCategory(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"technology", "technology"},
		{"business", "business"},
		{"general", "general"},
		{"", "general"},
		{"politics", "general"},
		{"Technology", "general"},
	}

	for _, tt := range tests {
		if got := NormalizeCategory(tt.input); got != tt.expected {
			t.Errorf("NormalizeCategory(%q) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}

func TestArticle_HasSummary(t *testing.T) {
	now := time.Now()

	article := &Article{}
	if article.HasSummary() {
		t.Error("Empty article should not report a summary")
	}

	article.Summary = "A summary."
	if article.HasSummary() {
		t.Error("Summary without timestamp should not count as generated")
	}

	article.SummaryGeneratedAt = &now
	if !article.HasSummary() {
		t.Error("Summary with timestamp should be reported")
	}
}
