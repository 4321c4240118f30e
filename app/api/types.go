package api

import (
	"time"

	"github.com/omarrouk/inshight-board/app/cache"
	"github.com/omarrouk/inshight-board/app/database"
	"github.com/omarrouk/inshight-board/app/enricher"
	"github.com/omarrouk/inshight-board/app/news"
)

type Handler struct {
	source    news.Source
	enricher  *enricher.Enricher
	repo      database.ArticleRepository
	respCache *cache.ResponseCache
	startedAt time.Time
}

// newsEnvelope mirrors the public response shape for article listings.
type newsEnvelope struct {
	Status       string   `json:"status"`
	Results      int      `json:"results"`
	TotalResults int      `json:"totalResults"`
	Page         int      `json:"page"`
	Data         newsData `json:"data"`
}

type newsData struct {
	Articles []enricher.EnrichedArticle `json:"articles"`
}

type summaryRequest struct {
	ArticleID   string `json:"articleId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
	PublishedAt string `json:"publishedAt"`
	Category    string `json:"category"`
}
