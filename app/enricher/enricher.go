package enricher

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/omarrouk/inshight-board/app/database"
	"github.com/omarrouk/inshight-board/app/news"
	"github.com/omarrouk/inshight-board/app/summarizer"
)

// SummaryGenerator produces summaries; both operations always return a
// usable summary string per slot (failures degrade to fallback internally).
type SummaryGenerator interface {
	Generate(ctx context.Context, article summarizer.Article) string
	RunBatch(ctx context.Context, articles []summarizer.Article, concurrency int) []string
}

// EnrichedArticle is a raw upstream article joined with its summary.
type EnrichedArticle struct {
	news.RawArticle
	Summary string `json:"summary"`
}

// Stats are pipeline counters exposed for observability.
type Stats struct {
	CacheHits          int64 `json:"cacheHits"`
	CacheMisses        int64 `json:"cacheMisses"`
	CacheReadFailures  int64 `json:"cacheReadFailures"`
	CacheWriteFailures int64 `json:"cacheWriteFailures"`
}

// Enricher coordinates the summarization pipeline: resolve identity, check
// the article cache, generate when missing, persist, return. A persistence
// outage never degrades the response; it is only logged and counted.
type Enricher struct {
	repo        database.ArticleRepository
	generator   SummaryGenerator
	extractor   *ContentExtractor
	concurrency int

	cacheHits          atomic.Int64
	cacheMisses        atomic.Int64
	cacheReadFailures  atomic.Int64
	cacheWriteFailures atomic.Int64
}

func New(repo database.ArticleRepository, generator SummaryGenerator, extractor *ContentExtractor, concurrency int) *Enricher {
	if concurrency <= 0 {
		concurrency = summarizer.DefaultConcurrency
	}
	return &Enricher{
		repo:        repo,
		generator:   generator,
		extractor:   extractor,
		concurrency: concurrency,
	}
}

// Resolve returns the article enriched with a summary, serving from the
// cache when possible and generating and persisting otherwise. A summary is
// always returned for a valid article.
func (e *Enricher) Resolve(ctx context.Context, raw news.RawArticle, categoryHint string) EnrichedArticle {
	id := e.identity(raw)

	if cached := e.lookup(id); cached != nil {
		e.cacheHits.Add(1)
		return EnrichedArticle{RawArticle: raw, Summary: cached.Summary}
	}
	e.cacheMisses.Add(1)

	summary := e.generator.Generate(ctx, e.generatorInput(ctx, raw))
	e.persist(id, raw, categoryHint, summary)

	return EnrichedArticle{RawArticle: raw, Summary: summary}
}

// ResolveAll enriches many articles at once. Cache misses are summarized
// through the batch orchestrator so concurrent AI calls stay bounded.
// Result order matches input order.
func (e *Enricher) ResolveAll(ctx context.Context, raws []news.RawArticle, categoryHint string) []EnrichedArticle {
	enriched := make([]EnrichedArticle, len(raws))
	ids := make([]string, len(raws))

	var missing []int
	for i, raw := range raws {
		enriched[i].RawArticle = raw
		ids[i] = e.identity(raw)

		if cached := e.lookup(ids[i]); cached != nil {
			e.cacheHits.Add(1)
			enriched[i].Summary = cached.Summary
			continue
		}
		e.cacheMisses.Add(1)
		missing = append(missing, i)
	}

	if len(missing) == 0 {
		return enriched
	}

	inputs := make([]summarizer.Article, len(missing))
	for j, i := range missing {
		inputs[j] = e.generatorInput(ctx, raws[i])
	}

	summaries := e.generator.RunBatch(ctx, inputs, e.concurrency)
	for j, i := range missing {
		enriched[i].Summary = summaries[j]
		e.persist(ids[i], raws[i], categoryHint, summaries[j])
	}

	return enriched
}

func (e *Enricher) Stats() Stats {
	return Stats{
		CacheHits:          e.cacheHits.Load(),
		CacheMisses:        e.cacheMisses.Load(),
		CacheReadFailures:  e.cacheReadFailures.Load(),
		CacheWriteFailures: e.cacheWriteFailures.Load(),
	}
}

func (e *Enricher) identity(raw news.RawArticle) string {
	if raw.ID != "" {
		return raw.ID
	}
	return news.DeriveID(raw.Title, raw.PublishedAt)
}

// lookup returns the cached record only when it carries a summary. A read
// failure is stale-cache-tolerant: it counts as a miss and the pipeline
// regenerates.
func (e *Enricher) lookup(id string) *database.Article {
	article, err := e.repo.GetByArticleID(id)
	if err != nil {
		e.cacheReadFailures.Add(1)
		slog.Warn("Article cache read failed, treating as miss", "article_id", id, "error", err)
		return nil
	}
	if article == nil || !article.HasSummary() {
		return nil
	}
	return article
}

func (e *Enricher) generatorInput(ctx context.Context, raw news.RawArticle) summarizer.Article {
	input := summarizer.Article{
		Title:       raw.Title,
		Description: raw.Description,
		Content:     raw.Content,
	}

	if input.Content == "" && e.extractor != nil {
		content, err := e.extractor.FromURL(ctx, raw.URL)
		if err != nil {
			slog.Debug("Content extraction failed", "url", raw.URL, "error", err)
		} else {
			input.Content = content
		}
	}

	return input
}

// persist writes the summary through to the article cache. Durability
// failures are reported via log and counter only; the computed summary has
// already been handed to the caller.
func (e *Enricher) persist(id string, raw news.RawArticle, categoryHint, summary string) {
	_, err := e.repo.UpsertSummary(id, summary, database.NewArticleFields{
		Source:      raw.Source,
		Author:      raw.Author,
		Title:       raw.Title,
		Description: raw.Description,
		URL:         raw.URL,
		ImageURL:    raw.ImageURL,
		PublishedAt: parsePublishedAt(raw.PublishedAt),
		Content:     raw.Content,
		Category:    database.NormalizeCategory(categoryHint),
	})
	if err != nil {
		e.cacheWriteFailures.Add(1)
		slog.Error("Article cache write failed", "article_id", id, "error", err)
	}
}

func parsePublishedAt(value string) time.Time {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC()
	}
	return time.Time{}
}
