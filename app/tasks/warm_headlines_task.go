package tasks

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/omarrouk/inshight-board/app/enricher"
	"github.com/omarrouk/inshight-board/app/news"
)

// WarmHeadlinesTask fetches current headlines for a category and pushes
// them through the enrichment pipeline, pre-generating and persisting
// summaries before users request them.
type WarmHeadlinesTask struct {
	Task
	source   news.Source
	enricher *enricher.Enricher
	pageSize int
}

func NewWarmHeadlinesTask(category string, source news.Source, enr *enricher.Enricher, pageSize int) *WarmHeadlinesTask {
	return &WarmHeadlinesTask{
		Task:     NewTask(TaskTypeWarmHeadlines, category),
		source:   source,
		enricher: enr,
		pageSize: pageSize,
	}
}

func (t *WarmHeadlinesTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	resp, err := t.source.Headlines(ctx, news.HeadlinesOptions{
		Category: t.Category,
		PageSize: t.pageSize,
	})
	if err != nil {
		return fmt.Errorf("failed to fetch headlines: %w", err)
	}

	enriched := t.enricher.ResolveAll(ctx, resp.Articles, t.Category)

	slog.Info("Task completed",
		"type", "WarmHeadlines",
		"category", t.Category,
		"duration", t.GetDuration(),
		"articles", len(enriched))

	return nil
}
