package summarizer

import (
	"context"
	"sync"
	"time"
)

const (
	// DefaultConcurrency bounds simultaneous AI calls within a batch window.
	DefaultConcurrency = 3

	// interBatchDelay paces consecutive windows to stay under upstream
	// rate limits. No delay follows the final window.
	interBatchDelay = time.Second
)

// RunBatch generates summaries for all articles with bounded concurrency.
// The input is processed in consecutive windows of size concurrency: within
// a window every article is summarized in parallel and all results are
// awaited before the next window starts. Results match input order
// regardless of completion order, and a failing article only degrades its
// own slot to the fallback summary (Generate never fails outward).
func (g *Generator) RunBatch(ctx context.Context, articles []Article, concurrency int) []string {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	results := make([]string, len(articles))
	for start := 0; start < len(articles); start += concurrency {
		end := min(start+concurrency, len(articles))

		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i] = g.Generate(ctx, articles[i])
			}(i)
		}
		wg.Wait()

		if end < len(articles) {
			select {
			case <-time.After(g.batchDelay):
			case <-ctx.Done():
				// Fill remaining slots so the result keeps its shape.
				for i := end; i < len(articles); i++ {
					results[i] = FallbackSummary(articles[i])
				}
				return results
			}
		}
	}

	return results
}
