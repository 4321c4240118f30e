package summarizer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

// latencyClient completes after a per-title latency, to exercise windows
// whose completion order differs from input order.
type latencyClient struct {
	latency  map[string]time.Duration
	failures map[string]bool
	inflight atomic.Int32
	maxSeen  atomic.Int32
}

func (c *latencyClient) IsConfigured() bool { return true }

func (c *latencyClient) Complete(ctx context.Context, systemPrompt, userPrompt string, maxTokens int, temperature float64) (string, error) {
	cur := c.inflight.Add(1)
	defer c.inflight.Add(-1)
	for {
		seen := c.maxSeen.Load()
		if cur <= seen || c.maxSeen.CompareAndSwap(seen, cur) {
			break
		}
	}

	for title, d := range c.latency {
		if containsTitle(userPrompt, title) {
			time.Sleep(d)
			if c.failures[title] {
				return "", errors.New("simulated failure")
			}
			return "summary of " + title, nil
		}
	}
	return "", errors.New("unknown article")
}

func containsTitle(prompt, title string) bool {
	return strings.Contains(prompt, "Title: "+title+"\n")
}

func testArticles(n int) []Article {
	articles := make([]Article, n)
	for i := range articles {
		articles[i] = Article{
			Title:       fmt.Sprintf("article%d", i),
			Description: fmt.Sprintf("Description for article %d. More detail here.", i),
		}
	}
	return articles
}

func TestRunBatch_OrderPreserved(t *testing.T) {
	// B finishes before A, D before C; output order must still be A,B,C,D.
	client := &latencyClient{latency: map[string]time.Duration{
		"article0": 40 * time.Millisecond,
		"article1": 5 * time.Millisecond,
		"article2": 40 * time.Millisecond,
		"article3": 5 * time.Millisecond,
	}}
	generator := &Generator{client: client, batchDelay: time.Millisecond}

	results := generator.RunBatch(context.Background(), testArticles(4), 2)

	if len(results) != 4 {
		t.Fatalf("Expected 4 results, got %d", len(results))
	}
	for i, want := range []string{"summary of article0", "summary of article1", "summary of article2", "summary of article3"} {
		if results[i] != want {
			t.Errorf("Result %d = %q, expected %q", i, results[i], want)
		}
	}
}

func TestRunBatch_ConcurrencyBounded(t *testing.T) {
	client := &latencyClient{latency: map[string]time.Duration{
		"article0": 20 * time.Millisecond,
		"article1": 20 * time.Millisecond,
		"article2": 20 * time.Millisecond,
		"article3": 20 * time.Millisecond,
		"article4": 20 * time.Millisecond,
		"article5": 20 * time.Millisecond,
	}}
	generator := &Generator{client: client, batchDelay: time.Millisecond}

	generator.RunBatch(context.Background(), testArticles(6), 2)

	if got := client.maxSeen.Load(); got > 2 {
		t.Errorf("Expected at most 2 in-flight calls, observed %d", got)
	}
}

func TestRunBatch_FaultIsolation(t *testing.T) {
	client := &latencyClient{
		latency: map[string]time.Duration{
			"article0": time.Millisecond,
			"article1": time.Millisecond,
			"article2": time.Millisecond,
			"article3": time.Millisecond,
		},
		failures: map[string]bool{"article2": true},
	}
	generator := &Generator{client: client, batchDelay: time.Millisecond}

	articles := testArticles(4)
	results := generator.RunBatch(context.Background(), articles, 2)

	if len(results) != 4 {
		t.Fatalf("Expected 4 results, got %d", len(results))
	}
	if results[2] != FallbackSummary(articles[2]) {
		t.Errorf("Failing article should hold its fallback summary, got %q", results[2])
	}
	for _, i := range []int{0, 1, 3} {
		if results[i] != fmt.Sprintf("summary of article%d", i) {
			t.Errorf("Result %d = %q, expected real summary", i, results[i])
		}
	}
}

func TestRunBatch_PacingBetweenWindows(t *testing.T) {
	client := &latencyClient{latency: map[string]time.Duration{
		"article0": time.Millisecond,
		"article1": time.Millisecond,
		"article2": time.Millisecond,
		"article3": time.Millisecond,
	}}
	delay := 60 * time.Millisecond
	generator := &Generator{client: client, batchDelay: delay}

	// 4 articles with a window of 2: exactly one inter-window delay.
	start := time.Now()
	generator.RunBatch(context.Background(), testArticles(4), 2)
	elapsed := time.Since(start)

	if elapsed < delay {
		t.Errorf("Expected at least one pacing delay (%v), finished in %v", delay, elapsed)
	}
	if elapsed >= 2*delay {
		t.Errorf("Expected exactly one pacing delay, elapsed %v suggests more", elapsed)
	}
}

func TestRunBatch_NoDelayForSingleWindow(t *testing.T) {
	client := &latencyClient{latency: map[string]time.Duration{
		"article0": time.Millisecond,
		"article1": time.Millisecond,
	}}
	generator := &Generator{client: client, batchDelay: 200 * time.Millisecond}

	start := time.Now()
	generator.RunBatch(context.Background(), testArticles(2), 2)
	if elapsed := time.Since(start); elapsed >= 200*time.Millisecond {
		t.Errorf("No pacing delay expected after the last window, elapsed %v", elapsed)
	}
}

func TestRunBatch_EmptyInput(t *testing.T) {
	generator := NewGenerator(&fakeClient{configured: true, summary: "s"})

	results := generator.RunBatch(context.Background(), nil, 3)
	if len(results) != 0 {
		t.Errorf("Expected empty result for empty input, got %d entries", len(results))
	}
}

func TestRunBatch_DefaultConcurrency(t *testing.T) {
	client := &fakeClient{configured: true, summary: "s"}
	generator := &Generator{client: client, batchDelay: time.Millisecond}

	results := generator.RunBatch(context.Background(), testArticles(5), 0)
	if len(results) != 5 {
		t.Fatalf("Expected 5 results, got %d", len(results))
	}
	for i, r := range results {
		if r != "s" {
			t.Errorf("Result %d = %q, expected %q", i, r, "s")
		}
	}
}
