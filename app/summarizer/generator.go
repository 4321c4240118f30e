package summarizer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

const (
	maxSummaryTokens   = 150
	summaryTemperature = 0.7
	maxPromptChars     = 500

	systemPrompt = "You are a professional news summarizer. Create concise, " +
		"informative summaries of news articles in 2-3 sentences. Focus on " +
		"the key facts and main points."

	// NoSummaryText is returned when neither the AI capability nor the
	// article's own description can produce a summary.
	NoSummaryText = "Summary not available."
)

// Article is the minimal input needed to produce a summary.
type Article struct {
	Title       string
	Description string
	Content     string
}

// Generator produces article summaries. AI failures of any kind degrade to
// a deterministic extractive fallback; Generate never fails outward.
type Generator struct {
	client     CompletionClient
	batchDelay time.Duration
}

func NewGenerator(client CompletionClient) *Generator {
	return &Generator{
		client:     client,
		batchDelay: interBatchDelay,
	}
}

// Generate returns a summary for the article. The result is always a
// non-empty string: on any AI failure, including the client not being
// configured, the extractive fallback is used instead.
func (g *Generator) Generate(ctx context.Context, article Article) string {
	if g.client == nil || !g.client.IsConfigured() {
		return FallbackSummary(article)
	}

	summary, err := g.client.Complete(ctx, systemPrompt, buildPrompt(article), maxSummaryTokens, summaryTemperature)
	if err != nil {
		slog.Warn("Summary generation failed, using fallback", "title", article.Title, "error", err)
		return FallbackSummary(article)
	}

	return summary
}

func buildPrompt(article Article) string {
	content := article.Content
	if content == "" {
		content = article.Description
	}
	if runes := []rune(content); len(runes) > maxPromptChars {
		content = string(runes[:maxPromptChars])
	}

	return fmt.Sprintf("Summarize this news article in 2-3 concise sentences:\n\n"+
		"Title: %s\nContent: %s\n\n"+
		"Provide a clear, informative summary focusing on the main points.",
		article.Title, content)
}

// FallbackSummary derives a summary from the article's description: the
// first two sentences, with an ellipsis when more were cut. An article with
// no description yields NoSummaryText.
func FallbackSummary(article Article) string {
	if article.Description == "" {
		return NoSummaryText
	}

	sentences := strings.Split(article.Description, ". ")
	summary := strings.Join(sentences[:min(2, len(sentences))], ". ")
	if len(sentences) > 2 {
		summary += "..."
	}
	return summary
}
