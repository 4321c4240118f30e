package enricher

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	readability "github.com/go-shiori/go-readability"
)

// ContentExtractor recovers article body text from the article's own page,
// for upstream items that ship without content.
type ContentExtractor struct {
	hc        *http.Client
	userAgent string
}

func NewContentExtractor(hc *http.Client, userAgent string) *ContentExtractor {
	if hc == nil {
		hc = &http.Client{Timeout: 10 * time.Second}
	}
	return &ContentExtractor{hc: hc, userAgent: userAgent}
}

func (e *ContentExtractor) FromURL(ctx context.Context, pageURL string) (string, error) {
	if pageURL == "" {
		return "", fmt.Errorf("article URL is empty")
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", e.userAgent)

	resp, err := e.hc.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	article, err := readability.FromReader(resp.Body, resp.Request.URL)
	if err != nil {
		return "", fmt.Errorf("failed to extract content: %w", err)
	}

	text := strings.TrimSpace(article.TextContent)
	if text == "" {
		return "", fmt.Errorf("no content extracted from page")
	}

	slog.Debug("Content extracted successfully", "url", pageURL, "content_length", len(text))

	return text, nil
}
