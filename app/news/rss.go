package news

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"gopkg.in/yaml.v3"
)

// RSSSource serves articles from configured RSS/Atom feeds, mapped by
// category. It implements the same Source contract as the GNews client, so
// feeds can supplement API headlines without the pipeline noticing.
type RSSSource struct {
	feeds     map[string][]string
	parser    *gofeed.Parser
	userAgent string
	hc        *http.Client
}

var _ Source = (*RSSSource)(nil)

type feedsConfig struct {
	Feeds map[string][]string `yaml:"feeds"`
}

// LoadFeeds reads a YAML file mapping category names to feed URLs.
func LoadFeeds(path string) (map[string][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read feeds file: %w", err)
	}

	var parsed feedsConfig
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse feeds file: %w", err)
	}
	if len(parsed.Feeds) == 0 {
		return nil, fmt.Errorf("feeds file %s defines no feeds", path)
	}

	return parsed.Feeds, nil
}

func NewRSSSource(feeds map[string][]string, userAgent string, hc *http.Client) *RSSSource {
	if hc == nil {
		hc = &http.Client{Timeout: fetchTimeout}
	}
	return &RSSSource{
		feeds:     feeds,
		parser:    gofeed.NewParser(),
		userAgent: userAgent,
		hc:        hc,
	}
}

func (s *RSSSource) Headlines(ctx context.Context, opts HeadlinesOptions) (*Response, error) {
	category := opts.Category
	if category == "" {
		category = "general"
	}

	urls := s.feeds[category]
	if len(urls) == 0 {
		return &Response{}, nil
	}

	limit := pageSizeOrDefault(opts.PageSize)
	var articles []RawArticle
	for _, feedURL := range urls {
		items, err := s.fetchFeed(ctx, feedURL)
		if err != nil {
			// A single broken feed must not take down the whole category.
			slog.Warn("RSS feed fetch failed", "url", feedURL, "error", err)
			continue
		}
		articles = append(articles, items...)
	}

	total := len(articles)
	if len(articles) > limit {
		articles = articles[:limit]
	}

	return &Response{TotalResults: total, Articles: articles}, nil
}

func (s *RSSSource) Search(ctx context.Context, opts SearchOptions) (*Response, error) {
	query := strings.ToLower(opts.Query)
	limit := pageSizeOrDefault(opts.PageSize)

	var articles []RawArticle
	for category := range s.feeds {
		resp, err := s.Headlines(ctx, HeadlinesOptions{Category: category, PageSize: 100})
		if err != nil {
			return nil, err
		}
		for _, a := range resp.Articles {
			if strings.Contains(strings.ToLower(a.Title), query) ||
				strings.Contains(strings.ToLower(a.Description), query) {
				articles = append(articles, a)
			}
		}
	}

	total := len(articles)
	if len(articles) > limit {
		articles = articles[:limit]
	}

	return &Response{TotalResults: total, Articles: articles}, nil
}

func (s *RSSSource) fetchFeed(ctx context.Context, feedURL string) ([]RawArticle, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	feed, err := s.parser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	articles := make([]RawArticle, 0, len(feed.Items))
	for _, item := range feed.Items {
		articles = append(articles, s.normalizeItem(feed, item))
	}

	return articles, nil
}

func (s *RSSSource) normalizeItem(feed *gofeed.Feed, item *gofeed.Item) RawArticle {
	publishedAt := item.Published
	if item.PublishedParsed != nil {
		publishedAt = item.PublishedParsed.UTC().Format(time.RFC3339)
	}

	author := ""
	if len(item.Authors) > 0 && item.Authors[0] != nil {
		author = item.Authors[0].Name
	}
	if author == "" {
		author = feed.Title
	}

	imageURL := ""
	if item.Image != nil {
		imageURL = item.Image.URL
	}

	return RawArticle{
		ID:          DeriveID(item.Title, publishedAt),
		Source:      feed.Title,
		Author:      author,
		Title:       item.Title,
		Description: item.Description,
		URL:         item.Link,
		ImageURL:    imageURL,
		PublishedAt: publishedAt,
		Content:     item.Content,
	}
}
