package news

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const fetchTimeout = 10 * time.Second

// Client fetches articles from a GNews-compatible HTTP API.
type Client struct {
	apiKey    string
	baseURL   string
	country   string
	language  string
	userAgent string
	hc        *http.Client
}

var _ Source = (*Client)(nil)

func NewClient(apiKey, baseURL, country, language, userAgent string, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: fetchTimeout}
	}
	return &Client{
		apiKey:    apiKey,
		baseURL:   baseURL,
		country:   country,
		language:  language,
		userAgent: userAgent,
		hc:        hc,
	}
}

func (c *Client) IsConfigured() bool {
	return c.apiKey != ""
}

func (c *Client) Headlines(ctx context.Context, opts HeadlinesOptions) (*Response, error) {
	if !c.IsConfigured() {
		return nil, &FetchError{Op: "headlines", Message: "GNews API key not configured"}
	}

	params := url.Values{}
	params.Set("apikey", c.apiKey)
	params.Set("lang", c.language)
	if opts.Country != "" {
		params.Set("country", opts.Country)
	} else {
		params.Set("country", c.country)
	}
	params.Set("max", strconv.Itoa(pageSizeOrDefault(opts.PageSize)))
	if opts.Page > 1 {
		params.Set("page", strconv.Itoa(opts.Page))
	}
	if opts.Category != "" {
		params.Set("category", opts.Category)
	}

	return c.fetch(ctx, "headlines", c.baseURL+"/top-headlines", params)
}

func (c *Client) Search(ctx context.Context, opts SearchOptions) (*Response, error) {
	if !c.IsConfigured() {
		return nil, &FetchError{Op: "search", Message: "GNews API key not configured"}
	}

	params := url.Values{}
	params.Set("apikey", c.apiKey)
	params.Set("lang", c.language)
	params.Set("q", opts.Query)
	params.Set("max", strconv.Itoa(pageSizeOrDefault(opts.PageSize)))
	if opts.Page > 1 {
		params.Set("page", strconv.Itoa(opts.Page))
	}
	if opts.SortBy != "" {
		params.Set("sortby", opts.SortBy)
	} else {
		params.Set("sortby", "publishedAt")
	}

	return c.fetch(ctx, "search", c.baseURL+"/search", params)
}

type gnewsArticle struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
	URL         string `json:"url"`
	Image       string `json:"image"`
	PublishedAt string `json:"publishedAt"`
	Source      struct {
		Name string `json:"name"`
		URL  string `json:"url"`
	} `json:"source"`
}

type gnewsResponse struct {
	TotalArticles int            `json:"totalArticles"`
	Articles      []gnewsArticle `json:"articles"`
	Errors        []string       `json:"errors"`
}

func (c *Client) fetch(ctx context.Context, op, endpoint string, params url.Values) (*Response, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, &FetchError{Op: op, Message: "failed to create request", Err: err}
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, &FetchError{Op: op, Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Op: op, StatusCode: resp.StatusCode, Message: "failed to read response body", Err: err}
	}

	var parsed gnewsResponse
	if jsonErr := json.Unmarshal(body, &parsed); jsonErr != nil && resp.StatusCode == http.StatusOK {
		return nil, &FetchError{Op: op, StatusCode: resp.StatusCode, Message: "invalid response body", Err: jsonErr}
	}

	if resp.StatusCode != http.StatusOK {
		message := fmt.Sprintf("HTTP error: %d %s", resp.StatusCode, resp.Status)
		if len(parsed.Errors) > 0 {
			message = parsed.Errors[0]
		}
		return nil, &FetchError{Op: op, StatusCode: resp.StatusCode, Message: message}
	}

	articles := make([]RawArticle, 0, len(parsed.Articles))
	for _, a := range parsed.Articles {
		articles = append(articles, formatArticle(a))
	}

	return &Response{TotalResults: parsed.TotalArticles, Articles: articles}, nil
}

// formatArticle normalizes an upstream article and assigns its derived
// identity. GNews provides no stable key, so the ID comes from DeriveID.
func formatArticle(a gnewsArticle) RawArticle {
	return RawArticle{
		ID:          DeriveID(a.Title, a.PublishedAt),
		Source:      a.Source.Name,
		Author:      a.Source.Name,
		Title:       a.Title,
		Description: a.Description,
		URL:         a.URL,
		ImageURL:    a.Image,
		PublishedAt: a.PublishedAt,
		Content:     a.Content,
	}
}

func pageSizeOrDefault(size int) int {
	if size <= 0 || size > 100 {
		return 20
	}
	return size
}
