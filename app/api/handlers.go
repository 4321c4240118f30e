package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/omarrouk/inshight-board/app/cache"
	"github.com/omarrouk/inshight-board/app/database"
	"github.com/omarrouk/inshight-board/app/enricher"
	"github.com/omarrouk/inshight-board/app/news"
)

func NewHandler(source news.Source, enr *enricher.Enricher,
	repo database.ArticleRepository, respCache *cache.ResponseCache) *Handler {
	return &Handler{
		source:    source,
		enricher:  enr,
		repo:      repo,
		respCache: respCache,
		startedAt: time.Now(),
	}
}

// GetNews serves current headlines enriched with summaries.
func (h *Handler) GetNews(c *gin.Context) {
	h.serveHeadlines(c, c.Query("category"))
}

// GetByCategory serves headlines for a validated category path parameter.
func (h *Handler) GetByCategory(c *gin.Context) {
	category := c.Param("category")
	if !database.ValidCategory(category) {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid category"})
		return
	}
	h.serveHeadlines(c, category)
}

func (h *Handler) serveHeadlines(c *gin.Context, category string) {
	page := parsePositive(c.DefaultQuery("page", "1"), 1)
	limit := parseLimit(c.DefaultQuery("limit", "20"))
	ctx := c.Request.Context()

	cacheKey := cache.Key("headlines", category, strconv.Itoa(page), strconv.Itoa(limit))
	var cached newsEnvelope
	if found, err := h.respCache.Get(ctx, cacheKey, &cached); err != nil {
		slog.Warn("Response cache read failed", "error", err)
	} else if found {
		c.JSON(http.StatusOK, cached)
		return
	}

	resp, err := h.source.Headlines(ctx, news.HeadlinesOptions{
		Category: category,
		PageSize: limit,
		Page:     page,
	})
	if err != nil {
		h.renderFetchError(c, err)
		return
	}

	enriched := h.enricher.ResolveAll(ctx, resp.Articles, category)

	envelope := newsEnvelope{
		Status:       "success",
		Results:      len(enriched),
		TotalResults: resp.TotalResults,
		Page:         page,
		Data:         newsData{Articles: enriched},
	}
	if err := h.respCache.Set(ctx, cacheKey, envelope); err != nil {
		slog.Warn("Response cache write failed", "error", err)
	}

	c.JSON(http.StatusOK, envelope)
}

// SearchNews serves raw search results; search listings are not enriched.
func (h *Handler) SearchNews(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Search query is required"})
		return
	}

	page := parsePositive(c.DefaultQuery("page", "1"), 1)
	limit := parseLimit(c.DefaultQuery("limit", "20"))
	ctx := c.Request.Context()

	cacheKey := cache.Key("search", query, strconv.Itoa(page), strconv.Itoa(limit))
	var cached gin.H
	if found, err := h.respCache.Get(ctx, cacheKey, &cached); err != nil {
		slog.Warn("Response cache read failed", "error", err)
	} else if found {
		c.JSON(http.StatusOK, cached)
		return
	}

	resp, err := h.source.Search(ctx, news.SearchOptions{
		Query:    query,
		PageSize: limit,
		Page:     page,
	})
	if err != nil {
		h.renderFetchError(c, err)
		return
	}

	envelope := gin.H{
		"status":       "success",
		"results":      len(resp.Articles),
		"totalResults": resp.TotalResults,
		"page":         page,
		"data":         gin.H{"articles": resp.Articles},
	}
	if err := h.respCache.Set(ctx, cacheKey, envelope); err != nil {
		slog.Warn("Response cache write failed", "error", err)
	}

	c.JSON(http.StatusOK, envelope)
}

// GetArticleSummary returns the cached summary for an article, generating
// and persisting one when absent.
func (h *Handler) GetArticleSummary(c *gin.Context) {
	var req summaryRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Invalid request body"})
		return
	}

	if req.ArticleID == "" && req.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Article ID or title is required"})
		return
	}

	raw := news.RawArticle{
		ID:          req.ArticleID,
		Title:       req.Title,
		Description: req.Description,
		Content:     req.Content,
		PublishedAt: req.PublishedAt,
	}
	if raw.ID == "" {
		raw.ID = news.DeriveID(raw.Title, raw.PublishedAt)
	}

	if article, err := h.repo.GetByArticleID(raw.ID); err == nil && article != nil && article.HasSummary() {
		c.JSON(http.StatusOK, gin.H{
			"status": "success",
			"data":   gin.H{"summary": article.Summary, "cached": true},
		})
		return
	}

	result := h.enricher.Resolve(c.Request.Context(), raw, req.Category)

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   gin.H{"summary": result.Summary, "cached": false},
	})
}

// IncrementView bumps the view counter for a persisted article.
func (h *Handler) IncrementView(c *gin.Context) {
	h.incrementCounter(c, h.repo.IncrementViewCount)
}

// IncrementSave bumps the save counter for a persisted article.
func (h *Handler) IncrementSave(c *gin.Context) {
	h.incrementCounter(c, h.repo.IncrementSaveCount)
}

func (h *Handler) incrementCounter(c *gin.Context, increment func(string) error) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "Article ID is required"})
		return
	}

	if err := increment(id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "Article not found"})
			return
		}
		slog.Error("Counter update failed", "article_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to update article"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := gin.H{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
		"uptime":    time.Since(h.startedAt).Round(time.Second).String(),
	}

	if count, err := h.repo.GetArticleCount(); err == nil {
		health["articles"] = count
	}

	c.JSON(http.StatusOK, health)
}

func (h *Handler) GetStats(c *gin.Context) {
	stats := gin.H{
		"pipeline": h.enricher.Stats(),
	}

	if total, summarized, err := h.repo.GetSummaryStats(); err == nil {
		stats["articles"] = gin.H{"total": total, "summarized": summarized}
	} else {
		slog.Error("Database error", "operation", "get_summary_stats", "error", err)
	}

	c.JSON(http.StatusOK, stats)
}

func (h *Handler) renderFetchError(c *gin.Context, err error) {
	var fetchErr *news.FetchError
	if errors.As(err, &fetchErr) {
		slog.Error("Upstream fetch failed", "operation", fetchErr.Op, "status", fetchErr.StatusCode, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"status": "error", "message": fetchErr.Message})
		return
	}

	slog.Error("News fetch failed", "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "Failed to fetch news"})
}

// parseLimit ensures a sane integer limit, with bounds
func parseLimit(s string) int {
	l, err := strconv.Atoi(s)
	if err != nil || l <= 0 {
		return 20
	}
	if l > 100 {
		return 100
	}
	return l
}

func parsePositive(s string, fallback int) int {
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
