package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/omarrouk/inshight-board/app/api"
	"github.com/omarrouk/inshight-board/app/cache"
	"github.com/omarrouk/inshight-board/app/cfg"
	"github.com/omarrouk/inshight-board/app/database"
	"github.com/omarrouk/inshight-board/app/enricher"
	"github.com/omarrouk/inshight-board/app/news"
	"github.com/omarrouk/inshight-board/app/summarizer"
	"github.com/omarrouk/inshight-board/app/tasks"
)

func main() {
	// Load configuration from environment variables and command-line flags
	c, err := cfg.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if c == nil {
		// Help was shown, exit gracefully
		return
	}

	logLevel := slog.LevelInfo
	if c.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting InsightBoard server", "version", c.Version)

	// Database connection
	db, err := database.NewConnection(c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("Connected to database")

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Migrations applied", "version", version, "dirty", dirty)

	repo := database.NewArticleRepository(db)

	// News sources: GNews is primary, optional RSS feeds supplement it
	httpClient := &http.Client{Timeout: 15 * time.Second}
	gnews := news.NewClient(c.GNewsAPIKey, c.GNewsBaseURL, c.Country, c.Language, c.UserAgent, httpClient)
	if !gnews.IsConfigured() {
		slog.Warn("GNews API key not set, upstream requests will fail")
	}

	var source news.Source = gnews
	if c.FeedsFile != "" {
		feeds, err := news.LoadFeeds(c.FeedsFile)
		if err != nil {
			slog.Error("Failed to load RSS feeds file", "path", c.FeedsFile, "error", err)
			os.Exit(1)
		}
		rss := news.NewRSSSource(feeds, c.UserAgent, httpClient)
		source = news.NewMultiSource(gnews, rss)
		slog.Info("RSS feeds enabled", "categories", len(feeds))
	}

	// Summarization pipeline
	aiClient := summarizer.NewClient(c.OpenRouterAPIKey, c.OpenRouterBaseURL, c.SummaryModel, httpClient)
	if !aiClient.IsConfigured() {
		slog.Warn("OpenRouter API key not set, summaries will use extractive fallback")
	}
	generator := summarizer.NewGenerator(aiClient)

	var extractor *enricher.ContentExtractor
	if c.ExtractContent {
		extractor = enricher.NewContentExtractor(httpClient, c.UserAgent)
		slog.Info("Content extraction enabled")
	}

	enr := enricher.New(repo, generator, extractor, c.SummaryConcurrency)

	// Optional Redis response cache; a missing Redis degrades to no caching
	var respCache *cache.ResponseCache
	if c.RedisAddr != "" {
		respCache, err = cache.New(c.RedisAddr, time.Duration(c.ResponseCacheTTL)*time.Second)
		if err != nil {
			slog.Warn("Redis unavailable, response caching disabled", "addr", c.RedisAddr, "error", err)
			respCache = nil
		} else {
			defer respCache.Close()
			slog.Info("Response cache enabled", "addr", c.RedisAddr, "ttl_seconds", c.ResponseCacheTTL)
		}
	}

	// Optional warm scheduler pre-fills the article cache per category
	if len(c.WarmCategories) > 0 {
		scheduler := tasks.NewScheduler(source, enr, c.WarmCategories, c.WarmPageSize,
			time.Duration(c.WarmInterval)*time.Second, c.WorkerCount)
		scheduler.Start()
		defer scheduler.Stop()
		slog.Info("Warm scheduler started", "categories", c.WarmCategories,
			"interval_seconds", c.WarmInterval, "workers", c.WorkerCount)
	}

	// HTTP server
	handler := api.NewHandler(source, enr, repo, respCache)
	server := api.NewServer(handler, c.Debug)

	httpServer := &http.Server{
		Addr:         ":" + c.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", c.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Wait for interrupt signal or server error
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	// Graceful shutdown
	slog.Info("Shutting down server gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped")
	}

	slog.Info("Shutdown complete")
}
