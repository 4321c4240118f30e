package cfg

import (
	"cmp"
	"fmt"
	"strings"
	"time"

	"github.com/jessevdk/go-flags"
	"golang.org/x/text/language"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Database configuration
	DBHost     string `long:"db-host" env:"DB_HOST" default:"localhost" description:"Database host"`
	DBPort     string `long:"db-port" env:"DB_PORT" default:"5432" description:"Database port"`
	DBUser     string `long:"db-user" env:"DB_USER" default:"insight_user" description:"Database user"`
	DBPassword string `long:"db-password" env:"DB_PASSWORD" default:"insight_password" description:"Database password (required)" required:"true"`
	DBName     string `long:"db-name" env:"DB_NAME" default:"inshight_board" description:"Database name"`

	// Upstream news source
	GNewsAPIKey  string `long:"gnews-api-key" env:"GNEWS_API_KEY" description:"GNews API key"`
	GNewsBaseURL string `long:"gnews-base-url" env:"GNEWS_BASE_URL" default:"https://gnews.io/api/v4" description:"GNews API base URL"`
	Country      string `long:"country" env:"NEWS_COUNTRY" default:"us" description:"Country code for headline requests"`
	Language     string `long:"language" env:"NEWS_LANGUAGE" default:"en" description:"Language code for news requests (BCP 47)"`
	FeedsFile    string `long:"feeds-file" env:"FEEDS_FILE" description:"Optional YAML file mapping categories to RSS feed URLs"`

	// AI summarization
	OpenRouterAPIKey  string `long:"openrouter-api-key" env:"OPENROUTER_API_KEY" description:"OpenRouter API key (summaries fall back to extractive mode when unset)"`
	OpenRouterBaseURL string `long:"openrouter-base-url" env:"OPENROUTER_BASE_URL" default:"https://openrouter.ai/api/v1" description:"OpenRouter API base URL"`
	SummaryModel      string `long:"summary-model" env:"SUMMARY_MODEL" default:"meta-llama/llama-3.1-8b-instruct:free" description:"Model used for summary generation"`

	// Application configuration
	Port               string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	RedisAddr          string `long:"redis-addr" env:"REDIS_ADDR" description:"Redis address for response caching (optional)"`
	ResponseCacheTTL   int    `long:"response-cache-ttl" env:"RESPONSE_CACHE_TTL" default:"300" description:"Response cache TTL in seconds"`
	SummaryConcurrency int    `long:"summary-concurrency" env:"SUMMARY_CONCURRENCY" default:"3" description:"Concurrent summary generations per batch window"`
	ExtractContent     bool   `long:"extract-content" env:"EXTRACT_CONTENT" description:"Fetch article pages to recover missing content before summarizing"`
	WorkerCount        int    `long:"worker-count" env:"WORKER_COUNT" default:"3" description:"Number of background workers for warm tasks"`
	WarmInterval       int    `long:"warm-interval" env:"WARM_INTERVAL" default:"900" description:"Warm scheduler interval in seconds"`
	WarmCategories     string `long:"warm-categories" env:"WARM_CATEGORIES" description:"Comma-separated categories to pre-warm (empty disables the scheduler)"`
	WarmPageSize       int    `long:"warm-page-size" env:"WARM_PAGE_SIZE" default:"20" description:"Headline count fetched per warm task"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"InsightBoard/1.0" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, America/New_York)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		DBHost:             raw.DBHost,
		DBPort:             raw.DBPort,
		DBUser:             raw.DBUser,
		DBPassword:         raw.DBPassword,
		DBName:             raw.DBName,
		GNewsAPIKey:        raw.GNewsAPIKey,
		GNewsBaseURL:       raw.GNewsBaseURL,
		Country:            raw.Country,
		Language:           normalizeLanguage(raw.Language),
		FeedsFile:          raw.FeedsFile,
		OpenRouterAPIKey:   raw.OpenRouterAPIKey,
		OpenRouterBaseURL:  raw.OpenRouterBaseURL,
		SummaryModel:       raw.SummaryModel,
		Port:               raw.Port,
		RedisAddr:          raw.RedisAddr,
		ResponseCacheTTL:   raw.ResponseCacheTTL,
		SummaryConcurrency: raw.SummaryConcurrency,
		ExtractContent:     raw.ExtractContent,
		WorkerCount:        raw.WorkerCount,
		WarmInterval:       raw.WarmInterval,
		WarmCategories:     splitList(raw.WarmCategories),
		WarmPageSize:       raw.WarmPageSize,
		UserAgent:          raw.UserAgent,
		Timezone:           raw.Timezone,
		Debug:              raw.Debug,
		Version:            GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

// normalizeLanguage validates the configured language tag and reduces it to
// the base code the upstream API expects (e.g. "en-US" becomes "en").
func normalizeLanguage(lang string) string {
	tag, err := language.Parse(lang)
	if err != nil {
		fmt.Printf("Warning: Invalid language '%s', falling back to 'en': %v\n", lang, err)
		return "en"
	}
	base, _ := tag.Base()
	return base.String()
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
		}
	}
	return nil
}
