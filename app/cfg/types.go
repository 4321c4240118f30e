package cfg

type Cfg struct {
	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Upstream news source
	GNewsAPIKey  string
	GNewsBaseURL string
	Country      string
	Language     string
	FeedsFile    string

	// AI summarization
	OpenRouterAPIKey  string
	OpenRouterBaseURL string
	SummaryModel      string

	// Application configuration
	Port               string
	RedisAddr          string
	ResponseCacheTTL   int
	SummaryConcurrency int
	ExtractContent     bool
	WorkerCount        int
	WarmInterval       int
	WarmCategories     []string
	WarmPageSize       int

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
