package cfg

import (
	"testing"
)

func TestGetVersion(t *testing.T) {
	if GetVersion() == "" {
		t.Error("GetVersion should never return empty string")
	}
}

func TestNormalizeLanguage(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"en", "en"},
		{"en-US", "en"},
		{"fr", "fr"},
		{"pt-BR", "pt"},
		{"not a language", "en"},
		{"", "en"},
	}

	for _, tt := range tests {
		if got := normalizeLanguage(tt.input); got != tt.expected {
			t.Errorf("normalizeLanguage(%q) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"", nil},
		{"technology", []string{"technology"}},
		{"technology,business", []string{"technology", "business"}},
		{" technology , business ,", []string{"technology", "business"}},
	}

	for _, tt := range tests {
		got := splitList(tt.input)
		if len(got) != len(tt.expected) {
			t.Errorf("splitList(%q) = %v, expected %v", tt.input, got, tt.expected)
			continue
		}
		for i := range got {
			if got[i] != tt.expected[i] {
				t.Errorf("splitList(%q)[%d] = %q, expected %q", tt.input, i, got[i], tt.expected[i])
			}
		}
	}
}

func TestConfigFields(t *testing.T) {
	cfg := &Cfg{
		Port:               "8080",
		GNewsAPIKey:        "test-key",
		GNewsBaseURL:       "https://gnews.example.com/api/v4",
		Country:            "us",
		Language:           "en",
		SummaryConcurrency: 3,
		WorkerCount:        3,
		WarmInterval:       900,
		UserAgent:          "Test Agent",
		Timezone:           "UTC",
		Debug:              true,
	}

	if cfg.Port != "8080" {
		t.Errorf("Expected port '8080', got '%s'", cfg.Port)
	}
	if cfg.GNewsAPIKey != "test-key" {
		t.Errorf("Expected GNews API key 'test-key', got '%s'", cfg.GNewsAPIKey)
	}
	if cfg.SummaryConcurrency != 3 {
		t.Errorf("Expected summary concurrency 3, got %d", cfg.SummaryConcurrency)
	}
	if cfg.WarmInterval != 900 {
		t.Errorf("Expected warm interval 900, got %d", cfg.WarmInterval)
	}
	if !cfg.Debug {
		t.Error("Expected debug to be enabled")
	}
}
