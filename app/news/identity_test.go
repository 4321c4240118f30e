package news

import (
	"testing"
)

func TestDeriveID_Deterministic(t *testing.T) {
	first := DeriveID("Fed raises rates", "2024-01-01T00:00:00Z")
	second := DeriveID("Fed raises rates", "2024-01-01T00:00:00Z")

	if first != second {
		t.Errorf("Expected identical IDs for identical input, got %q and %q", first, second)
	}
}

func TestDeriveID_KnownValues(t *testing.T) {
	tests := []struct {
		title       string
		publishedAt string
		expected    string
	}{
		{"Fed raises rates", "2024-01-01T00:00:00Z", "697945790"},
		{"Breaking News", "2024-06-01T12:00:00Z", "43785533"},
		// Empty fields still hash the separator
		{"", "", "45"},
	}

	for _, tt := range tests {
		if got := DeriveID(tt.title, tt.publishedAt); got != tt.expected {
			t.Errorf("DeriveID(%q, %q) = %q, expected %q", tt.title, tt.publishedAt, got, tt.expected)
		}
	}
}

func TestDeriveID_DistinctInputs(t *testing.T) {
	base := DeriveID("Fed raises rates", "2024-01-01T00:00:00Z")

	if DeriveID("Fed cuts rates", "2024-01-01T00:00:00Z") == base {
		t.Error("Different titles should produce different IDs")
	}
	if DeriveID("Fed raises rates", "2024-01-02T00:00:00Z") == base {
		t.Error("Different timestamps should produce different IDs")
	}
}

func TestDeriveID_NonASCII(t *testing.T) {
	id := DeriveID("Börse schließt höher", "2024-03-15T09:30:00Z")
	if id == "" {
		t.Fatal("Expected non-empty ID for non-ASCII title")
	}
	if id != DeriveID("Börse schließt höher", "2024-03-15T09:30:00Z") {
		t.Error("Non-ASCII input should still hash deterministically")
	}
}
