package summarizer

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClient_Complete(t *testing.T) {
	var gotReq chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("Expected path /chat/completions, got %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("Expected bearer auth, got %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("Failed to decode request: %v", err)
		}
		w.Write([]byte(`{"choices": [{"message": {"content": "  A summary.  "}}]}`))
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL, "test-model", nil)

	got, err := client.Complete(context.Background(), "system", "user", 150, 0.7)
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if got != "A summary." {
		t.Errorf("Expected trimmed summary, got %q", got)
	}

	if gotReq.Model != "test-model" {
		t.Errorf("Expected model 'test-model', got %q", gotReq.Model)
	}
	if gotReq.MaxTokens != 150 {
		t.Errorf("Expected max_tokens 150, got %d", gotReq.MaxTokens)
	}
	if gotReq.Temperature != 0.7 {
		t.Errorf("Expected temperature 0.7, got %f", gotReq.Temperature)
	}
	if len(gotReq.Messages) != 2 || gotReq.Messages[0].Role != "system" || gotReq.Messages[1].Role != "user" {
		t.Errorf("Expected system+user messages, got %+v", gotReq.Messages)
	}
}

func TestClient_Complete_NotConfigured(t *testing.T) {
	client := NewClient("", "https://openrouter.example.com", "test-model", nil)

	_, err := client.Complete(context.Background(), "system", "user", 150, 0.7)
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("Expected ErrNotConfigured, got %v", err)
	}
}

func TestClient_Complete_Failures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		payload string
	}{
		{"http error", http.StatusTooManyRequests, `{"error": {"message": "rate limited"}}`},
		{"api error field", http.StatusOK, `{"error": {"message": "model offline"}}`},
		{"no choices", http.StatusOK, `{"choices": []}`},
		{"empty content", http.StatusOK, `{"choices": [{"message": {"content": "   "}}]}`},
		{"malformed json", http.StatusOK, `{not json`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.payload))
			}))
			defer server.Close()

			client := NewClient("test-key", server.URL, "test-model", nil)
			if _, err := client.Complete(context.Background(), "system", "user", 150, 0.7); err == nil {
				t.Error("Expected error")
			}
		})
	}
}
