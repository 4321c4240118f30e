package summarizer

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// fakeClient implements CompletionClient for testing.
type fakeClient struct {
	configured bool
	summary    string
	err        error
	calls      int
}

func (f *fakeClient) IsConfigured() bool {
	return f.configured
}

func (f *fakeClient) Complete(ctx context.Context, systemPrompt, userPrompt string, maxTokens int, temperature float64) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.summary, nil
}

func TestGenerator_Generate_Success(t *testing.T) {
	client := &fakeClient{configured: true, summary: "A concise AI summary."}
	generator := NewGenerator(client)

	got := generator.Generate(context.Background(), Article{Title: "Test", Content: "Body"})
	if got != "A concise AI summary." {
		t.Errorf("Expected AI summary, got %q", got)
	}
	if client.calls != 1 {
		t.Errorf("Expected 1 client call, got %d", client.calls)
	}
}

func TestGenerator_Generate_FallbackOnFailure(t *testing.T) {
	client := &fakeClient{configured: true, err: errors.New("upstream unavailable")}
	generator := NewGenerator(client)

	article := Article{
		Title:       "Fed raises rates",
		Description: "The Fed raised rates. Markets reacted. Analysts split on outlook.",
	}

	got := generator.Generate(context.Background(), article)
	if got != "The Fed raised rates. Markets reacted..." {
		t.Errorf("Expected two-sentence fallback, got %q", got)
	}
}

func TestGenerator_Generate_NotConfiguredSkipsNetwork(t *testing.T) {
	client := &fakeClient{configured: false, summary: "should not be used"}
	generator := NewGenerator(client)

	got := generator.Generate(context.Background(), Article{Description: "One sentence only."})
	if got != "One sentence only." {
		t.Errorf("Expected fallback from description, got %q", got)
	}
	if client.calls != 0 {
		t.Errorf("Unconfigured client must not be called, got %d calls", client.calls)
	}
}

func TestGenerator_Generate_NilClient(t *testing.T) {
	generator := NewGenerator(nil)

	got := generator.Generate(context.Background(), Article{})
	if got != NoSummaryText {
		t.Errorf("Expected %q, got %q", NoSummaryText, got)
	}
}

func TestFallbackSummary(t *testing.T) {
	tests := []struct {
		name        string
		description string
		expected    string
	}{
		{
			name:        "three sentences truncated with ellipsis",
			description: "The Fed raised rates. Markets reacted. Analysts split on outlook.",
			expected:    "The Fed raised rates. Markets reacted...",
		},
		{
			name:        "two sentences kept as is",
			description: "First thing happened. Second thing happened.",
			expected:    "First thing happened. Second thing happened.",
		},
		{
			name:        "single sentence kept as is",
			description: "Only one sentence here.",
			expected:    "Only one sentence here.",
		},
		{
			name:        "no description",
			description: "",
			expected:    NoSummaryText,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FallbackSummary(Article{Description: tt.description})
			if got != tt.expected {
				t.Errorf("FallbackSummary() = %q, expected %q", got, tt.expected)
			}
			if got == "" {
				t.Error("Fallback summary must never be empty")
			}
		})
	}
}

func TestBuildPrompt_Truncation(t *testing.T) {
	long := strings.Repeat("x", 2000)
	prompt := buildPrompt(Article{Title: "Test", Content: long})

	if strings.Contains(prompt, strings.Repeat("x", 501)) {
		t.Error("Prompt content should be truncated to 500 characters")
	}
	if !strings.Contains(prompt, strings.Repeat("x", 500)) {
		t.Error("Prompt should contain the first 500 characters of content")
	}
	if !strings.Contains(prompt, "Title: Test") {
		t.Error("Prompt should embed the article title")
	}
}

func TestBuildPrompt_DescriptionWhenNoContent(t *testing.T) {
	prompt := buildPrompt(Article{Title: "Test", Description: "Short description."})
	if !strings.Contains(prompt, "Short description.") {
		t.Error("Prompt should fall back to description when content is missing")
	}
}
