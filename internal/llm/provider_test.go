package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestMockProvider_ReturnsCannedResponses(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"a":1}`), Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
		MockText("plain reply"),
	)

	resp1, err := mock.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "first"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp1.Content) != `{"a":1}` {
		t.Fatalf("expected {\"a\":1}, got %s", resp1.Content)
	}
	if resp1.Usage.InputTokens != 10 {
		t.Fatalf("expected 10 input tokens, got %d", resp1.Usage.InputTokens)
	}

	resp2, err := mock.Generate(context.Background(), Request{Model: "gemini-flash"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp2.Text() != "plain reply" {
		t.Fatalf("expected plain reply, got %q", resp2.Text())
	}
	if resp2.Model != "gemini-flash" {
		t.Fatalf("expected model override to be echoed, got %q", resp2.Model)
	}
}

func TestMockProvider_EmptyQueueReturnsError(t *testing.T) {
	mock := NewMockProvider()
	_, err := mock.Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got: %T", err)
	}
}

func TestMockProvider_ValidatesAgainstSchema(t *testing.T) {
	mock := NewMockProvider(MockText(`{"name":"x"}`))

	_, err := mock.Generate(context.Background(), Request{Schema: testSchema()})
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got: %v", err)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
}

func TestMockProvider_WaitHonorsContext(t *testing.T) {
	release := make(chan struct{})
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`), Wait: release})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := mock.Generate(ctx, Request{})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	close(release)
}

func TestMockProvider_RecordsCalls(t *testing.T) {
	mock := NewMockProvider(MockJSON(map[string]any{"ok": true}))

	_, _ = mock.Generate(context.Background(), Request{
		System:   "sys",
		Messages: []Message{{Role: RoleUser, Content: "hello"}},
	})

	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
	if mock.LastCall().System != "sys" {
		t.Fatalf("expected system 'sys', got %q", mock.LastCall().System)
	}
}

func TestResponseText_Nil(t *testing.T) {
	var r *Response
	if r.Text() != "" {
		t.Fatal("nil response should yield empty text")
	}
}

func TestPurposeContext(t *testing.T) {
	ctx := context.Background()
	if p := PurposeFrom(ctx); p != "unknown" {
		t.Fatalf("expected 'unknown', got %q", p)
	}

	ctx = WithPurpose(ctx, PurposeQuiz)
	if p := PurposeFrom(ctx); p != "quiz" {
		t.Fatalf("expected 'quiz', got %q", p)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"gemini without key is allowed", Config{Provider: "gemini"}, false},
		{"anthropic with key", Config{Provider: "anthropic", APIKey: "sk-test"}, false},
		{"mock needs no key", Config{Provider: "mock"}, false},
		{"unknown provider", Config{Provider: "unknown"}, true},
		{"negative attempts", Config{Provider: "gemini", Retry: RetryConfig{MaxAttempts: -1}}, true},
		{"negative timeout", Config{Provider: "gemini", Timeout: -time.Second}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_WithProviderDefaults(t *testing.T) {
	cfg := Config{Provider: "anthropic", Model: "claude-opus-4-1"}.WithProviderDefaults()
	if cfg.Model != "claude-opus-4-1" {
		t.Errorf("explicit model overwritten: %q", cfg.Model)
	}
	if cfg.ChatModel != "claude-haiku" {
		t.Errorf("ChatModel = %q, want claude-haiku", cfg.ChatModel)
	}

	def := DefaultConfig()
	if def.Provider != "gemini" || def.Retry.MaxAttempts != 1 || def.Timeout != 0 {
		t.Errorf("unexpected defaults: %+v", def)
	}
}

func TestLookupCost(t *testing.T) {
	c := LookupCost("gemini-3-pro-preview")
	if c == nil {
		t.Fatal("expected pricing for gemini-3-pro-preview")
	}
	if got := c.Cost(1_000_000, 1_000_000); got != 14 {
		t.Errorf("Cost = %v, want 14", got)
	}
	if LookupCost("no-such-model") != nil {
		t.Error("expected nil for unknown model")
	}
}
