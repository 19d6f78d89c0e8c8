package llm

import (
	"testing"
)

func TestGeminiModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"gemini-pro", "gemini-3-pro-preview"},
		{"gemini-flash", "gemini-3-flash-preview"},
		{"gemini-2.5-flash", "gemini-2.5-flash"}, // Pass-through
	}
	for _, tt := range tests {
		got := resolveModel(tt.input, geminiModels)
		if got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestBuildGeminiSchema(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"day":  map[string]any{"type": "integer"},
			"date": map[string]any{"type": "string", "description": "YYYY-MM-DD"},
			"mode": map[string]any{"type": "string", "enum": []any{"read", "review", "test"}},
			"activities": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
		},
		"required":         []any{"day", "date"},
		"propertyOrdering": []string{"day", "date", "mode", "activities"},
	}

	schema := buildGeminiSchema(def)

	if schema.Type != "OBJECT" {
		t.Fatalf("expected OBJECT type, got %s", schema.Type)
	}
	if len(schema.Properties) != 4 {
		t.Fatalf("expected 4 properties, got %d", len(schema.Properties))
	}
	if schema.Properties["day"].Type != "INTEGER" {
		t.Errorf("expected INTEGER for day, got %s", schema.Properties["day"].Type)
	}
	if schema.Properties["date"].Description != "YYYY-MM-DD" {
		t.Errorf("description not carried: %q", schema.Properties["date"].Description)
	}
	if len(schema.Properties["mode"].Enum) != 3 {
		t.Errorf("expected 3 enum values, got %d", len(schema.Properties["mode"].Enum))
	}
	if schema.Properties["activities"].Items.Type != "STRING" {
		t.Errorf("expected STRING items, got %s", schema.Properties["activities"].Items.Type)
	}
	if len(schema.Required) != 2 {
		t.Errorf("expected 2 required fields, got %d", len(schema.Required))
	}
	want := []string{"day", "date", "mode", "activities"}
	if len(schema.PropertyOrdering) != len(want) {
		t.Fatalf("PropertyOrdering = %v, want %v", schema.PropertyOrdering, want)
	}
	for i := range want {
		if schema.PropertyOrdering[i] != want[i] {
			t.Errorf("PropertyOrdering[%d] = %q, want %q", i, schema.PropertyOrdering[i], want[i])
		}
	}
}

func TestBuildGeminiContents_Roles(t *testing.T) {
	contents := buildGeminiContents([]Message{
		{Role: RoleUser, Content: "hi"},
		{Role: RoleAssistant, Content: "hello"},
	})
	if len(contents) != 2 {
		t.Fatalf("expected 2 contents, got %d", len(contents))
	}
	if contents[0].Role != "user" || contents[1].Role != "model" {
		t.Errorf("roles = %q, %q; want user, model", contents[0].Role, contents[1].Role)
	}
	if contents[1].Parts[0].Text != "hello" {
		t.Errorf("text = %q", contents[1].Parts[0].Text)
	}
}

func TestNewGeminiProvider_RequiresKey(t *testing.T) {
	if _, err := NewGeminiProvider(t.Context(), Config{Model: "gemini-pro"}); err == nil {
		t.Fatal("expected error for empty API key")
	}
}
