package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func testSchema() *Schema {
	return &Schema{
		Name: "test-hint",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"hint":  map[string]any{"type": "string"},
				"steps": map[string]any{"type": "integer", "minimum": 0},
				"tone":  map[string]any{"type": "string", "enum": []any{"calm", "cheerful"}},
			},
			"required": []any{"hint"},
		},
	}
}

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		valid bool
	}{
		{"all fields", `{"hint":"count on","steps":2,"tone":"calm"}`, true},
		{"required only", `{"hint":"count on"}`, true},
		{"missing required", `{"steps":2}`, false},
		{"wrong type", `{"hint":3}`, false},
		{"bad enum", `{"hint":"x","tone":"angry"}`, false},
		{"negative minimum", `{"hint":"x","steps":-1}`, false},
		{"not json", `count on`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(testSchema(), json.RawMessage(tt.raw))
			if tt.valid {
				if err != nil {
					t.Fatalf("expected valid, got %v", err)
				}
				return
			}
			var inv *ErrInvalidResponse
			if !errors.As(err, &inv) {
				t.Fatalf("expected ErrInvalidResponse, got %v", err)
			}
			if string(inv.Content) != tt.raw {
				t.Errorf("expected content %q, got %q", tt.raw, inv.Content)
			}
		})
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`not json`)); err != nil {
		t.Fatalf("nil schema must accept anything, got %v", err)
	}
}

func TestValidateResponse_SchemaCached(t *testing.T) {
	s := testSchema()
	s.Name = "test-cached"
	if err := validateResponse(s, json.RawMessage(`{"hint":"a"}`)); err != nil {
		t.Fatal(err)
	}
	if _, ok := schemaCache.Load("test-cached"); !ok {
		t.Fatal("expected compiled schema in cache")
	}
}

func TestFinishContent_Text(t *testing.T) {
	content, err := finishContent(Request{}, `say "hi"`)
	if err != nil {
		t.Fatal(err)
	}
	resp := &Response{Content: content}
	text, err := resp.Text()
	if err != nil || text != `say "hi"` {
		t.Fatalf("got %q, %v", text, err)
	}
}

func TestFinishContent_Schema(t *testing.T) {
	if _, err := finishContent(Request{Schema: testSchema()}, `{"steps":1}`); err == nil {
		t.Fatal("expected schema failure")
	}
	content, err := finishContent(Request{Schema: testSchema()}, `{"hint":"ok"}`)
	if err != nil || string(content) != `{"hint":"ok"}` {
		t.Fatalf("got %s, %v", content, err)
	}
}
