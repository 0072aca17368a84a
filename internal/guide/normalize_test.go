package guide

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
)

func TestNormalizeRejectsMissingTitle(t *testing.T) {
	cases := []map[string]any{
		{"sections": []any{}},
		{"title": "", "sections": []any{}},
		{"title": "   ", "sections": []any{}},
		{"title": 42.0, "sections": []any{}},
	}
	for _, value := range cases {
		if _, err := Normalize(value); !errors.Is(err, ErrInvalidShape) {
			t.Fatalf("expected ErrInvalidShape for %#v, got %v", value, err)
		}
	}
}

func TestNormalizeRejectsNonArraySections(t *testing.T) {
	cases := []map[string]any{
		{"title": "How to Fish"},
		{"title": "How to Fish", "sections": "oops"},
		{"title": "How to Fish", "sections": map[string]any{}},
	}
	for _, value := range cases {
		if _, err := Normalize(value); !errors.Is(err, ErrInvalidShape) {
			t.Fatalf("expected ErrInvalidShape for %#v, got %v", value, err)
		}
	}
}

func TestNormalizeDefaultsSectionTitle(t *testing.T) {
	doc, err := Normalize(map[string]any{
		"title": "How to Hum",
		"sections": []any{
			map[string]any{"type": "text", "content": []any{"a"}},
			map[string]any{"title": "", "type": "text", "content": []any{"b"}},
		},
	})
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if doc.Sections[0].Title != "Section 1" || doc.Sections[1].Title != "Section 2" {
		t.Fatalf("default titles wrong: %q, %q", doc.Sections[0].Title, doc.Sections[1].Title)
	}
}

func TestNormalizeDemotesListWithoutItems(t *testing.T) {
	doc, err := Normalize(map[string]any{
		"title": "How to Sort",
		"sections": []any{
			map[string]any{"title": "Steps", "type": "list", "content": []any{}},
		},
	})
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	sec := doc.Sections[0]
	if sec.Type != SectionText {
		t.Fatalf("list without items not demoted: %q", sec.Type)
	}
	if sec.Items != nil {
		t.Fatalf("demoted section kept items: %#v", sec.Items)
	}
}

func TestNormalizeCoercesTypes(t *testing.T) {
	doc, err := Normalize(map[string]any{
		"title": "How to Mix",
		"sections": []any{
			map[string]any{"title": "A", "type": "LIST", "content": []any{"x"}},
			map[string]any{"title": "B", "type": "steps", "content": []any{"y"}},
			map[string]any{"title": "C", "type": "list", "content": []any{}, "items": []any{"one", 2.0, true, nil}},
		},
	})
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if doc.Sections[0].Type != SectionText || doc.Sections[1].Type != SectionText {
		t.Fatalf("only the literal \"list\" should stay a list: %q, %q", doc.Sections[0].Type, doc.Sections[1].Type)
	}
	want := []string{"one", "2", "true", ""}
	if !reflect.DeepEqual(doc.Sections[2].Items, want) {
		t.Fatalf("items not stringified: %#v", doc.Sections[2].Items)
	}
}

func TestNormalizeCoercesContent(t *testing.T) {
	doc, err := Normalize(map[string]any{
		"title": "How to Cope",
		"sections": []any{
			map[string]any{"title": "A", "type": "text", "content": nil},
			map[string]any{"title": "B", "type": "text", "content": "not an array"},
			map[string]any{"title": "C", "type": "text", "content": []any{"ok", 3.5}},
		},
	})
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if len(doc.Sections[0].Content) != 0 || len(doc.Sections[1].Content) != 0 {
		t.Fatalf("non-array content should coerce to empty: %#v, %#v", doc.Sections[0].Content, doc.Sections[1].Content)
	}
	if !reflect.DeepEqual(doc.Sections[2].Content, []string{"ok", "3.5"}) {
		t.Fatalf("content elements not stringified: %#v", doc.Sections[2].Content)
	}
}

func TestNormalizeHandlesNonObjectSections(t *testing.T) {
	doc, err := Normalize(map[string]any{
		"title":    "How to Shrug",
		"sections": []any{"just a string", nil},
	})
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	for i, sec := range doc.Sections {
		if sec.Type != SectionText || sec.Content == nil {
			t.Fatalf("section %d not coerced: %#v", i, sec)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	first, err := Normalize(map[string]any{
		"title": "How to Repeat",
		"sections": []any{
			map[string]any{"title": "Intro", "type": "text", "content": []any{"hello"}},
			map[string]any{"title": "Gear", "type": "list", "content": []any{}, "items": []any{"rope"}},
			map[string]any{"type": "list", "content": nil},
		},
	})
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	// Feed the normalized document back through its own wire form.
	encoded, err := json.Marshal(first)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var roundTrip map[string]any
	if err := json.Unmarshal(encoded, &roundTrip); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	second, err := Normalize(roundTrip)
	if err != nil {
		t.Fatalf("second Normalize failed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("Normalize not idempotent:\nfirst  %#v\nsecond %#v", first, second)
	}
}
