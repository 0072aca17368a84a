package guide

import (
	"strings"
	"testing"
)

func TestFallbackShape(t *testing.T) {
	doc := Fallback("fold a fitted sheet")

	if doc.Title != "How to fold a fitted sheet" {
		t.Fatalf("unexpected title: %q", doc.Title)
	}
	if len(doc.Sections) != 3 {
		t.Fatalf("expected 3 sections, got %d", len(doc.Sections))
	}
	intro := doc.Sections[0]
	if intro.Type != SectionText || len(intro.Content) == 0 {
		t.Fatalf("intro section malformed: %#v", intro)
	}
	if !strings.Contains(strings.Join(intro.Content, " "), "fold a fitted sheet") {
		t.Fatalf("intro does not echo the query: %#v", intro.Content)
	}
	tips := doc.Sections[1]
	if tips.Type != SectionList || len(tips.Items) == 0 || len(tips.Content) != 0 {
		t.Fatalf("tips section malformed: %#v", tips)
	}
	closing := doc.Sections[2]
	if closing.Type != SectionText || len(closing.Content) == 0 {
		t.Fatalf("closing section malformed: %#v", closing)
	}
}

func TestFallbackIsPure(t *testing.T) {
	a := Fallback("tie a tie")
	b := Fallback("tie a tie")
	if a.Title != b.Title || len(a.Sections) != len(b.Sections) {
		t.Fatalf("fallback not deterministic")
	}
}

func TestFallbackSurvivesNormalization(t *testing.T) {
	doc := Fallback("sharpen a knife")
	for i, sec := range doc.Sections {
		if sec.Type == SectionList && sec.Items == nil {
			t.Fatalf("section %d breaks the list invariant", i)
		}
		if sec.Content == nil {
			t.Fatalf("section %d has nil content", i)
		}
	}
}
