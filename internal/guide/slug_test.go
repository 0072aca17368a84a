package guide

import (
	"regexp"
	"strings"
	"testing"
)

func TestSlugifyPattern(t *testing.T) {
	slug := Slugify("How to Bake Bread!!!")
	if !regexp.MustCompile(`^how-to-bake-bread-[a-z0-9]{8}$`).MatchString(slug) {
		t.Fatalf("unexpected slug: %q", slug)
	}
}

func TestSlugifyCollapsesWhitespaceAndHyphens(t *testing.T) {
	slug := Slugify("How   to --- Tidy Up")
	if !strings.HasPrefix(slug, "how-to-tidy-up-") {
		t.Fatalf("unexpected slug: %q", slug)
	}
}

func TestSlugifyTruncates(t *testing.T) {
	long := "How to " + strings.Repeat("procrastinate ", 20)
	slug := Slugify(long)
	// 50 chars of base, a hyphen, then the 8 char suffix.
	if len(slug) > 59 {
		t.Fatalf("slug too long (%d): %q", len(slug), slug)
	}
}

func TestSlugifyRandomSuffix(t *testing.T) {
	a := Slugify("How to Wait")
	b := Slugify("How to Wait")
	if a == b {
		t.Fatalf("expected distinct suffixes, got %q twice", a)
	}
}
