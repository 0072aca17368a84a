package guide

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

const (
	slugMaxLen    = 50
	slugSuffixLen = 8
)

var (
	slugStrip    = regexp.MustCompile(`[^\w\s-]`)
	slugSpaces   = regexp.MustCompile(`\s+`)
	slugRepeated = regexp.MustCompile(`-+`)
)

// Slugify derives a URL-safe identifier from a guide title: lowercased,
// punctuation stripped, whitespace collapsed to hyphens, truncated to 50
// characters, with an 8 character random suffix appended. Uniqueness is
// probabilistic, not guaranteed.
func Slugify(title string) string {
	s := strings.ToLower(title)
	s = slugStrip.ReplaceAllString(s, "")
	s = slugSpaces.ReplaceAllString(s, "-")
	s = slugRepeated.ReplaceAllString(s, "-")
	if len(s) > slugMaxLen {
		s = s[:slugMaxLen]
	}
	return s + "-" + randomSuffix()
}

func randomSuffix() string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return hex[:slugSuffixLen]
}
