// Package jsonrepair recovers a JSON object from unreliable LLM output.
// Model replies arrive wrapped in markdown fences, padded with commentary,
// or with broken syntax (bare keys, single quotes, trailing commas,
// unescaped quotes, truncated braces). The ladder orders fixes from cheap
// and precise to lossy but better than nothing; a successful early rung
// never invokes the more destructive ones below it.
package jsonrepair

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"

	"github.com/guidewise/guidegen/internal/common"
)

// ErrUnrecoverable reports that every repair rung was exhausted without
// producing a parseable object.
var ErrUnrecoverable = errors.New("no JSON object could be recovered")

var (
	fencedJSONBlock = regexp.MustCompile("(?s)```json\\s*(.*?)\\s*```")
	fencedBlock     = regexp.MustCompile("(?s)```\\s*(.*?)\\s*```")
	greedyObject    = regexp.MustCompile(`(?s)\{.*\}`)
	lazyObject      = regexp.MustCompile(`(?s)\{.*?\}`)
	trailingCommas  = regexp.MustCompile(`,\s*([}\]])`)
	bareKeys        = regexp.MustCompile(`([{,])\s*([A-Za-z0-9_]+)\s*:`)
	singleQuoted    = regexp.MustCompile(`'([^']*)'(\s*[,}])`)
	bareScalars     = regexp.MustCompile(`:\s*([A-Za-z_][A-Za-z0-9_ -]*?)\s*([,}\]])`)
	titlePattern    = regexp.MustCompile(`"title"\s*:\s*"([^"]+)"`)
	sectionPattern  = regexp.MustCompile(`"title"\s*:\s*"([^"]+)"\s*,\s*"type"\s*:\s*"([A-Za-z]+)"`)
)

type parseAttempt struct {
	name string
	fn   func(string) (map[string]any, error)
}

// attempts is the ordered strategy chain; the first success wins.
var attempts = []parseAttempt{
	{"direct", parseObject},
	{"aggressive", parseAggressively},
	{"salvage", salvage},
}

// Extract runs the recovery ladder over raw model text and returns the
// first parseable JSON object. It fails with ErrUnrecoverable only after
// every rung is exhausted.
func Extract(raw string) (map[string]any, error) {
	logger := common.Logger()
	candidate := stripFences(raw)
	candidate = isolateObject(candidate)
	candidate = normalizeSyntax(candidate)

	for _, attempt := range attempts {
		value, err := attempt.fn(candidate)
		if err == nil {
			logger.Debug("jsonrepair: object recovered", "rung", attempt.name)
			return value, nil
		}
		logger.Debug("jsonrepair: rung failed", "rung", attempt.name, "error", err)
	}
	return nil, ErrUnrecoverable
}

// stripFences unwraps a fenced code block, preferring one labeled as JSON.
// Text without fences passes through untouched.
func stripFences(raw string) string {
	if m := fencedJSONBlock.FindStringSubmatch(raw); m != nil {
		return m[1]
	}
	if m := fencedBlock.FindStringSubmatch(raw); m != nil {
		return m[1]
	}
	return raw
}

// isolateObject trims surrounding commentary down to an object-looking span.
func isolateObject(candidate string) string {
	trimmed := strings.TrimSpace(candidate)
	if strings.HasPrefix(trimmed, "{") {
		return trimmed
	}
	if start := strings.Index(trimmed, "{"); start >= 0 {
		if end := strings.LastIndex(trimmed, "}"); end > start {
			return trimmed[start : end+1]
		}
	}
	if m := greedyObject.FindString(trimmed); m != "" {
		return m
	}
	if m := lazyObject.FindString(trimmed); m != "" {
		return m
	}
	return trimmed
}

// normalizeSyntax applies the cheap syntax fixes unconditionally: trailing
// commas, bare keys, single-quoted values and bare scalar values.
func normalizeSyntax(s string) string {
	s = strings.TrimSpace(s)
	s = trailingCommas.ReplaceAllString(s, "$1")
	s = bareKeys.ReplaceAllString(s, `$1"$2":`)
	s = singleQuoted.ReplaceAllString(s, `"$1"$2`)
	s = quoteBareScalars(s)
	return s
}

// quoteBareScalars wraps unquoted scalar values (`: bareword,`) in double
// quotes. It walks the candidate so colons inside properly quoted strings
// are left alone; JSON literals and numbers pass through.
func quoteBareScalars(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inString := false
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if inString {
			if ch == '\\' && i+1 < len(s) {
				b.WriteByte(ch)
				i++
				b.WriteByte(s[i])
				continue
			}
			if ch == '"' {
				inString = false
			}
			b.WriteByte(ch)
			continue
		}
		if ch == '"' {
			inString = true
			b.WriteByte(ch)
			continue
		}
		if ch == ':' {
			if loc := bareScalars.FindStringSubmatchIndex(s[i:]); loc != nil && loc[0] == 0 {
				word := strings.TrimSpace(s[i+loc[2] : i+loc[3]])
				if word != "true" && word != "false" && word != "null" {
					b.WriteString(`: "` + word + `"`)
					b.WriteString(s[i+loc[4] : i+loc[5]])
					i += loc[1] - 1
					continue
				}
			}
		}
		b.WriteByte(ch)
	}
	return b.String()
}

func parseObject(candidate string) (map[string]any, error) {
	var value map[string]any
	if err := json.Unmarshal([]byte(candidate), &value); err != nil {
		return nil, err
	}
	if value == nil {
		return nil, errors.New("candidate is not a JSON object")
	}
	return value, nil
}

func parseAggressively(candidate string) (map[string]any, error) {
	return parseObject(repairAggressively(candidate))
}

// repairAggressively is the lossy rung: it converts every remaining single
// quote, escapes double quotes embedded inside string values, re-quotes any
// still-bare keys, strips trailing commas again and pads unbalanced braces.
func repairAggressively(s string) string {
	s = strings.ReplaceAll(s, "'", `"`)
	s = escapeEmbeddedQuotes(s)
	s = bareKeys.ReplaceAllString(s, `$1"$2":`)
	s = trailingCommas.ReplaceAllString(s, "$1")
	s = balanceBraces(s)
	return s
}

// escapeEmbeddedQuotes walks the candidate and escapes double quotes that
// appear inside string values. A quote inside a string counts as the closing
// delimiter only when the next non-space character could legally follow the
// end of a JSON string.
func escapeEmbeddedQuotes(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inString := false
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if inString && ch == '\\' && i+1 < len(s) {
			b.WriteByte(ch)
			i++
			b.WriteByte(s[i])
			continue
		}
		if ch != '"' {
			b.WriteByte(ch)
			continue
		}
		if !inString {
			inString = true
			b.WriteByte(ch)
			continue
		}
		if closesString(s, i+1) {
			inString = false
			b.WriteByte(ch)
		} else {
			b.WriteString(`\"`)
		}
	}
	return b.String()
}

func closesString(s string, i int) bool {
	for ; i < len(s); i++ {
		switch s[i] {
		case ' ', '\t', '\n', '\r':
			continue
		case ',', '}', ']', ':':
			return true
		default:
			return false
		}
	}
	return true
}

func balanceBraces(s string) string {
	opens := strings.Count(s, "{")
	closes := strings.Count(s, "}")
	switch {
	case opens > closes:
		s += strings.Repeat("}", opens-closes)
	case closes > opens:
		s = strings.Repeat("{", closes-opens) + s
	}
	return s
}

// salvage is the last rung: it pulls whatever title and section headers
// survive in the text and synthesizes a minimal object from the fragments.
// Section bodies are lost at this point.
func salvage(candidate string) (map[string]any, error) {
	repaired := repairAggressively(candidate)

	var title string
	if m := titlePattern.FindStringSubmatch(repaired); m != nil {
		title = m[1]
	}
	pairs := sectionPattern.FindAllStringSubmatch(repaired, -1)
	if title == "" && len(pairs) == 0 {
		return nil, ErrUnrecoverable
	}
	sections := make([]any, 0, len(pairs))
	for _, m := range pairs {
		sections = append(sections, map[string]any{
			"title":   m[1],
			"type":    m[2],
			"content": []any{},
		})
	}
	return map[string]any{"title": title, "sections": sections}, nil
}
