package guide

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidShape reports that a parsed value cannot be treated as a guide
// document at all: no usable title, or sections is not an array. This is the
// only hard rejection in the pipeline; everything below the top-level shape
// is coerced rather than refused.
var ErrInvalidShape = errors.New("document missing title or sections")

// Normalize validates a freshly parsed value against the guide document
// shape. Sections are repaired field by field and never rejected once the
// top-level shape is right.
func Normalize(value map[string]any) (Document, error) {
	title, _ := value["title"].(string)
	if strings.TrimSpace(title) == "" {
		return Document{}, ErrInvalidShape
	}
	rawSections, ok := value["sections"].([]any)
	if !ok {
		return Document{}, ErrInvalidShape
	}
	sections := make([]Section, 0, len(rawSections))
	for i, raw := range rawSections {
		sections = append(sections, normalizeSection(raw, i))
	}
	return Document{Title: title, Sections: sections}, nil
}

func normalizeSection(raw any, index int) Section {
	fields, _ := raw.(map[string]any)

	title, _ := fields["title"].(string)
	if strings.TrimSpace(title) == "" {
		title = fmt.Sprintf("Section %d", index+1)
	}

	typ := SectionText
	if t, ok := fields["type"].(string); ok && t == string(SectionList) {
		typ = SectionList
	}

	sec := Section{
		Title:   title,
		Type:    typ,
		Content: stringSlice(fields["content"]),
	}
	if sec.Type == SectionList {
		if items, ok := fields["items"].([]any); ok {
			sec.Items = stringifyAll(items)
		} else {
			// A list without items is not a list.
			sec.Type = SectionText
			sec.Items = nil
		}
	}
	return sec
}

// stringSlice coerces a value to a string slice, treating anything that is
// not an array as empty.
func stringSlice(v any) []string {
	arr, ok := v.([]any)
	if !ok {
		return []string{}
	}
	return stringifyAll(arr)
}

func stringifyAll(arr []any) []string {
	out := make([]string, 0, len(arr))
	for _, v := range arr {
		out = append(out, stringify(v))
	}
	return out
}

func stringify(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case nil:
		return ""
	default:
		return fmt.Sprint(x)
	}
}
