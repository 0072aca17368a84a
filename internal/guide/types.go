// Package guide holds the how-to guide document model: the section and
// document types the generation pipeline produces, the normalizer that
// coerces loosely shaped model output into that model, the fallback
// synthesizer and slug derivation.
package guide

import (
	"encoding/json"
	"time"
)

// SectionType distinguishes prose sections from itemized lists.
type SectionType string

const (
	SectionText SectionType = "text"
	SectionList SectionType = "list"
)

// Section is one titled block of a guide. Content is always present;
// Items only accompanies list sections.
type Section struct {
	Title   string      `json:"title"`
	Type    SectionType `json:"type"`
	Content []string    `json:"content"`
	Items   []string    `json:"items,omitempty"`
}

// MarshalJSON keeps the wire invariants stable: content is always an array
// and items is emitted exactly when the section is a list, even when empty.
func (s Section) MarshalJSON() ([]byte, error) {
	type section struct {
		Title   string      `json:"title"`
		Type    SectionType `json:"type"`
		Content []string    `json:"content"`
		Items   *[]string   `json:"items,omitempty"`
	}
	out := section{Title: s.Title, Type: s.Type, Content: s.Content}
	if out.Content == nil {
		out.Content = []string{}
	}
	if s.Type == SectionList {
		items := s.Items
		if items == nil {
			items = []string{}
		}
		out.Items = &items
	}
	return json.Marshal(out)
}

// Document is a structured how-to guide.
type Document struct {
	Title    string    `json:"title"`
	Sections []Section `json:"sections"`
}

// Record is a stored guide: the document plus identity and provenance
// metadata. Records are immutable once created.
type Record struct {
	ID        int       `json:"id"`
	Query     string    `json:"query"`
	Title     string    `json:"title"`
	Content   Document  `json:"content"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"createdAt"`
}
