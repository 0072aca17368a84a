package jsonrepair

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
)

func mustParse(t *testing.T, raw string) map[string]any {
	t.Helper()
	var value map[string]any
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		t.Fatalf("test fixture is not valid JSON: %v", err)
	}
	return value
}

func TestExtractFencedJSONRoundTrip(t *testing.T) {
	inner := `{"title": "How to Test", "sections": [{"title": "Intro", "type": "text", "content": ["Hi there", "Step one: relax, breathe"]}]}`
	raw := "Here is your guide:\n```json\n" + inner + "\n```\nEnjoy!"

	got, err := Extract(raw)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if want := mustParse(t, inner); !reflect.DeepEqual(got, want) {
		t.Fatalf("fenced object altered during extraction:\ngot  %#v\nwant %#v", got, want)
	}
}

func TestExtractUnlabeledFence(t *testing.T) {
	inner := `{"title": "How to Whittle", "sections": []}`
	raw := "```\n" + inner + "\n```"

	got, err := Extract(raw)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if got["title"] != "How to Whittle" {
		t.Fatalf("unexpected title: %v", got["title"])
	}
}

func TestExtractSurroundingCommentary(t *testing.T) {
	raw := `Sure thing! {"title": "How to Wave", "sections": []} Hope that helps.`

	got, err := Extract(raw)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if got["title"] != "How to Wave" {
		t.Fatalf("unexpected title: %v", got["title"])
	}
}

func TestExtractTrailingComma(t *testing.T) {
	raw := `{"title": "How to Sweep", "sections": [{"title": "Intro", "type": "text", "content": ["a"],}],}`

	got, err := Extract(raw)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	sections, ok := got["sections"].([]any)
	if !ok || len(sections) != 1 {
		t.Fatalf("sections not recovered: %#v", got["sections"])
	}
}

func TestExtractCombinedRepairs(t *testing.T) {
	raw := "Sure! ```json\n{title: 'How to Knit', sections: [{title:'Intro',type:'text',content:['Hi'],}]}\n```"

	got, err := Extract(raw)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	want := mustParse(t, `{"title": "How to Knit", "sections": [{"title": "Intro", "type": "text", "content": ["Hi"]}]}`)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("combined repair mismatch:\ngot  %#v\nwant %#v", got, want)
	}
}

func TestExtractBalancesTruncatedBraces(t *testing.T) {
	raw := `{"title": "How to Pack", "sections": []`

	got, err := Extract(raw)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if got["title"] != "How to Pack" {
		t.Fatalf("unexpected title: %v", got["title"])
	}
}

func TestExtractSalvagesFragments(t *testing.T) {
	// Unterminated string with embedded quotes: unparseable even after the
	// aggressive rung, so only the title and section headers survive.
	raw := `{"title": "How to Paint", "sections": [{"title": "Intro", "type": "text", "content": ["She said "start small" and then`

	got, err := Extract(raw)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if got["title"] != "How to Paint" {
		t.Fatalf("unexpected title: %v", got["title"])
	}
	sections, ok := got["sections"].([]any)
	if !ok || len(sections) != 1 {
		t.Fatalf("expected one salvaged section, got %#v", got["sections"])
	}
	section, ok := sections[0].(map[string]any)
	if !ok || section["title"] != "Intro" || section["type"] != "text" {
		t.Fatalf("unexpected salvaged section: %#v", sections[0])
	}
}

func TestExtractNoObjectFails(t *testing.T) {
	_, err := Extract("I cannot help with that request.")
	if !errors.Is(err, ErrUnrecoverable) {
		t.Fatalf("expected ErrUnrecoverable, got %v", err)
	}
}

func TestExtractBareScalarValue(t *testing.T) {
	raw := `{"title": "How to Nap", "sections": [{"title": "Intro", "type": text, "content": []}]}`

	got, err := Extract(raw)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	sections := got["sections"].([]any)
	section := sections[0].(map[string]any)
	if section["type"] != "text" {
		t.Fatalf("bare scalar not quoted: %#v", section["type"])
	}
}

func TestExtractLeavesLiteralsAlone(t *testing.T) {
	raw := `{"title": "How to Vote", "sections": [], "draft": false, "revision": null}`

	got, err := Extract(raw)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if got["draft"] != false {
		t.Fatalf("boolean literal mangled: %#v", got["draft"])
	}
	if v, present := got["revision"]; !present || v != nil {
		t.Fatalf("null literal mangled: %#v", v)
	}
}
