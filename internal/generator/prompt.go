package generator

import "github.com/guidewise/guidegen/internal/llm"

// systemPrompt pins the document shape the normalizer expects: a titled
// guide of 4-6 typed sections, with list sections carrying an empty content
// array next to their items.
const systemPrompt = `Create concise how-to guides as valid JSON with this structure:
{
  "title": "How to [Do Something]",
  "sections": [
    {
      "title": "Introduction",
      "type": "text",
      "content": ["paragraph 1", "paragraph 2"]
    },
    {
      "title": "What You'll Need",
      "type": "list",
      "content": [],
      "items": ["item 1", "item 2"]
    }
  ]
}

Rules:
1. Title starts with "How to"
2. 4-6 sections total including Intro and Conclusion
3. Lists need empty "content" array AND "items" array
4. Text sections need detailed "content" array
5. MUST be valid parseable JSON`

func promptMessages(query string) []llm.Message {
	return []llm.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: "Create a how-to guide about: " + query + ". JSON format only."},
	}
}
