package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// LocalProvider generates a small deterministic guide without calling any
// remote model, so the service runs end-to-end without credentials.
type LocalProvider struct{}

func NewLocalProvider() *LocalProvider {
	return &LocalProvider{}
}

func (l *LocalProvider) Chat(ctx context.Context, messages []Message) (string, error) {
	if len(messages) == 0 {
		return "", fmt.Errorf("no messages provided")
	}
	topic := strings.TrimSpace(messages[len(messages)-1].Content)
	topic = strings.TrimPrefix(topic, "Create a how-to guide about: ")
	topic = strings.TrimSuffix(topic, ". JSON format only.")

	doc := map[string]any{
		"title": "How to " + topic,
		"sections": []any{
			map[string]any{
				"title": "Introduction",
				"type":  "text",
				"content": []string{
					fmt.Sprintf("This is a locally generated placeholder guide about %s.", topic),
					"Configure an API key to generate real content.",
				},
			},
			map[string]any{
				"title":   "What You'll Need",
				"type":    "list",
				"content": []string{},
				"items":   []string{"A configured model provider", "A moment of patience"},
			},
			map[string]any{
				"title":   "Conclusion",
				"type":    "text",
				"content": []string{"That's all the local provider knows."},
			},
		},
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}
	// Wrapped in a fence on purpose: the recovery ladder sees the same
	// framing real models produce.
	return "```json\n" + string(raw) + "\n```", nil
}

func (l *LocalProvider) Name() string {
	return "local"
}
