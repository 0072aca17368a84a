package providers

import (
	"context"
	"fmt"
	"os"
	"strings"

	genai "google.golang.org/genai"

	"github.com/guidewise/guidegen/internal/common"
)

// GeminiProvider is a thin wrapper around the official genai client. The
// client reads GEMINI_API_KEY from the environment itself.
type GeminiProvider struct {
	cli   *genai.Client
	model string
}

func NewGeminiProvider(ctx context.Context) (*GeminiProvider, error) {
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{Backend: genai.BackendGeminiAPI})
	if err != nil {
		return nil, err
	}
	model := os.Getenv("GEMINI_MODEL")
	if model == "" {
		model = "gemini-2.0-flash"
	}
	logger := common.Logger()
	logger.Info("llm: Gemini provider configured", "model", model)
	return &GeminiProvider{cli: cli, model: model}, nil
}

func (g *GeminiProvider) Chat(ctx context.Context, messages []Message) (string, error) {
	logger := common.Logger()

	// Gemini takes a single prompt; fold system instructions ahead of the
	// user turns.
	var b strings.Builder
	for _, msg := range messages {
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(msg.Content)
	}

	logger.Debug("llm: sending generate content request", "model", g.model)
	resp, err := g.cli.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: b.String()}}}},
		&genai.GenerateContentConfig{
			MaxOutputTokens: maxCompletionTokens,
			Temperature:     genai.Ptr[float32](temperature),
		},
	)
	if err != nil {
		logger.Error("llm: generate content failed", "error", err)
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty candidate response")
	}
	logger.Debug("llm: generate content succeeded")
	return resp.Candidates[0].Content.Parts[0].Text, nil
}

func (g *GeminiProvider) Name() string {
	return "gemini"
}
