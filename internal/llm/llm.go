package llm

import (
	"context"
	"os"
	"strings"

	"github.com/guidewise/guidegen/internal/common"
	"github.com/guidewise/guidegen/internal/llm/providers"
)

type Message = providers.Message

type Provider = providers.Provider

// NewProvider selects a model backend from the environment: OpenAI when
// OPENAI_API_KEY is set, Gemini when GEMINI_API_KEY is set, otherwise the
// deterministic local provider.
func NewProvider(ctx context.Context) Provider {
	logger := common.Logger()
	if apiKey := strings.TrimSpace(os.Getenv("OPENAI_API_KEY")); apiKey != "" {
		logger.Info("llm: OpenAI provider selected")
		return providers.NewOpenAIProvider(apiKey)
	}
	if strings.TrimSpace(os.Getenv("GEMINI_API_KEY")) != "" {
		provider, err := providers.NewGeminiProvider(ctx)
		if err != nil {
			logger.Error("llm: Gemini client construction failed, falling back to local provider", "error", err)
			return providers.NewLocalProvider()
		}
		logger.Info("llm: Gemini provider selected")
		return provider
	}
	logger.Warn("llm: no API key set; falling back to local provider")
	return providers.NewLocalProvider()
}
