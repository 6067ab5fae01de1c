package llm

import (
	"context"
	"fmt"

	"elasticsense/config"

	log "github.com/sirupsen/logrus"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/openai"
)

// geminiMaxTokens leaves room for a full study guide plus the thinking
// tokens gemini-2.5 models count against the same limit.
const geminiMaxTokens = 16384

// NewClient builds the client for the configured provider. A missing API key
// is not fatal: the returned client fails every call with ErrMissingAPIKey so
// the views can show their fallbacks.
func NewClient(ctx context.Context, cfg *config.Config) (Client, error) {
	apiKey := cfg.APIKey()

	switch cfg.Provider {
	case config.ProviderGoogleAI, config.ProviderOpenAI, config.ProviderAnthropic:
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.Provider)
	}

	if apiKey == "" {
		log.Errorf("No API key configured for provider %s", cfg.Provider)
		return unavailableClient{err: ErrMissingAPIKey}, nil
	}

	log.Infof("Creating %s client with model %s", cfg.Provider, cfg.Model)

	switch cfg.Provider {
	case config.ProviderGoogleAI:
		return newGeminiClient(ctx, apiKey, cfg.Model)
	case config.ProviderOpenAI:
		model, err := openai.New(
			openai.WithModel(cfg.Model),
			openai.WithToken(apiKey))
		if err != nil {
			return nil, fmt.Errorf("failed to create OpenAI client: %w", err)
		}
		return NewLangChainClient(model), nil
	default:
		return NewAnthropicClient(apiKey, cfg.Model), nil
	}
}

func newGeminiClient(ctx context.Context, apiKey, modelName string, opts ...googleai.Option) (*LangChainClient, error) {
	opts = append([]googleai.Option{
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(modelName),
		googleai.WithDefaultMaxTokens(geminiMaxTokens),
	}, opts...)

	model, err := googleai.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return NewLangChainClient(model, WithJSONMode()), nil
}
