package llm

import (
	"context"

	"github.com/cloudwego/eino-ext/components/model/ark"

	"github.com/tbourn/go-wellness-backend/internal/config"
)

// NewArkModel builds a Volcengine Ark chat model from cfg. It returns a nil
// model and no error when cfg is not enabled, so the service can start
// without credentials and serve fallbacks.
func NewArkModel(ctx context.Context, cfg config.LLMConfig) (ChatModel, error) {
	if !cfg.Enabled() {
		return nil, nil
	}

	maxTokens := cfg.MaxTokens
	temperature := float32(cfg.Temperature)

	cm, err := ark.NewChatModel(ctx, &ark.ChatModelConfig{
		BaseURL:     cfg.BaseURL,
		Region:      cfg.Region,
		APIKey:      cfg.APIKey,
		Model:       cfg.Model,
		MaxTokens:   &maxTokens,
		Temperature: &temperature,
	})
	if err != nil {
		return nil, err
	}
	return cm, nil
}
