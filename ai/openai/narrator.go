package openai

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/poiesic/librosearch/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Narrator implements ai.Narrator using OpenAI-compatible chat APIs.
type Narrator struct {
	client    llms.Model
	maxTokens int
	logger    *slog.Logger
}

// newNarrator is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newNarrator(config *ai.Config) (*Narrator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.ChatHost),
		openai.WithToken(config.APIKey),
		openai.WithModel(config.ChatModel),
	)
	if err != nil {
		return nil, err
	}

	return &Narrator{
		client:    client,
		maxTokens: config.MaxNarrationTokens,
		logger:    slog.Default().With("component", "openai-narrator"),
	}, nil
}

// NewNarrator creates a new narrator using the provided configuration.
//
// Returns ai.Narrator interface to enforce abstraction.
func NewNarrator(config *ai.Config) (ai.Narrator, error) {
	return newNarrator(config)
}

// Narrate generates the reply text for a prepared prompt context.
func (n *Narrator) Narrate(ctx context.Context, promptContext string) (string, error) {
	n.logger.Debug("narrating", "contextLength", len(promptContext))

	content := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(promptContext)},
		},
	}

	response, err := n.client.GenerateContent(ctx, content,
		llms.WithTemperature(0.7),
		llms.WithMaxTokens(n.maxTokens),
	)
	if err != nil {
		n.logger.Error("failed to generate narration", "err", err)
		return "", err
	}
	if len(response.Choices) < 1 {
		return "", fmt.Errorf("narrator returned no choices")
	}

	return response.Choices[0].Content, nil
}
