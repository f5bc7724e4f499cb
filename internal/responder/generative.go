package responder

import (
	"context"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"go.uber.org/zap"

	"github.com/spec-kit/support-pipeline/internal/config"
)

// GenerativeGenerator is the generation-backed strategy. Any backend failure
// falls back to a fixed template that still names the ticket number and
// customer, so the run itself never fails here.
type GenerativeGenerator struct {
	client    anthropic.Client
	model     string
	maxTokens int64
	logger    *zap.Logger
}

// NewGenerativeGenerator constructs the strategy from agent configuration.
func NewGenerativeGenerator(cfg config.AgentConfig, logger *zap.Logger) *GenerativeGenerator {
	opts := []option.RequestOption{}
	if cfg.AnthropicAPIKey != "" {
		opts = append(opts, option.WithAPIKey(cfg.AnthropicAPIKey))
	}
	maxTokens := int64(cfg.MaxTokens)
	if maxTokens <= 0 {
		maxTokens = 1024
	}
	return &GenerativeGenerator{
		client:    anthropic.NewClient(opts...),
		model:     cfg.Model,
		maxTokens: maxTokens,
		logger:    logger,
	}
}

// Generate asks the model for a grounded response and falls back to the
// template on any failure.
func (g *GenerativeGenerator) Generate(ctx context.Context, input GenerationInput) (string, error) {
	message, err := g.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(g.model),
		MaxTokens: g.maxTokens,
		System: []anthropic.TextBlockParam{
			{Text: buildSystemPrompt(input.Channel)},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(buildUserPrompt(input))),
		},
	})
	if err != nil {
		g.logger.Warn("generation backend failed; using template fallback", zap.Error(err))
		return fallbackResponse(input.CustomerName, input.TicketNumber), nil
	}

	var text string
	for _, block := range message.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}
	if text == "" {
		g.logger.Warn("generation backend returned no text; using template fallback")
		return fallbackResponse(input.CustomerName, input.TicketNumber), nil
	}
	return text, nil
}
