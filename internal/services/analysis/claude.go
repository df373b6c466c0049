package analysis

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/marketmood/internal/common"
)

// ClaudeGenerator implements Generator using the Anthropic Claude API.
type ClaudeGenerator struct {
	client      anthropic.Client
	model       string
	maxTokens   int
	temperature float32
	logger      arbor.ILogger
}

// NewClaudeGenerator creates a Claude-backed generator.
func NewClaudeGenerator(cfg *common.ClaudeConfig, logger arbor.ILogger) *ClaudeGenerator {
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 2000
	}

	return &ClaudeGenerator{
		client:      anthropic.NewClient(option.WithAPIKey(cfg.APIKey)),
		model:       cfg.Model,
		maxTokens:   maxTokens,
		temperature: cfg.Temperature,
		logger:      logger,
	}
}

// Name returns the backend identifier used in diagnostic logs.
func (g *ClaudeGenerator) Name() string {
	return "claude"
}

// Generate runs one completion with the given system and user prompts.
func (g *ClaudeGenerator) Generate(ctx context.Context, system, user string) (string, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(g.model),
		MaxTokens: int64(g.maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(user)),
		},
	}

	if g.temperature > 0 {
		params.Temperature = anthropic.Float(float64(g.temperature))
	}
	if system != "" {
		params.System = []anthropic.TextBlockParam{
			{Text: system},
		}
	}

	resp, err := g.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("Claude API call failed: %w", err)
	}

	var text strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}

	if text.Len() == 0 {
		return "", fmt.Errorf("empty response from Claude API")
	}

	return text.String(), nil
}
