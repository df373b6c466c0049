package analysis

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/marketmood/internal/common"
	"google.golang.org/genai"
)

// GeminiGenerator implements Generator using the Google Gemini API with a
// response schema, so the generation itself is constrained to valid JSON.
// A schema violation fails the call rather than producing a partial result.
type GeminiGenerator struct {
	client      *genai.Client
	model       string
	temperature float32
	schema      *genai.Schema
	logger      arbor.ILogger
}

// NewGeminiGenerator creates a Gemini-backed generator for the configured
// response schema variant.
func NewGeminiGenerator(ctx context.Context, cfg *common.GeminiConfig, variant common.SchemaVariant, logger arbor.ILogger) (*GeminiGenerator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiGenerator{
		client:      client,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		schema:      responseSchema(variant),
		logger:      logger,
	}, nil
}

// Name returns the backend identifier used in diagnostic logs.
func (g *GeminiGenerator) Name() string {
	return "gemini"
}

// Generate runs one schema-constrained completion.
func (g *GeminiGenerator) Generate(ctx context.Context, system, user string) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(g.temperature),
		ResponseMIMEType: "application/json",
		ResponseSchema:   g.schema,
	}
	if system != "" {
		config.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(user), config)
	if err != nil {
		return "", fmt.Errorf("Gemini API call failed: %w", err)
	}

	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("empty response from Gemini API")
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty text in Gemini response")
	}

	return text, nil
}

// responseSchema builds the structured-output schema for a variant: score
// bounds and fixed length-3 point lists are enforced by the generation call.
func responseSchema(variant common.SchemaVariant) *genai.Schema {
	three := int64(3)
	scoreSchema := &genai.Schema{
		Type:    genai.TypeInteger,
		Minimum: genai.Ptr(0.0),
		Maximum: genai.Ptr(100.0),
	}
	pointList := func() *genai.Schema {
		return &genai.Schema{
			Type:     genai.TypeArray,
			Items:    &genai.Schema{Type: genai.TypeString},
			MinItems: genai.Ptr(three),
			MaxItems: genai.Ptr(three),
		}
	}

	if variant == common.SchemaLabel {
		return &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"sentimentScore": scoreSchema,
				"sentimentLabel": {
					Type: genai.TypeString,
					Enum: []string{"极度恐慌", "恐慌", "中性偏空", "中性", "中性偏多", "贪婪", "极度贪婪"},
				},
				"bullishFactors": pointList(),
				"bearishFactors": pointList(),
			},
			Required: []string{"sentimentScore", "sentimentLabel", "bullishFactors", "bearishFactors"},
		}
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"ticker":         {Type: genai.TypeString},
			"sentimentScore": scoreSchema,
			"sentimentColor": {
				Type: genai.TypeString,
				Enum: []string{"red", "yellow", "green"},
			},
			"summary":       {Type: genai.TypeString},
			"bullishPoints": pointList(),
			"bearishPoints": pointList(),
		},
		Required: []string{"ticker", "sentimentScore", "sentimentColor", "summary", "bullishPoints", "bearishPoints"},
	}
}
