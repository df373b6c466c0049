package analysis

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/ternarybob/marketmood/internal/common"
	"github.com/ternarybob/marketmood/internal/models"
)

// colorPayload is the expected model output for the "color" schema.
// Score uses a pointer so a missing field fails validation instead of
// silently reading as zero.
type colorPayload struct {
	Ticker         string   `json:"ticker" validate:"required"`
	SentimentScore *int     `json:"sentimentScore" validate:"required,min=0,max=100"`
	SentimentColor string   `json:"sentimentColor" validate:"required,oneof=red yellow green"`
	Summary        string   `json:"summary" validate:"required,max=200"`
	BullishPoints  []string `json:"bullishPoints" validate:"len=3,dive,required,max=100"`
	BearishPoints  []string `json:"bearishPoints" validate:"len=3,dive,required,max=100"`
}

// labelPayload is the expected model output for the "label" schema.
type labelPayload struct {
	SentimentScore *int     `json:"sentimentScore" validate:"required,min=0,max=100"`
	SentimentLabel string   `json:"sentimentLabel" validate:"required,oneof=极度恐慌 恐慌 中性偏空 中性 中性偏多 贪婪 极度贪婪"`
	BullishFactors []string `json:"bullishFactors" validate:"len=3,dive,required,max=100"`
	BearishFactors []string `json:"bearishFactors" validate:"len=3,dive,required,max=100"`
}

var fencePattern = regexp.MustCompile("(?s)^\\s*```(?:json|JSON)?\\s*\\n?(.*?)\\n?\\s*```\\s*$")

// cleanMarkdownFences strips markdown code fences that chat models like to
// wrap around JSON output.
func cleanMarkdownFences(s string) string {
	s = strings.TrimSpace(s)

	if matches := fencePattern.FindStringSubmatch(s); len(matches) > 1 {
		s = matches[1]
	}

	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```JSON")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")

	return strings.TrimSpace(s)
}

// parseResponse parses and validates raw model output for the given schema
// variant, then normalizes it to the internal result shape. A field-level
// contract violation is an error, never a partial result.
func parseResponse(validate *validator.Validate, variant common.SchemaVariant, symbol, raw string) (*models.AnalysisResult, error) {
	cleaned := cleanMarkdownFences(raw)

	if variant == common.SchemaLabel {
		var payload labelPayload
		if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
			return nil, fmt.Errorf("failed to parse model response: %w", err)
		}
		if err := validate.Struct(&payload); err != nil {
			return nil, fmt.Errorf("model response violates schema: %w", err)
		}

		score := *payload.SentimentScore
		return &models.AnalysisResult{
			Ticker:         strings.ToUpper(symbol),
			SentimentScore: score,
			SentimentColor: models.ColorForScore(score),
			SentimentLabel: payload.SentimentLabel,
			BullishPoints:  payload.BullishFactors,
			BearishPoints:  payload.BearishFactors,
			Provenance:     models.ProvenanceLive,
		}, nil
	}

	var payload colorPayload
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return nil, fmt.Errorf("failed to parse model response: %w", err)
	}
	if err := validate.Struct(&payload); err != nil {
		return nil, fmt.Errorf("model response violates schema: %w", err)
	}

	score := *payload.SentimentScore
	return &models.AnalysisResult{
		Ticker:         payload.Ticker,
		SentimentScore: score,
		SentimentColor: payload.SentimentColor,
		SentimentLabel: models.LabelForScore(score),
		Summary:        payload.Summary,
		BullishPoints:  payload.BullishPoints,
		BearishPoints:  payload.BearishPoints,
		Provenance:     models.ProvenanceLive,
	}, nil
}
