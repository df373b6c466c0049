package analysis

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/marketmood/internal/common"
	"github.com/ternarybob/marketmood/internal/models"
	"github.com/ternarybob/marketmood/internal/services/mockdata"
)

// anthropicKeyPrefix marks a real Anthropic API credential. Keys with this
// prefix are routed to the chat-completion backend alongside Zhipu keys,
// matching the deployed selection behavior.
const anthropicKeyPrefix = "sk-ant-api03-"

// Generator produces a raw model response for a system/user prompt pair.
// Implementations wrap one LLM backend each.
type Generator interface {
	Name() string
	Generate(ctx context.Context, system, user string) (string, error)
}

// Service turns a news bundle into a structured sentiment analysis. Every
// upstream failure degrades to deterministic mock output; Request never
// returns an error to the caller.
type Service struct {
	primary         Generator
	secondary       Generator
	preferSecondary bool
	variant         common.SchemaVariant
	timeout         time.Duration
	validate        *validator.Validate
	logger          arbor.ILogger
}

// NewService wires the configured generators. The chat-completion backend is
// preferred whenever a Zhipu key is set, or when the Anthropic key carries
// the standard API prefix; otherwise the structured primary (Claude or
// Gemini) handles requests when its key is present.
func NewService(ctx context.Context, cfg *common.Config, logger arbor.ILogger) *Service {
	svc := &Service{
		preferSecondary: cfg.Zhipu.APIKey != "" || strings.HasPrefix(cfg.Claude.APIKey, anthropicKeyPrefix),
		variant:         cfg.Pipeline.ResponseSchema,
		timeout:         cfg.RequestTimeout(),
		validate:        validator.New(),
		logger:          logger,
	}

	if svc.preferSecondary {
		zhipuKey := cfg.Zhipu.APIKey
		if zhipuKey == "" {
			zhipuKey = cfg.Claude.APIKey
		}
		svc.secondary = NewZhipuGenerator(&cfg.Zhipu, zhipuKey, logger)
	}

	switch cfg.LLM.Primary {
	case common.PrimaryGemini:
		if cfg.Gemini.APIKey != "" {
			gen, err := NewGeminiGenerator(ctx, &cfg.Gemini, svc.variant, logger)
			if err != nil {
				logger.Warn().Err(err).Msg("Failed to initialize Gemini client, analysis will use fallback")
			} else {
				svc.primary = gen
			}
		}
	default:
		if cfg.Claude.APIKey != "" {
			svc.primary = NewClaudeGenerator(&cfg.Claude, logger)
		}
	}

	return svc
}

// Variant reports which response schema the service renders.
func (s *Service) Variant() common.SchemaVariant {
	return s.variant
}

// Request analyzes the news bundle for symbol. When no backend is configured,
// or the configured backend fails or returns an unparseable response, the
// result comes from the deterministic mock generator instead.
func (s *Service) Request(ctx context.Context, symbol string, bundle *models.NewsBundle) *models.AnalysisResult {
	gen := s.selectGenerator()
	if gen == nil {
		s.logger.Debug().Str("symbol", symbol).Msg("No LLM backend configured, using mock analysis")
		return mockdata.Analysis(symbol)
	}

	user, err := userPrompt(symbol, bundle)
	if err != nil {
		s.logger.Warn().Err(err).Str("symbol", symbol).Msg("Failed to build analysis prompt, using mock analysis")
		return mockdata.Analysis(symbol)
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := gen.Generate(callCtx, systemPrompt(s.variant), user)
	if err != nil {
		s.logger.Warn().Err(err).
			Str("symbol", symbol).
			Str("backend", gen.Name()).
			Msg("LLM request failed, using mock analysis")
		return mockdata.Analysis(symbol)
	}

	result, err := parseResponse(s.validate, s.variant, symbol, raw)
	if err != nil {
		s.logger.Warn().Err(err).
			Str("symbol", symbol).
			Str("backend", gen.Name()).
			Msg("Failed to parse LLM response, using mock analysis")
		return mockdata.Analysis(symbol)
	}

	s.logger.Debug().
		Str("symbol", symbol).
		Str("backend", gen.Name()).
		Int("score", result.SentimentScore).
		Msg("Analysis completed")

	return result
}

func (s *Service) selectGenerator() Generator {
	if s.preferSecondary && s.secondary != nil {
		return s.secondary
	}
	return s.primary
}
