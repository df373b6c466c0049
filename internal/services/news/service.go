// Package news fetches and normalizes market news for a symbol. Upstream
// failures never escape: every error path degrades to the deterministic
// mock bundle.
package news

import (
	"context"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/marketmood/internal/common"
	"github.com/ternarybob/marketmood/internal/httpclient"
	"github.com/ternarybob/marketmood/internal/models"
	"github.com/ternarybob/marketmood/internal/sentiment"
	"github.com/ternarybob/marketmood/internal/services/mockdata"
)

// queryTemplate is the fixed search query; the symbol is substituted in.
const queryTemplate = "%SYMBOL% stock news latest analysis"

// Service fetches news for a symbol. A nil client means no credential is
// configured and every fetch returns mock data.
type Service struct {
	client     *TavilyClient
	maxResults int
	logger     arbor.ILogger
}

// NewService creates a news service from configuration. When no API key is
// configured the service runs in mock-only mode.
func NewService(cfg *common.TavilyConfig, logger arbor.ILogger) *Service {
	s := &Service{
		maxResults: cfg.MaxResults,
		logger:     logger,
	}
	if s.maxResults <= 0 {
		s.maxResults = 10
	}

	if cfg.APIKey == "" {
		logger.Info().Msg("No Tavily API key configured, news fetcher will use mock data")
		return s
	}

	timeout, err := time.ParseDuration(cfg.Timeout)
	if err != nil || timeout <= 0 {
		timeout = DefaultTimeout
	}

	opts := []TavilyOption{
		WithLogger(logger),
		WithHTTPClient(httpclient.NewDefaultHTTPClient(timeout)),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, WithBaseURL(cfg.BaseURL))
	}
	if cfg.RateLimit > 0 {
		opts = append(opts, WithRateLimit(cfg.RateLimit))
	}

	s.client = NewTavilyClient(cfg.APIKey, opts...)
	return s
}

// FetchNews returns the normalized news bundle for a symbol. It never fails:
// missing credentials and upstream errors both degrade to mock data.
func (s *Service) FetchNews(ctx context.Context, symbol string) *models.NewsBundle {
	if s.client == nil {
		s.logger.Debug().Str("symbol", symbol).Msg("No search credential, using mock news")
		return mockdata.News(symbol)
	}

	query := strings.ReplaceAll(queryTemplate, "%SYMBOL%", symbol)

	resp, err := s.client.Search(ctx, query, s.maxResults)
	if err != nil {
		s.logger.Warn().Str("symbol", symbol).Err(err).Msg("Tavily search failed, falling back to mock news")
		return mockdata.News(symbol)
	}

	items := make([]models.NewsItem, 0, len(resp.Results))
	for _, r := range resp.Results {
		summary := r.Snippet
		if summary == "" {
			summary = r.Content
		}
		items = append(items, models.NewsItem{
			Title:     r.Title,
			Summary:   summary,
			Sentiment: sentiment.Classify(summary),
			URL:       r.URL,
		})
	}

	s.logger.Info().
		Str("symbol", symbol).
		Int("items", len(items)).
		Msg("Fetched news items")

	return &models.NewsBundle{
		Symbol: strings.ToUpper(symbol),
		News:   items,
	}
}
