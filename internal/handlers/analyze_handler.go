package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/marketmood/internal/common"
	"github.com/ternarybob/marketmood/internal/models"
	"github.com/ternarybob/marketmood/internal/services/mockdata"
)

// NewsFetcher retrieves the news bundle for a symbol. The pipeline contract
// is that fetching never fails; degraded sources return mock data instead.
type NewsFetcher interface {
	FetchNews(ctx context.Context, symbol string) *models.NewsBundle
}

// AnalysisRequester turns a news bundle into a sentiment analysis with the
// same never-fails contract.
type AnalysisRequester interface {
	Request(ctx context.Context, symbol string, bundle *models.NewsBundle) *models.AnalysisResult
	Variant() common.SchemaVariant
}

// AnalyzeHandler serves the sentiment analysis endpoint.
type AnalyzeHandler struct {
	news             NewsFetcher
	analysis         AnalysisRequester
	exposeProvenance bool
	logger           arbor.ILogger
}

type analyzeRequest struct {
	Symbol string `json:"symbol"`
}

func NewAnalyzeHandler(news NewsFetcher, analysis AnalysisRequester, cfg *common.Config, logger arbor.ILogger) *AnalyzeHandler {
	return &AnalyzeHandler{
		news:             news,
		analysis:         analysis,
		exposeProvenance: cfg.Pipeline.ExposeProvenance,
		logger:           logger,
	}
}

// AnalyzeHandler handles POST requests with a JSON body {"symbol": "..."}.
// Malformed input is the only client error; upstream trouble always degrades
// to a mock-backed 200 so the page never breaks.
func (h *AnalyzeHandler) AnalyzeHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	symbol := strings.TrimSpace(req.Symbol)
	if symbol == "" {
		http.Error(w, "Missing symbol", http.StatusBadRequest)
		return
	}

	result := h.analyze(r.Context(), symbol)

	h.logger.Info().
		Str("symbol", result.Ticker).
		Int("score", result.SentimentScore).
		Str("provenance", string(result.Provenance)).
		Msg("Analysis request completed")

	h.writeResult(w, result)
}

// analyze runs the news and analysis stages sequentially. A panic anywhere in
// the pipeline is caught and replaced with the deterministic mock result.
func (h *AnalyzeHandler) analyze(ctx context.Context, symbol string) (result *models.AnalysisResult) {
	defer func() {
		if rec := recover(); rec != nil {
			h.logger.Error().
				Str("symbol", symbol).
				Str("panic", fmt.Sprintf("%v", rec)).
				Msg("Analysis pipeline panicked, serving mock result")
			result = mockdata.Analysis(symbol)
		}
	}()

	bundle := h.news.FetchNews(ctx, symbol)
	return h.analysis.Request(ctx, symbol, bundle)
}

func (h *AnalyzeHandler) writeResult(w http.ResponseWriter, result *models.AnalysisResult) {
	switch h.analysis.Variant() {
	case common.SchemaLabel:
		WriteJSON(w, http.StatusOK, result.ToLabelResponse(h.exposeProvenance))
	default:
		WriteJSON(w, http.StatusOK, result.ToColorResponse(h.exposeProvenance))
	}
}
