package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ternarybob/marketmood/internal/common"
	"github.com/ternarybob/marketmood/internal/models"
	"github.com/ternarybob/marketmood/internal/services/mockdata"
)

type stubNews struct {
	bundle *models.NewsBundle
}

func (s *stubNews) FetchNews(ctx context.Context, symbol string) *models.NewsBundle {
	if s.bundle != nil {
		return s.bundle
	}
	return mockdata.News(symbol)
}

type stubAnalysis struct {
	result  *models.AnalysisResult
	variant common.SchemaVariant
	panics  bool
}

func (s *stubAnalysis) Request(ctx context.Context, symbol string, bundle *models.NewsBundle) *models.AnalysisResult {
	if s.panics {
		panic("upstream exploded")
	}
	if s.result != nil {
		return s.result
	}
	return mockdata.Analysis(symbol)
}

func (s *stubAnalysis) Variant() common.SchemaVariant {
	if s.variant == "" {
		return common.SchemaColor
	}
	return s.variant
}

func testHandler(analysis *stubAnalysis, exposeProvenance bool) *AnalyzeHandler {
	cfg := common.NewDefaultConfig()
	cfg.Pipeline.ExposeProvenance = exposeProvenance
	return NewAnalyzeHandler(&stubNews{}, analysis, cfg, common.GetLogger())
}

func postAnalyze(t *testing.T, h *AnalyzeHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.AnalyzeHandler(rec, req)
	return rec
}

func TestAnalyzeRejectsNonPost(t *testing.T) {
	h := testHandler(&stubAnalysis{}, false)

	req := httptest.NewRequest(http.MethodGet, "/api/analyze", nil)
	rec := httptest.NewRecorder()
	h.AnalyzeHandler(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", rec.Code)
	}
}

func TestAnalyzeInvalidJSON(t *testing.T) {
	h := testHandler(&stubAnalysis{}, false)

	rec := postAnalyze(t, h, "{not json")

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Invalid JSON") {
		t.Errorf("expected Invalid JSON message, got %q", rec.Body.String())
	}
}

func TestAnalyzeMissingSymbol(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty object", `{}`},
		{"empty symbol", `{"symbol":""}`},
		{"whitespace symbol", `{"symbol":"   "}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := testHandler(&stubAnalysis{}, false)

			rec := postAnalyze(t, h, tt.body)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
			if !strings.Contains(rec.Body.String(), "Missing symbol") {
				t.Errorf("expected Missing symbol message, got %q", rec.Body.String())
			}
		})
	}
}

func TestAnalyzeColorSchemaResponse(t *testing.T) {
	analysis := &stubAnalysis{
		result: &models.AnalysisResult{
			Ticker:         "AAPL",
			SentimentScore: 72,
			SentimentColor: "green",
			SentimentLabel: "贪婪",
			Summary:        "市场情绪偏乐观",
			BullishPoints:  []string{"a", "b", "c"},
			BearishPoints:  []string{"d", "e", "f"},
			Provenance:     models.ProvenanceLive,
		},
	}
	h := testHandler(analysis, false)

	rec := postAnalyze(t, h, `{"symbol":"AAPL"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp["ticker"] != "AAPL" {
		t.Errorf("expected ticker AAPL, got %v", resp["ticker"])
	}
	if resp["sentimentColor"] != "green" {
		t.Errorf("expected sentimentColor, got %v", resp["sentimentColor"])
	}
	if _, present := resp["sentimentLabel"]; present {
		t.Error("color schema must not carry sentimentLabel")
	}
	if _, present := resp["provenance"]; present {
		t.Error("provenance must stay off the wire by default")
	}
}

func TestAnalyzeLabelSchemaResponse(t *testing.T) {
	analysis := &stubAnalysis{
		variant: common.SchemaLabel,
		result: &models.AnalysisResult{
			Ticker:         "TSLA",
			SentimentScore: 30,
			SentimentColor: "red",
			SentimentLabel: "恐慌",
			BullishPoints:  []string{"a", "b", "c"},
			BearishPoints:  []string{"d", "e", "f"},
			Provenance:     models.ProvenanceLive,
		},
	}
	h := testHandler(analysis, false)

	rec := postAnalyze(t, h, `{"symbol":"TSLA"}`)

	var resp map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp["sentimentLabel"] != "恐慌" {
		t.Errorf("expected sentimentLabel, got %v", resp["sentimentLabel"])
	}
	if _, present := resp["ticker"]; present {
		t.Error("label schema must not carry ticker")
	}
	if _, present := resp["bullishFactors"]; !present {
		t.Error("label schema should name the list bullishFactors")
	}
}

func TestAnalyzePanicFallsBackToMock(t *testing.T) {
	h := testHandler(&stubAnalysis{panics: true}, true)

	rec := postAnalyze(t, h, `{"symbol":"nvda"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected mock-backed 200 after panic, got %d", rec.Code)
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp["ticker"] != "NVDA" {
		t.Errorf("expected uppercase mock ticker, got %v", resp["ticker"])
	}
	if resp["provenance"] != "mock" {
		t.Errorf("expected exposed mock provenance, got %v", resp["provenance"])
	}

	expected := mockdata.Analysis("nvda")
	if int(resp["sentimentScore"].(float64)) != expected.SentimentScore {
		t.Errorf("expected deterministic mock score %d, got %v", expected.SentimentScore, resp["sentimentScore"])
	}
}

func TestAnalyzeProvenanceExposed(t *testing.T) {
	analysis := &stubAnalysis{
		result: &models.AnalysisResult{
			Ticker:         "AAPL",
			SentimentScore: 55,
			SentimentColor: "yellow",
			SentimentLabel: "中性",
			Summary:        "中性",
			BullishPoints:  []string{"a", "b", "c"},
			BearishPoints:  []string{"d", "e", "f"},
			Provenance:     models.ProvenanceLive,
		},
	}
	h := testHandler(analysis, true)

	rec := postAnalyze(t, h, `{"symbol":"AAPL"}`)

	var resp map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp["provenance"] != "live" {
		t.Errorf("expected live provenance on the wire, got %v", resp["provenance"])
	}
}
