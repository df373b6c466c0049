package mockdata

import (
	"encoding/json"
	"testing"

	"github.com/ternarybob/marketmood/internal/models"
)

func TestAnalysisDeterministic(t *testing.T) {
	for _, symbol := range []string{"AAPL", "TSLA", "BTC", "00700", "a"} {
		first, err := json.Marshal(Analysis(symbol))
		if err != nil {
			t.Fatal(err)
		}
		second, err := json.Marshal(Analysis(symbol))
		if err != nil {
			t.Fatal(err)
		}
		if string(first) != string(second) {
			t.Errorf("Analysis(%q) is not deterministic", symbol)
		}
	}
}

func TestAnalysisInvariants(t *testing.T) {
	symbols := []string{"AAPL", "MSFT", "TSLA", "NVDA", "BTC", "ETH", "X", "ZZZZ", "中芯国际"}

	for _, symbol := range symbols {
		result := Analysis(symbol)

		if result.SentimentScore < 50 || result.SentimentScore > 90 {
			t.Errorf("Analysis(%q) score = %d, want [50,90]", symbol, result.SentimentScore)
		}
		if len(result.BullishPoints) != 3 {
			t.Errorf("Analysis(%q) bullish points = %d, want 3", symbol, len(result.BullishPoints))
		}
		if len(result.BearishPoints) != 3 {
			t.Errorf("Analysis(%q) bearish points = %d, want 3", symbol, len(result.BearishPoints))
		}
		if result.Provenance != models.ProvenanceMock {
			t.Errorf("Analysis(%q) provenance = %q, want mock", symbol, result.Provenance)
		}
		if result.SentimentColor != models.ColorForScore(result.SentimentScore) {
			t.Errorf("Analysis(%q) color %q does not match score %d", symbol, result.SentimentColor, result.SentimentScore)
		}
		if result.SentimentLabel != models.LabelForScore(result.SentimentScore) {
			t.Errorf("Analysis(%q) label %q does not match score %d", symbol, result.SentimentLabel, result.SentimentScore)
		}
	}
}

func TestAnalysisPointsDistinct(t *testing.T) {
	// Pool size 6 with offsets 0..2 and 3..5 guarantees distinct picks
	result := Analysis("AAPL")

	seen := map[string]bool{}
	for _, p := range result.BullishPoints {
		if seen[p] {
			t.Errorf("duplicate bullish point %q", p)
		}
		seen[p] = true
	}
	seen = map[string]bool{}
	for _, p := range result.BearishPoints {
		if seen[p] {
			t.Errorf("duplicate bearish point %q", p)
		}
		seen[p] = true
	}
}

func TestAnalysisUppercasesTicker(t *testing.T) {
	if got := Analysis("aapl").Ticker; got != "AAPL" {
		t.Errorf("Ticker = %q, want AAPL", got)
	}
}

func TestNewsTemplate(t *testing.T) {
	bundle := News("aapl")

	if bundle.Symbol != "AAPL" {
		t.Errorf("Symbol = %q, want AAPL", bundle.Symbol)
	}
	if len(bundle.News) != 5 {
		t.Fatalf("news count = %d, want 5", len(bundle.News))
	}

	positive, negative := 0, 0
	for _, item := range bundle.News {
		switch item.Sentiment {
		case models.SentimentPositive:
			positive++
		case models.SentimentNegative:
			negative++
		}
	}
	if positive != 3 || negative != 2 {
		t.Errorf("sentiments = %d positive / %d negative, want 3/2", positive, negative)
	}
}
