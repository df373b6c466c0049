package analysis

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/marketmood/internal/common"
	"github.com/ternarybob/marketmood/internal/models"
)

func TestParseColorResponse(t *testing.T) {
	validate := validator.New()

	raw := `{
		"ticker": "AAPL",
		"sentimentScore": 72,
		"sentimentColor": "green",
		"summary": "业绩超预期，市场情绪偏乐观",
		"bullishPoints": ["盈利超预期", "机构买入增加", "行业景气度回升"],
		"bearishPoints": ["估值偏高", "宏观不确定性", "获利回吐压力"]
	}`

	result, err := parseResponse(validate, common.SchemaColor, "aapl", raw)
	require.NoError(t, err)

	assert.Equal(t, "AAPL", result.Ticker)
	assert.Equal(t, 72, result.SentimentScore)
	assert.Equal(t, "green", result.SentimentColor)
	assert.Equal(t, "贪婪", result.SentimentLabel)
	assert.Len(t, result.BullishPoints, 3)
	assert.Equal(t, models.ProvenanceLive, result.Provenance)
}

func TestParseLabelResponse(t *testing.T) {
	validate := validator.New()

	raw := `{
		"sentimentScore": 82,
		"sentimentLabel": "极度贪婪",
		"bullishFactors": ["资金持续流入", "业绩大超预期", "政策利好落地"],
		"bearishFactors": ["短期涨幅过大", "估值透支", "获利盘压力"]
	}`

	result, err := parseResponse(validate, common.SchemaLabel, "nvda", raw)
	require.NoError(t, err)

	assert.Equal(t, "NVDA", result.Ticker)
	assert.Equal(t, 82, result.SentimentScore)
	assert.Equal(t, "极度贪婪", result.SentimentLabel)
	assert.Equal(t, "green", result.SentimentColor, "color derives from the score for the label schema")
	assert.Equal(t, models.ProvenanceLive, result.Provenance)
}

func TestParseRejectsContractViolations(t *testing.T) {
	validate := validator.New()

	tests := []struct {
		name    string
		variant common.SchemaVariant
		raw     string
	}{
		{
			name:    "missing score",
			variant: common.SchemaColor,
			raw:     `{"ticker":"AAPL","sentimentColor":"green","summary":"ok","bullishPoints":["a","b","c"],"bearishPoints":["a","b","c"]}`,
		},
		{
			name:    "zero score accepted elsewhere but color invalid",
			variant: common.SchemaColor,
			raw:     `{"ticker":"AAPL","sentimentScore":0,"sentimentColor":"crimson","summary":"ok","bullishPoints":["a","b","c"],"bearishPoints":["a","b","c"]}`,
		},
		{
			name:    "unknown label",
			variant: common.SchemaLabel,
			raw:     `{"sentimentScore":50,"sentimentLabel":"看涨","bullishFactors":["a","b","c"],"bearishFactors":["a","b","c"]}`,
		},
		{
			name:    "four points",
			variant: common.SchemaLabel,
			raw:     `{"sentimentScore":50,"sentimentLabel":"中性","bullishFactors":["a","b","c","d"],"bearishFactors":["a","b","c"]}`,
		},
		{
			name:    "truncated json",
			variant: common.SchemaColor,
			raw:     `{"ticker":"AAPL","sentimentScore":50`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseResponse(validate, tt.variant, "AAPL", tt.raw)
			assert.Error(t, err)
		})
	}
}

func TestParseAcceptsZeroScore(t *testing.T) {
	validate := validator.New()

	raw := `{"ticker":"AAPL","sentimentScore":0,"sentimentColor":"red","summary":"极度悲观","bullishPoints":["a","b","c"],"bearishPoints":["a","b","c"]}`

	result, err := parseResponse(validate, common.SchemaColor, "AAPL", raw)
	require.NoError(t, err)
	assert.Equal(t, 0, result.SentimentScore)
	assert.Equal(t, "极度恐慌", result.SentimentLabel)
}
