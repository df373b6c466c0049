package analysis

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ternarybob/marketmood/internal/common"
	"github.com/ternarybob/marketmood/internal/models"
)

const analystPersona = `你是一个专业的投资分析师，擅长分析股票/加密货币的市场情绪。

你的任务是基于提供的新闻数据，分析该资产的市场情况，并严格按照以下 JSON 格式返回结果：`

const colorSchemaBlock = `{
  "ticker": "股票代码",
  "sentimentScore": 0-100 的整数,
  "sentimentColor": "red" | "yellow" | "green",
  "summary": "一句话市场总结（最多50字）",
  "bullishPoints": ["看涨理由1", "看涨理由2", "看涨理由3"],
  "bearishPoints": ["看跌风险1", "看跌风险2", "看跌风险3"]
}`

const labelSchemaBlock = `{
  "sentimentScore": 0-100 的整数,
  "sentimentLabel": "极度恐慌" | "恐慌" | "中性偏空" | "中性" | "中性偏多" | "贪婪" | "极度贪婪",
  "bullishFactors": ["看涨因素1", "看涨因素2", "看涨因素3"],
  "bearishFactors": ["看跌因素1", "看跌因素2", "看跌因素3"]
}`

// scoreBandText renders the shared score band table as prompt instructions,
// so the model and the mock generator score against the same bands.
func scoreBandText() string {
	var sb strings.Builder
	sb.WriteString("评分说明：\n")
	for _, b := range models.ScoreBands {
		sb.WriteString(fmt.Sprintf("- %d-%d: %s（%s）\n", b.Min, b.Max, b.Label, b.Color))
	}
	return sb.String()
}

// systemPrompt builds the fixed investment-analyst system prompt for the
// configured response schema.
func systemPrompt(variant common.SchemaVariant) string {
	schemaBlock := colorSchemaBlock
	if variant == common.SchemaLabel {
		schemaBlock = labelSchemaBlock
	}

	return fmt.Sprintf("%s\n\n%s\n\n%s\n请严格按照以上 JSON 格式返回，不要添加任何额外文字。",
		analystPersona, schemaBlock, scoreBandText())
}

// userPrompt embeds the serialized news bundle in the fixed user message.
func userPrompt(symbol string, bundle *models.NewsBundle) (string, error) {
	payload, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize news bundle: %w", err)
	}

	return fmt.Sprintf("请分析以下 %s 的新闻数据：\n\n%s\n\n请给出市场情绪分析结果。",
		strings.ToUpper(symbol), payload), nil
}
