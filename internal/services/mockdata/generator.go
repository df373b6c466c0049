// Package mockdata generates deterministic synthetic news and analysis
// results. It is the fallback for every upstream failure in the pipeline, so
// it must stay pure: the same symbol always yields the same output.
package mockdata

import (
	"fmt"
	"strings"

	"github.com/ternarybob/marketmood/internal/models"
)

var bullishPool = []string{
	"%s 营收超预期，显示公司基本面强劲",
	"分析师集体上调目标价，市场信心增强",
	"战略投资计划将推动长期增长",
	"新产品发布有望打开新的市场空间",
	"订单量持续增长，业务扩张势头良好",
	"市场份额稳步提升，竞争优势明显",
}

var bearishPool = []string{
	"行业监管政策可能带来不确定性",
	"竞争对手新产品可能加剧市场竞争",
	"宏观经济环境仍存在波动风险",
	"原材料价格上涨可能影响利润率",
	"汇率波动可能影响海外业务",
	"供应链中断风险需要持续关注",
}

// symbolHash sums the character codes of the symbol. This is the only source
// of variation in the generated data; no real randomness is allowed since
// fallback behavior must be reproducible.
func symbolHash(symbol string) int {
	hash := 0
	for _, r := range symbol {
		hash += int(r)
	}
	return hash
}

// News returns a fixed five-item bundle with the symbol interpolated into
// the titles. Sentiments are hardcoded per item, not computed.
func News(symbol string) *models.NewsBundle {
	return &models.NewsBundle{
		Symbol: strings.ToUpper(symbol),
		News: []models.NewsItem{
			{
				Title:     fmt.Sprintf("%s 发布季度财报，营收超预期 15%%", symbol),
				Summary:   "该公司本季度营收达到预期水平，净利润同比增长显著。",
				Sentiment: models.SentimentPositive,
			},
			{
				Title:     fmt.Sprintf("市场分析师上调 %s 目标价", symbol),
				Summary:   "多家投行发布研报，认为该公司业务前景乐观。",
				Sentiment: models.SentimentPositive,
			},
			{
				Title:     fmt.Sprintf("%s 宣布新一轮战略投资计划", symbol),
				Summary:   "公司将加大在核心业务领域的投入，预计未来增长强劲。",
				Sentiment: models.SentimentPositive,
			},
			{
				Title:     fmt.Sprintf("行业监管政策可能影响 %s 业务", symbol),
				Summary:   "新的监管政策可能对公司部分业务带来不确定性。",
				Sentiment: models.SentimentNegative,
			},
			{
				Title:     fmt.Sprintf("%s 竞争对手推出新产品", symbol),
				Summary:   "主要竞争对手发布了类似产品，可能加剧市场竞争。",
				Sentiment: models.SentimentNegative,
			},
		},
	}
}

// Analysis returns a synthetic analysis for the symbol. The score lands in
// [50,90]; the three bullish and three bearish points are picked from the
// fixed pools at offsets hash+0..2 and hash+3..5 modulo the pool size.
func Analysis(symbol string) *models.AnalysisResult {
	hash := symbolHash(symbol)
	score := 50 + hash%41

	bullish := make([]string, 0, 3)
	for k := 0; k < 3; k++ {
		point := bullishPool[(hash+k)%len(bullishPool)]
		if strings.Contains(point, "%s") {
			point = fmt.Sprintf(point, symbol)
		}
		bullish = append(bullish, point)
	}

	bearish := make([]string, 0, 3)
	for k := 3; k < 6; k++ {
		bearish = append(bearish, bearishPool[(hash+k)%len(bearishPool)])
	}

	tone, direction := "偏谨慎", "下行"
	if score >= 66 {
		tone, direction = "偏乐观", "上行"
	}

	return &models.AnalysisResult{
		Ticker:         strings.ToUpper(symbol),
		SentimentScore: score,
		SentimentColor: models.ColorForScore(score),
		SentimentLabel: models.LabelForScore(score),
		Summary:        fmt.Sprintf("%s 当前市场情绪呈现%s态势，建议关注%s风险。", symbol, tone, direction),
		BullishPoints:  bullish,
		BearishPoints:  bearish,
		Provenance:     models.ProvenanceMock,
	}
}
