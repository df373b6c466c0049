// Package sentiment provides the keyword-based tone classifier used to tag
// news snippets before they reach the LLM.
package sentiment

import (
	"strings"

	"github.com/ternarybob/marketmood/internal/models"
)

// Fixed word lists, mixed Chinese and English. Matching is case-insensitive
// substring containment; each list word counts once per text.
var positiveWords = []string{
	"上涨", "增长", "利好", "超预期", "上调", "买入", "强劲", "看好", "突破", "创新高", "盈利",
	"rise", "gain", "up",
}

var negativeWords = []string{
	"下跌", "下滑", "利空", "低于预期", "下调", "卖出", "疲弱", "看空", "跌破", "创新低", "亏损",
	"风险", "监管",
	"fall", "drop", "down", "risk",
}

// Classify maps free text to positive, negative or neutral by comparing how
// many words of each list occur in the lower-cased text. Ties are neutral.
func Classify(text string) models.Sentiment {
	lower := strings.ToLower(text)

	positive := countMatches(lower, positiveWords)
	negative := countMatches(lower, negativeWords)

	switch {
	case positive > negative:
		return models.SentimentPositive
	case negative > positive:
		return models.SentimentNegative
	default:
		return models.SentimentNeutral
	}
}

func countMatches(lower string, words []string) int {
	count := 0
	for _, w := range words {
		if strings.Contains(lower, w) {
			count++
		}
	}
	return count
}
