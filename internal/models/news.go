package models

// Sentiment is the per-item tone assigned by the keyword heuristic.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// NewsItem is one normalized news snippet. Immutable once created.
type NewsItem struct {
	Title     string    `json:"title"`
	Summary   string    `json:"summary"`
	Sentiment Sentiment `json:"sentiment"`
	URL       string    `json:"url,omitempty"`
}

// NewsBundle is the normalized news set for one symbol. It lives for a
// single request and is never persisted.
type NewsBundle struct {
	Symbol string     `json:"symbol"`
	News   []NewsItem `json:"news"`
}
