package models

// Provenance records whether an analysis came from a live provider or the
// deterministic mock generator. The wire response collapses both into the
// same shape unless provenance exposure is enabled.
type Provenance string

const (
	ProvenanceLive Provenance = "live"
	ProvenanceMock Provenance = "mock"
)

// AnalysisResult is the internal result of the analysis pipeline. It is a
// superset of both wire schemas; rendering picks the fields each variant
// needs. Invariants: SentimentScore in [0,100], both point lists length 3.
type AnalysisResult struct {
	Ticker         string
	SentimentScore int
	SentimentColor string // "red", "yellow", "green"
	SentimentLabel string // band label, e.g. "贪婪"
	Summary        string
	BullishPoints  []string
	BearishPoints  []string
	Provenance     Provenance
}

// ColorResponse is the "color" wire schema: ticker + tri-color + summary.
type ColorResponse struct {
	Ticker         string   `json:"ticker"`
	SentimentScore int      `json:"sentimentScore"`
	SentimentColor string   `json:"sentimentColor"`
	Summary        string   `json:"summary"`
	BullishPoints  []string `json:"bullishPoints"`
	BearishPoints  []string `json:"bearishPoints"`
	Provenance     string   `json:"provenance,omitempty"`
}

// LabelResponse is the "label" wire schema: score + band label + factor lists.
type LabelResponse struct {
	SentimentScore int      `json:"sentimentScore"`
	SentimentLabel string   `json:"sentimentLabel"`
	BullishFactors []string `json:"bullishFactors"`
	BearishFactors []string `json:"bearishFactors"`
	Provenance     string   `json:"provenance,omitempty"`
}

// ToColorResponse renders the result in the "color" wire schema.
func (r *AnalysisResult) ToColorResponse(exposeProvenance bool) *ColorResponse {
	resp := &ColorResponse{
		Ticker:         r.Ticker,
		SentimentScore: r.SentimentScore,
		SentimentColor: r.SentimentColor,
		Summary:        r.Summary,
		BullishPoints:  r.BullishPoints,
		BearishPoints:  r.BearishPoints,
	}
	if exposeProvenance {
		resp.Provenance = string(r.Provenance)
	}
	return resp
}

// ToLabelResponse renders the result in the "label" wire schema.
func (r *AnalysisResult) ToLabelResponse(exposeProvenance bool) *LabelResponse {
	resp := &LabelResponse{
		SentimentScore: r.SentimentScore,
		SentimentLabel: r.SentimentLabel,
		BullishFactors: r.BullishPoints,
		BearishFactors: r.BearishPoints,
	}
	if exposeProvenance {
		resp.Provenance = string(r.Provenance)
	}
	return resp
}
