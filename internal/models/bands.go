package models

// ScoreBand maps a sentiment score range to its display label and color.
// The same table drives mock derivation and the scoring instructions sent
// to the LLM providers.
type ScoreBand struct {
	Min   int
	Max   int
	Label string
	Color string
}

// ScoreBands is the shared band table. Low scores are fear, high scores greed.
var ScoreBands = []ScoreBand{
	{0, 30, "极度恐慌", "red"},
	{31, 45, "恐慌", "orange"},
	{46, 55, "中性偏空", "yellow"},
	{56, 65, "中性", "gray"},
	{66, 80, "贪婪", "light-green"},
	{81, 100, "极度贪婪", "dark-green"},
}

// LabelForScore returns the band label for a score. Scores outside [0,100]
// clamp to the nearest band.
func LabelForScore(score int) string {
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	for _, b := range ScoreBands {
		if score >= b.Min && score <= b.Max {
			return b.Label
		}
	}
	return ScoreBands[len(ScoreBands)-1].Label
}

// ColorForScore returns the tri-color used by the "color" wire schema and
// the gauge UI: green from 66, yellow from 46, red below.
func ColorForScore(score int) string {
	switch {
	case score >= 66:
		return "green"
	case score >= 46:
		return "yellow"
	default:
		return "red"
	}
}
