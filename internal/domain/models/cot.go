package models

// Stance is the directional bias inferred for an instrument.
type Stance string

const (
	StanceBullish Stance = "bullish"
	StanceBearish Stance = "bearish"
	StanceNeutral Stance = "neutral"
)

// Source identifies which Commitments of Traders report a stance came from.
type Source string

const (
	SourceDisaggregated Source = "disaggregated"
	SourceFinancial     Source = "financial"
)

// CotObservation is one instrument's stance extracted from a single report.
// Evidence holds the source lines that matched, first-seen order, capped at 4.
type CotObservation struct {
	Symbol   string   `json:"symbol"`
	Stance   Stance   `json:"stance"`
	Evidence []string `json:"evidence"`
}

// MergedCotItem combines the two report sources for one instrument.
// Conflict is true only when both sources are present and directionally
// opposed (bullish vs bearish, never involving neutral).
type MergedCotItem struct {
	Symbol     string   `json:"symbol"`
	Stance     Stance   `json:"stance"`
	Sources    []Source `json:"sources"`
	Conflict   bool     `json:"conflict"`
	Preferred  Source   `json:"preferred,omitempty"`
	Evidence   []string `json:"evidence"`
	Notes      []string `json:"notes,omitempty"`
	Confluence int      `json:"confluence"`
}
