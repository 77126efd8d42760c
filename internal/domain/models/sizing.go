package models

// SizingPreviewRequest asks for a position size suggestion for one symbol.
// The instrument spec is filled in server-side from the symbol table.
type SizingPreviewRequest struct {
	Symbol       string  `json:"symbol" validate:"required"`
	RiskMode     string  `json:"risk_mode" validate:"required,oneof=fixed percent_balance percent_equity"`
	RiskValue    float64 `json:"risk_value" validate:"required,gt=0"`
	Balance      float64 `json:"balance" validate:"gte=0"`
	Equity       float64 `json:"equity" validate:"gte=0"`
	StopDistance float64 `json:"stop_distance" validate:"required,gt=0"`
	Slippage     float64 `json:"slippage" validate:"gte=0"`
}

// SizingRequest is the execution bridge's sizing payload.
type SizingRequest struct {
	RiskMode     string      `json:"risk_mode"`
	RiskValue    float64     `json:"risk_value"`
	Balance      float64     `json:"balance,omitempty"`
	Equity       float64     `json:"equity,omitempty"`
	StopDistance float64     `json:"stop_distance"`
	Slippage     float64     `json:"slippage"`
	Instrument   interface{} `json:"instrument"`
}

// SizingResponse reports suggested lots and the risk they carry.
type SizingResponse struct {
	SuggestedLots   float64  `json:"suggested_lots"`
	RoundedToStep   float64  `json:"rounded_to_step"`
	PerLotRisk      float64  `json:"per_lot_risk"`
	RiskAtSuggested float64  `json:"risk_at_suggested"`
	Warnings        []string `json:"warnings"`
}
