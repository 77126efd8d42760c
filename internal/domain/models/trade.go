package models

// Side is the direction of a trade instruction.
type Side string

const (
	SideBuy  Side = "buy"
	SideSell Side = "sell"
)

// TradeIntent is one normalized trade instruction extracted from pasted text.
// Lot is always positive, stop and target prices are absolute (0 = none).
type TradeIntent struct {
	Symbol      string  `json:"symbol"`
	Side        Side    `json:"side"`
	Lot         float64 `json:"lot"`
	StopLoss    float64 `json:"sl"`
	TakeProfit  float64 `json:"tp"`
	TakeProfit2 float64 `json:"tp2,omitempty"`
	TakeProfit3 float64 `json:"tp3,omitempty"`
}

// Account is a follower account taking copied trades.
type Account struct {
	ID     string  `json:"id"`
	Label  string  `json:"label"`
	Equity float64 `json:"equity"`
}

// QueueItem is one per-account order produced by the fan-out step.
type QueueItem struct {
	AccountID      string  `json:"account_id"`
	Symbol         string  `json:"symbol"`
	Side           Side    `json:"side"`
	Lot            float64 `json:"lot"`
	StopLoss       float64 `json:"sl"`
	TakeProfit     float64 `json:"tp"`
	IdempotencyKey string  `json:"idempotency_key"`
}

// PreviewRow mirrors a QueueItem for display without committing a plan.
type PreviewRow struct {
	AccountID string  `json:"account_id"`
	Account   string  `json:"account"`
	Symbol    string  `json:"symbol"`
	Side      Side    `json:"side"`
	BaseLot   float64 `json:"base_lot"`
	ScaledLot float64 `json:"scaled_lot"`
	Equity    float64 `json:"equity"`
}

// QueuePlan is a named batch of queue items handed to the execution bridge.
type QueuePlan struct {
	PlanName  string      `json:"plan_name"`
	CreatedBy string      `json:"created_by,omitempty"`
	Items     []QueueItem `json:"items"`
}

// PlanResult reports per-status counts returned by the execution bridge.
type PlanResult struct {
	PlanID   int64 `json:"plan_id"`
	Queued   int   `json:"queued"`
	Reserved int   `json:"reserved"`
	Filled   int   `json:"filled"`
	Rejected int   `json:"rejected"`
}
