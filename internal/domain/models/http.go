package models

// Requests for the copydesk HTTP endpoints. Defined in domain for consistency and reuse.

type ParseSignalsRequest struct {
	Text     string `json:"text" validate:"required"`
	CacheKey string `json:"cache_key"`
}

type ParseSignalsResponse struct {
	Strategy string        `json:"strategy"`
	Trades   []TradeIntent `json:"trades"`
}

type ParseCOTRequest struct {
	Source   string `json:"source" validate:"required,oneof=disaggregated financial"`
	Text     string `json:"text" validate:"required"`
	CacheKey string `json:"cache_key"`
}

type MergeCOTRequest struct {
	Disaggregated []CotObservation `json:"disaggregated"`
	Financial     []CotObservation `json:"financial"`
	// Keys of previously stored parse artifacts, used when the inline
	// observation lists are empty.
	DisaggregatedKey string `json:"disaggregated_key"`
	FinancialKey     string `json:"financial_key"`
	CacheKey         string `json:"cache_key"`
}

type CopyPreviewRequest struct {
	Trades         []TradeIntent `json:"trades" validate:"required,min=1,dive"`
	AccountIDs     []string      `json:"account_ids"`
	BaselineEquity float64       `json:"baseline_equity" validate:"gte=0"`
}

type CopyQueueRequest struct {
	PlanName       string        `json:"plan_name" validate:"required,max=120"`
	CreatedBy      string        `json:"created_by"`
	Trades         []TradeIntent `json:"trades" validate:"required,min=1,dive"`
	AccountIDs     []string      `json:"account_ids"`
	BaselineEquity float64       `json:"baseline_equity" validate:"gte=0"`
	DryRun         bool          `json:"dry_run"`
}

type CopyQueueResponse struct {
	DryRun bool        `json:"dry_run"`
	Items  []QueueItem `json:"items"`
	Result *PlanResult `json:"result,omitempty"`
}

type PutArtifactRequest struct {
	Value interface{} `json:"value" validate:"required"`
}
