package usecase

import (
	"context"
	"math"
	"testing"

	"copydesk/internal/domain/models"
	"copydesk/internal/repository"
	"copydesk/internal/symbols"
	"copydesk/pkg/logger"
)

type stubSubmitter struct {
	plans  []models.QueuePlan
	result *models.PlanResult
	err    error
}

func (s *stubSubmitter) SubmitQueue(_ context.Context, plan models.QueuePlan) (*models.PlanResult, error) {
	s.plans = append(s.plans, plan)
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

type nopMetrics struct{}

func (nopMetrics) RecordTradesParsed(string, int)    {}
func (nopMetrics) RecordCOTObservations(string, int) {}
func (nopMetrics) RecordCOTConflict()                {}
func (nopMetrics) RecordQueueItems(string, int)      {}
func (nopMetrics) RecordSubmission(string)           {}
func (nopMetrics) RecordError(string)                {}
func (nopMetrics) RecordLatency(string, float64)     {}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	l, err := logger.New(&logger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	return l
}

func testAccounts() []models.Account {
	return []models.Account{
		{ID: "acc-a", Label: "Alpha", Equity: 5000},
		{ID: "acc-b", Label: "Bravo", Equity: 20000},
	}
}

type stubRequeuer struct {
	types    []string
	payloads []interface{}
}

func (s *stubRequeuer) Enqueue(_ context.Context, msgType string, payload interface{}) error {
	s.types = append(s.types, msgType)
	s.payloads = append(s.payloads, payload)
	return nil
}

type stubSizer struct {
	requests []*models.SizingRequest
	result   *models.SizingResponse
}

func (s *stubSizer) SizingCalc(_ context.Context, req *models.SizingRequest) (*models.SizingResponse, error) {
	s.requests = append(s.requests, req)
	return s.result, nil
}

func newCopyUseCase(t *testing.T, sub *stubSubmitter) *CopyUseCase {
	t.Helper()
	return NewCopyUseCase(
		testAccounts(), 10000, sub, &stubSizer{},
		repository.NopAuditPublisher{}, nopMetrics{}, nil, nil,
		testLogger(t),
	)
}

func TestCopyPreviewScalesByEquity(t *testing.T) {
	uc := newCopyUseCase(t, &stubSubmitter{})

	rows, err := uc.Preview(context.Background(), &models.CopyPreviewRequest{
		Trades: []models.TradeIntent{{Symbol: "gold", Side: models.SideBuy, Lot: 0.10}},
	})
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Symbol != "XAUUSD" {
		t.Fatalf("expected alias resolution to XAUUSD, got %s", rows[0].Symbol)
	}
	if math.Abs(rows[0].ScaledLot-0.05) > 1e-9 {
		t.Fatalf("acc-a scaled lot = %v, want 0.05", rows[0].ScaledLot)
	}
	if math.Abs(rows[1].ScaledLot-0.20) > 1e-9 {
		t.Fatalf("acc-b scaled lot = %v, want 0.20", rows[1].ScaledLot)
	}
}

func TestCopyPreviewBaselineOverride(t *testing.T) {
	uc := newCopyUseCase(t, &stubSubmitter{})

	rows, err := uc.Preview(context.Background(), &models.CopyPreviewRequest{
		Trades:         []models.TradeIntent{{Symbol: "EURUSD", Side: models.SideSell, Lot: 0.10}},
		AccountIDs:     []string{"acc-a"},
		BaselineEquity: 5000,
	})
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if math.Abs(rows[0].ScaledLot-0.10) > 1e-9 {
		t.Fatalf("scaled lot = %v, want 0.10", rows[0].ScaledLot)
	}
}

func TestCopyPreviewUnknownAccount(t *testing.T) {
	uc := newCopyUseCase(t, &stubSubmitter{})

	_, err := uc.Preview(context.Background(), &models.CopyPreviewRequest{
		Trades:     []models.TradeIntent{{Symbol: "EURUSD", Side: models.SideBuy, Lot: 0.10}},
		AccountIDs: []string{"acc-missing"},
	})
	if err == nil {
		t.Fatal("expected error for unknown account id")
	}
}

func TestCopyQueueDryRunSkipsSubmission(t *testing.T) {
	sub := &stubSubmitter{}
	uc := newCopyUseCase(t, sub)

	resp, err := uc.Queue(context.Background(), &models.CopyQueueRequest{
		PlanName: "plan-1",
		Trades:   []models.TradeIntent{{Symbol: "XAUUSD", Side: models.SideBuy, Lot: 0.10}},
		DryRun:   true,
	})
	if err != nil {
		t.Fatalf("queue: %v", err)
	}
	if !resp.DryRun {
		t.Fatal("expected dry_run response")
	}
	if resp.Result != nil {
		t.Fatal("dry run must not carry a submission result")
	}
	if len(resp.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(resp.Items))
	}
	if len(sub.plans) != 0 {
		t.Fatalf("dry run must not submit, got %d submissions", len(sub.plans))
	}
}

func TestCopyQueueSubmitsPlan(t *testing.T) {
	sub := &stubSubmitter{result: &models.PlanResult{PlanID: 7, Queued: 2}}
	uc := newCopyUseCase(t, sub)

	resp, err := uc.Queue(context.Background(), &models.CopyQueueRequest{
		PlanName:  "plan-1",
		CreatedBy: "desk",
		Trades:    []models.TradeIntent{{Symbol: "XAUUSD", Side: models.SideBuy, Lot: 0.10, StopLoss: 2310, TakeProfit: 2380}},
	})
	if err != nil {
		t.Fatalf("queue: %v", err)
	}
	if resp.Result == nil || resp.Result.PlanID != 7 || resp.Result.Queued != 2 {
		t.Fatalf("unexpected result: %+v", resp.Result)
	}
	if len(sub.plans) != 1 {
		t.Fatalf("expected 1 submission, got %d", len(sub.plans))
	}

	plan := sub.plans[0]
	if plan.PlanName != "plan-1" || plan.CreatedBy != "desk" {
		t.Fatalf("unexpected plan header: %+v", plan)
	}
	if len(plan.Items) != 2 {
		t.Fatalf("expected 2 plan items, got %d", len(plan.Items))
	}
	if plan.Items[0].IdempotencyKey != "plan-1:acc-a:XAUUSD:buy:0.05" {
		t.Fatalf("unexpected idempotency key: %s", plan.Items[0].IdempotencyKey)
	}
}

func TestCopyQueueSubmitError(t *testing.T) {
	sub := &stubSubmitter{err: context.DeadlineExceeded}
	uc := newCopyUseCase(t, sub)

	_, err := uc.Queue(context.Background(), &models.CopyQueueRequest{
		PlanName: "plan-1",
		Trades:   []models.TradeIntent{{Symbol: "XAUUSD", Side: models.SideBuy, Lot: 0.10}},
	})
	if err == nil {
		t.Fatal("expected submission error to propagate")
	}
}

func TestSizingPreviewFillsInstrumentSpec(t *testing.T) {
	sizer := &stubSizer{result: &models.SizingResponse{SuggestedLots: 0.42, RoundedToStep: 0.42}}
	uc := NewCopyUseCase(
		testAccounts(), 10000, &stubSubmitter{}, sizer,
		repository.NopAuditPublisher{}, nopMetrics{}, nil, nil,
		testLogger(t),
	)

	res, err := uc.SizingPreview(context.Background(), &models.SizingPreviewRequest{
		Symbol:       "gold",
		RiskMode:     "fixed",
		RiskValue:    100,
		StopDistance: 5,
	})
	if err != nil {
		t.Fatalf("sizing preview: %v", err)
	}
	if res.SuggestedLots != 0.42 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if len(sizer.requests) != 1 {
		t.Fatalf("expected 1 bridge call, got %d", len(sizer.requests))
	}
	spec, ok := sizer.requests[0].Instrument.(symbols.InstrumentSpec)
	if !ok || spec.Symbol != "XAUUSD" {
		t.Fatalf("expected XAUUSD instrument spec, got %#v", sizer.requests[0].Instrument)
	}
}

func TestSizingPreviewUnknownSymbol(t *testing.T) {
	uc := newCopyUseCase(t, &stubSubmitter{})

	_, err := uc.SizingPreview(context.Background(), &models.SizingPreviewRequest{
		Symbol:       "UNKNOWNPAIR",
		RiskMode:     "fixed",
		RiskValue:    100,
		StopDistance: 5,
	})
	if err == nil {
		t.Fatal("expected error for symbol without instrument spec")
	}
}

func TestCopyQueueSubmitErrorStagesRetry(t *testing.T) {
	sub := &stubSubmitter{err: context.DeadlineExceeded}
	rq := &stubRequeuer{}
	uc := NewCopyUseCase(
		testAccounts(), 10000, sub, &stubSizer{},
		repository.NopAuditPublisher{}, nopMetrics{}, nil, rq,
		testLogger(t),
	)

	_, err := uc.Queue(context.Background(), &models.CopyQueueRequest{
		PlanName: "plan-1",
		Trades:   []models.TradeIntent{{Symbol: "XAUUSD", Side: models.SideBuy, Lot: 0.10}},
	})
	if err == nil {
		t.Fatal("expected submission error to propagate")
	}
	if len(rq.types) != 1 || rq.types[0] != PlanResubmitType {
		t.Fatalf("expected one staged resubmission, got %v", rq.types)
	}
	plan, ok := rq.payloads[0].(models.QueuePlan)
	if !ok || plan.PlanName != "plan-1" || len(plan.Items) != 2 {
		t.Fatalf("unexpected staged payload: %#v", rq.payloads[0])
	}
}
