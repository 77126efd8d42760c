package usecase

import (
	"context"
	"fmt"
	"time"

	"copydesk/internal/domain/models"
	domrepo "copydesk/internal/domain/repository"
	"copydesk/internal/fanout"
	"copydesk/internal/symbols"
	"copydesk/pkg/logger"
)

// Requeuer stages failed plan submissions for background retry.
type Requeuer interface {
	Enqueue(ctx context.Context, msgType string, payload interface{}) error
}

// CopyUseCase fans normalized trade intents out across follower accounts and
// hands committed plans to the execution bridge.
type CopyUseCase struct {
	accounts  []models.Account
	baseline  float64
	submitter domrepo.Submitter
	sizer     domrepo.Sizer
	audit     domrepo.AuditPublisher
	metrics   domrepo.Metrics
	notify    Notifier
	requeue   Requeuer
	logger    *logger.Logger
}

func NewCopyUseCase(
	accounts []models.Account,
	baselineEquity float64,
	submitter domrepo.Submitter,
	sizer domrepo.Sizer,
	audit domrepo.AuditPublisher,
	metrics domrepo.Metrics,
	notify Notifier,
	requeue Requeuer,
	l *logger.Logger,
) *CopyUseCase {
	return &CopyUseCase{
		accounts:  accounts,
		baseline:  baselineEquity,
		submitter: submitter,
		sizer:     sizer,
		audit:     audit,
		metrics:   metrics,
		notify:    notify,
		requeue:   requeue,
		logger:    l,
	}
}

// Accounts returns the configured follower accounts.
func (uc *CopyUseCase) Accounts() []models.Account {
	out := make([]models.Account, len(uc.accounts))
	copy(out, uc.accounts)
	return out
}

// Preview computes scaled per-account rows without committing anything.
func (uc *CopyUseCase) Preview(ctx context.Context, req *models.CopyPreviewRequest) ([]models.PreviewRow, error) {
	accounts, err := uc.selectAccounts(req.AccountIDs)
	if err != nil {
		return nil, err
	}
	baseline := uc.baselineOr(req.BaselineEquity)

	rows := fanout.BuildPreviewRows(req.Trades, accounts, baseline)

	uc.logger.Debug("built copy preview",
		logger.Int("trades", len(req.Trades)),
		logger.Int("accounts", len(accounts)),
		logger.Int("rows", len(rows)))

	return rows, nil
}

// Queue builds the per-account order queue for a named plan. With DryRun set
// the items are returned without touching the execution bridge; otherwise the
// plan is submitted and the bridge's per-status counts are returned.
func (uc *CopyUseCase) Queue(ctx context.Context, req *models.CopyQueueRequest) (*models.CopyQueueResponse, error) {
	start := time.Now()

	accounts, err := uc.selectAccounts(req.AccountIDs)
	if err != nil {
		return nil, err
	}
	baseline := uc.baselineOr(req.BaselineEquity)

	items := fanout.BuildQueueItems(req.Trades, accounts, baseline, req.PlanName)

	perAccount := make(map[string]int, len(accounts))
	for _, it := range items {
		perAccount[it.AccountID]++
	}
	for acc, n := range perAccount {
		uc.metrics.RecordQueueItems(acc, n)
	}

	resp := &models.CopyQueueResponse{DryRun: req.DryRun, Items: items}

	if req.DryRun {
		uc.logger.Info("dry-run queue built",
			logger.String("plan", req.PlanName),
			logger.Int("items", len(items)))
		return resp, nil
	}

	plan := models.QueuePlan{
		PlanName:  req.PlanName,
		CreatedBy: req.CreatedBy,
		Items:     items,
	}

	result, err := uc.submitter.SubmitQueue(ctx, plan)
	if err != nil {
		uc.metrics.RecordSubmission("error")
		uc.metrics.RecordError("submit_queue")
		uc.logger.Error("submit queue plan",
			logger.String("plan", req.PlanName), logger.Error(err))

		if uc.requeue != nil {
			if qerr := uc.requeue.Enqueue(ctx, PlanResubmitType, plan); qerr != nil {
				uc.logger.Warn("stage plan for resubmission",
					logger.String("plan", req.PlanName), logger.Error(qerr))
			} else {
				uc.logger.Info("plan staged for resubmission",
					logger.String("plan", req.PlanName))
			}
		}
		return nil, fmt.Errorf("submit queue plan %q: %w", req.PlanName, err)
	}

	uc.metrics.RecordSubmission("ok")
	uc.metrics.RecordLatency("copy_queue", time.Since(start).Seconds())
	resp.Result = result

	if err := uc.audit.PublishEvent(ctx, map[string]interface{}{
		"action":  "copy_queue",
		"plan":    req.PlanName,
		"plan_id": result.PlanID,
		"items":   len(items),
		"queued":  result.Queued,
	}); err != nil {
		uc.logger.Warn("audit copy_queue", logger.Error(err))
	}

	if uc.notify != nil {
		uc.notify.Broadcast("plan_queued", resp)
	}

	uc.logger.Info("queue plan submitted",
		logger.String("plan", req.PlanName),
		logger.Int("items", len(items)),
		logger.Int("queued", result.Queued),
		logger.Int("rejected", result.Rejected))

	return resp, nil
}

// SizingPreview resolves the symbol, attaches its instrument spec and
// delegates the sizing math to the execution bridge.
func (uc *CopyUseCase) SizingPreview(ctx context.Context, req *models.SizingPreviewRequest) (*models.SizingResponse, error) {
	symbol := symbols.Resolve(req.Symbol)
	spec, ok := symbols.SpecFor(symbol)
	if !ok {
		return nil, fmt.Errorf("no instrument spec for %q", symbol)
	}

	res, err := uc.sizer.SizingCalc(ctx, &models.SizingRequest{
		RiskMode:     req.RiskMode,
		RiskValue:    req.RiskValue,
		Balance:      req.Balance,
		Equity:       req.Equity,
		StopDistance: req.StopDistance,
		Slippage:     req.Slippage,
		Instrument:   spec,
	})
	if err != nil {
		uc.metrics.RecordError("sizing_calc")
		return nil, fmt.Errorf("sizing preview %q: %w", symbol, err)
	}
	return res, nil
}

// selectAccounts filters configured accounts by the requested ids. An empty
// filter selects every account; an unknown id is an error.
func (uc *CopyUseCase) selectAccounts(ids []string) ([]models.Account, error) {
	if len(ids) == 0 {
		return uc.accounts, nil
	}
	byID := make(map[string]models.Account, len(uc.accounts))
	for _, a := range uc.accounts {
		byID[a.ID] = a
	}
	out := make([]models.Account, 0, len(ids))
	for _, id := range ids {
		a, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("unknown account %q", id)
		}
		out = append(out, a)
	}
	return out, nil
}

func (uc *CopyUseCase) baselineOr(requested float64) float64 {
	if requested > 0 {
		return requested
	}
	return uc.baseline
}
