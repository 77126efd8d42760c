package usecase

import (
	"context"
	"fmt"
	"time"

	"copydesk/internal/domain/models"
	domrepo "copydesk/internal/domain/repository"
	"copydesk/pkg/cache"
	"copydesk/pkg/logger"
	"copydesk/pkg/queue"
)

// PlanResubmitType is the queue message type for staged plan submissions.
const PlanResubmitType = "plan_resubmit"

const resubmitLockTTL = 30 * time.Second

// ResubmitJob retries queue plans whose first submission to the execution
// bridge failed. Items carry idempotency keys, so a retry that races a
// successful earlier attempt is deduplicated downstream. A short-lived
// cache lock per plan keeps concurrent workers from resubmitting the same
// plan at once.
type ResubmitJob struct {
	submitter domrepo.Submitter
	cache     cache.Service
	audit     domrepo.AuditPublisher
	metrics   domrepo.Metrics
	logger    *logger.Logger
}

func NewResubmitJob(
	submitter domrepo.Submitter,
	c cache.Service,
	audit domrepo.AuditPublisher,
	m domrepo.Metrics,
	l *logger.Logger,
) *ResubmitJob {
	return &ResubmitJob{submitter: submitter, cache: c, audit: audit, metrics: m, logger: l}
}

func (j *ResubmitJob) Name() string { return "plan-resubmit" }

func (j *ResubmitJob) Type() string { return PlanResubmitType }

func (j *ResubmitJob) Handle(ctx context.Context, payload interface{}) error {
	plan, err := queue.ParsePayload[models.QueuePlan](payload)
	if err != nil {
		return fmt.Errorf("parse resubmit payload: %w", err)
	}

	lockKey := cache.GenerateKey("resubmit_lock", plan.PlanName)
	locked, err := j.cache.TryLock(ctx, lockKey, resubmitLockTTL)
	if err != nil {
		return fmt.Errorf("lock plan %q: %w", plan.PlanName, err)
	}
	if !locked {
		j.logger.Warn("plan resubmit already in flight, skipping",
			logger.String("plan", plan.PlanName))
		return nil
	}
	defer func() {
		if err := j.cache.Unlock(ctx, lockKey); err != nil {
			j.logger.Warn("unlock plan resubmit", logger.Error(err))
		}
	}()

	result, err := j.submitter.SubmitQueue(ctx, *plan)
	if err != nil {
		j.metrics.RecordSubmission("retry_error")
		return fmt.Errorf("resubmit plan %q: %w", plan.PlanName, err)
	}

	j.metrics.RecordSubmission("retry_ok")

	if err := j.audit.PublishEvent(ctx, map[string]interface{}{
		"action":  "plan_resubmitted",
		"plan":    plan.PlanName,
		"plan_id": result.PlanID,
		"queued":  result.Queued,
	}); err != nil {
		j.logger.Warn("audit plan_resubmitted", logger.Error(err))
	}

	j.logger.Info("plan resubmitted",
		logger.String("plan", plan.PlanName),
		logger.Int("queued", result.Queued))

	return nil
}

var _ queue.Job = (*ResubmitJob)(nil)
