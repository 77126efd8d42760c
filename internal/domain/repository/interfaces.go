package repository

import (
	"context"
	"encoding/json"

	"copydesk/internal/domain/models"
)

// ArtifactStore persists parse artifacts (trade lists, COT observations,
// merged views) under caller-chosen keys so a session can be repopulated.
type ArtifactStore interface {
	Put(ctx context.Context, key string, value interface{}) error
	Get(ctx context.Context, key string) (json.RawMessage, error)
	Delete(ctx context.Context, key string) error
}

// AuditPublisher records pipeline actions on a durable audit stream.
type AuditPublisher interface {
	PublishEvent(ctx context.Context, event interface{}) error
	Close() error
}

// Submitter hands a finished queue plan to the execution bridge.
type Submitter interface {
	SubmitQueue(ctx context.Context, plan models.QueuePlan) (*models.PlanResult, error)
}

// Sizer delegates position-sizing math to the execution bridge.
type Sizer interface {
	SizingCalc(ctx context.Context, req *models.SizingRequest) (*models.SizingResponse, error)
}

// Metrics records pipeline counters and latencies.
type Metrics interface {
	RecordTradesParsed(strategy string, n int)
	RecordCOTObservations(source string, n int)
	RecordCOTConflict()
	RecordQueueItems(account string, n int)
	RecordSubmission(outcome string)
	RecordError(kind string)
	RecordLatency(op string, seconds float64)
}
