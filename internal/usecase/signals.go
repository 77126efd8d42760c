package usecase

import (
	"context"
	"fmt"
	"time"

	"copydesk/internal/domain/models"
	domrepo "copydesk/internal/domain/repository"
	"copydesk/internal/signal"
	"copydesk/pkg/logger"
)

// SignalsUseCase turns pasted free-form text into normalized trade intents.
type SignalsUseCase struct {
	artifacts domrepo.ArtifactStore
	audit     domrepo.AuditPublisher
	metrics   domrepo.Metrics
	notify    Notifier
	logger    *logger.Logger
}

// Notifier receives live pipeline events for connected consoles.
type Notifier interface {
	Broadcast(kind string, payload interface{})
}

func NewSignalsUseCase(
	artifacts domrepo.ArtifactStore,
	audit domrepo.AuditPublisher,
	metrics domrepo.Metrics,
	notify Notifier,
	l *logger.Logger,
) *SignalsUseCase {
	return &SignalsUseCase{
		artifacts: artifacts,
		audit:     audit,
		metrics:   metrics,
		notify:    notify,
		logger:    l,
	}
}

// Parse extracts trade intents from text. When cacheKey is non-empty the
// result is also stored as a session artifact under that key.
func (uc *SignalsUseCase) Parse(ctx context.Context, text, cacheKey string) (*models.ParseSignalsResponse, error) {
	start := time.Now()

	trades, strategy := signal.Extract(text)

	uc.metrics.RecordTradesParsed(strategy, len(trades))
	uc.metrics.RecordLatency("signals_parse", time.Since(start).Seconds())

	resp := &models.ParseSignalsResponse{Strategy: strategy, Trades: trades}

	if cacheKey != "" {
		if err := uc.artifacts.Put(ctx, cacheKey, resp); err != nil {
			uc.metrics.RecordError("artifact_put")
			uc.logger.Error("store parse artifact",
				logger.String("key", cacheKey), logger.Error(err))
		}
	}

	if err := uc.audit.PublishEvent(ctx, map[string]interface{}{
		"action":   "signals_parse",
		"strategy": strategy,
		"trades":   len(trades),
	}); err != nil {
		uc.logger.Warn("audit signals_parse", logger.Error(err))
	}

	if uc.notify != nil {
		uc.notify.Broadcast("signals_parsed", resp)
	}

	uc.logger.Info("parsed signals",
		logger.String("strategy", strategy),
		logger.Int("trades", len(trades)))

	return resp, nil
}

// Artifact returns a previously stored artifact payload.
func (uc *SignalsUseCase) Artifact(ctx context.Context, key string) (interface{}, error) {
	raw, err := uc.artifacts.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("get artifact %q: %w", key, err)
	}
	return raw, nil
}

// PutArtifact stores an arbitrary session artifact under key.
func (uc *SignalsUseCase) PutArtifact(ctx context.Context, key string, value interface{}) error {
	if err := uc.artifacts.Put(ctx, key, value); err != nil {
		uc.metrics.RecordError("artifact_put")
		return fmt.Errorf("put artifact %q: %w", key, err)
	}
	return nil
}

// DeleteArtifact removes a stored artifact.
func (uc *SignalsUseCase) DeleteArtifact(ctx context.Context, key string) error {
	return uc.artifacts.Delete(ctx, key)
}
