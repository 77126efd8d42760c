package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"copydesk/internal/cot"
	"copydesk/internal/domain/models"
	domrepo "copydesk/internal/domain/repository"
	"copydesk/internal/symbols"
	"copydesk/pkg/logger"
)

// COTUseCase extracts per-instrument stances from Commitments of Traders
// report text and merges the two report sources into one scored view.
type COTUseCase struct {
	merger    *cot.Merger
	artifacts domrepo.ArtifactStore
	audit     domrepo.AuditPublisher
	metrics   domrepo.Metrics
	notify    Notifier
	logger    *logger.Logger
}

func NewCOTUseCase(
	policy symbols.Policy,
	artifacts domrepo.ArtifactStore,
	audit domrepo.AuditPublisher,
	metrics domrepo.Metrics,
	notify Notifier,
	l *logger.Logger,
) *COTUseCase {
	return &COTUseCase{
		merger:    cot.NewMerger(policy),
		artifacts: artifacts,
		audit:     audit,
		metrics:   metrics,
		notify:    notify,
		logger:    l,
	}
}

// Parse extracts stance observations for the whole symbol universe from one
// report's text.
func (uc *COTUseCase) Parse(ctx context.Context, source, text, cacheKey string) ([]models.CotObservation, error) {
	start := time.Now()

	obs := cot.Extract(text, symbols.Universe)

	uc.metrics.RecordCOTObservations(source, len(obs))
	uc.metrics.RecordLatency("cot_parse", time.Since(start).Seconds())

	if cacheKey != "" {
		if err := uc.artifacts.Put(ctx, cacheKey, obs); err != nil {
			uc.metrics.RecordError("artifact_put")
			uc.logger.Error("store cot artifact",
				logger.String("key", cacheKey), logger.Error(err))
		}
	}

	if err := uc.audit.PublishEvent(ctx, map[string]interface{}{
		"action":       "cot_parse",
		"source":       source,
		"observations": len(obs),
	}); err != nil {
		uc.logger.Warn("audit cot_parse", logger.Error(err))
	}

	uc.logger.Info("parsed cot report",
		logger.String("source", source),
		logger.Int("observations", len(obs)))

	return obs, nil
}

// MergeRequest resolves a merge request's inputs, loading stored parse
// artifacts when the inline lists are empty, and merges them.
func (uc *COTUseCase) MergeRequest(ctx context.Context, req *models.MergeCOTRequest) ([]models.MergedCotItem, error) {
	disagg := req.Disaggregated
	fin := req.Financial

	var err error
	if len(disagg) == 0 && req.DisaggregatedKey != "" {
		if disagg, err = uc.loadObservations(ctx, req.DisaggregatedKey); err != nil {
			return nil, err
		}
	}
	if len(fin) == 0 && req.FinancialKey != "" {
		if fin, err = uc.loadObservations(ctx, req.FinancialKey); err != nil {
			return nil, err
		}
	}

	return uc.Merge(ctx, disagg, fin, req.CacheKey)
}

func (uc *COTUseCase) loadObservations(ctx context.Context, key string) ([]models.CotObservation, error) {
	raw, err := uc.artifacts.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("load observations %q: %w", key, err)
	}
	var obs []models.CotObservation
	if err := json.Unmarshal(raw, &obs); err != nil {
		return nil, fmt.Errorf("decode observations %q: %w", key, err)
	}
	return obs, nil
}

// Merge combines disaggregated and financial observations, resolves
// divergences by category precedence and attaches confluence scores.
func (uc *COTUseCase) Merge(ctx context.Context, disagg, fin []models.CotObservation, cacheKey string) ([]models.MergedCotItem, error) {
	start := time.Now()

	merged := cot.Annotate(uc.merger.Merge(disagg, fin))

	conflicts := 0
	for _, it := range merged {
		if it.Conflict {
			conflicts++
			uc.metrics.RecordCOTConflict()
		}
	}
	uc.metrics.RecordLatency("cot_merge", time.Since(start).Seconds())

	if cacheKey != "" {
		if err := uc.artifacts.Put(ctx, cacheKey, merged); err != nil {
			uc.metrics.RecordError("artifact_put")
			uc.logger.Error("store merged cot artifact",
				logger.String("key", cacheKey), logger.Error(err))
		}
	}

	if err := uc.audit.PublishEvent(ctx, map[string]interface{}{
		"action":    "cot_merge",
		"items":     len(merged),
		"conflicts": conflicts,
	}); err != nil {
		uc.logger.Warn("audit cot_merge", logger.Error(err))
	}

	if uc.notify != nil {
		uc.notify.Broadcast("cot_merged", map[string]interface{}{
			"items":     len(merged),
			"conflicts": conflicts,
		})
	}

	uc.logger.Info("merged cot reports",
		logger.Int("items", len(merged)),
		logger.Int("conflicts", conflicts))

	return merged, nil
}
