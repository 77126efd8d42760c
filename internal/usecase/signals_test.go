package usecase

import (
	"context"
	"encoding/json"
	"testing"

	"copydesk/internal/domain/models"
	"copydesk/internal/repository"
	"copydesk/internal/symbols"
	"copydesk/pkg/cache"
)

func newSignalsUseCase(t *testing.T) *SignalsUseCase {
	t.Helper()
	store := repository.NewCacheArtifactStore(cache.NewMemoryCache(), 0)
	return NewSignalsUseCase(store, repository.NopAuditPublisher{}, nopMetrics{}, nil, testLogger(t))
}

func TestSignalsParseCompact(t *testing.T) {
	uc := newSignalsUseCase(t)

	resp, err := uc.Parse(context.Background(), "gold buy 0.05 sl 2310 tp 2380", "")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if resp.Strategy != "compact" {
		t.Fatalf("strategy = %s, want compact", resp.Strategy)
	}
	if len(resp.Trades) != 1 {
		t.Fatalf("expected 1 trade, got %d", len(resp.Trades))
	}
	tr := resp.Trades[0]
	if tr.Symbol != "XAUUSD" || tr.Side != models.SideBuy || tr.Lot != 0.05 {
		t.Fatalf("unexpected trade: %+v", tr)
	}
}

func TestSignalsParseStoresArtifact(t *testing.T) {
	uc := newSignalsUseCase(t)

	_, err := uc.Parse(context.Background(), "EURUSD sell 0.10", "session-1")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	raw, err := uc.Artifact(context.Background(), "session-1")
	if err != nil {
		t.Fatalf("artifact: %v", err)
	}

	var stored models.ParseSignalsResponse
	if err := json.Unmarshal(raw.(json.RawMessage), &stored); err != nil {
		t.Fatalf("unmarshal artifact: %v", err)
	}
	if stored.Strategy != "compact" || len(stored.Trades) != 1 {
		t.Fatalf("unexpected stored artifact: %+v", stored)
	}
}

func TestSignalsArtifactRoundTrip(t *testing.T) {
	uc := newSignalsUseCase(t)
	ctx := context.Background()

	if err := uc.PutArtifact(ctx, "notes", map[string]string{"k": "v"}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, err := uc.Artifact(ctx, "notes"); err != nil {
		t.Fatalf("get: %v", err)
	}
	if err := uc.DeleteArtifact(ctx, "notes"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := uc.Artifact(ctx, "notes"); err == nil {
		t.Fatal("expected miss after delete")
	}
}

func TestCOTMergeFromStoredArtifacts(t *testing.T) {
	store := repository.NewCacheArtifactStore(cache.NewMemoryCache(), 0)
	uc := NewCOTUseCase(symbols.DefaultPolicy(), store, repository.NopAuditPublisher{}, nopMetrics{}, nil, testLogger(t))
	ctx := context.Background()

	if _, err := uc.Parse(ctx, "disaggregated", "Gold speculators are net long.", "cot-disagg"); err != nil {
		t.Fatalf("parse disagg: %v", err)
	}
	if _, err := uc.Parse(ctx, "financial", "Gold funds stayed net long as well.", "cot-fin"); err != nil {
		t.Fatalf("parse fin: %v", err)
	}

	merged, err := uc.MergeRequest(ctx, &models.MergeCOTRequest{
		DisaggregatedKey: "cot-disagg",
		FinancialKey:     "cot-fin",
	})
	if err != nil {
		t.Fatalf("merge from keys: %v", err)
	}
	if len(merged) != 1 || merged[0].Symbol != "XAUUSD" {
		t.Fatalf("unexpected merged items: %+v", merged)
	}
	if merged[0].Conflict {
		t.Fatal("agreeing sources must not conflict")
	}
	if len(merged[0].Sources) != 2 {
		t.Fatalf("expected both sources, got %v", merged[0].Sources)
	}
}

func TestCOTMergeMissingArtifactKey(t *testing.T) {
	store := repository.NewCacheArtifactStore(cache.NewMemoryCache(), 0)
	uc := NewCOTUseCase(symbols.DefaultPolicy(), store, repository.NopAuditPublisher{}, nopMetrics{}, nil, testLogger(t))

	_, err := uc.MergeRequest(context.Background(), &models.MergeCOTRequest{DisaggregatedKey: "nope"})
	if err == nil {
		t.Fatal("expected error for missing artifact key")
	}
}

func TestCOTParseAndMerge(t *testing.T) {
	store := repository.NewCacheArtifactStore(cache.NewMemoryCache(), 0)
	uc := NewCOTUseCase(symbols.DefaultPolicy(), store, repository.NopAuditPublisher{}, nopMetrics{}, nil, testLogger(t))
	ctx := context.Background()

	disagg, err := uc.Parse(ctx, "disaggregated", "Gold speculators increased net long positioning this week.", "")
	if err != nil {
		t.Fatalf("parse disagg: %v", err)
	}
	if len(disagg) != 1 || disagg[0].Symbol != "XAUUSD" || disagg[0].Stance != models.StanceBullish {
		t.Fatalf("unexpected disagg observations: %+v", disagg)
	}

	fin, err := uc.Parse(ctx, "financial", "Gold funds turned net short.", "")
	if err != nil {
		t.Fatalf("parse fin: %v", err)
	}
	if len(fin) != 1 || fin[0].Stance != models.StanceBearish {
		t.Fatalf("unexpected fin observations: %+v", fin)
	}

	merged, err := uc.Merge(ctx, disagg, fin, "merged-1")
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if len(merged) != 1 {
		t.Fatalf("expected 1 merged item, got %d", len(merged))
	}
	it := merged[0]
	if !it.Conflict {
		t.Fatal("expected divergence conflict")
	}
	if it.Stance != models.StanceBullish {
		t.Fatalf("metal divergence should follow disaggregated, got %s", it.Stance)
	}
	if it.Confluence < 50 || it.Confluence > 100 {
		t.Fatalf("confluence out of range: %d", it.Confluence)
	}

	if _, err := store.Get(ctx, "merged-1"); err != nil {
		t.Fatalf("merged artifact not stored: %v", err)
	}
}
