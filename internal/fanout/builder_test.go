package fanout

import (
	"reflect"
	"testing"

	"copydesk/internal/domain/models"
)

var testAccounts = []models.Account{
	{ID: "acc-a", Label: "Alpha", Equity: 5000},
	{ID: "acc-b", Label: "Bravo", Equity: 20000},
}

func TestBuildQueueItemsScaling(t *testing.T) {
	trades := []models.TradeIntent{{Symbol: "gold", Side: models.SideBuy, Lot: 0.10}}
	items := BuildQueueItems(trades, testAccounts, 10000, "plan-1")
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}

	if items[0].Lot != 0.05 {
		t.Fatalf("half equity should halve lot, got %v", items[0].Lot)
	}
	if items[1].Lot != 0.20 {
		t.Fatalf("double equity should double lot, got %v", items[1].Lot)
	}
	if items[0].Symbol != "XAUUSD" {
		t.Fatalf("symbol not resolved: %s", items[0].Symbol)
	}
	if items[0].IdempotencyKey != "plan-1:acc-a:XAUUSD:buy:0.05" {
		t.Fatalf("unexpected key %q", items[0].IdempotencyKey)
	}
}

func TestBuildQueueItemsDegenerateBaseline(t *testing.T) {
	trades := []models.TradeIntent{{Symbol: "EURUSD", Side: models.SideSell, Lot: 0.30, StopLoss: 1.095, TakeProfit: 1.081}}

	for _, baseline := range []float64{0, -100} {
		items := BuildQueueItems(trades, testAccounts, baseline, "p")
		for _, it := range items {
			if it.Lot != 0.30 {
				t.Fatalf("baseline %v should disable scaling, got lot %v", baseline, it.Lot)
			}
		}
	}
}

func TestBuildQueueItemsOrderStable(t *testing.T) {
	trades := []models.TradeIntent{
		{Symbol: "XAUUSD", Side: models.SideBuy, Lot: 0.05},
		{Symbol: "EURUSD", Side: models.SideSell, Lot: 0.10},
	}
	items := BuildQueueItems(trades, testAccounts, 10000, "p")

	got := make([]string, len(items))
	for i, it := range items {
		got[i] = it.AccountID + "/" + it.Symbol
	}
	want := []string{"acc-a/XAUUSD", "acc-a/EURUSD", "acc-b/XAUUSD", "acc-b/EURUSD"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected accounts-outer trades-inner order %v, got %v", want, got)
	}
}

func TestBuildQueueItemsDeterministic(t *testing.T) {
	trades := []models.TradeIntent{{Symbol: "US100", Side: models.SideSell, Lot: 0.25, StopLoss: 17890, TakeProfit: 17500}}
	a := BuildQueueItems(trades, testAccounts, 10000, "plan-x")
	b := BuildQueueItems(trades, testAccounts, 10000, "plan-x")
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("identical inputs produced different outputs")
	}
}

func TestBuildPreviewRowsMatchesQueue(t *testing.T) {
	trades := []models.TradeIntent{{Symbol: "XAGUSD", Side: models.SideBuy, Lot: 0.08}}
	rows := BuildPreviewRows(trades, testAccounts, 10000)
	items := BuildQueueItems(trades, testAccounts, 10000, "p")

	if len(rows) != len(items) {
		t.Fatalf("row/item count mismatch %d vs %d", len(rows), len(items))
	}
	for i := range rows {
		if rows[i].ScaledLot != items[i].Lot || rows[i].AccountID != items[i].AccountID {
			t.Fatalf("row %d mismatch: %+v vs %+v", i, rows[i], items[i])
		}
	}
	if rows[0].Account != "Alpha" || rows[0].Equity != 5000 {
		t.Fatalf("unexpected preview row %+v", rows[0])
	}
}

func TestBuildQueueItemsNegativeLevelsClamped(t *testing.T) {
	trades := []models.TradeIntent{{Symbol: "EURUSD", Side: models.SideBuy, Lot: 0.1, StopLoss: -5, TakeProfit: -1}}
	items := BuildQueueItems(trades, testAccounts, 10000, "p")
	if items[0].StopLoss != 0 || items[0].TakeProfit != 0 {
		t.Fatalf("negative levels must clamp to 0: %+v", items[0])
	}
}
