package signal

import (
	"testing"

	"copydesk/internal/domain/models"
)

func TestExtractEmpty(t *testing.T) {
	trades, strategy := Extract("")
	if len(trades) != 0 {
		t.Fatalf("expected no trades, got %d", len(trades))
	}
	if strategy != StrategyNone {
		t.Fatalf("unexpected strategy %s", strategy)
	}
}

func TestExtractCompactSimple(t *testing.T) {
	trades, strategy := Extract("XAUUSD buy 0.05")
	if strategy != StrategyCompact {
		t.Fatalf("unexpected strategy %s", strategy)
	}
	if len(trades) != 1 {
		t.Fatalf("expected 1 trade, got %d", len(trades))
	}
	got := trades[0]
	want := models.TradeIntent{Symbol: "XAUUSD", Side: models.SideBuy, Lot: 0.05}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestExtractCompactLabeled(t *testing.T) {
	trades, _ := Extract("US100, sell, 0.25, sl=17890, tp=17500")
	if len(trades) != 1 {
		t.Fatalf("expected 1 trade, got %d", len(trades))
	}
	got := trades[0]
	if got.Symbol != "US100" || got.Side != models.SideSell {
		t.Fatalf("unexpected symbol/side %+v", got)
	}
	if got.Lot != 0.25 || got.StopLoss != 17890 || got.TakeProfit != 17500 {
		t.Fatalf("unexpected numbers %+v", got)
	}
}

func TestExtractCompactDefaults(t *testing.T) {
	trades, _ := Extract("eurusd sell")
	if len(trades) != 1 {
		t.Fatalf("expected 1 trade, got %d", len(trades))
	}
	got := trades[0]
	if got.Symbol != "EURUSD" || got.Side != models.SideSell {
		t.Fatalf("unexpected %+v", got)
	}
	if got.Lot != 0.01 || got.StopLoss != 0 || got.TakeProfit != 0 {
		t.Fatalf("expected defaults, got %+v", got)
	}
}

func TestExtractCompactCommaDecimal(t *testing.T) {
	trades, _ := Extract("GBPJPY sell lot 0,30 sl 192,50 tp 189,10")
	if len(trades) != 1 {
		t.Fatalf("expected 1 trade, got %d", len(trades))
	}
	got := trades[0]
	if got.Lot != 0.30 || got.StopLoss != 192.50 || got.TakeProfit != 189.10 {
		t.Fatalf("comma decimals mishandled: %+v", got)
	}
}

func TestExtractCompactStructuredLine(t *testing.T) {
	trades, _ := Extract(`{"symbol":"xauusd","side":"sell","lot":0,"sl":"2380,5","tp":2300}`)
	if len(trades) != 1 {
		t.Fatalf("expected 1 trade, got %d", len(trades))
	}
	got := trades[0]
	if got.Symbol != "XAUUSD" || got.Side != models.SideSell {
		t.Fatalf("unexpected %+v", got)
	}
	if got.Lot != 0.01 {
		t.Fatalf("zero lot should default to 0.01, got %v", got.Lot)
	}
	if got.StopLoss != 2380.5 || got.TakeProfit != 2300 {
		t.Fatalf("unexpected levels %+v", got)
	}
}

func TestExtractCompactSkipsGarbageLines(t *testing.T) {
	trades, _ := Extract("!!! ???\nXAUUSD buy 0.05\n---")
	if len(trades) != 1 {
		t.Fatalf("expected only the valid line, got %d", len(trades))
	}
}

func TestExtractNarrativeBlocks(t *testing.T) {
	text := `1] Long S&P 500 (SPX500): Confluence 85%. 5-Day Vol: 1.46%. VAR: 0.37%
Reasoning: momentum is strong.
Entry: 5205
SL: 5150
TP1: 5260
TP2: 5310

2] Short EUR/USD (EURUSD): Confluence 74%
Entry: 1,0890
SL: 1,0950
TP1: 1,0810`

	trades, strategy := Extract(text)
	if strategy != StrategyNarrative {
		t.Fatalf("unexpected strategy %s", strategy)
	}
	if len(trades) != 2 {
		t.Fatalf("expected 2 trades, got %d", len(trades))
	}

	first := trades[0]
	if first.Side != models.SideBuy || first.StopLoss != 5150 || first.TakeProfit != 5260 || first.TakeProfit2 != 5310 {
		t.Fatalf("unexpected first block %+v", first)
	}
	if first.Lot != 0.01 {
		t.Fatalf("narrative blocks carry no lot, expected default, got %v", first.Lot)
	}

	second := trades[1]
	if second.Symbol != "EURUSD" || second.Side != models.SideSell {
		t.Fatalf("unexpected second block %+v", second)
	}
	if second.StopLoss != 1.0950 || second.TakeProfit != 1.0810 {
		t.Fatalf("comma decimals mishandled %+v", second)
	}
}

func TestExtractNarrativeBuySellHeaders(t *testing.T) {
	text := `Buy Gold (XAUUSD): strong momentum
Entry: 2350
SL: 2300
TP: 2400

Sell EUR/USD (EURUSD)
Entry: 1.0890
SL: 1.0950
TP: 1.0810`

	trades, strategy := Extract(text)
	if strategy != StrategyNarrative {
		t.Fatalf("unexpected strategy %s", strategy)
	}
	if len(trades) != 2 {
		t.Fatalf("expected 2 trades, got %d", len(trades))
	}

	first := trades[0]
	if first.Symbol != "XAUUSD" || first.Side != models.SideBuy {
		t.Fatalf("unexpected first block %+v", first)
	}
	if first.StopLoss != 2300 || first.TakeProfit != 2400 {
		t.Fatalf("TP: variant mishandled %+v", first)
	}

	second := trades[1]
	if second.Symbol != "EURUSD" || second.Side != models.SideSell {
		t.Fatalf("unexpected second block %+v", second)
	}
}

func TestExtractNarrativeIncompleteBlockDropped(t *testing.T) {
	// No SL field: the block never completes, and the compact parser takes
	// over line by line instead.
	text := "Long Gold (XAUUSD)\nEntry: 2350"
	trades, strategy := Extract(text)
	if strategy != StrategyCompact {
		t.Fatalf("expected compact fallback, got %s", strategy)
	}
	if len(trades) == 0 {
		t.Fatalf("compact fallback should still read the lines")
	}
}

func TestExtractBulletNormalization(t *testing.T) {
	trades, _ := Extract("• XAUUSD buy 0.05 • EURUSD sell 0.10")
	if len(trades) != 2 {
		t.Fatalf("expected bullets split into 2 trades, got %d", len(trades))
	}
}
