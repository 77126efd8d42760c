package signal

import (
	"strings"

	"copydesk/internal/domain/models"
	"copydesk/internal/symbols"
)

// Strategy names reported alongside extraction results.
const (
	StrategyNarrative = "narrative"
	StrategyCompact   = "compact"
	StrategyNone      = "none"
)

// Extract parses pasted free text into trade intents. The narrative block
// parser runs first; when it recognizes nothing the line-by-line compact
// parser takes over. An empty result means "nothing recognized", never an
// error.
func Extract(text string) ([]models.TradeIntent, string) {
	if strings.TrimSpace(text) == "" {
		return []models.TradeIntent{}, StrategyNone
	}

	if trades := extractNarrative(text); len(trades) > 0 {
		return trades, StrategyNarrative
	}
	if trades := extractCompact(text); len(trades) > 0 {
		return trades, StrategyCompact
	}
	return []models.TradeIntent{}, StrategyNone
}

// sanitize enforces the output invariants on every produced intent:
// resolved uppercase symbol, side buy or sell, lot > 0, levels >= 0.
func sanitize(t models.TradeIntent) models.TradeIntent {
	t.Symbol = symbols.Resolve(t.Symbol)
	if t.Side != models.SideSell {
		t.Side = models.SideBuy
	}
	if !(t.Lot > 0) {
		t.Lot = 0.01
	}
	if !(t.StopLoss > 0) {
		t.StopLoss = 0
	}
	if !(t.TakeProfit > 0) {
		t.TakeProfit = 0
	}
	if !(t.TakeProfit2 > 0) {
		t.TakeProfit2 = 0
	}
	if !(t.TakeProfit3 > 0) {
		t.TakeProfit3 = 0
	}
	return t
}

// splitLines normalizes carriage returns, tabs and bullet markers, then
// returns the non-empty trimmed lines.
func splitLines(text string) []string {
	r := strings.NewReplacer("\r", " ", "\t", " ", "•", "\n")
	lines := strings.Split(r.Replace(text), "\n")

	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}
