package signal

import (
	"regexp"
	"strings"

	"copydesk/internal/domain/models"
	"copydesk/pkg/util"
)

// Narrative blocks look like analyst write-ups:
//
//	1] Long S&P 500 (SPX500): Confluence 85%. 5-Day Vol: 1.46%
//	Entry: 5205
//	SL: 5150
//	TP1: 5260
//
// A directional header opens a block; Entry/SL/TP fields may be separated by
// arbitrary descriptive lines. The entry price is parsed but dropped, orders
// are assumed to execute at market.
var (
	headerRe = regexp.MustCompile(`(?i)^\s*(?:\d+\]|#\d+)?\s*(Buy|Long|Sell|Short)\s+.+?\(([A-Za-z0-9_/.-]+)\)`)

	entryRe = regexp.MustCompile(`(?i)Entry:\s*([0-9][0-9.,]*)`)
	slRe    = regexp.MustCompile(`(?i)SL:\s*([0-9][0-9.,]*)`)
	tp1Re   = regexp.MustCompile(`(?i)TP1?:\s*([0-9][0-9.,]*)`)
	tp2Re   = regexp.MustCompile(`(?i)TP2:\s*([0-9][0-9.,]*)`)
	tp3Re   = regexp.MustCompile(`(?i)TP3:\s*([0-9][0-9.,]*)`)
)

type narrativeBlock struct {
	symbol   string
	side     models.Side
	hasEntry bool
	sl       float64
	hasSL    bool
	tp1      float64
	tp2      float64
	tp3      float64
}

func (b *narrativeBlock) complete() bool {
	return b.symbol != "" && b.hasEntry && b.hasSL
}

func (b *narrativeBlock) intent() models.TradeIntent {
	return sanitize(models.TradeIntent{
		Symbol:      b.symbol,
		Side:        b.side,
		StopLoss:    b.sl,
		TakeProfit:  b.tp1,
		TakeProfit2: b.tp2,
		TakeProfit3: b.tp3,
	})
}

func extractNarrative(text string) []models.TradeIntent {
	lines := splitLines(text)
	out := make([]models.TradeIntent, 0)

	var cur *narrativeBlock
	flush := func() {
		if cur != nil && cur.complete() {
			out = append(out, cur.intent())
		}
	}

	for _, line := range lines {
		if m := headerRe.FindStringSubmatch(line); m != nil {
			flush()
			side := models.SideBuy
			if strings.EqualFold(m[1], "short") || strings.EqualFold(m[1], "sell") {
				side = models.SideSell
			}
			cur = &narrativeBlock{symbol: m[2], side: side}
			continue
		}
		if cur == nil {
			continue
		}

		// Fields may share a line or be split across many.
		if m := entryRe.FindStringSubmatch(line); m != nil {
			if _, ok := util.ParseFloatLocale(m[1]); ok {
				cur.hasEntry = true
			}
		}
		if m := slRe.FindStringSubmatch(line); m != nil {
			if v, ok := util.ParseFloatLocale(m[1]); ok {
				cur.sl = v
				cur.hasSL = true
			}
		}
		if m := tp3Re.FindStringSubmatch(line); m != nil {
			cur.tp3, _ = util.ParseFloatLocale(m[1])
			line = tp3Re.ReplaceAllString(line, "")
		}
		if m := tp2Re.FindStringSubmatch(line); m != nil {
			cur.tp2, _ = util.ParseFloatLocale(m[1])
			line = tp2Re.ReplaceAllString(line, "")
		}
		if m := tp1Re.FindStringSubmatch(line); m != nil {
			cur.tp1, _ = util.ParseFloatLocale(m[1])
		}
	}
	flush()

	return out
}
