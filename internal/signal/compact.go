package signal

import (
	"encoding/json"
	"regexp"
	"strings"

	"copydesk/internal/domain/models"
	"copydesk/pkg/util"
)

// The compact parser treats every non-empty line as one trade description,
// e.g. "XAUUSD buy 0.05" or "US100, sell, 0.25, sl=17890, tp=17500".
var (
	symbolTokenRe = regexp.MustCompile(`[A-Za-z0-9][A-Za-z0-9._-]*`)
	sellRe        = regexp.MustCompile(`(?i)\b(sell|short)\b`)

	lotLabelRe = regexp.MustCompile(`(?i)\b(?:lot|lotti|qty|size)\b\s*[:=]?\s*([0-9][0-9.,]*)`)
	slLabelRe  = regexp.MustCompile(`(?i)\b(?:sl|stop|stoploss)\b\s*[:=]?\s*([0-9][0-9.,]*)`)
	tpLabelRe  = regexp.MustCompile(`(?i)\b(?:tp|take|takeprofit)\b\s*[:=]?\s*([0-9][0-9.,]*)`)

	bareNumberRe = regexp.MustCompile(`\b[0-9]+(?:[.,][0-9]+)?\b`)
	afterSideRe  = regexp.MustCompile(`(?i)\b(?:buy|sell|long|short)\b\s*[,:]?\s*([0-9][0-9.,]*)`)
)

func extractCompact(text string) []models.TradeIntent {
	lines := splitLines(text)
	out := make([]models.TradeIntent, 0, len(lines))

	for _, line := range lines {
		if t, ok := parseStructuredLine(line); ok {
			out = append(out, t)
			continue
		}
		if t, ok := parseCompactLine(line); ok {
			out = append(out, t)
		}
	}
	return out
}

func parseCompactLine(line string) (models.TradeIntent, bool) {
	loc := symbolTokenRe.FindStringIndex(line)
	if loc == nil {
		return models.TradeIntent{}, false
	}
	symbol := line[loc[0]:loc[1]]
	rest := line[loc[1]:]

	t := models.TradeIntent{Symbol: symbol, Side: models.SideBuy}
	if sellRe.MatchString(rest) {
		t.Side = models.SideSell
	}

	if m := slLabelRe.FindStringSubmatch(rest); m != nil {
		t.StopLoss, _ = util.ParseFloatLocale(m[1])
	}
	if m := tpLabelRe.FindStringSubmatch(rest); m != nil {
		t.TakeProfit, _ = util.ParseFloatLocale(m[1])
	}

	t.Lot = findLot(rest)

	return sanitize(t), true
}

// findLot picks the lot size out of the unlabeled remainder of a line:
// labeled value first, then the first bare number outside any label, then a
// number trailing the side keyword, then the 0.01 default (via sanitize).
func findLot(rest string) float64 {
	if m := lotLabelRe.FindStringSubmatch(rest); m != nil {
		v, _ := util.ParseFloatLocale(m[1])
		return v
	}

	masked := slLabelRe.ReplaceAllString(rest, " ")
	masked = tpLabelRe.ReplaceAllString(masked, " ")
	if m := bareNumberRe.FindString(masked); m != "" {
		v, _ := util.ParseFloatLocale(m)
		return v
	}

	if m := afterSideRe.FindStringSubmatch(rest); m != nil {
		v, _ := util.ParseFloatLocale(m[1])
		return v
	}
	return 0
}

// looseTrade tolerates numbers arriving as strings in self-describing lines.
type looseTrade struct {
	Symbol string      `json:"symbol"`
	Side   string      `json:"side"`
	Lot    interface{} `json:"lot"`
	SL     interface{} `json:"sl"`
	TP     interface{} `json:"tp"`
}

// parseStructuredLine handles lines that are JSON records with
// symbol/side/lot/sl/tp keys instead of free text.
func parseStructuredLine(line string) (models.TradeIntent, bool) {
	if !strings.HasPrefix(line, "{") {
		return models.TradeIntent{}, false
	}

	var raw looseTrade
	if err := json.Unmarshal([]byte(line), &raw); err != nil || raw.Symbol == "" {
		return models.TradeIntent{}, false
	}

	t := models.TradeIntent{
		Symbol:     raw.Symbol,
		Side:       models.SideBuy,
		Lot:        coerceNumber(raw.Lot),
		StopLoss:   coerceNumber(raw.SL),
		TakeProfit: coerceNumber(raw.TP),
	}
	if strings.EqualFold(raw.Side, "sell") || strings.EqualFold(raw.Side, "short") {
		t.Side = models.SideSell
	}
	return sanitize(t), true
}

func coerceNumber(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case string:
		f, _ := util.ParseFloatLocale(n)
		return f
	default:
		return 0
	}
}
