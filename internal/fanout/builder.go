package fanout

import (
	"fmt"

	"github.com/shopspring/decimal"

	"copydesk/internal/domain/models"
	"copydesk/internal/symbols"
)

// BuildQueueItems fans trade intents out across accounts, scaling each base
// lot by accountEquity/baselineEquity. Iteration is accounts-outer and
// trades-inner so preview rows and queued items line up positionally.
func BuildQueueItems(trades []models.TradeIntent, accounts []models.Account, baselineEquity float64, planName string) []models.QueueItem {
	out := make([]models.QueueItem, 0, len(trades)*len(accounts))

	for _, acc := range accounts {
		for _, tr := range trades {
			symbol := symbols.Resolve(tr.Symbol)
			side := tr.Side
			if side != models.SideSell {
				side = models.SideBuy
			}

			lot := scaleLot(tr.Lot, acc.Equity, baselineEquity)

			out = append(out, models.QueueItem{
				AccountID:      acc.ID,
				Symbol:         symbol,
				Side:           side,
				Lot:            lot.InexactFloat64(),
				StopLoss:       nonNegative(tr.StopLoss),
				TakeProfit:     nonNegative(tr.TakeProfit),
				IdempotencyKey: idempotencyKey(planName, acc.ID, symbol, side, lot),
			})
		}
	}
	return out
}

// BuildPreviewRows applies the same scaling without committing anything.
func BuildPreviewRows(trades []models.TradeIntent, accounts []models.Account, baselineEquity float64) []models.PreviewRow {
	out := make([]models.PreviewRow, 0, len(trades)*len(accounts))

	for _, acc := range accounts {
		for _, tr := range trades {
			side := tr.Side
			if side != models.SideSell {
				side = models.SideBuy
			}
			out = append(out, models.PreviewRow{
				AccountID: acc.ID,
				Account:   acc.Label,
				Symbol:    symbols.Resolve(tr.Symbol),
				Side:      side,
				BaseLot:   tr.Lot,
				ScaledLot: scaleLot(tr.Lot, acc.Equity, baselineEquity).InexactFloat64(),
				Equity:    acc.Equity,
			})
		}
	}
	return out
}

// scaleLot multiplies the base lot by equity/baseline, rounded to 2 decimals
// and floored at 0. A non-positive baseline disables scaling rather than
// producing a division by zero.
func scaleLot(baseLot, equity, baselineEquity float64) decimal.Decimal {
	lot := decimal.NewFromFloat(nonNegative(baseLot))
	if baselineEquity > 0 {
		lot = lot.
			Mul(decimal.NewFromFloat(equity)).
			Div(decimal.NewFromFloat(baselineEquity))
	}
	lot = lot.Round(2)
	if lot.IsNegative() {
		return decimal.Zero
	}
	return lot
}

// idempotencyKey derives a deterministic key from all scaling inputs, so
// resubmitting an unchanged plan is safe to dedupe downstream.
func idempotencyKey(planName, accountID, symbol string, side models.Side, lot decimal.Decimal) string {
	return fmt.Sprintf("%s:%s:%s:%s:%s", planName, accountID, symbol, side, lot.StringFixed(2))
}

func nonNegative(v float64) float64 {
	if !(v > 0) {
		return 0
	}
	return v
}
