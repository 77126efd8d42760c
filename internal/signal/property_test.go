package signal

import (
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"copydesk/internal/domain/models"
)

func TestExtractTotality(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("any input yields a list, never a panic", prop.ForAll(
		func(text string) bool {
			trades, _ := Extract(text)
			return trades != nil
		},
		gen.AnyString(),
	))

	properties.Property("every produced intent satisfies the sanitation invariants", prop.ForAll(
		func(sym string, sell bool, lot float64, sl float64, tp float64) bool {
			side := "buy"
			if sell {
				side = "sell"
			}
			line := fmt.Sprintf("%s %s lot %.4f sl %.4f tp %.4f", sym, side, lot, sl, tp)
			trades, _ := Extract(line)
			for _, tr := range trades {
				if tr.Lot <= 0 || tr.StopLoss < 0 || tr.TakeProfit < 0 {
					return false
				}
				if tr.Side != models.SideBuy && tr.Side != models.SideSell {
					return false
				}
			}
			return true
		},
		gen.RegexMatch(`[A-Za-z][A-Za-z0-9]{2,7}`),
		gen.Bool(),
		gen.Float64Range(0, 10),
		gen.Float64Range(0, 20000),
		gen.Float64Range(0, 20000),
	))

	properties.TestingRun(t)
}
