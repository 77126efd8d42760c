package fanout

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"copydesk/internal/domain/models"
)

func TestScalingProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("scaled lots track equity/baseline within half a cent", prop.ForAll(
		func(lot, e1, e2, baseline float64) bool {
			trades := []models.TradeIntent{{Symbol: "EURUSD", Side: models.SideBuy, Lot: lot}}
			accounts := []models.Account{
				{ID: "a1", Equity: e1},
				{ID: "a2", Equity: e2},
			}
			items := BuildQueueItems(trades, accounts, baseline, "p")
			for i, equity := range []float64{e1, e2} {
				exact := lot * equity / baseline
				if math.Abs(items[i].Lot-exact) > 0.005+1e-9 {
					return false
				}
			}
			return true
		},
		gen.Float64Range(0.01, 5),
		gen.Float64Range(1000, 100000),
		gen.Float64Range(1000, 100000),
		gen.Float64Range(1000, 100000),
	))

	properties.Property("lots are never negative and keys never empty", prop.ForAll(
		func(lot, equity, baseline float64) bool {
			trades := []models.TradeIntent{{Symbol: "XAUUSD", Side: models.SideSell, Lot: lot}}
			accounts := []models.Account{{ID: "a", Equity: equity}}
			items := BuildQueueItems(trades, accounts, baseline, "plan")
			it := items[0]
			return it.Lot >= 0 && it.IdempotencyKey != ""
		},
		gen.Float64Range(-1, 5),
		gen.Float64Range(0, 50000),
		gen.Float64Range(-1000, 50000),
	))

	properties.TestingRun(t)
}
