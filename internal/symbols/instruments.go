package symbols

// InstrumentSpec carries the volume and tick constraints needed when asking
// the execution bridge to size a position.
type InstrumentSpec struct {
	Symbol    string  `json:"symbol"`
	TickSize  float64 `json:"tick_size"`
	TickValue float64 `json:"tick_value"` // value of one tick at 1.00 lot
	MinLot    float64 `json:"min_lot"`
	LotStep   float64 `json:"lot_step"`
	MaxLot    float64 `json:"max_lot"`
}

// Instruments holds indicative broker specs per canonical symbol.
var Instruments = map[string]InstrumentSpec{
	"EURUSD": {Symbol: "EURUSD", TickSize: 0.0001, TickValue: 10, MinLot: 0.01, LotStep: 0.01, MaxLot: 50},
	"GBPUSD": {Symbol: "GBPUSD", TickSize: 0.0001, TickValue: 10, MinLot: 0.01, LotStep: 0.01, MaxLot: 50},
	"AUDUSD": {Symbol: "AUDUSD", TickSize: 0.0001, TickValue: 10, MinLot: 0.01, LotStep: 0.01, MaxLot: 50},
	"NZDUSD": {Symbol: "NZDUSD", TickSize: 0.0001, TickValue: 10, MinLot: 0.01, LotStep: 0.01, MaxLot: 50},
	"USDJPY": {Symbol: "USDJPY", TickSize: 0.01, TickValue: 10, MinLot: 0.01, LotStep: 0.01, MaxLot: 50},
	"USDCHF": {Symbol: "USDCHF", TickSize: 0.0001, TickValue: 10, MinLot: 0.01, LotStep: 0.01, MaxLot: 50},
	"USDCAD": {Symbol: "USDCAD", TickSize: 0.0001, TickValue: 10, MinLot: 0.01, LotStep: 0.01, MaxLot: 50},
	"EURJPY": {Symbol: "EURJPY", TickSize: 0.01, TickValue: 10, MinLot: 0.01, LotStep: 0.01, MaxLot: 50},
	"GBPJPY": {Symbol: "GBPJPY", TickSize: 0.01, TickValue: 10, MinLot: 0.01, LotStep: 0.01, MaxLot: 50},
	"AUDJPY": {Symbol: "AUDJPY", TickSize: 0.01, TickValue: 10, MinLot: 0.01, LotStep: 0.01, MaxLot: 50},
	"NZDJPY": {Symbol: "NZDJPY", TickSize: 0.01, TickValue: 10, MinLot: 0.01, LotStep: 0.01, MaxLot: 50},
	"CADJPY": {Symbol: "CADJPY", TickSize: 0.01, TickValue: 10, MinLot: 0.01, LotStep: 0.01, MaxLot: 50},
	"EURNZD": {Symbol: "EURNZD", TickSize: 0.0001, TickValue: 10, MinLot: 0.01, LotStep: 0.01, MaxLot: 50},
	"AUDNZD": {Symbol: "AUDNZD", TickSize: 0.0001, TickValue: 10, MinLot: 0.01, LotStep: 0.01, MaxLot: 50},
	"EURCAD": {Symbol: "EURCAD", TickSize: 0.0001, TickValue: 10, MinLot: 0.01, LotStep: 0.01, MaxLot: 50},
	"EURAUD": {Symbol: "EURAUD", TickSize: 0.0001, TickValue: 10, MinLot: 0.01, LotStep: 0.01, MaxLot: 50},

	"SPX":     {Symbol: "SPX", TickSize: 1, TickValue: 1, MinLot: 0.1, LotStep: 0.1, MaxLot: 500},
	"US100":   {Symbol: "US100", TickSize: 1, TickValue: 1, MinLot: 0.1, LotStep: 0.1, MaxLot: 500},
	"DAX":     {Symbol: "DAX", TickSize: 1, TickValue: 1, MinLot: 0.1, LotStep: 0.1, MaxLot: 500},
	"US500":   {Symbol: "US500", TickSize: 1, TickValue: 1, MinLot: 0.1, LotStep: 0.1, MaxLot: 500},
	"FTSEMIB": {Symbol: "FTSEMIB", TickSize: 1, TickValue: 1, MinLot: 0.1, LotStep: 0.1, MaxLot: 500},
	"JP225":   {Symbol: "JP225", TickSize: 1, TickValue: 1, MinLot: 0.1, LotStep: 0.1, MaxLot: 500},

	"XAUUSD": {Symbol: "XAUUSD", TickSize: 0.1, TickValue: 10, MinLot: 0.01, LotStep: 0.01, MaxLot: 100},
	"XAGUSD": {Symbol: "XAGUSD", TickSize: 0.01, TickValue: 5, MinLot: 0.01, LotStep: 0.01, MaxLot: 100},
	"XPTUSD": {Symbol: "XPTUSD", TickSize: 0.1, TickValue: 10, MinLot: 0.01, LotStep: 0.01, MaxLot: 50},
	"USOIL":  {Symbol: "USOIL", TickSize: 0.01, TickValue: 10, MinLot: 0.01, LotStep: 0.01, MaxLot: 1000},
	"NGAS":   {Symbol: "NGAS", TickSize: 0.001, TickValue: 10, MinLot: 0.01, LotStep: 0.01, MaxLot: 1000},
	"CORN":   {Symbol: "CORN", TickSize: 0.25, TickValue: 12.5, MinLot: 0.1, LotStep: 0.1, MaxLot: 1000},
	"WHEAT":  {Symbol: "WHEAT", TickSize: 0.25, TickValue: 12.5, MinLot: 0.1, LotStep: 0.1, MaxLot: 1000},
	"COFFEE": {Symbol: "COFFEE", TickSize: 0.05, TickValue: 18.75, MinLot: 0.1, LotStep: 0.1, MaxLot: 1000},
	"COCOA":  {Symbol: "COCOA", TickSize: 1, TickValue: 10, MinLot: 0.1, LotStep: 0.1, MaxLot: 1000},
	"SUGAR":  {Symbol: "SUGAR", TickSize: 0.01, TickValue: 11.2, MinLot: 0.1, LotStep: 0.1, MaxLot: 1000},
	"SOYBEAN": {Symbol: "SOYBEAN", TickSize: 0.25, TickValue: 12.5, MinLot: 0.1, LotStep: 0.1, MaxLot: 1000},

	"US10Y": {Symbol: "US10Y", TickSize: 0.005, TickValue: 7.8125, MinLot: 0.1, LotStep: 0.1, MaxLot: 500},

	"BTCUSD": {Symbol: "BTCUSD", TickSize: 1, TickValue: 1, MinLot: 0.01, LotStep: 0.01, MaxLot: 100},
	"ETHUSD": {Symbol: "ETHUSD", TickSize: 0.1, TickValue: 1, MinLot: 0.01, LotStep: 0.01, MaxLot: 100},
}

// SpecFor returns the instrument spec for a canonical symbol.
func SpecFor(sym string) (InstrumentSpec, bool) {
	spec, ok := Instruments[sym]
	return spec, ok
}
