package symbols

// Category groups instruments for source-precedence rules.
type Category string

const (
	CategoryForex     Category = "forex"
	CategoryIndex     Category = "index"
	CategoryCommodity Category = "commodity"
	CategoryMetal     Category = "metal"
	CategoryBond      Category = "bond"
	CategoryCrypto    Category = "crypto"
	CategoryUnknown   Category = "unknown"
)

var categories = map[string]Category{
	"EURUSD": CategoryForex, "GBPUSD": CategoryForex, "AUDUSD": CategoryForex,
	"NZDUSD": CategoryForex, "USDJPY": CategoryForex, "USDCHF": CategoryForex,
	"USDCAD": CategoryForex, "EURJPY": CategoryForex, "GBPJPY": CategoryForex,
	"AUDJPY": CategoryForex, "NZDJPY": CategoryForex, "CADJPY": CategoryForex,
	"EURNZD": CategoryForex, "AUDNZD": CategoryForex, "EURCAD": CategoryForex,
	"EURAUD": CategoryForex,

	"SPX": CategoryIndex, "US100": CategoryIndex, "DAX": CategoryIndex,
	"US500": CategoryIndex, "FTSEMIB": CategoryIndex, "JP225": CategoryIndex,

	"USOIL": CategoryCommodity, "NGAS": CategoryCommodity, "CORN": CategoryCommodity,
	"WHEAT": CategoryCommodity, "COFFEE": CategoryCommodity, "COCOA": CategoryCommodity,
	"SUGAR": CategoryCommodity, "SOYBEAN": CategoryCommodity,

	"XAUUSD": CategoryMetal, "XAGUSD": CategoryMetal, "XPTUSD": CategoryMetal,

	"US10Y": CategoryBond,

	"BTCUSD": CategoryCrypto, "ETHUSD": CategoryCrypto,
}

// CategoryOf returns the category for a canonical symbol.
func CategoryOf(sym string) Category {
	if c, ok := categories[sym]; ok {
		return c
	}
	return CategoryUnknown
}

// Policy maps categories to the report source preferred when both COT
// sources produced the same stance or truly disagree. Categories absent
// from the table fall back to the financial report.
type Policy map[Category]string

// DefaultPolicy reflects CFTC report coverage: physical commodities and
// metals appear in the disaggregated report, everything else in the
// financial futures report. Crypto has no official COT provenance and
// falls back to financial.
func DefaultPolicy() Policy {
	return Policy{
		CategoryCommodity: "disaggregated",
		CategoryMetal:     "disaggregated",
	}
}

// PolicyFromConfig builds a Policy from a category name to source table,
// falling back to the default policy when the table is empty.
func PolicyFromConfig(table map[string]string) Policy {
	if len(table) == 0 {
		return DefaultPolicy()
	}
	p := make(Policy, len(table))
	for cat, src := range table {
		p[Category(cat)] = src
	}
	return p
}

// PreferredSource resolves the preferred report source for a symbol.
func (p Policy) PreferredSource(sym string) string {
	if src, ok := p[CategoryOf(sym)]; ok {
		return src
	}
	return "financial"
}
