package symbols

import (
	"regexp"
	"strings"
)

// brokerSuffix matches trailing broker-specific decorations like ".m" or ".pro".
var brokerSuffix = regexp.MustCompile(`\.[A-Za-z0-9_]+$`)

var spaces = regexp.MustCompile(`\s+`)

// Resolve canonicalizes an instrument name. Unknown inputs come back
// normalized but otherwise untouched so downstream code can still carry
// valid-but-unaliased tickers; it never returns empty for non-empty input.
func Resolve(input string) string {
	norm := Normalize(input)
	if norm == "" {
		return norm
	}

	if canon, ok := aliasToCanonical[norm]; ok {
		return canon
	}

	// Strip a broker suffix only when the bare prefix resolves.
	if loc := brokerSuffix.FindStringIndex(norm); loc != nil {
		if canon, ok := aliasToCanonical[norm[:loc[0]]]; ok {
			return canon
		}
	}

	return norm
}

// Normalize trims, uppercases and collapses internal whitespace.
func Normalize(input string) string {
	return spaces.ReplaceAllString(strings.ToUpper(strings.TrimSpace(input)), " ")
}

// Restricted returns the alias map limited to aliases whose canonical target
// is in allowed. Used by the COT extractor to scan only its report universe.
func Restricted(allowed []string) map[string]string {
	set := make(map[string]struct{}, len(allowed))
	for _, s := range allowed {
		set[s] = struct{}{}
	}

	out := make(map[string]string)
	for alias, canon := range aliasToCanonical {
		if _, ok := set[canon]; ok {
			out[alias] = canon
		}
	}
	return out
}
