package cot

import (
	"regexp"
	"sort"
	"strings"

	"copydesk/internal/domain/models"
	"copydesk/internal/symbols"
)

const maxEvidenceLines = 4

// Keyword patterns deciding per-line stance. Both may match one line and
// cancel each other out.
var (
	longPat  = regexp.MustCompile(`(?i)(net\s+long|more\s+longs|bullish|increase\s+in\s+longs|long\s+position)`)
	shortPat = regexp.MustCompile(`(?i)(net\s+short|more\s+shorts|bearish|increase\s+in\s+shorts|short\s+position)`)
)

type hit struct {
	score    int
	evidence []string
}

// Extract scans report text for instruments in allowed and infers a stance
// per symbol from directional keywords on the matching line and its direct
// neighbors. A symbol's score accumulates across the whole document.
func Extract(text string, allowed []string) []models.CotObservation {
	r := strings.NewReplacer("\r", " ", "\t", " ")
	rawLines := strings.Split(r.Replace(text), "\n")

	lines := make([]string, 0, len(rawLines))
	for _, l := range rawLines {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}

	aliasMap := symbols.Restricted(allowed)
	hits := make(map[string]*hit)

	for i, line := range lines {
		upper := strings.ToUpper(line)

		matched := make(map[string]struct{})
		for alias, canon := range aliasMap {
			if strings.Contains(upper, alias) {
				matched[canon] = struct{}{}
			}
		}
		if len(matched) == 0 {
			continue
		}

		score := 0
		if longPat.MatchString(line) {
			score++
		}
		if shortPat.MatchString(line) {
			score--
		}

		// Adjacent lines count as context: a table value next to the
		// symbol line still influences the stance.
		var prev, next string
		if i > 0 {
			prev = lines[i-1]
		}
		if i+1 < len(lines) {
			next = lines[i+1]
		}
		if longPat.MatchString(prev) || longPat.MatchString(next) {
			score++
		}
		if shortPat.MatchString(prev) || shortPat.MatchString(next) {
			score--
		}

		for sym := range matched {
			h := hits[sym]
			if h == nil {
				h = &hit{}
				hits[sym] = h
			}
			h.score += score
			h.evidence = append(h.evidence, line)
		}
	}

	out := make([]models.CotObservation, 0, len(hits))
	for sym, h := range hits {
		stance := models.StanceNeutral
		if h.score > 0 {
			stance = models.StanceBullish
		} else if h.score < 0 {
			stance = models.StanceBearish
		}

		ev := h.evidence
		if len(ev) > maxEvidenceLines {
			ev = ev[:maxEvidenceLines]
		}
		out = append(out, models.CotObservation{Symbol: sym, Stance: stance, Evidence: ev})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })
	return out
}
