package cot

import (
	"math"

	"copydesk/internal/domain/models"
)

// Confluence scores how strongly the two report sources agree, as an integer
// percentage in [50,100]. Neutral is pinned at 50: a directional call always
// beats "no signal". Trust drops when the sources conflict and when only one
// source covered the instrument; evidence volume saturates at 4 lines.
func Confluence(item models.MergedCotItem) int {
	if item.Stance == models.StanceNeutral {
		return 50
	}

	trust := 0.8
	if len(item.Sources) == 2 {
		if item.Conflict {
			trust = 0.7
		} else {
			trust = 1.0
		}
	}

	evidenceFactor := math.Min(1, float64(len(item.Evidence))/4)
	score := 0.4*trust + 0.6*evidenceFactor
	pct := int(math.Round(50 + 50*score))

	if pct < 50 {
		pct = 50
	}
	if pct > 100 {
		pct = 100
	}
	return pct
}

// Annotate fills Confluence on every merged item.
func Annotate(items []models.MergedCotItem) []models.MergedCotItem {
	out := make([]models.MergedCotItem, len(items))
	for i, it := range items {
		it.Confluence = Confluence(it)
		out[i] = it
	}
	return out
}
