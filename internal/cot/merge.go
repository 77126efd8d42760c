package cot

import (
	"fmt"
	"sort"

	"copydesk/internal/domain/models"
	"copydesk/internal/symbols"
)

const maxMergedEvidence = 6

// Merger combines the two report sources under a configurable precedence
// policy deciding which source wins ties and true conflicts.
type Merger struct {
	policy symbols.Policy
}

func NewMerger(policy symbols.Policy) *Merger {
	if policy == nil {
		policy = symbols.DefaultPolicy()
	}
	return &Merger{policy: policy}
}

// Merge produces one item per instrument present in either source, sorted by
// symbol. Conflict is raised only for strict bullish-vs-bearish opposition;
// neutral never conflicts.
func (m *Merger) Merge(disagg, fin []models.CotObservation) []models.MergedCotItem {
	dMap := make(map[string]models.CotObservation, len(disagg))
	for _, d := range disagg {
		dMap[d.Symbol] = d
	}
	fMap := make(map[string]models.CotObservation, len(fin))
	for _, f := range fin {
		fMap[f.Symbol] = f
	}

	syms := make([]string, 0, len(dMap)+len(fMap))
	for s := range dMap {
		syms = append(syms, s)
	}
	for s := range fMap {
		if _, ok := dMap[s]; !ok {
			syms = append(syms, s)
		}
	}
	sort.Strings(syms)

	out := make([]models.MergedCotItem, 0, len(syms))
	for _, sym := range syms {
		d, hasD := dMap[sym]
		f, hasF := fMap[sym]

		if hasD && !hasF {
			out = append(out, models.MergedCotItem{
				Symbol:    sym,
				Stance:    d.Stance,
				Sources:   []models.Source{models.SourceDisaggregated},
				Preferred: models.SourceDisaggregated,
				Evidence:  dedup(d.Evidence, maxMergedEvidence),
			})
			continue
		}
		if hasF && !hasD {
			out = append(out, models.MergedCotItem{
				Symbol:    sym,
				Stance:    f.Stance,
				Sources:   []models.Source{models.SourceFinancial},
				Preferred: models.SourceFinancial,
				Evidence:  dedup(f.Evidence, maxMergedEvidence),
			})
			continue
		}

		sources := []models.Source{models.SourceDisaggregated, models.SourceFinancial}
		evidence := dedup(append(append([]string{}, d.Evidence...), f.Evidence...), maxMergedEvidence)

		// Agreement, or one side neutral: no conflict.
		if d.Stance == f.Stance || d.Stance == models.StanceNeutral || f.Stance == models.StanceNeutral {
			chosen := d.Stance
			if d.Stance == models.StanceNeutral {
				chosen = f.Stance
			}

			preferred := models.Source(m.policy.PreferredSource(sym))
			if chosen == d.Stance && chosen != f.Stance {
				preferred = models.SourceDisaggregated
			} else if chosen == f.Stance && chosen != d.Stance {
				preferred = models.SourceFinancial
			}

			out = append(out, models.MergedCotItem{
				Symbol:    sym,
				Stance:    chosen,
				Sources:   sources,
				Preferred: preferred,
				Evidence:  evidence,
			})
			continue
		}

		// True divergence: bullish vs bearish.
		pref := models.Source(m.policy.PreferredSource(sym))
		chosen := d.Stance
		if pref == models.SourceFinancial {
			chosen = f.Stance
		}
		out = append(out, models.MergedCotItem{
			Symbol:    sym,
			Stance:    chosen,
			Sources:   sources,
			Conflict:  true,
			Preferred: pref,
			Evidence:  evidence,
			Notes: []string{
				fmt.Sprintf("divergence: disagg=%s vs fin=%s → chosen=%s", d.Stance, f.Stance, pref),
			},
		})
	}

	return out
}

func dedup(lines []string, max int) []string {
	seen := make(map[string]struct{}, len(lines))
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
		if len(out) == max {
			break
		}
	}
	return out
}
