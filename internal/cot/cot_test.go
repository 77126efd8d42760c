package cot

import (
	"reflect"
	"testing"

	"copydesk/internal/domain/models"
	"copydesk/internal/symbols"
)

func TestExtractEmpty(t *testing.T) {
	obs := Extract("", symbols.Universe)
	if len(obs) != 0 {
		t.Fatalf("expected no observations, got %d", len(obs))
	}
}

func TestExtractStanceFromLine(t *testing.T) {
	text := "Gold speculators increased their net long position this week."
	obs := Extract(text, symbols.Universe)
	if len(obs) != 1 {
		t.Fatalf("expected 1 observation, got %d", len(obs))
	}
	if obs[0].Symbol != "XAUUSD" || obs[0].Stance != models.StanceBullish {
		t.Fatalf("unexpected observation %+v", obs[0])
	}
	if len(obs[0].Evidence) != 1 {
		t.Fatalf("expected 1 evidence line, got %d", len(obs[0].Evidence))
	}
}

func TestExtractContextLines(t *testing.T) {
	// Keyword sits on the neighbor line, not on the symbol line itself.
	text := "Euro FX\nNet short positioning increased sharply"
	obs := Extract(text, symbols.Universe)
	if len(obs) != 1 {
		t.Fatalf("expected 1 observation, got %d", len(obs))
	}
	if obs[0].Symbol != "EURUSD" || obs[0].Stance != models.StanceBearish {
		t.Fatalf("unexpected observation %+v", obs[0])
	}
}

func TestExtractOpposingKeywordsCancel(t *testing.T) {
	text := "Silver traders net long while commercials stay net short overall"
	obs := Extract(text, symbols.Universe)
	if len(obs) != 1 {
		t.Fatalf("expected 1 observation, got %d", len(obs))
	}
	if obs[0].Stance != models.StanceNeutral {
		t.Fatalf("expected neutral on cancellation, got %s", obs[0].Stance)
	}
}

func TestExtractRespectsAllowedUniverse(t *testing.T) {
	text := "Gold net long. Euro FX net long."
	obs := Extract(text, []string{"XAUUSD"})
	if len(obs) != 1 || obs[0].Symbol != "XAUUSD" {
		t.Fatalf("expected only XAUUSD, got %+v", obs)
	}
}

func TestExtractEvidenceCapAndOrder(t *testing.T) {
	text := "Gold bullish one\nGold bullish two\nGold bullish three\nGold bullish four\nGold bullish five"
	obs := Extract(text, symbols.Universe)
	if len(obs) != 1 {
		t.Fatalf("expected 1 observation, got %d", len(obs))
	}
	if len(obs[0].Evidence) != 4 {
		t.Fatalf("expected evidence capped at 4, got %d", len(obs[0].Evidence))
	}
	if obs[0].Evidence[0] != "Gold bullish one" {
		t.Fatalf("expected first-seen order, got %q", obs[0].Evidence[0])
	}
}

func TestExtractSortedOutput(t *testing.T) {
	text := "Silver net long\nGold net long\nEuro FX net long"
	obs := Extract(text, symbols.Universe)
	want := []string{"EURUSD", "XAGUSD", "XAUUSD"}
	got := make([]string, len(obs))
	for i, o := range obs {
		got[i] = o.Symbol
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected sorted %v, got %v", want, got)
	}
}

func TestMergeSingleSource(t *testing.T) {
	m := NewMerger(nil)
	items := m.Merge(
		[]models.CotObservation{{Symbol: "XAUUSD", Stance: models.StanceBullish, Evidence: []string{"a", "b", "c"}}},
		nil,
	)
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	it := items[0]
	if it.Conflict || it.Preferred != models.SourceDisaggregated || len(it.Sources) != 1 {
		t.Fatalf("unexpected merge %+v", it)
	}
	if it.Stance != models.StanceBullish {
		t.Fatalf("unexpected stance %s", it.Stance)
	}
}

func TestMergeAgreement(t *testing.T) {
	m := NewMerger(nil)
	items := m.Merge(
		[]models.CotObservation{{Symbol: "XAUUSD", Stance: models.StanceBullish, Evidence: []string{"d1"}}},
		[]models.CotObservation{{Symbol: "XAUUSD", Stance: models.StanceBullish, Evidence: []string{"f1"}}},
	)
	it := items[0]
	if it.Conflict {
		t.Fatalf("agreement must not conflict")
	}
	// Both produced the chosen stance: preference falls back on category.
	if it.Preferred != models.SourceDisaggregated {
		t.Fatalf("metal should default to disaggregated, got %s", it.Preferred)
	}
	if !reflect.DeepEqual(it.Evidence, []string{"d1", "f1"}) {
		t.Fatalf("unexpected evidence %v", it.Evidence)
	}
}

func TestMergeNeutralYieldsToDirectional(t *testing.T) {
	m := NewMerger(nil)
	items := m.Merge(
		[]models.CotObservation{{Symbol: "EURUSD", Stance: models.StanceNeutral}},
		[]models.CotObservation{{Symbol: "EURUSD", Stance: models.StanceBearish}},
	)
	it := items[0]
	if it.Conflict {
		t.Fatalf("neutral never conflicts")
	}
	if it.Stance != models.StanceBearish || it.Preferred != models.SourceFinancial {
		t.Fatalf("unexpected merge %+v", it)
	}
}

func TestMergeConflictForexPrefersFinancial(t *testing.T) {
	m := NewMerger(nil)
	items := m.Merge(
		[]models.CotObservation{{Symbol: "EURUSD", Stance: models.StanceBullish, Evidence: []string{"d"}}},
		[]models.CotObservation{{Symbol: "EURUSD", Stance: models.StanceBearish, Evidence: []string{"f"}}},
	)
	it := items[0]
	if !it.Conflict {
		t.Fatalf("expected conflict")
	}
	if it.Stance != models.StanceBearish || it.Preferred != models.SourceFinancial {
		t.Fatalf("financial should win forex, got %+v", it)
	}
	if len(it.Notes) != 1 || it.Notes[0] != "divergence: disagg=bullish vs fin=bearish → chosen=financial" {
		t.Fatalf("unexpected notes %v", it.Notes)
	}
}

func TestMergeConflictMetalPrefersDisaggregated(t *testing.T) {
	m := NewMerger(nil)
	items := m.Merge(
		[]models.CotObservation{{Symbol: "XAUUSD", Stance: models.StanceBearish}},
		[]models.CotObservation{{Symbol: "XAUUSD", Stance: models.StanceBullish}},
	)
	it := items[0]
	if !it.Conflict || it.Stance != models.StanceBearish || it.Preferred != models.SourceDisaggregated {
		t.Fatalf("disaggregated should win metals, got %+v", it)
	}
}

func TestMergeCompleteness(t *testing.T) {
	m := NewMerger(nil)
	items := m.Merge(
		[]models.CotObservation{
			{Symbol: "XAUUSD", Stance: models.StanceBullish},
			{Symbol: "USOIL", Stance: models.StanceBearish},
		},
		[]models.CotObservation{
			{Symbol: "EURUSD", Stance: models.StanceBullish},
			{Symbol: "XAUUSD", Stance: models.StanceBullish},
		},
	)
	got := make([]string, len(items))
	for i, it := range items {
		got[i] = it.Symbol
	}
	want := []string{"EURUSD", "USOIL", "XAUUSD"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected union %v sorted, got %v", want, got)
	}
}

func TestMergeEvidenceDedupAndCap(t *testing.T) {
	m := NewMerger(nil)
	items := m.Merge(
		[]models.CotObservation{{Symbol: "XAUUSD", Stance: models.StanceBullish, Evidence: []string{"a", "b", "c", "d"}}},
		[]models.CotObservation{{Symbol: "XAUUSD", Stance: models.StanceBullish, Evidence: []string{"b", "e", "f", "g"}}},
	)
	want := []string{"a", "b", "c", "d", "e", "f"}
	if !reflect.DeepEqual(items[0].Evidence, want) {
		t.Fatalf("expected %v, got %v", want, items[0].Evidence)
	}
}

func TestConfluenceNeutral(t *testing.T) {
	got := Confluence(models.MergedCotItem{Stance: models.StanceNeutral, Sources: []models.Source{models.SourceFinancial}})
	if got != 50 {
		t.Fatalf("neutral must score 50, got %d", got)
	}
}

func TestConfluenceSingleSourceThreeEvidence(t *testing.T) {
	// trust 0.8, evidence 3/4: round(50 + 50*(0.4*0.8 + 0.6*0.75)) = 89
	got := Confluence(models.MergedCotItem{
		Stance:   models.StanceBullish,
		Sources:  []models.Source{models.SourceDisaggregated},
		Evidence: []string{"a", "b", "c"},
	})
	if got != 89 {
		t.Fatalf("expected 89, got %d", got)
	}
}

func TestConfluenceBounds(t *testing.T) {
	full := Confluence(models.MergedCotItem{
		Stance:   models.StanceBullish,
		Sources:  []models.Source{models.SourceDisaggregated, models.SourceFinancial},
		Evidence: []string{"a", "b", "c", "d", "e", "f"},
	})
	if full != 100 {
		t.Fatalf("two agreeing sources with max evidence should score 100, got %d", full)
	}

	bare := Confluence(models.MergedCotItem{
		Stance:  models.StanceBearish,
		Sources: []models.Source{models.SourceFinancial},
	})
	if bare < 50 || bare > 100 {
		t.Fatalf("confluence out of bounds: %d", bare)
	}
}

func TestConfluenceConflictPenalty(t *testing.T) {
	agree := Confluence(models.MergedCotItem{
		Stance:   models.StanceBullish,
		Sources:  []models.Source{models.SourceDisaggregated, models.SourceFinancial},
		Evidence: []string{"a", "b"},
	})
	conflict := Confluence(models.MergedCotItem{
		Stance:   models.StanceBullish,
		Sources:  []models.Source{models.SourceDisaggregated, models.SourceFinancial},
		Conflict: true,
		Evidence: []string{"a", "b"},
	})
	if conflict >= agree {
		t.Fatalf("conflict must be penalized: agree=%d conflict=%d", agree, conflict)
	}
}

func TestAnnotate(t *testing.T) {
	items := Annotate([]models.MergedCotItem{
		{Stance: models.StanceNeutral, Sources: []models.Source{models.SourceFinancial}},
		{Stance: models.StanceBullish, Sources: []models.Source{models.SourceDisaggregated}, Evidence: []string{"a", "b", "c"}},
	})
	if items[0].Confluence != 50 || items[1].Confluence != 89 {
		t.Fatalf("unexpected confluence %d/%d", items[0].Confluence, items[1].Confluence)
	}
}
