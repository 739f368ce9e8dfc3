package edinet

import "testing"

func TestSelectBestPrefersConsolidatedOverSegment(t *testing.T) {
	candidates := []ExtractedValue{
		{RawText: "1200", ContextRef: "CurrentYearInstant_ReportableSegmentMember"},
		{RawText: "5000", ContextRef: "CurrentYearInstant"},
		{RawText: "300", ContextRef: "CurrentYearInstant_NonConsolidatedMember"},
	}
	best, ok := SelectBest(candidates)
	if !ok {
		t.Fatal("expected a selection")
	}
	if best.RawText != "5000" {
		t.Errorf("expected the consolidated value, got %q (%s)", best.RawText, best.ContextRef)
	}
}

func TestSelectBestPrefersSegmentOverNonConsolidated(t *testing.T) {
	candidates := []ExtractedValue{
		{RawText: "300", ContextRef: "CurrentYearInstant_NonConsolidatedMember"},
		{RawText: "1200", ContextRef: "CurrentYearInstant_ReportableSegmentMember"},
	}
	best, _ := SelectBest(candidates)
	if best.RawText != "1200" {
		t.Errorf("expected the segment value, got %q", best.RawText)
	}
}

func TestSelectBestPrefersCurrentYear(t *testing.T) {
	candidates := []ExtractedValue{
		{RawText: "4800", ContextRef: "Prior1YearInstant"},
		{RawText: "5000", ContextRef: "CurrentYearInstant"},
		{RawText: "4500", ContextRef: "Prior2YearInstant"},
	}
	best, _ := SelectBest(candidates)
	if best.RawText != "5000" {
		t.Errorf("expected the current-year value, got %q", best.RawText)
	}
}

func TestSelectBestUnknownContextSortsLast(t *testing.T) {
	candidates := []ExtractedValue{
		{RawText: "9999", ContextRef: "SomeOtherContext"},
		{RawText: "4800", ContextRef: "Prior4YearInstant"},
	}
	best, _ := SelectBest(candidates)
	if best.RawText != "4800" {
		t.Errorf("expected Prior4Year over unknown context, got %q", best.RawText)
	}
}

func TestSelectBestTieKeepsExtractionOrder(t *testing.T) {
	candidates := []ExtractedValue{
		{RawText: "first", ContextRef: "CurrentYearInstant"},
		{RawText: "second", ContextRef: "CurrentYearInstant"},
	}
	best, _ := SelectBest(candidates)
	if best.RawText != "first" {
		t.Errorf("expected stable first-wins tie break, got %q", best.RawText)
	}
}

func TestSelectBestEmpty(t *testing.T) {
	if _, ok := SelectBest(nil); ok {
		t.Error("expected no selection from empty input")
	}
}

func TestSelectBestFallsBackToAllCandidates(t *testing.T) {
	// Only non-consolidated candidates: the fallback chain still selects one.
	candidates := []ExtractedValue{
		{RawText: "300", ContextRef: "Prior1YearInstant_NonConsolidatedMember"},
		{RawText: "320", ContextRef: "CurrentYearInstant_NonConsolidatedMember"},
	}
	best, ok := SelectBest(candidates)
	if !ok || best.RawText != "320" {
		t.Errorf("expected the current-year non-consolidated value, got %q", best.RawText)
	}
}
