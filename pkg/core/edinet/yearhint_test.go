package edinet

import (
	"testing"
	"time"
)

func fixedNow() time.Time {
	return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
}

func TestHintYearPairsCountWithYear(t *testing.T) {
	h := &YearHinter{Now: fixedNow}
	content := "2023年6月30日現在の従業員数は 2,562 人です。"
	if got := h.HintYear(content, 2562); got != 2023 {
		t.Errorf("expected 2023, got %d", got)
	}
}

func TestHintYearPrefersMostRecent(t *testing.T) {
	h := &YearHinter{Now: fixedNow}
	content := "2022年の従業員数は 2,562 人、2024年の従業員数は 2,562 人でした。"
	if got := h.HintYear(content, 2562); got != 2024 {
		t.Errorf("expected the most recent pairing 2024, got %d", got)
	}
}

func TestHintYearFallsBackToCurrentYear(t *testing.T) {
	h := &YearHinter{Now: fixedNow}
	if got := h.HintYear("従業員数 2,562 人", 2562); got != 2025 {
		t.Errorf("expected the current year, got %d", got)
	}
}

func TestGroupDigits(t *testing.T) {
	cases := map[int64]string{
		999:     "999",
		2562:    "2,562",
		1234567: "1,234,567",
	}
	for n, want := range cases {
		if got := groupDigits(n); got != want {
			t.Errorf("groupDigits(%d) = %q, want %q", n, got, want)
		}
	}
}
