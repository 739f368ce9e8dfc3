package edinet

import (
	"fmt"
	"regexp"
	"time"
)

// YearHinter matches an extracted headcount to the fiscal year it most
// likely belongs to by textual proximity. This is a best-effort hint, not a
// guaranteed-correct join, and is kept separate from extraction so it can be
// replaced without touching the extractor.
type YearHinter struct {
	// Now is injectable for tests; defaults to time.Now.
	Now func() time.Time
}

// earliestHintYear bounds the guess window; filings older than this are not
// in scope for the updater.
const earliestHintYear = 2020

// HintYear guesses the fiscal year a headcount figure belongs to. It looks,
// most recent year first, for the year and the count appearing together
// (same line or same passage); when no pairing is found it returns the
// current year.
func (h *YearHinter) HintYear(content string, employeeCount int64) int {
	now := time.Now
	if h != nil && h.Now != nil {
		now = h.Now
	}
	currentYear := now().Year()

	plain := fmt.Sprintf("%d", employeeCount)
	grouped := groupDigits(employeeCount)

	for year := currentYear; year >= earliestHintYear; year-- {
		for _, count := range []string{plain, grouped} {
			patterns := []*regexp.Regexp{
				regexp.MustCompile(fmt.Sprintf(`%d[年\s][^人]*?%s\s*人`, year, regexp.QuoteMeta(count))),
				regexp.MustCompile(fmt.Sprintf(`%d[^\n]*%s[^\n]*人`, year, regexp.QuoteMeta(count))),
			}
			for _, re := range patterns {
				if re.MatchString(content) {
					return year
				}
			}
		}
	}
	return currentYear
}

func groupDigits(n int64) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	return string(out)
}
