package edinet

import (
	"context"
	"log"
	"strings"
	"time"
)

// TrackedCompany maps an internal company key to the exact legal-name
// keywords used for filer matching.
type TrackedCompany struct {
	Key      string
	Keywords []string
}

// DayIndex lists the filing registry for one calendar date.
type DayIndex interface {
	ListDocuments(ctx context.Context, date time.Time) ([]FilingEntry, error)
}

// Locator finds, per tracked company, the most recent annual securities
// report in a date range.
type Locator struct {
	Index       DayIndex
	DocTypeCode string
	// ScanDelay spaces out day-index queries to stay under the upstream
	// rate limit.
	ScanDelay time.Duration
}

// NewLocator creates a locator targeting annual securities reports.
func NewLocator(index DayIndex) *Locator {
	return &Locator{
		Index:       index,
		DocTypeCode: DocTypeAnnualReport,
		ScanDelay:   500 * time.Millisecond,
	}
}

// Locate scans calendar dates in descending order from endDate back
// monthsBack months. Matching is exact substring containment of a tracked
// keyword in the filer's legal name, case- and form-sensitive; the first
// matching company per entry wins. A company's candidate is replaced only by
// a more recent submission. The scan stops early once every company has a
// match. Per-date fetch failures are logged and skipped.
//
// Companies with no match in the range are returned in the missing list,
// never as an error.
func (l *Locator) Locate(ctx context.Context, companies []TrackedCompany, endDate time.Time, monthsBack int) (map[string]CandidateDocument, []string, error) {
	found := make(map[string]CandidateDocument)
	start := endDate.AddDate(0, -monthsBack, 0)

	for date := endDate; !date.Before(start); date = date.AddDate(0, 0, -1) {
		if len(found) == len(companies) {
			break
		}
		if err := ctx.Err(); err != nil {
			return found, missingKeys(companies, found), err
		}

		entries, err := l.Index.ListDocuments(ctx, date)
		if err != nil {
			log.Printf("Warning: skipping %s: %v", date.Format("2006-01-02"), err)
			continue
		}

		for _, entry := range entries {
			if entry.DocTypeCode != l.DocTypeCode {
				continue
			}
			company, ok := matchCompany(entry.FilerName, companies)
			if !ok {
				continue
			}
			submitted := parseSubmitTime(entry.SubmitDateTime, date)
			if prev, exists := found[company.Key]; exists && !submitted.After(prev.SubmissionDate) {
				continue
			}
			found[company.Key] = CandidateDocument{
				DocID:          entry.DocID,
				CompanyKey:     company.Key,
				FilerName:      entry.FilerName,
				DocTypeCode:    entry.DocTypeCode,
				SubmissionDate: submitted,
				SecCode:        entry.SecCode,
			}
			log.Printf("Matched %s: %s (%s, submitted %s)", company.Key, entry.FilerName, entry.DocID, submitted.Format("2006-01-02"))
		}

		if l.ScanDelay > 0 {
			select {
			case <-time.After(l.ScanDelay):
			case <-ctx.Done():
				return found, missingKeys(companies, found), ctx.Err()
			}
		}
	}

	return found, missingKeys(companies, found), nil
}

func matchCompany(filerName string, companies []TrackedCompany) (TrackedCompany, bool) {
	for _, c := range companies {
		for _, kw := range c.Keywords {
			if strings.Contains(filerName, kw) {
				return c, true
			}
		}
	}
	return TrackedCompany{}, false
}

func parseSubmitTime(raw string, fallback time.Time) time.Time {
	for _, layout := range []string{"2006-01-02 15:04", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return fallback
}

func missingKeys(companies []TrackedCompany, found map[string]CandidateDocument) []string {
	var missing []string
	for _, c := range companies {
		if _, ok := found[c.Key]; !ok {
			missing = append(missing, c.Key)
		}
	}
	return missing
}
