package pipeline

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/JapSyu/crawler/pkg/core/edinet"
	"github.com/JapSyu/crawler/pkg/core/registry"
	"github.com/JapSyu/crawler/pkg/core/state"
	"github.com/JapSyu/crawler/pkg/core/utils"
	"github.com/JapSyu/crawler/pkg/models"
)

// DocumentLocator finds the most recent annual report filing for each
// tracked company.
type DocumentLocator interface {
	Locate(ctx context.Context, companies []edinet.TrackedCompany, endDate time.Time, monthsBack int) (map[string]edinet.CandidateDocument, []string, error)
}

// PackageFetcher downloads the filing archive for one document.
type PackageFetcher interface {
	FetchDocumentPackage(ctx context.Context, docID string) ([]byte, error)
}

// ReportRepository persists the assembled company reports.
type ReportRepository interface {
	Save(ctx context.Context, report *models.CompanyReport) error
}

// PageFetcher retrieves a company web page and its source metadata.
type PageFetcher interface {
	FetchPage(ctx context.Context, label, url string) (models.SourcePage, string, error)
}

// Updater runs the full collection cycle: locate each company's latest
// annual report, download and unpack it, extract facts, and persist one
// immutable report per company.
type Updater struct {
	Registry  *registry.Registry
	Locator   DocumentLocator
	Fetcher   PackageFetcher
	Repo      ReportRepository
	State     *state.Store
	YearHints *edinet.YearHinter
	// Pages fetches the registered company domains; nil disables the pass.
	Pages        PageFetcher
	MonthsBack   int
	CompanyDelay time.Duration
}

func NewUpdater(reg *registry.Registry, locator DocumentLocator, fetcher PackageFetcher, repo ReportRepository, st *state.Store) *Updater {
	return &Updater{
		Registry:     reg,
		Locator:      locator,
		Fetcher:      fetcher,
		Repo:         repo,
		State:        st,
		YearHints:    &edinet.YearHinter{},
		MonthsBack:   14,
		CompanyDelay: 1 * time.Second,
	}
}

// RunFullUpdate processes every registered company and returns a
// per-company success map. A company failure is recorded and the run
// continues; only locator-level failures abort the run.
func (u *Updater) RunFullUpdate(ctx context.Context) (map[string]bool, error) {
	runID := uuid.New().String()
	start := time.Now()
	companies := u.Registry.Tracked()

	fmt.Printf("Starting full update run %s for %d companies...\n", runID, len(companies))

	lastUpdated := map[string]time.Time{}
	if u.State != nil {
		lastUpdated = u.State.Load()
	}

	located, missing, err := u.Locator.Locate(ctx, companies, time.Now(), u.MonthsBack)
	if err != nil {
		return nil, fmt.Errorf("document scan failed: %w", err)
	}
	for _, key := range missing {
		fmt.Printf("Warning: no annual report found for %s in scan window\n", key)
	}

	results := make(map[string]bool, len(companies))
	for i, company := range companies {
		if i > 0 && u.CompanyDelay > 0 {
			select {
			case <-time.After(u.CompanyDelay):
			case <-ctx.Done():
				return results, ctx.Err()
			}
		}

		candidate, ok := located[company.Key]
		if !ok {
			results[company.Key] = false
			continue
		}

		if err := u.updateCompany(ctx, runID, company.Key, candidate); err != nil {
			fmt.Printf("Warning: update failed for %s: %v\n", company.Key, err)
			results[company.Key] = false
			continue
		}
		results[company.Key] = true
		lastUpdated[company.Key] = time.Now().UTC()
	}

	if u.State != nil {
		if err := u.State.Save(lastUpdated); err != nil {
			fmt.Printf("Warning: failed to save update state: %v\n", err)
		}
	}

	u.printSummary(results, time.Since(start))
	return results, nil
}

// updateCompany downloads one filing package and assembles the report.
func (u *Updater) updateCompany(ctx context.Context, runID, companyKey string, candidate edinet.CandidateDocument) error {
	fmt.Printf("Updating %s from document %s (%s)...\n", companyKey, candidate.DocID, candidate.FilerName)

	data, err := u.Fetcher.FetchDocumentPackage(ctx, candidate.DocID)
	if err != nil {
		return fmt.Errorf("failed to download package: %w", err)
	}

	archive, err := edinet.OpenFilingArchive(data)
	if err != nil {
		return fmt.Errorf("failed to open package: %w", err)
	}
	if len(archive.Sections) == 0 {
		return fmt.Errorf("package for %s contains no full-text sections", candidate.DocID)
	}

	report := u.assembleReport(runID, companyKey, candidate, archive)
	u.fetchCompanyPages(ctx, companyKey, report)

	if err := u.Repo.Save(ctx, report); err != nil {
		return fmt.Errorf("failed to persist report: %w", err)
	}

	fmt.Printf("Saved report for %s (%d fields with provenance)\n", companyKey, len(report.Provenance))
	return nil
}

// assembleReport builds the immutable per-run report from the archive
// contents. Every populated fact carries a provenance entry.
func (u *Updater) assembleReport(runID, companyKey string, candidate edinet.CandidateDocument, archive *edinet.FilingArchive) *models.CompanyReport {
	report := &models.CompanyReport{
		CompanyKey:  companyKey,
		RunID:       runID,
		CollectedAt: time.Now().UTC(),
		Provenance:  map[string]models.Provenance{},
		SourceDocuments: []models.SourceDocument{{
			DocID:          candidate.DocID,
			DocTypeCode:    candidate.DocTypeCode,
			FilerName:      candidate.FilerName,
			SubmissionDate: candidate.SubmissionDate,
			SecCode:        candidate.SecCode,
		}},
	}

	facts := edinet.ExtractDocumentFacts(archive.Sections)
	report.HR = facts.HR
	report.Basic.EmployeeCount = facts.EmployeeCount
	report.Financials.RevenueJPY = facts.RevenueJPY
	for field, prov := range facts.Provenance {
		report.Provenance[field] = prov
	}

	basic, basicProv := edinet.ExtractBasicFacts(archive.Header, archive.Sections, candidate.SubmissionDate.Year())
	employeeCount := report.Basic.EmployeeCount
	report.Basic = basic
	report.Basic.EmployeeCount = employeeCount
	for field, prov := range basicProv {
		report.Provenance[field] = prov
	}

	if report.Basic.Name == "" {
		report.Basic.Name = candidate.FilerName
	}
	if report.Basic.SecCode == "" {
		report.Basic.SecCode = candidate.SecCode
	}

	// Tie the headcount to the fiscal year it was reported for, when the
	// source section pairs them.
	if facts.EmployeeCount != nil && u.YearHints != nil {
		if prov, ok := facts.Provenance[string(edinet.FieldEmployeeCount)]; ok {
			for _, sec := range archive.Sections {
				if sec.Name == prov.File {
					year := u.YearHints.HintYear(sec.Content, *facts.EmployeeCount)
					report.Financials.FiscalYear = &year
					break
				}
			}
		}
	}

	return report
}

// fetchCompanyPages records the company's registered web pages as source
// pages. Page failures are warnings on the report, never run failures.
func (u *Updater) fetchCompanyPages(ctx context.Context, companyKey string, report *models.CompanyReport) {
	if u.Pages == nil {
		return
	}
	for _, c := range u.Registry.Companies {
		if c.Key != companyKey {
			continue
		}
		for _, domain := range c.Domains {
			url := "https://" + domain
			page, _, err := u.Pages.FetchPage(ctx, "homepage", url)
			if err != nil {
				report.Warnings = append(report.Warnings, fmt.Sprintf("page fetch failed for %s: %v", url, err))
				continue
			}
			report.SourcePages = append(report.SourcePages, page)
		}
	}
}

// printSummary prints the per-company outcome table and the overall
// success rate for the run.
func (u *Updater) printSummary(results map[string]bool, elapsed time.Duration) {
	var keys []string
	for key := range results {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("# Update Run Summary\n\n")
	b.WriteString("| Company | Result |\n|---|---|\n")

	succeeded := 0
	for _, key := range keys {
		status := "FAILED"
		if results[key] {
			status = "OK"
			succeeded++
		}
		fmt.Fprintf(&b, "| %s | %s |\n", key, status)
	}
	rate := 0.0
	if len(results) > 0 {
		rate = float64(succeeded) / float64(len(results)) * 100
	}
	fmt.Fprintf(&b, "\n%d/%d companies updated (%.1f%%) in %v\n", succeeded, len(results), rate, elapsed.Round(time.Second))

	summary := b.String()
	if !utils.ValidateMarkdown(summary) {
		fmt.Printf("Warning: run summary is not valid markdown\n")
	}
	fmt.Print(summary)
}
