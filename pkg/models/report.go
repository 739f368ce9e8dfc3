// Package models defines the canonical report structures shared by the
// collection pipeline, the persistence layer and the translation pass.
package models

import (
	"time"
)

// ExtractionMethod identifies how a field value was derived.
type ExtractionMethod string

const (
	MethodIXBRLConcept ExtractionMethod = "ixbrl_concept"    // tagged ix:nonFraction lookup
	MethodKeywordRegex ExtractionMethod = "text_search"      // label keyword + regex fallback
	MethodHeaderRegex  ExtractionMethod = "header_regex"     // structured header section
	MethodFiscalPeriod ExtractionMethod = "fiscal_period"    // submission year − period ordinal + 1
	MethodFoundedLabel ExtractionMethod = "founded_fulltext" // explicit 設立/創立 mention
)

// Provenance records how and from where a single fact was derived.
// Every non-nil extracted field in a report must carry one.
type Provenance struct {
	File       string           `json:"file"`
	Method     ExtractionMethod `json:"method"`
	Concept    string           `json:"concept,omitempty"`
	Keyword    string           `json:"keyword,omitempty"`
	ContextRef string           `json:"context_ref,omitempty"`
	UnitRef    string           `json:"unit_ref,omitempty"`
	Scale      string           `json:"scale,omitempty"`
}

// SourceDocument is one disclosure document the report was built from.
type SourceDocument struct {
	DocID          string    `json:"doc_id"`
	DocTypeCode    string    `json:"doc_type_code"`
	FilerName      string    `json:"filer_name"`
	SubmissionDate time.Time `json:"submission_date"`
	SecCode        string    `json:"sec_code,omitempty"`
}

// CompanyBasicFacts holds identity and structural facts for one company.
// Pointer fields are nil when no extraction tier produced a value; zero is
// never used as a stand-in for "not found".
type CompanyBasicFacts struct {
	Name           string `json:"name,omitempty"`
	NameEN         string `json:"name_en,omitempty"`
	NameKO         string `json:"name_ko,omitempty"`
	Headquarters   string `json:"headquarters,omitempty"`
	HeadquartersKO string `json:"headquarters_ko,omitempty"`
	FoundedYear    *int   `json:"founded_year,omitempty"`
	SecCode        string `json:"sec_code,omitempty"`
	EmployeeCount  *int64 `json:"employee_count,omitempty"`
}

// CompanyHRFacts holds workforce facts, each independently optional.
type CompanyHRFacts struct {
	AvgTenureYears     *float64 `json:"avg_tenure_years,omitempty"`
	AvgAgeYears        *float64 `json:"avg_age_years,omitempty"`
	AvgAnnualSalaryJPY *int64   `json:"avg_annual_salary_jpy,omitempty"`
}

// CompanyFinancials holds the small financial slice the pipeline extracts.
type CompanyFinancials struct {
	RevenueJPY *int64 `json:"revenue_jpy,omitempty"`
	FiscalYear *int   `json:"fiscal_year,omitempty"`
}

// SourcePage is metadata for one fetched web page (website collaborator).
type SourcePage struct {
	Label       string    `json:"label"`
	URL         string    `json:"url"`
	FetchedAt   time.Time `json:"fetched_at"`
	ContentHash string    `json:"content_hash"`
	FetchMode   string    `json:"fetch_mode,omitempty"` // "static" or "headless"
}

// CompanyReport is the top-level aggregate for one company and one update
// cycle. It is assembled fresh each run and never mutated afterwards; the
// next run supersedes it with a new instance.
type CompanyReport struct {
	CompanyKey  string    `json:"company_key"`
	RunID       string    `json:"run_id,omitempty"`
	CollectedAt time.Time `json:"collected_at"`

	Basic      CompanyBasicFacts `json:"basic"`
	HR         CompanyHRFacts    `json:"hr"`
	Financials CompanyFinancials `json:"financials"`

	// Provenance is keyed by field name (e.g. "avgTenureYears").
	Provenance map[string]Provenance `json:"provenance,omitempty"`

	SourceDocuments []SourceDocument `json:"source_documents,omitempty"`
	SourcePages     []SourcePage     `json:"source_pages,omitempty"`

	Warnings []string `json:"warnings,omitempty"`
}

// HasProvenanceFor reports whether the given field carries a provenance entry.
func (r *CompanyReport) HasProvenanceFor(field string) bool {
	_, ok := r.Provenance[field]
	return ok
}
