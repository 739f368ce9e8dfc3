// Package edinet implements document location and fact extraction for
// Japanese annual securities reports published through the EDINET
// disclosure system.
package edinet

import (
	"time"
)

// Field identifies one semantic value the extractor can pull from a filing.
type Field string

const (
	FieldAvgTenure     Field = "avgTenureYears"
	FieldAvgAge        Field = "avgAgeYears"
	FieldAvgSalary     Field = "avgAnnualSalaryJPY"
	FieldEmployeeCount Field = "employeeCount"
	FieldRevenue       Field = "revenueJPY"
)

// FieldKind determines how a normalized value is typed.
type FieldKind int

const (
	KindYears    FieldKind = iota // floating point (tenure, age)
	KindCount                     // integer (headcount)
	KindCurrency                  // integer, currency-denominated (salary, revenue)
)

// Kind returns the value kind for a field.
func (f Field) Kind() FieldKind {
	switch f {
	case FieldAvgSalary, FieldRevenue:
		return KindCurrency
	case FieldEmployeeCount:
		return KindCount
	default:
		return KindYears
	}
}

// FilingEntry is one row of the EDINET day index.
type FilingEntry struct {
	DocID          string `json:"docID"`
	FilerName      string `json:"filerName"`
	DocTypeCode    string `json:"docTypeCode"`
	SecCode        string `json:"secCode"`
	SubmitDateTime string `json:"submitDateTime"`
}

// CandidateDocument is a filing matched to a tracked company during a scan.
type CandidateDocument struct {
	DocID          string
	CompanyKey     string
	FilerName      string
	DocTypeCode    string
	SubmissionDate time.Time
	SecCode        string
}

// SectionFile is one text/markup member of a filing archive.
type SectionFile struct {
	Name    string
	Content string
}

// ExtractedValue is one candidate fact pulled from a document before
// resolution and normalization. RawText is the literal numeral as it
// appeared; the iXBRL formatting attributes are empty for keyword-tier
// extractions except where the pattern itself implies a scale (万円).
type ExtractedValue struct {
	RawText    string
	ContextRef string
	UnitRef    string
	Scale      string
	Decimals   string
	Concept    string
	Keyword    string
	File       string
}
