package models

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"
)

func TestCompanyReportRoundTrip(t *testing.T) {
	tenure := 4.2
	salary := int64(9683000)
	founded := 2013
	count := int64(2562)

	report := CompanyReport{
		CompanyKey:  "mercari",
		RunID:       "run-1",
		CollectedAt: time.Date(2025, 6, 20, 12, 0, 0, 0, time.UTC),
		Basic: CompanyBasicFacts{
			Name:          "株式会社メルカリ",
			NameEN:        "Mercari, Inc.",
			Headquarters:  "東京都港区六本木六丁目10番1号",
			FoundedYear:   &founded,
			SecCode:       "4385",
			EmployeeCount: &count,
		},
		HR: CompanyHRFacts{
			AvgTenureYears:     &tenure,
			AvgAnnualSalaryJPY: &salary,
		},
		Provenance: map[string]Provenance{
			"avgTenureYears": {File: "honbun.htm", Method: MethodIXBRLConcept, ContextRef: "CurrentYearInstant"},
			"name":           {File: "header.htm", Method: MethodHeaderRegex},
		},
		SourceDocuments: []SourceDocument{{
			DocID:          "S100TEST",
			DocTypeCode:    "120",
			FilerName:      "株式会社メルカリ",
			SubmissionDate: time.Date(2025, 6, 20, 15, 1, 0, 0, time.UTC),
		}},
		Warnings: []string{"page fetch failed for https://example.com: timeout"},
	}

	data, err := json.Marshal(report)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var loaded CompanyReport
	if err := json.Unmarshal(data, &loaded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if !reflect.DeepEqual(report, loaded) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", loaded, report)
	}
}

func TestAbsentFieldsStayAbsent(t *testing.T) {
	report := CompanyReport{CompanyKey: "mercari", CollectedAt: time.Now().UTC()}
	data, err := json.Marshal(report)
	if err != nil {
		t.Fatal(err)
	}
	var loaded CompanyReport
	if err := json.Unmarshal(data, &loaded); err != nil {
		t.Fatal(err)
	}
	if loaded.HR.AvgTenureYears != nil || loaded.Basic.FoundedYear != nil {
		t.Error("expected optional fields to stay nil")
	}
	if loaded.HasProvenanceFor("avgTenureYears") {
		t.Error("expected no provenance entries")
	}
}
