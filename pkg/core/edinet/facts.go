package edinet

import (
	"log"
	"strings"

	"github.com/JapSyu/crawler/pkg/models"
)

// taggedHeadcountFloor rejects implausibly small counts coming out of the
// structured tier (a stray segment row or a unit-level figure).
const taggedHeadcountFloor = 100

// FieldResult is one accepted fact with its provenance.
type FieldResult struct {
	Value      NormalizedValue
	Provenance models.Provenance
}

// ExtractField runs the field's strategy list over the document sections and
// returns the first candidate that survives resolution, normalization and
// plausibility checks. HR fields only consider sections that contain the
// workforce chapter.
func ExtractField(sections []SectionFile, field Field) (FieldResult, bool) {
	needsMarker := field != FieldRevenue

	for _, sec := range sections {
		if needsMarker && !strings.Contains(sec.Content, employeeSectionMarker) {
			continue
		}
		for _, strat := range fieldStrategies[field] {
			candidates := strat.extract(sec, field)
			if len(candidates) == 0 {
				continue
			}
			best, ok := SelectBest(candidates)
			if !ok {
				continue
			}
			nv, err := Normalize(best, field)
			if err != nil {
				log.Printf("Warning: %s: %v, trying next strategy", field, err)
				continue
			}
			if field == FieldEmployeeCount && nv.Int <= taggedHeadcountFloor {
				log.Printf("Warning: implausible employee count %d in %s, trying next strategy", nv.Int, sec.Name)
				continue
			}
			return FieldResult{
				Value: nv,
				Provenance: models.Provenance{
					File:       best.File,
					Method:     strat.method(),
					Concept:    best.Concept,
					Keyword:    best.Keyword,
					ContextRef: best.ContextRef,
					UnitRef:    best.UnitRef,
					Scale:      best.Scale,
				},
			}, true
		}
	}
	return FieldResult{}, false
}

// DocumentFacts are the numeric facts extracted from one filing.
type DocumentFacts struct {
	HR            models.CompanyHRFacts
	EmployeeCount *int64
	RevenueJPY    *int64
	Provenance    map[string]models.Provenance
}

// ExtractDocumentFacts pulls every tracked numeric field out of the filing's
// full-text sections. Fields that no tier can produce stay nil; their absence
// from the provenance map is the record of the miss.
func ExtractDocumentFacts(sections []SectionFile) DocumentFacts {
	facts := DocumentFacts{Provenance: make(map[string]models.Provenance)}

	if r, ok := ExtractField(sections, FieldAvgTenure); ok {
		v := r.Value.Float
		facts.HR.AvgTenureYears = &v
		facts.Provenance[string(FieldAvgTenure)] = r.Provenance
	}
	if r, ok := ExtractField(sections, FieldAvgAge); ok {
		v := r.Value.Float
		facts.HR.AvgAgeYears = &v
		facts.Provenance[string(FieldAvgAge)] = r.Provenance
	}
	if r, ok := ExtractField(sections, FieldAvgSalary); ok {
		v := r.Value.Int
		facts.HR.AvgAnnualSalaryJPY = &v
		facts.Provenance[string(FieldAvgSalary)] = r.Provenance
	}
	if r, ok := ExtractField(sections, FieldEmployeeCount); ok {
		v := r.Value.Int
		facts.EmployeeCount = &v
		facts.Provenance[string(FieldEmployeeCount)] = r.Provenance
	}
	if r, ok := ExtractField(sections, FieldRevenue); ok {
		v := r.Value.Int
		facts.RevenueJPY = &v
		facts.Provenance[string(FieldRevenue)] = r.Provenance
	}

	return facts
}
