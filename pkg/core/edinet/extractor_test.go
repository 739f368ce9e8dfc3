package edinet

import (
	"testing"

	"github.com/JapSyu/crawler/pkg/models"
)

func section(content string) SectionFile {
	return SectionFile{Name: "0101010_honbun_test_ixbrl.htm", Content: content}
}

func TestConceptTierBeatsKeywordTier(t *testing.T) {
	content := `従業員の状況
<ix:nonFraction contextRef="CurrentYearInstant" name="jpcrp_cor:AverageLengthOfServiceYears" decimals="1">8.5</ix:nonFraction>
平均勤続年数 99.9 年`
	r, ok := ExtractField([]SectionFile{section(content)}, FieldAvgTenure)
	if !ok {
		t.Fatal("expected a result")
	}
	if r.Value.Float != 8.5 {
		t.Errorf("expected tagged value 8.5, got %v", r.Value.Float)
	}
	if r.Provenance.Method != models.MethodIXBRLConcept {
		t.Errorf("expected concept provenance, got %s", r.Provenance.Method)
	}
}

func TestKeywordTierWhenNoTag(t *testing.T) {
	content := `従業員の状況 平均勤続年数 8.5 年 平均年齢 35.2 歳`
	r, ok := ExtractField([]SectionFile{section(content)}, FieldAvgTenure)
	if !ok {
		t.Fatal("expected a result")
	}
	if r.Value.Float != 8.5 {
		t.Errorf("expected 8.5, got %v", r.Value.Float)
	}
	if r.Provenance.Method != models.MethodKeywordRegex {
		t.Errorf("expected keyword provenance, got %s", r.Provenance.Method)
	}
}

func TestTenurePatternRequiresYearSuffix(t *testing.T) {
	// A numeral without the 年 suffix is not a tenure value.
	content := `従業員の状況 平均勤続年数 8.5`
	if _, ok := ExtractField([]SectionFile{section(content)}, FieldAvgTenure); ok {
		t.Error("expected no capture without the unit glyph")
	}
}

func TestTenurePatternSkipsNonNumericNoise(t *testing.T) {
	content := `従業員の状況 平均勤続年数 （注） 8.5 年`
	r, ok := ExtractField([]SectionFile{section(content)}, FieldAvgTenure)
	if !ok {
		t.Fatal("expected a result")
	}
	if r.Value.Float != 8.5 {
		t.Errorf("expected 8.5, got %v", r.Value.Float)
	}
}

func TestHRFieldsRequireWorkforceChapter(t *testing.T) {
	content := `平均勤続年数 8.5 年`
	if _, ok := ExtractField([]SectionFile{section(content)}, FieldAvgTenure); ok {
		t.Error("expected no result from a section without the workforce chapter")
	}
}

func TestRevenueDoesNotRequireWorkforceChapter(t *testing.T) {
	content := `<ix:nonFraction contextRef="CurrentYearDuration" unitRef="JPY" name="jppfs_cor:NetSales" scale="6">170,464</ix:nonFraction>`
	r, ok := ExtractField([]SectionFile{section(content)}, FieldRevenue)
	if !ok {
		t.Fatal("expected a result")
	}
	if r.Value.Int != 170464000000 {
		t.Errorf("expected 170464000000, got %d", r.Value.Int)
	}
}

func TestSalaryManYenScale(t *testing.T) {
	content := `従業員の状況 平均年間給与 734 万円`
	r, ok := ExtractField([]SectionFile{section(content)}, FieldAvgSalary)
	if !ok {
		t.Fatal("expected a result")
	}
	if r.Value.Int != 7340000 {
		t.Errorf("expected 7340000 yen, got %d", r.Value.Int)
	}
}

func TestSalaryPlainYen(t *testing.T) {
	content := `従業員の状況 平均年間給与 9,683,000 円`
	r, ok := ExtractField([]SectionFile{section(content)}, FieldAvgSalary)
	if !ok {
		t.Fatal("expected a result")
	}
	if r.Value.Int != 9683000 {
		t.Errorf("expected 9683000, got %d", r.Value.Int)
	}
}

func TestHeadcountBatteryKeepsLargest(t *testing.T) {
	// Sub-group rows must lose to the aggregate row.
	content := `従業員の状況
国内事業 1,205 人
海外事業 1,530 人
合計 2,735 人`
	r, ok := ExtractField([]SectionFile{section(content)}, FieldEmployeeCount)
	if !ok {
		t.Fatal("expected a result")
	}
	if r.Value.Int != 2735 {
		t.Errorf("expected the aggregate 2735, got %d", r.Value.Int)
	}
}

func TestHeadcountBroadFloor(t *testing.T) {
	// Everything at or below the broad floor is a sub-group figure.
	content := `従業員の状況 合計 950 人`
	if _, ok := ExtractField([]SectionFile{section(content)}, FieldEmployeeCount); ok {
		t.Error("expected no result below the broad plausibility floor")
	}
}

func TestHeadcountTaggedFloor(t *testing.T) {
	// A tagged count at or below 100 is a stray row; the specialized
	// routine takes over and the larger total wins.
	content := `従業員の状況
<ix:nonFraction contextRef="CurrentYearInstant" name="jpcrp_cor:NumberOfEmployees">85</ix:nonFraction>
合計 2,562 人`
	r, ok := ExtractField([]SectionFile{section(content)}, FieldEmployeeCount)
	if !ok {
		t.Fatal("expected a result")
	}
	if r.Value.Int != 2562 {
		t.Errorf("expected 2562 from the fallback routine, got %d", r.Value.Int)
	}
}

func TestConceptOrderMostQualifiedFirst(t *testing.T) {
	content := `従業員の状況
<ix:nonFraction contextRef="CurrentYearInstant" name="jpcrp_cor:AverageAgeYears">41.0</ix:nonFraction>
<ix:nonFraction contextRef="CurrentYearInstant" name="jpcrp_cor:AverageAgeYearsInformationAboutReportingCompanyInformationAboutEmployees">35.2</ix:nonFraction>`
	r, ok := ExtractField([]SectionFile{section(content)}, FieldAvgAge)
	if !ok {
		t.Fatal("expected a result")
	}
	if r.Value.Float != 35.2 {
		t.Errorf("expected the qualified concept to win, got %v", r.Value.Float)
	}
}

func TestMalformedTaggedValueFallsThrough(t *testing.T) {
	// A non-numeric literal in the tag is dropped and the keyword tier
	// still produces the value.
	content := `従業員の状況
<ix:nonFraction contextRef="CurrentYearInstant" name="jpcrp_cor:AverageLengthOfServiceYears">非開示</ix:nonFraction>
平均勤続年数 8.5 年`
	r, ok := ExtractField([]SectionFile{section(content)}, FieldAvgTenure)
	if !ok {
		t.Fatal("expected a result")
	}
	if r.Value.Float != 8.5 {
		t.Errorf("expected the keyword tier value, got %v", r.Value.Float)
	}
}

func TestExtractDocumentFactsProvenance(t *testing.T) {
	content := `従業員の状況
<ix:nonFraction contextRef="CurrentYearInstant" name="jpcrp_cor:AverageLengthOfServiceYears">8.5</ix:nonFraction>
平均年齢 35.2 歳
合計 2,562 人`
	facts := ExtractDocumentFacts([]SectionFile{section(content)})

	if facts.HR.AvgTenureYears == nil || *facts.HR.AvgTenureYears != 8.5 {
		t.Error("expected tenure 8.5")
	}
	if facts.HR.AvgAgeYears == nil || *facts.HR.AvgAgeYears != 35.2 {
		t.Error("expected age 35.2")
	}
	if facts.EmployeeCount == nil || *facts.EmployeeCount != 2562 {
		t.Error("expected employee count 2562")
	}
	// Every populated field carries provenance; absent fields carry none.
	for _, field := range []Field{FieldAvgTenure, FieldAvgAge, FieldEmployeeCount} {
		if _, ok := facts.Provenance[string(field)]; !ok {
			t.Errorf("missing provenance for %s", field)
		}
	}
	if _, ok := facts.Provenance[string(FieldAvgSalary)]; ok {
		t.Error("unexpected provenance for an absent field")
	}
	if facts.HR.AvgAnnualSalaryJPY != nil {
		t.Error("expected nil salary, not a zero stand-in")
	}
}
