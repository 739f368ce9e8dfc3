package edinet

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/JapSyu/crawler/pkg/models"
)

// extractionStrategy is one way of pulling candidate values for a field out
// of a section file. Strategies for a field run in a fixed order and the
// first one that yields a surviving result wins for that field-document pair.
type extractionStrategy interface {
	method() models.ExtractionMethod
	extract(sec SectionFile, field Field) []ExtractedValue
}

// fieldStrategies maps each field to its ordered strategy list. The
// structured tier always comes first; headcount and salary replace the
// generic keyword tier with their specialized routines because those
// numerals appear in too many table layouts for a single label pattern.
var fieldStrategies = map[Field][]extractionStrategy{
	FieldAvgTenure:     {conceptStrategy{}, keywordStrategy{}},
	FieldAvgAge:        {conceptStrategy{}, keywordStrategy{}},
	FieldAvgSalary:     {conceptStrategy{}, salaryStrategy{}},
	FieldEmployeeCount: {conceptStrategy{}, headcountStrategy{}},
	FieldRevenue:       {conceptStrategy{}},
}

// =============================================================================
// STRUCTURED-CONCEPT TIER
// =============================================================================

var (
	attrContextRef = regexp.MustCompile(`contextRef="([^"]*)"`)
	attrUnitRef    = regexp.MustCompile(`unitRef="([^"]*)"`)
	attrScale      = regexp.MustCompile(`scale="([^"]*)"`)
	attrDecimals   = regexp.MustCompile(`decimals="([^"]*)"`)

	conceptPatterns = map[string]*regexp.Regexp{}
)

func init() {
	for _, concepts := range fieldConcepts {
		for _, c := range concepts {
			conceptPatterns[c] = regexp.MustCompile(
				`<ix:nonFraction([^>]*name="` + regexp.QuoteMeta(c) + `"[^>]*)>([^<]+)</ix:nonFraction>`)
		}
	}
}

func attrValue(re *regexp.Regexp, attrs string) string {
	if m := re.FindStringSubmatch(attrs); m != nil {
		return m[1]
	}
	return ""
}

type conceptStrategy struct{}

func (conceptStrategy) method() models.ExtractionMethod { return models.MethodIXBRLConcept }

// extract scans for tagged occurrences of the field's known concept names,
// most qualified name first, and returns all occurrences of the first
// concept that matches. Literals that are not valid signed decimal numerals
// after separator stripping are discarded here.
func (conceptStrategy) extract(sec SectionFile, field Field) []ExtractedValue {
	for _, concept := range fieldConcepts[field] {
		matches := conceptPatterns[concept].FindAllStringSubmatch(sec.Content, -1)
		if len(matches) == 0 {
			continue
		}
		var out []ExtractedValue
		for _, m := range matches {
			attrs, literal := m[1], m[2]
			clean := strings.NewReplacer(",", "", " ", "", " ", "").Replace(literal)
			if !numeralPattern.MatchString(clean) {
				continue
			}
			out = append(out, ExtractedValue{
				RawText:    literal,
				ContextRef: attrValue(attrContextRef, attrs),
				UnitRef:    attrValue(attrUnitRef, attrs),
				Scale:      attrValue(attrScale, attrs),
				Decimals:   attrValue(attrDecimals, attrs),
				Concept:    concept,
				File:       sec.Name,
			})
		}
		if len(out) > 0 {
			return out
		}
	}
	return nil
}

// =============================================================================
// KEYWORD TIER (tenure, age)
// =============================================================================

type keywordStrategy struct{}

func (keywordStrategy) method() models.ExtractionMethod { return models.MethodKeywordRegex }

// keywordPattern builds the capture regex for a label keyword. Native-unit
// suffixes are required where the label implies them: a tenure figure must
// carry the 年 glyph and an age figure the 歳 glyph, so that an unrelated
// numeral between the label and the real value cannot be captured.
func keywordPattern(keyword string) *regexp.Regexp {
	quoted := regexp.QuoteMeta(keyword)
	switch {
	case strings.Contains(keyword, "平均勤続年数"):
		return regexp.MustCompile(quoted + `[^0-9]*?([0-9]+\.?[0-9]*)\s*年`)
	case strings.Contains(keyword, "平均年齢"):
		return regexp.MustCompile(quoted + `[^0-9]*?([0-9]+\.?[0-9]*)\s*歳`)
	default:
		return regexp.MustCompile(quoted + `[^0-9]*?([0-9]+\.?[0-9]*)`)
	}
}

func (keywordStrategy) extract(sec SectionFile, field Field) []ExtractedValue {
	for _, keyword := range fieldKeywords[field] {
		if !strings.Contains(sec.Content, keyword) {
			continue
		}
		if m := keywordPattern(keyword).FindStringSubmatch(sec.Content); m != nil {
			return []ExtractedValue{{
				RawText: m[1],
				Keyword: keyword,
				File:    sec.Name,
			}}
		}
	}
	return nil
}

// =============================================================================
// SPECIALIZED ROUTINES (salary, headcount)
// =============================================================================

type salaryStrategy struct{}

func (salaryStrategy) method() models.ExtractionMethod { return models.MethodKeywordRegex }

var salaryPatterns = []struct {
	re      *regexp.Regexp
	keyword string
	scale   string // implied by the unit glyph, composed by the normalizer
}{
	{regexp.MustCompile(`平均年間給与[^0-9]*?([0-9,]+)\s*円`), "平均年間給与", ""},
	{regexp.MustCompile(`AverageAnnualSalary[^0-9]*?([0-9,]+)`), "AverageAnnualSalary", ""},
	// 万円 denotes ten-thousand yen units.
	{regexp.MustCompile(`平均年間給与[^0-9]*?([0-9,]+)\s*万円`), "平均年間給与", "4"},
}

func (salaryStrategy) extract(sec SectionFile, _ Field) []ExtractedValue {
	for _, p := range salaryPatterns {
		if m := p.re.FindStringSubmatch(sec.Content); m != nil {
			return []ExtractedValue{{
				RawText: m[1],
				Keyword: p.keyword,
				Scale:   p.scale,
				File:    sec.Name,
			}}
		}
	}
	return nil
}

type headcountStrategy struct{}

func (headcountStrategy) method() models.ExtractionMethod { return models.MethodKeywordRegex }

// broadHeadcountFloor rejects sub-group rows captured by the broad pattern
// battery; the aggregate row is expected to be the largest figure.
const broadHeadcountFloor = 1000

var headcountPatterns = []*regexp.Regexp{
	// bare large numerals with the person-count unit
	regexp.MustCompile(`([0-9]{4,5}[,0-9]*)\s*人`),
	// total rows
	regexp.MustCompile(`合計[^0-9]*?([0-9,]+)\s*人`),
	regexp.MustCompile(`計[^0-9]*?([0-9,]+)\s*人`),
	// explicit label rows
	regexp.MustCompile(`従業員数[^0-9]*?([0-9,]+)\s*人`),
	regexp.MustCompile(`従業員[^0-9]*?([0-9,]+)\s*人`),
	regexp.MustCompile(`NumberOfEmployees[^0-9]*?([0-9,]+)`),
}

var nonDigits = regexp.MustCompile(`[^0-9]`)

// extract collects every match of the pattern battery across the section and
// keeps the single largest value above the plausibility floor. Employee
// counts appear in many table formats; the total row is reliably the largest.
func (headcountStrategy) extract(sec SectionFile, _ Field) []ExtractedValue {
	var best int64
	for _, re := range headcountPatterns {
		for _, m := range re.FindAllStringSubmatch(sec.Content, -1) {
			digits := nonDigits.ReplaceAllString(m[1], "")
			if digits == "" {
				continue
			}
			v, err := strconv.ParseInt(digits, 10, 64)
			if err != nil {
				continue
			}
			if v > best && v > broadHeadcountFloor {
				best = v
			}
		}
	}
	if best == 0 {
		return nil
	}
	return []ExtractedValue{{
		RawText: strconv.FormatInt(best, 10),
		Keyword: "従業員数",
		File:    sec.Name,
	}}
}
