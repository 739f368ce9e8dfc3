package edinet

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/JapSyu/crawler/pkg/models"
)

// Founding-year plausibility window. Nothing we track predates 1850.
const earliestPlausibleFoundingYear = 1850

// headerScanWindow limits fiscal-period and submission-date lookups to the
// top of the header section, where the cover-page fields live.
const headerScanWindow = 10000

var (
	nameLabelPatterns = []*regexp.Regexp{
		regexp.MustCompile(`【\s*会社名\s*】\s*([^\n]{2,60})`),
		regexp.MustCompile(`(?:会社名|商号|提出会社の名称)\s*[:：]?\s*([^\n]{2,60})`),
	}
	englishNamePattern = regexp.MustCompile(`(?:英訳名|英文社名)[^\nA-Za-z]*([A-Za-z][A-Za-z0-9&,\.\- ]{2,80})`)

	legalEntitySuffixes = []string{"株式会社", "合同会社", "有限会社"}

	// Address patterns, tried in order: prefecture-anchored with a
	// building-number glyph, then postal-code prefixed, then explicit label.
	prefectureNames = []string{
		"東京都", "大阪府", "京都府", "北海道",
		"神奈川県", "埼玉県", "千葉県", "愛知県", "兵庫県", "福岡県",
		"静岡県", "広島県", "宮城県", "茨城県", "新潟県", "長野県", "岡山県", "熊本県",
	}
	postalAddressPattern = regexp.MustCompile(`〒\s*[0-9]{3}[-－]?[0-9]{4}\s*([^\n<]{5,80})`)
	addressLabelPattern  = regexp.MustCompile(`(?:本店の所在の場所|本社所在地|本店所在地)\s*[:：]?\s*([^\n<]{5,80})`)

	secCodePatterns = []*regexp.Regexp{
		regexp.MustCompile(`証券コード[^0-9]{0,15}([0-9]{4})(?:[^0-9]|$)`),
		regexp.MustCompile(`コード番号[^0-9]{0,15}([0-9]{4})(?:[^0-9]|$)`),
		regexp.MustCompile(`銘柄コード[^0-9]{0,15}([0-9]{4})(?:[^0-9]|$)`),
	}

	submissionDatePattern = regexp.MustCompile(`提出日[^0-9]*?([0-9]{4})年`)
	fiscalPeriodPattern   = regexp.MustCompile(`第\s*([0-9]+)\s*期`)
	filenameDatePattern   = regexp.MustCompile(`([0-9]{4})-[0-9]{2}-[0-9]{2}`)
	foundedLabelPattern   = regexp.MustCompile(`(?:設立|創立|創業)[^0-9]{0,15}([12][0-9]{3})年`)

	bracketStripper = strings.NewReplacer("【", "", "】", "", "（", "", "）", "", "(", "", ")", "", "「", "", "」", "")
)

var prefecturePatterns []*regexp.Regexp

func init() {
	for _, p := range prefectureNames {
		// Anchored on the prefecture name, requiring a trailing
		// building-number glyph so that prose mentions do not match.
		prefecturePatterns = append(prefecturePatterns, regexp.MustCompile(
			regexp.QuoteMeta(p)+`[^\s<>。、]{2,40}[0-9０-９][0-9０-９\-－ー]*(?:号|番地|番)`))
	}
}

// stripMarkup reduces an HTML fragment to its readable text.
func stripMarkup(s string) string {
	if !strings.Contains(s, "<") {
		return strings.TrimSpace(s)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(doc.Text())
}

func hasLegalEntitySuffix(name string) bool {
	for _, s := range legalEntitySuffixes {
		if strings.Contains(name, s) {
			return true
		}
	}
	return false
}

// ExtractCompanyName pulls the filer's legal name from a text block.
// Markup and bracket punctuation are stripped and spurious short matches
// rejected.
func ExtractCompanyName(text string) (string, bool) {
	for _, re := range nameLabelPatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		name := strings.TrimSpace(bracketStripper.Replace(stripMarkup(m[1])))
		if len([]rune(name)) < 4 || !hasLegalEntitySuffix(name) {
			continue
		}
		return name, true
	}
	return "", false
}

// ExtractEnglishName pulls the registered English transliteration, if any.
func ExtractEnglishName(text string) (string, bool) {
	if m := englishNamePattern.FindStringSubmatch(text); m != nil {
		name := strings.TrimSpace(m[1])
		if len(name) >= 3 {
			return name, true
		}
	}
	return "", false
}

// ExtractHeadquarters finds the head-office address. Prefecture-specific
// patterns run first, then postal-code prefixed addresses, then the labeled
// head-office field; the first address-shaped hit wins.
func ExtractHeadquarters(text string) (string, bool) {
	for _, re := range prefecturePatterns {
		if m := re.FindString(text); m != "" {
			if addr := strings.TrimSpace(m); addressShaped(addr) {
				return addr, true
			}
		}
	}
	if m := postalAddressPattern.FindStringSubmatch(text); m != nil {
		if addr := strings.TrimSpace(m[1]); addressShaped(addr) {
			return addr, true
		}
	}
	if m := addressLabelPattern.FindStringSubmatch(text); m != nil {
		if addr := strings.TrimSpace(stripMarkup(m[1])); addressShaped(addr) {
			return addr, true
		}
	}
	return "", false
}

func addressShaped(addr string) bool {
	return len([]rune(addr)) >= 8 && !strings.ContainsAny(addr, "<>")
}

// ExtractSecCode finds the 4-digit securities code after a known label.
func ExtractSecCode(text string) (string, bool) {
	for _, re := range secCodePatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			if len(m[1]) == 4 {
				return m[1], true
			}
		}
	}
	return "", false
}

// ComputeFoundedYear derives the founding year from the reference year and
// the fiscal period ordinal. The Nth period means the company is in its Nth
// reporting year, so founded = reference − N + 1. Results outside
// [1850, reference] are rejected.
func ComputeFoundedYear(referenceYear, periodOrdinal int) (int, bool) {
	founded := referenceYear - periodOrdinal + 1
	if founded < earliestPlausibleFoundingYear || founded > referenceYear {
		return 0, false
	}
	return founded, true
}

// referenceYearFor establishes the submission reference year: the explicit
// 提出日 label wins, then the trailing date segment of the source filename,
// then the caller-supplied submission year.
func referenceYearFor(headerText, filename string, submissionYear int) int {
	if m := submissionDatePattern.FindStringSubmatch(headerText); m != nil {
		if y, err := strconv.Atoi(m[1]); err == nil {
			return y
		}
	}
	if ms := filenameDatePattern.FindAllStringSubmatch(filename, -1); len(ms) > 0 {
		if y, err := strconv.Atoi(ms[len(ms)-1][1]); err == nil {
			return y
		}
	}
	return submissionYear
}

// foundedFromFiscalPeriod is the primary founding-year method: fiscal-period
// arithmetic against the header's 第N期 ordinal. It is authoritative when
// available because the ordinal is always printed on the cover page, while
// explicit founding mentions are sparse and sometimes refer to a predecessor
// entity's re-incorporation.
func foundedFromFiscalPeriod(header SectionFile, submissionYear int) (int, bool) {
	window := header.Content
	if len(window) > headerScanWindow {
		window = window[:headerScanWindow]
	}
	m := fiscalPeriodPattern.FindStringSubmatch(window)
	if m == nil {
		return 0, false
	}
	ordinal, err := strconv.Atoi(m[1])
	if err != nil || ordinal < 1 {
		return 0, false
	}
	ref := referenceYearFor(window, header.Name, submissionYear)
	return ComputeFoundedYear(ref, ordinal)
}

// foundedFromFullText scans every section for explicit founding labels and
// keeps the earliest plausible year: the true incorporation should predate
// any later reorganization mention.
func foundedFromFullText(sections []SectionFile, submissionYear int) (int, string, bool) {
	type hit struct {
		year int
		file string
	}
	var hits []hit
	for _, sec := range sections {
		for _, m := range foundedLabelPattern.FindAllStringSubmatch(sec.Content, -1) {
			y, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			if y >= earliestPlausibleFoundingYear && y <= submissionYear {
				hits = append(hits, hit{y, sec.Name})
			}
		}
	}
	if len(hits) == 0 {
		return 0, "", false
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].year < hits[j].year })
	return hits[0].year, hits[0].file, true
}

// ExtractBasicFacts builds the company identity facts from the structured
// header (when present) and the full-text sections, preferring header-derived
// values field by field.
func ExtractBasicFacts(header *SectionFile, sections []SectionFile, submissionYear int) (models.CompanyBasicFacts, map[string]models.Provenance) {
	basic := models.CompanyBasicFacts{}
	prov := make(map[string]models.Provenance)

	sources := make([]struct {
		sec    SectionFile
		method models.ExtractionMethod
	}, 0, len(sections)+1)
	if header != nil {
		sources = append(sources, struct {
			sec    SectionFile
			method models.ExtractionMethod
		}{*header, models.MethodHeaderRegex})
	}
	for _, sec := range sections {
		sources = append(sources, struct {
			sec    SectionFile
			method models.ExtractionMethod
		}{sec, models.MethodKeywordRegex})
	}

	for _, src := range sources {
		if basic.Name == "" {
			if name, ok := ExtractCompanyName(src.sec.Content); ok {
				basic.Name = name
				prov["name"] = models.Provenance{File: src.sec.Name, Method: src.method, Keyword: "会社名"}
			}
		}
		if basic.NameEN == "" {
			if name, ok := ExtractEnglishName(src.sec.Content); ok {
				basic.NameEN = name
				prov["nameEn"] = models.Provenance{File: src.sec.Name, Method: src.method, Keyword: "英訳名"}
			}
		}
		if basic.Headquarters == "" {
			if addr, ok := ExtractHeadquarters(src.sec.Content); ok {
				basic.Headquarters = addr
				prov["headquarters"] = models.Provenance{File: src.sec.Name, Method: src.method}
			}
		}
		if basic.SecCode == "" {
			if code, ok := ExtractSecCode(src.sec.Content); ok {
				basic.SecCode = code
				prov["secCode"] = models.Provenance{File: src.sec.Name, Method: src.method, Keyword: "証券コード"}
			}
		}
	}

	if header != nil {
		if year, ok := foundedFromFiscalPeriod(*header, submissionYear); ok {
			basic.FoundedYear = &year
			prov["foundedYear"] = models.Provenance{File: header.Name, Method: models.MethodFiscalPeriod}
		}
	}
	if basic.FoundedYear == nil {
		if year, file, ok := foundedFromFullText(sections, submissionYear); ok {
			basic.FoundedYear = &year
			prov["foundedYear"] = models.Provenance{File: file, Method: models.MethodFoundedLabel}
		}
	}

	return basic, prov
}
