package edinet

// Concept names for the structured tier, per field, most qualified first.
// The extractor stops at the first concept that yields any tagged value, so
// order encodes specificity.
var fieldConcepts = map[Field][]string{
	FieldAvgTenure: {
		"jpcrp_cor:AverageLengthOfServiceYearsInformationAboutReportingCompanyInformationAboutEmployees",
		"jpcrp_cor:AverageLengthOfServiceYearsInformationOfReportingCompanyInformation",
		"jpcrp_cor:AverageLengthOfServiceYears",
	},
	FieldAvgAge: {
		"jpcrp_cor:AverageAgeYearsInformationAboutReportingCompanyInformationAboutEmployees",
		"jpcrp_cor:AverageAgeYearsInformationOfReportingCompanyInformation",
		"jpcrp_cor:AverageAgeYears",
		"jpcrp_cor:AverageAge",
	},
	FieldAvgSalary: {
		"jpcrp_cor:AverageAnnualSalaryInformationAboutReportingCompanyInformationAboutEmployees",
		"jpcrp_cor:AverageAnnualSalaryInformationOfReportingCompanyInformation",
		"jpcrp_cor:AverageAnnualSalary",
	},
	FieldEmployeeCount: {
		"jpcrp_cor:NumberOfEmployees",
		"jpcrp_cor:AverageNumberOfEmployees",
	},
	FieldRevenue: {
		"jpcrp_cor:NetSalesSummaryOfBusinessResults",
		"jppfs_cor:NetSales",
		"jppfs_cor:OperatingRevenues",
	},
}

// Label keywords for the fallback tier. Native labels first, then the bare
// taxonomy name as it sometimes appears in transformed text.
var fieldKeywords = map[Field][]string{
	FieldAvgTenure:     {"平均勤続年数", "AverageLengthOfServiceYears"},
	FieldAvgAge:        {"平均年齢", "AverageAgeYears"},
	FieldAvgSalary:     {"平均年間給与", "AverageAnnualSalary"},
	FieldEmployeeCount: {"従業員数", "NumberOfEmployees"},
}

// employeeSectionMarker gates HR-field extraction to sections that actually
// contain the workforce chapter of the report.
const employeeSectionMarker = "従業員の状況"
