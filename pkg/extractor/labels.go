package extractor

// Label names a row of the cost report form that carries a value.
type Label string

const (
	LabelRegisteredNurses  Label = "registered_nurses"
	LabelTotals            Label = "totals"
	LabelLicenseID         Label = "license_id"
	LabelFacilityName      Label = "facility_name"
	LabelMedicaidRevenue   Label = "medicaid_revenue"
	LabelPrivatePayRevenue Label = "private_pay_revenue"
	LabelMedicareRevenue   Label = "medicare_revenue"
)

// DefaultSpellings lists the literal texts each label has been seen with in
// converted reports. OCR variants are additional entries, not new rules.
var DefaultSpellings = map[Label][]string{
	LabelRegisteredNurses:  {"Registered Nurses", "3 Registered Nurses"},
	LabelTotals:            {"14 TOTALS"},
	LabelLicenseID:         {"IDPH License ID Number:"},
	LabelFacilityName:      {"Facility Name:"},
	LabelMedicaidRevenue:   {"Medicaid - Net Inpatient Revenue"},
	LabelPrivatePayRevenue: {"Private Pay - Net Inpatient Revenue"},
	LabelMedicareRevenue:   {"Medicare - Net Inpatient Revenue"},
}

// Form constants read around the labels.
const (
	// rnEmptyRow is the printed row number of the RN line; seen right after
	// the label it means the row was left blank.
	rnEmptyRow = "3"

	// rnWageOffset is the distance from the RN label to the hourly wage.
	rnWageOffset = 4

	totalsRowNumber  = "14"
	occupancyCaption = "C. Percent Occupancy. (Column 5, line 14 divided by total licensed"

	currencyMarker = "$"

	medicaidLineCode   = "44"
	privatePayLineCode = "45"
	medicareLineCode   = "46"
)
