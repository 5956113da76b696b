package extractor

import (
	"strconv"
	"strings"

	"github.com/xhad/ltcc/internal/models"
)

// Assignment sets one record field.
type Assignment struct {
	Field models.Field
	Value models.Value
}

// Rule reads the value(s) for a label matched at index i. A false result
// means the rule found nothing usable and the record is left unchanged.
type Rule func(seq models.Sequence, i int) ([]Assignment, bool)

// DefaultRules maps every label to its rule.
var DefaultRules = map[Label]Rule{
	LabelRegisteredNurses:  registeredNurses,
	LabelTotals:            totalHours,
	LabelLicenseID:         licenseID,
	LabelFacilityName:      facilityName,
	LabelMedicaidRevenue:   revenue(models.FieldMedicaid, medicaidLineCode),
	LabelPrivatePayRevenue: revenue(models.FieldPrivatePay, privatePayLineCode),
	LabelMedicareRevenue:   revenue(models.FieldMedicare, medicareLineCode),
}

// The next node holds RN hours, or the row number when the row is empty.
// The hourly wage sits rnWageOffset nodes after the label.
func registeredNurses(seq models.Sequence, i int) ([]Assignment, bool) {
	next, ok := number(seq, i+1)
	if !ok {
		return nil, false
	}
	if next == rnEmptyRow {
		return []Assignment{
			{models.FieldRNHours, models.FloatValue(0)},
			{models.FieldRNWage, models.FloatValue(0)},
		}, true
	}

	hours, ok := parseFloat(next)
	if !ok {
		return nil, false
	}
	wage, ok := seq.Text(i + rnWageOffset)
	if !ok {
		return nil, false
	}
	rate, ok := parseFloat(wage)
	if !ok {
		return nil, false
	}
	return []Assignment{
		{models.FieldRNHours, models.FloatValue(hours)},
		{models.FieldRNWage, models.FloatValue(rate)},
	}, true
}

// The total sits just before the row number "14" that closes the totals
// row, or before the occupancy caption when the row number was lost.
func totalHours(seq models.Sequence, i int) ([]Assignment, bool) {
	for j := i + 1; ; j++ {
		t, ok := seq.Text(j)
		if !ok {
			return nil, false
		}
		t = strings.TrimSpace(t)
		if t != totalsRowNumber && t != occupancyCaption {
			continue
		}

		prev, ok := number(seq, j-1)
		if !ok {
			return nil, false
		}
		total, ok := parseFloat(prev)
		if !ok {
			return nil, false
		}
		return []Assignment{{models.FieldTotalHours, models.FloatValue(total)}}, true
	}
}

func licenseID(seq models.Sequence, i int) ([]Assignment, bool) {
	id, ok := number(seq, i+1)
	if !ok {
		return nil, false
	}
	return []Assignment{{models.FieldLicenseID, models.TextValue(id)}}, true
}

func facilityName(seq models.Sequence, i int) ([]Assignment, bool) {
	name, ok := seq.Text(i + 1)
	if !ok {
		return nil, false
	}
	return []Assignment{{models.FieldFacilityName, models.TextValue(name)}}, true
}

// revenue builds the rule for one revenue row. A row left blank prints only
// its line code, optionally after a "$". Amounts stay text.
func revenue(field models.Field, lineCode string) Rule {
	return func(seq models.Sequence, i int) ([]Assignment, bool) {
		next, ok := number(seq, i+1)
		if !ok {
			return nil, false
		}

		value := next
		if next == currencyMarker {
			if value, ok = number(seq, i+2); !ok {
				return nil, false
			}
		}

		if value == lineCode {
			return []Assignment{{field, models.IntValue(0)}}, true
		}
		return []Assignment{{field, models.TextValue(value)}}, true
	}
}

// number is the text at i with thousands separators removed.
func number(seq models.Sequence, i int) (string, bool) {
	t, ok := seq.Text(i)
	if !ok {
		return "", false
	}
	return strings.ReplaceAll(t, ",", ""), true
}

func parseFloat(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
