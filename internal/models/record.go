package models

import (
	"strconv"
	"strings"
)

type Field string

const (
	FieldFileName     Field = "fname"
	FieldRNHours      Field = "rn_hours"
	FieldRNWage       Field = "rn_wage"
	FieldTotalHours   Field = "total_hours"
	FieldLicenseID    Field = "idph_id"
	FieldFacilityName Field = "facility_name"
	FieldMedicare     Field = "medicare"
	FieldMedicaid     Field = "medicaid"
	FieldPrivatePay   Field = "private_pay"
)

// ExtractedFields lists the fields filled by label rules, in column order.
var ExtractedFields = []Field{
	FieldRNHours,
	FieldRNWage,
	FieldTotalHours,
	FieldLicenseID,
	FieldFacilityName,
	FieldMedicare,
	FieldMedicaid,
	FieldPrivatePay,
}

type Kind int

const (
	KindNull Kind = iota
	KindFloat
	KindInt
	KindText
)

// Value is a nullable scalar. Revenue fields mix Int zeros with Text
// amounts, which downstream consumers of the CSV already expect.
type Value struct {
	Kind  Kind
	Float float64
	Int   int64
	Text  string
}

func Null() Value { return Value{} }
func FloatValue(f float64) Value { return Value{Kind: KindFloat, Float: f} }
func IntValue(i int64) Value { return Value{Kind: KindInt, Int: i} }
func TextValue(s string) Value { return Value{Kind: KindText, Text: s} }

func (v Value) IsNull() bool { return v.Kind == KindNull }

// String renders the value as a CSV cell. Null is the empty string and
// integral floats keep a trailing ".0".
func (v Value) String() string {
	switch v.Kind {
	case KindFloat:
		s := strconv.FormatFloat(v.Float, 'f', -1, 64)
		if !strings.ContainsAny(s, ".NI") {
			s += ".0"
		}
		return s
	case KindInt:
		return strconv.FormatInt(v.Int, 10)
	case KindText:
		return v.Text
	default:
		return ""
	}
}

// Record holds the values extracted from one document.
type Record struct {
	FileName string
	values   map[Field]Value
}

func NewRecord(fileName string) Record {
	return Record{
		FileName: fileName,
		values:   make(map[Field]Value, len(ExtractedFields)),
	}
}

// Get returns the value of f, Null when nothing was assigned.
func (r Record) Get(f Field) Value {
	if f == FieldFileName {
		return TextValue(r.FileName)
	}
	return r.values[f]
}

// Set assigns v to f. Unknown fields are ignored.
func (r *Record) Set(f Field, v Value) {
	if f == FieldFileName {
		r.FileName = v.String()
		return
	}
	if !isExtracted(f) {
		return
	}
	if r.values == nil {
		r.values = make(map[Field]Value, len(ExtractedFields))
	}
	r.values[f] = v
}

// Columns returns the column names in declaration order.
func (r Record) Columns() []string {
	cols := make([]string, 0, len(ExtractedFields)+1)
	cols = append(cols, string(FieldFileName))
	for _, f := range ExtractedFields {
		cols = append(cols, string(f))
	}
	return cols
}

// Row returns the rendered values in Columns order.
func (r Record) Row() []string {
	row := make([]string, 0, len(ExtractedFields)+1)
	row = append(row, r.FileName)
	for _, f := range ExtractedFields {
		row = append(row, r.Get(f).String())
	}
	return row
}

func isExtracted(f Field) bool {
	for _, e := range ExtractedFields {
		if e == f {
			return true
		}
	}
	return false
}
