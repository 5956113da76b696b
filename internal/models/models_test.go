package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLink(t *testing.T) {
	tests := []struct {
		link  Link
		dir   string
		base  string
		local string
	}{
		{"http://example.com/docs/Abbott House.pdf", "data", "Abbott House.pdf", "data/Abbott_House.pdf"},
		{"http://example.com/docs/plain.pdf", "my data", "plain.pdf", "my_data/plain.pdf"},
		{"relative.pdf", "data", "relative.pdf", "data/relative.pdf"},
		{"http://example.com/docs/", "data", "", "data"},
	}

	for _, tt := range tests {
		t.Run(string(tt.link), func(t *testing.T) {
			assert.Equal(t, tt.base, tt.link.BaseName())
			assert.Equal(t, tt.local, tt.link.LocalPath(tt.dir))
		})
	}
}

func TestValueString(t *testing.T) {
	tests := []struct {
		value Value
		want  string
	}{
		{Null(), ""},
		{FloatValue(0), "0.0"},
		{FloatValue(1234), "1234.0"},
		{FloatValue(37.25), "37.25"},
		{FloatValue(math.Inf(1)), "+Inf"},
		{IntValue(0), "0"},
		{TextValue("125430"), "125430"},
		{TextValue(""), ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.value.String())
	}
	assert.True(t, Null().IsNull())
	assert.False(t, TextValue("").IsNull())
}

func TestRecord(t *testing.T) {
	r := NewRecord("a.xml")
	for _, f := range ExtractedFields {
		assert.True(t, r.Get(f).IsNull(), f)
	}

	r.Set(FieldMedicare, TextValue("10"))
	r.Set(FieldMedicare, IntValue(0))
	r.Set(Field("unknown"), TextValue("ignored"))

	assert.Equal(t, IntValue(0), r.Get(FieldMedicare))
	assert.Equal(t, TextValue("a.xml"), r.Get(FieldFileName))
	assert.Equal(t, []string{"a.xml", "", "", "", "", "", "0", "", ""}, r.Row())
	assert.Len(t, r.Columns(), len(r.Row()))

	var zero Record
	zero.Set(FieldRNHours, FloatValue(1))
	assert.Equal(t, FloatValue(1), zero.Get(FieldRNHours))
}

func TestSequenceText(t *testing.T) {
	seq := Sequence{{Text: "a", Valid: true}, {}}

	text, ok := seq.Text(0)
	assert.True(t, ok)
	assert.Equal(t, "a", text)

	for _, i := range []int{-1, 1, 2} {
		_, ok := seq.Text(i)
		assert.False(t, ok, i)
	}
}
