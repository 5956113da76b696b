package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xhad/ltcc/internal/models"
)

func sampleRecords() []models.Record {
	a := models.NewRecord("a.xml")
	a.Set(models.FieldRNHours, models.FloatValue(4160))
	a.Set(models.FieldRNWage, models.FloatValue(32.1))
	a.Set(models.FieldFacilityName, models.TextValue("Abbott House, Inc."))
	a.Set(models.FieldMedicaid, models.IntValue(0))
	a.Set(models.FieldMedicare, models.TextValue("125430"))

	b := models.NewRecord("b.xml")

	c := models.NewRecord("c.xml")
	c.Set(models.FieldLicenseID, models.TextValue("0012345"))
	c.Set(models.FieldTotalHours, models.FloatValue(0))

	return []models.Record{a, b, c}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleRecords()))

	expected := `fname,rn_hours,rn_wage,total_hours,idph_id,facility_name,medicare,medicaid,private_pay
a.xml,4160.0,32.1,,,"Abbott House, Inc.",125430,0,
b.xml,,,,,,,,
c.xml,,,0.0,0012345,,,,
`
	assert.Equal(t, expected, buf.String())
}

func TestWriteCSVLineCount(t *testing.T) {
	for _, n := range []int{1, 2, 17} {
		records := make([]models.Record, n)
		for i := range records {
			records[i] = models.NewRecord("r.xml")
		}

		var buf bytes.Buffer
		require.NoError(t, WriteCSV(&buf, records))

		rows, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
		require.NoError(t, err)
		assert.Len(t, rows, n+1)
		assert.Equal(t, records[0].Columns(), rows[0])
	}
}

func TestWriteCSVEmptyBatch(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCSV(&buf, nil)
	assert.True(t, errors.Is(err, ErrEmptyBatch))
	assert.Zero(t, buf.Len())

	path := filepath.Join(t.TempDir(), "out.csv")
	assert.ErrorIs(t, WriteCSVFile(path, nil), ErrEmptyBatch)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestWriteCSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, WriteCSVFile(path, sampleRecords()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 4, strings.Count(string(data), "\n"))
}
