// Package export writes extracted records as CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/xhad/ltcc/internal/models"
)

// ErrEmptyBatch means there were no records to write a header for.
var ErrEmptyBatch = models.ErrEmptyBatch

// WriteCSV writes a header taken from the first record, then one row per
// record in order.
func WriteCSV(w io.Writer, records []models.Record) error {
	if len(records) == 0 {
		return ErrEmptyBatch
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(records[0].Columns()); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range records {
		if err := cw.Write(r.Row()); err != nil {
			return fmt.Errorf("write csv row for %s: %w", r.FileName, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func WriteCSVFile(path string, records []models.Record) error {
	if len(records) == 0 {
		return ErrEmptyBatch
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteCSV(f, records); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
