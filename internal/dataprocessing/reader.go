package dataprocessing

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrSourceNotFound indicates a required input file is absent. Callers
// treat it as "no data for this category/date", not as a fatal error.
var ErrSourceNotFound = errors.New("source file not found")

// RawRecord is one row of a source file keyed by the caller-supplied
// column names. It is transient: created by ReadRawRecords, consumed once
// by a category merge, and never surfaced in output.
type RawRecord map[string]string

const (
	// overflowKey collects columns beyond the expected field list.
	overflowKey = "_extra"
	// missingValue marks expected columns absent from a short row. It is
	// deliberately non-numeric so any record that actually relies on a
	// missing price is dropped during sanitization.
	missingValue = "_missing_"
)

// clone returns a copy of the record so merges never alias raw data into
// output.
func (r RawRecord) clone() RawRecord {
	out := make(RawRecord, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// ReadRawRecords parses the comma-delimited file at path into one
// RawRecord per line using the given field names. The file's own header
// line, if any, comes through as an ordinary record and is dropped later
// by date-parse failure. Ragged rows are tolerated: surplus columns land
// under a sentinel key and missing columns get a sentinel value, neither
// of which survives normalization.
func ReadRawRecords(path string, fields []string) ([]RawRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", path, ErrSourceNotFound)
		}
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = false

	var records []RawRecord
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}

		rec := make(RawRecord, len(fields)+1)
		for i, field := range fields {
			if i < len(row) {
				rec[field] = row[i]
			} else {
				rec[field] = missingValue
			}
		}
		if len(row) > len(fields) {
			var extra string
			for _, v := range row[len(fields):] {
				if extra != "" {
					extra += ","
				}
				extra += v
			}
			rec[overflowKey] = extra
		}
		records = append(records, rec)
	}
	return records, nil
}
