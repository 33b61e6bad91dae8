package faire

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Reader reads a FAIRe table from a CSV or TSV export of the spreadsheet.
// FAIRe sheets carry checklist header rows above the column headers; those
// are skipped before the header row is read.
type Reader struct {
	comma    rune
	skipRows int
}

// NewReader creates a reader with the given field separator and the number
// of pre-header rows to discard.
func NewReader(comma rune, skipRows int) *Reader {
	return &Reader{comma: comma, skipRows: skipRows}
}

// ReaderForFile picks the separator from the file extension (.tsv/.tab use
// tabs, anything else commas).
func ReaderForFile(path string, skipRows int) *Reader {
	comma := ','
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tsv", ".tab", ".txt":
		comma = '\t'
	}
	return NewReader(comma, skipRows)
}

// ReadFile reads all records from a table file.
func (r *Reader) ReadFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open table: %w", err)
	}
	defer f.Close()

	return r.Read(f)
}

// Read reads all records from a table. The first row after the skipped rows
// is the header; every following row becomes one Record. Short rows are
// padded with empty cells, surplus cells are dropped.
func (r *Reader) Read(src io.Reader) ([]Record, error) {
	cr := csv.NewReader(src)
	cr.Comma = r.comma
	cr.FieldsPerRecord = -1 // FAIRe exports have ragged rows
	cr.LazyQuotes = true

	for i := 0; i < r.skipRows; i++ {
		if _, err := cr.Read(); err == io.EOF {
			return nil, fmt.Errorf("table ended before header row (skipped %d of %d rows)", i, r.skipRows)
		} else if err != nil {
			return nil, fmt.Errorf("failed to skip header rows: %w", err)
		}
	}

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("table has no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}
	for i, col := range header {
		header[i] = strings.TrimSpace(col)
	}

	var records []Record
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", len(records)+1, err)
		}

		rec := make(Record, len(header))
		for i, col := range header {
			if col == "" {
				continue
			}
			if i < len(row) {
				rec[col] = NewValue(row[i])
			} else {
				rec[col] = Value{}
			}
		}
		records = append(records, rec)
	}

	return records, nil
}
