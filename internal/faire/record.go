// Package faire models FAIRe-formatted metadata tables as they arrive from
// spreadsheet exports: ordered records of column name to cell value, with
// spreadsheet missing-value markers made explicit at ingestion.
package faire

import "strings"

// Value is a single cell. Cells holding spreadsheet not-a-number markers
// (NA, NaN and variants) are an explicit Missing state rather than a string
// to be re-checked at every use. An empty cell is distinct from a marked
// missing one: composite derivations treat the two differently.
type Value struct {
	Raw     string
	Missing bool
}

// missingMarkers are the cell contents spreadsheet exports use for
// not-a-number / absent values.
var missingMarkers = map[string]bool{
	"na":   true,
	"n/a":  true,
	"nan":  true,
	"null": true,
}

// NewValue builds a Value from a raw cell, trimming surrounding whitespace
// and detecting missing markers case-insensitively.
func NewValue(raw string) Value {
	trimmed := strings.TrimSpace(raw)
	if missingMarkers[strings.ToLower(trimmed)] {
		return Value{Missing: true}
	}
	return Value{Raw: trimmed}
}

// String returns the cell content, or the empty string for missing cells.
func (v Value) String() string {
	if v.Missing {
		return ""
	}
	return v.Raw
}

// Present reports whether the cell holds a usable value.
func (v Value) Present() bool {
	return !v.Missing && v.Raw != ""
}

// Record is one row of a FAIRe table, keyed by column header.
type Record map[string]Value

// Get returns the cell for a column. A column absent from the table reads as
// an empty cell, not a marked-missing one: Missing is reserved for explicit
// spreadsheet markers.
func (r Record) Get(field string) Value {
	return r[field]
}

// GetString returns the cell content for a column, empty if missing.
func (r Record) GetString(field string) string {
	return r.Get(field).String()
}

// Has reports whether the column holds a usable value.
func (r Record) Has(field string) bool {
	return r.Get(field).Present()
}
