package mapping

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/oceanomics/faire2ena/internal/faire"
)

// Destination is a mapped sample record in the ENA vocabulary, field name to
// finalized value.
type Destination map[string]string

// Tables bundles the static configuration the mapper runs on. Substitute
// tables make the pipeline testable without the full checklist vocabulary.
type Tables struct {
	Forward   map[string]string
	Reverse   map[string]string
	Defaults  map[string]string
	Units     map[string]string
	Mandatory []string
}

// DefaultTables returns the ERC000024 tables built into the package.
func DefaultTables() Tables {
	return Tables{
		Forward:   FieldMap,
		Reverse:   ReverseMap,
		Defaults:  Defaults,
		Units:     Units,
		Mandatory: MandatoryFields,
	}
}

// Mapper converts FAIRe records into ENA destination records.
type Mapper struct {
	tables Tables
}

// NewMapper creates a mapper over the given tables.
func NewMapper(tables Tables) *Mapper {
	return &Mapper{tables: tables}
}

// DefaultMapper creates a mapper over the built-in ERC000024 tables.
func DefaultMapper() *Mapper {
	return NewMapper(DefaultTables())
}

// Units exposes the unit annotation table for the serializer.
func (m *Mapper) Units() map[string]string {
	return m.tables.Units
}

// Mandatory exposes the mandatory field list.
func (m *Mapper) Mandatory() []string {
	return m.tables.Mandatory
}

// IsControl reports whether the record is a procedural control rather than
// a biological sample.
func IsControl(rec faire.Record) bool {
	return rec.GetString("samp_category") != SampleCategory
}

// CombineValueUnit merges a measurement magnitude with its unit. A marked
// missing cell on either side yields the Unknown marker; an empty unit
// leaves the bare magnitude.
func CombineValueUnit(value, unit faire.Value) string {
	if value.Missing || unit.Missing {
		return UnknownValue
	}
	switch {
	case value.Raw != "" && unit.Raw != "":
		return value.Raw + " " + unit.Raw
	case value.Raw != "":
		return value.Raw
	}
	return ""
}

// Convert maps one FAIRe record into the ENA vocabulary: the generic field
// rename pass followed by the composite derivations. Later steps may
// overwrite what the generic pass produced. The record is not modified.
// Returned warnings are recoverable per-record diagnostics.
func (m *Mapper) Convert(rec faire.Record, projectName string) (Destination, []string) {
	dest := make(Destination)
	var warnings []string

	if projectName != "" {
		dest["project_name"] = projectName
	}

	for faireField, enaField := range m.tables.Forward {
		if enaField == "" {
			continue
		}
		if v := rec.Get(faireField); v.Present() {
			dest[enaField] = v.Raw
		}
	}

	control := IsControl(rec)

	// Depth is taken from the minimum; a maximum-only value intentionally
	// leaves depth unset.
	minDepth := rec.Get("minimumDepthInMeters")
	maxDepth := rec.Get("maximumDepthInMeters")
	if minDepth.Present() || maxDepth.Present() {
		dest["depth"] = minDepth.String()
	}

	if rec.Has("samp_size") && !control {
		dest["amount_or_size_of_sample_collected"] = CombineValueUnit(
			rec.Get("samp_size"), rec.Get("samp_size_unit"))
	}

	if rec.Has("samp_category") {
		if rec.GetString("samp_category") == SampleCategory {
			dest["control_sample"] = "FALSE"
		} else {
			dest["control_sample"] = "TRUE"
		}
	}

	if rec.Has("samp_vol_we_dna_ext") && !control {
		dest["sample_volume_or_weight_for_dna_extraction"] = CombineValueUnit(
			rec.Get("samp_vol_we_dna_ext"), rec.Get("samp_vol_we_dna_ext_unit"))
	}

	// "Indian Ocean: Rowley Shoals, Mermaid" -> "Indian Ocean"
	if geoLoc := rec.Get("geo_loc_name"); geoLoc.Present() {
		country, _, _ := strings.Cut(geoLoc.Raw, ":")
		dest["geographic_location_country_andor_sea"] = strings.TrimSpace(country)
	}

	nuclExt := rec.Get("nucl_acid_ext")
	nuclExtKit := rec.Get("nucl_acid_ext_kit")
	switch {
	case nuclExt.Present() && nuclExtKit.Present():
		dest["nucleic_acid_extraction"] = fmt.Sprintf("%s (%s)", nuclExt.Raw, nuclExtKit.Raw)
	case nuclExt.Present():
		dest["nucleic_acid_extraction"] = nuclExt.Raw
	}

	if rep, ok := dest["replicate_id"]; ok && !control {
		if coerced, err := coerceInteger(rep); err == nil {
			dest["replicate_id"] = coerced
		} else {
			warnings = append(warnings, fmt.Sprintf("replicate_id %q is not an integer, keeping as-is", rep))
		}
	}

	for _, um := range unitMeasurements {
		if v := rec.Get(um.ValueField); v.Present() {
			dest[um.ENAField] = CombineValueUnit(v, rec.Get(um.UnitField))
		}
	}

	if control {
		m.applyControlOverrides(dest)
	}

	return dest, warnings
}

// applyControlOverrides strips measurement fields that are meaningless for
// control samples and substitutes the control sentinel into location and
// environment fields the checklist still requires.
func (m *Mapper) applyControlOverrides(dest Destination) {
	delete(dest, "amount_or_size_of_sample_collected")
	delete(dest, "sample_volume_or_weight_for_dna_extraction")

	dest["geographic_location_country_andor_sea"] = ControlSentinel

	for _, field := range []string{
		"geographic_location_latitude",
		"geographic_location_longitude",
		"broadscale_environmental_context",
		"local_environmental_context",
		"environmental_medium",
		"depth",
	} {
		if dest[field] == "" {
			dest[field] = ControlSentinel
		}
	}
}

// MissingMandatory returns the mandatory fields absent or empty in dest, in
// mandatory-list order.
func (m *Mapper) MissingMandatory(dest Destination) []string {
	var missing []string
	for _, field := range m.tables.Mandatory {
		if dest[field] == "" {
			missing = append(missing, field)
		}
	}
	return missing
}

// FillDefaults writes the checklist default into every missing mandatory
// field, resolving each through the reverse map into the defaults table. A
// mandatory field without a reverse-map or defaults entry is a configuration
// error and aborts. Returns one diagnostic per substituted field.
func (m *Mapper) FillDefaults(dest Destination, sampleName string) ([]string, error) {
	var filled []string
	for _, field := range m.MissingMandatory(dest) {
		source, ok := m.tables.Reverse[field]
		if !ok {
			return filled, fmt.Errorf("mandatory field %s has no reverse mapping", field)
		}
		fallback, ok := m.tables.Defaults[source]
		if !ok {
			return filled, fmt.Errorf("mandatory field %s (FAIRe %s) has no default value", field, source)
		}
		dest[field] = fallback
		filled = append(filled, fmt.Sprintf("sample %s: missing mandatory field %s, using default %q", sampleName, field, fallback))
	}
	return filled, nil
}

// coerceInteger renders a numeric string as a plain integer, dropping
// decimal formatting like "2.0" that spreadsheets add to integer cells.
func coerceInteger(s string) (string, error) {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return strconv.FormatInt(n, 10), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return "", err
	}
	if f != float64(int64(f)) {
		return "", fmt.Errorf("value %q is not an integer", s)
	}
	return strconv.FormatInt(int64(f), 10), nil
}
