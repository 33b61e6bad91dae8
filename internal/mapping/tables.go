// Package mapping translates FAIRe sample metadata records into the ENA
// water environmental checklist (ERC000024) attribute vocabulary: field
// renaming, value+unit composition, mandatory-field validation and
// checklist-driven defaulting.
package mapping

import "fmt"

// Checklist is the ENA sample checklist every generated sample conforms to.
const Checklist = "ERC000024"

// ControlSentinel is written into checklist fields that are required by the
// schema but meaningless for negative/positive control samples.
const ControlSentinel = "missing: control sample"

// SampleCategory is the samp_category value denoting a true biological
// sample; every other value marks a control.
const SampleCategory = "sample"

// UnknownValue is the marker produced when a measurement carries a
// spreadsheet missing-value cell. It never reaches the generated XML.
const UnknownValue = "Unknown"

// FieldMap is the FAIRe -> ENA vocabulary translation. An empty destination
// means the field has no direct ENA counterpart: it is either dropped or
// consumed by a composite derivation in Mapper.Convert.
var FieldMap = map[string]string{
	"materialSampleID": "source_material_identifiers",

	// Collection date and location
	"eventDate":        "collection_date",
	"decimalLatitude":  "geographic_location_latitude",
	"decimalLongitude": "geographic_location_longitude",
	"geo_loc_name":     "geographic_location_region_and_locality",

	// Environmental context
	"env_broad_scale": "broadscale_environmental_context",
	"env_local_scale": "local_environmental_context",
	"env_medium":      "environmental_medium",

	// Depth; minimum and maximum are treated identically by policy
	"minimumDepthInMeters": "depth",
	"maximumDepthInMeters": "",

	"samp_collect_device": "sample_collection_device",
	"samp_collect_method": "sample_collection_method",
	"samp_size":           "amount_or_size_of_sample_collected",
	"samp_size_unit":      "", // combined with samp_size
	"samp_store_temp":     "sample_storage_temperature",
	"samp_store_loc":      "sample_storage_location",
	"samp_store_dur":      "sample_storage_duration",
	"samp_category":       "control_sample",

	"size_frac_low": "sizefraction_lower_threshold",
	"size_frac":     "sizefraction_upper_threshold",

	"temp":                "temperature",
	"salinity":            "salinity",
	"ph":                  "ph",
	"tot_depth_water_col": "total_depth_of_water_column",
	"elev":                "elevation",

	"diss_oxygen":       "dissolved_oxygen",
	"nitrate":           "nitrate",
	"nitrite":           "nitrite",
	"diss_inorg_carb":   "dissolved_inorganic_carbon",
	"diss_inorg_nitro":  "dissolved_inorganic_nitrogen",
	"diss_org_carb":     "dissolved_organic_carbon",
	"diss_org_nitro":    "dissolved_organic_nitrogen",
	"tot_diss_nitro":    "total_dissolved_nitrogen",
	"tot_inorg_nitro":   "total_inorganic_nitrogen",
	"tot_nitro":         "total_nitrogen_concentration",
	"tot_part_carb":     "total_particulate_carbon",
	"tot_org_carb":      "total_organic_carbon",
	"tot_nitro_content": "total_nitrogen_content",
	"part_org_carb":     "particulate_organic_carbon",
	"part_org_nitro":    "particulate_organic_nitrogen",
	"org_carb":          "organic_carbon",
	"org_matter":        "organic_matter",
	"org_nitro":         "organic_nitrogen",

	"chlorophyll":         "chlorophyll",
	"light_intensity":     "light_intensity",
	"suspend_part_matter": "suspended_particulate_matter",
	"tidal_stage":         "tidal_stage",
	"turbidity":           "turbidity",
	"water_current":       "water_current",

	"samp_mat_process":     "sample_material_processing",
	"samp_vol_we_dna_ext":  "sample_volume_or_weight_for_dna_extraction",
	"nucl_acid_ext":        "nucleic_acid_extraction",
	"nucl_acid_ext_kit":    "", // combined with nucl_acid_ext
	"neg_cont_type":        "negative_control_type",
	"pos_cont_type":        "positive_control_type",

	// OceanOmics terms, not FAIRe
	"biological_rep": "replicate_id",
	"site_id":        "",
	"tube_id":        "",
}

// derivedSources maps composite ENA fields, which carry no single forward
// entry, back to the FAIRe field their default should come from.
var derivedSources = map[string]string{
	"geographic_location_country_andor_sea": "geo_loc_name",
}

// Defaults holds the checklist fallback values, keyed by FAIRe field name,
// substituted when a mandatory ENA field comes out of mapping absent.
var Defaults = map[string]string{
	"eventDate":            "not collected",
	"decimalLatitude":      "not provided",
	"decimalLongitude":     "not provided",
	"geo_loc_name":         "not provided",
	"env_broad_scale":      "not provided",
	"env_local_scale":      "not provided",
	"env_medium":           "not provided",
	"minimumDepthInMeters": "not provided",
}

// Units annotates ENA fields with the measurement unit emitted alongside the
// attribute value.
var Units = map[string]string{
	"depth":                         "m",
	"geographic_location_latitude":  "DD",
	"geographic_location_longitude": "DD",
	"elevation":                     "m",
	"temperature":                   "ºC",
	"salinity":                      "psu",
	"total_depth_of_water_column":   "m",
}

// MandatoryFields are the ERC000024 fields every sample must carry.
var MandatoryFields = []string{
	"project_name",
	"collection_date",
	"geographic_location_latitude",
	"geographic_location_longitude",
	"geographic_location_country_andor_sea",
	"broadscale_environmental_context",
	"local_environmental_context",
	"environmental_medium",
	"depth",
}

// unitMeasurements are the chemistry measurements whose value and unit
// columns are combined into one ENA attribute. Each pair is independently
// optional.
var unitMeasurements = []struct {
	ValueField string
	UnitField  string
	ENAField   string
}{
	{"diss_inorg_carb", "diss_inorg_carb_unit", "dissolved_inorganic_carbon"},
	{"diss_inorg_nitro", "diss_inorg_nitro_unit", "dissolved_inorganic_nitrogen"},
	{"diss_org_carb", "diss_org_carb_unit", "dissolved_organic_carbon"},
	{"diss_org_nitro", "diss_org_nitro_unit", "dissolved_organic_nitrogen"},
	{"diss_oxygen", "diss_oxygen_unit", "dissolved_oxygen"},
	{"nitrate", "nitrate_unit", "nitrate"},
	{"nitrite", "nitrite_unit", "nitrite"},
}

// ReverseMap inverts FieldMap (ENA -> FAIRe) plus the derived-field entries.
// It locates the FAIRe field whose default value backs a missing mandatory
// ENA field.
var ReverseMap = buildReverseMap()

func buildReverseMap() map[string]string {
	reverse := make(map[string]string, len(FieldMap))
	for faireField, enaField := range FieldMap {
		if enaField == "" {
			continue
		}
		if prev, ok := reverse[enaField]; ok {
			// Two FAIRe fields mapping to one ENA field would make the
			// reverse lookup ambiguous. Fail at startup, not per record.
			panic(fmt.Sprintf("mapping: ENA field %q mapped from both %q and %q", enaField, prev, faireField))
		}
		reverse[enaField] = faireField
	}
	for enaField, faireField := range derivedSources {
		reverse[enaField] = faireField
	}
	return reverse
}
