// Package ena renders ENA submission entities (SAMPLE, EXPERIMENT, RUN) as
// the archive's submission XML and reads accessions back out of submission
// receipts. Writers assemble the markup by hand: the attribute order,
// escaping set and indentation of the emitted documents are part of the
// contract with downstream consumers.
package ena

import (
	"sort"
	"strings"

	"github.com/oceanomics/faire2ena/internal/mapping"
)

// xmlDeclaration is the single leading declaration of every document.
const xmlDeclaration = `<?xml version="1.0" encoding="UTF-8"?>`

// escaper covers exactly the characters the archive requires escaped in
// attribute values.
var escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// Escape escapes &, < and > for inclusion in element text.
func Escape(s string) string {
	return escaper.Replace(s)
}

// SampleWriter renders mapped sample records as SAMPLE entities.
type SampleWriter struct {
	TaxonID    string
	CenterName string
	Checklist  string
	Units      map[string]string
	mandatory  map[string]bool
}

// NewSampleWriter creates a writer for the given taxon and center. The
// mandatory list controls which fields may carry the control sentinel into
// the output.
func NewSampleWriter(taxonID, centerName string, units map[string]string, mandatory []string) *SampleWriter {
	mset := make(map[string]bool, len(mandatory))
	for _, f := range mandatory {
		mset[f] = true
	}
	return &SampleWriter{
		TaxonID:    taxonID,
		CenterName: centerName,
		Checklist:  mapping.Checklist,
		Units:      units,
		mandatory:  mset,
	}
}

// WriteSample renders one SAMPLE entity fragment. Attributes are emitted in
// lexicographic tag order; empty and Unknown values are dropped, and the
// control sentinel is only allowed through on mandatory fields. The
// ENA-CHECKLIST attribute is always appended last.
func (w *SampleWriter) WriteSample(dest mapping.Destination, alias string) string {
	var b strings.Builder
	b.WriteString(`  <SAMPLE alias="` + Escape(alias) + `" center_name="` + Escape(w.CenterName) + "\">\n")
	b.WriteString("    <SAMPLE_NAME>\n")
	b.WriteString("      <TAXON_ID>" + Escape(w.TaxonID) + "</TAXON_ID>\n")
	b.WriteString("    </SAMPLE_NAME>\n")
	b.WriteString("    <SAMPLE_ATTRIBUTES>\n")

	tags := make([]string, 0, len(dest))
	for tag := range dest {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	for _, tag := range tags {
		value := dest[tag]
		if value == "" || value == mapping.UnknownValue {
			continue
		}
		if value == mapping.ControlSentinel && !w.mandatory[tag] {
			// Only mandatory fields carry the control sentinel; optional
			// ones would flood control records with boilerplate.
			continue
		}
		w.writeAttribute(&b, tag, value, w.Units[tag])
	}

	w.writeAttribute(&b, "ENA-CHECKLIST", w.Checklist, "")

	b.WriteString("    </SAMPLE_ATTRIBUTES>\n")
	b.WriteString("  </SAMPLE>")
	return b.String()
}

func (w *SampleWriter) writeAttribute(b *strings.Builder, tag, value, units string) {
	b.WriteString("      <SAMPLE_ATTRIBUTE>\n")
	b.WriteString("        <TAG>" + Escape(tag) + "</TAG>\n")
	b.WriteString("        <VALUE>" + Escape(value) + "</VALUE>\n")
	if units != "" {
		b.WriteString("        <UNITS>" + Escape(units) + "</UNITS>\n")
	}
	b.WriteString("      </SAMPLE_ATTRIBUTE>\n")
}

// WrapSet joins entity fragments inside a single root element with one XML
// declaration, in input order.
func WrapSet(root string, fragments []string) string {
	var b strings.Builder
	b.WriteString(xmlDeclaration + "\n")
	b.WriteString("<" + root + ">\n")
	for _, frag := range fragments {
		b.WriteString(frag)
		b.WriteString("\n")
	}
	b.WriteString("</" + root + ">\n")
	return b.String()
}
