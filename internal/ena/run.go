package ena

import (
	"strings"

	"github.com/oceanomics/faire2ena/internal/faire"
)

// RunWriter renders experiment/run metadata records as EXPERIMENT and RUN
// entities referencing an already-registered study and sample.
type RunWriter struct {
	StudyAccession  string
	CenterName      string
	InstrumentModel string
}

// NewRunWriter creates a writer for one submission batch.
func NewRunWriter(studyAccession, centerName, instrumentModel string) *RunWriter {
	return &RunWriter{
		StudyAccession:  studyAccession,
		CenterName:      centerName,
		InstrumentModel: instrumentModel,
	}
}

// WriteExperiment renders one EXPERIMENT entity fragment for an amplicon
// metabarcoding library.
func (w *RunWriter) WriteExperiment(rec faire.Record, sampleAccession, experimentAlias string) string {
	var b strings.Builder
	b.WriteString(`  <EXPERIMENT alias="` + Escape(experimentAlias) + `" center_name="` + Escape(w.CenterName) + "\">\n")
	b.WriteString("    <TITLE>" + Escape(experimentAlias) + "</TITLE>\n")
	b.WriteString(`    <STUDY_REF accession="` + Escape(w.StudyAccession) + "\"/>\n")
	b.WriteString("    <DESIGN>\n")
	b.WriteString("      <DESIGN_DESCRIPTION>eDNA metabarcoding</DESIGN_DESCRIPTION>\n")
	b.WriteString(`      <SAMPLE_DESCRIPTOR accession="` + Escape(sampleAccession) + "\"/>\n")
	b.WriteString("      <LIBRARY_DESCRIPTOR>\n")

	libName := rec.GetString("lib_id")
	if libName == "" {
		libName = experimentAlias
	}
	b.WriteString("        <LIBRARY_NAME>" + Escape(libName) + "</LIBRARY_NAME>\n")
	b.WriteString("        <LIBRARY_STRATEGY>AMPLICON</LIBRARY_STRATEGY>\n")
	b.WriteString("        <LIBRARY_SOURCE>METAGENOMIC</LIBRARY_SOURCE>\n")
	b.WriteString("        <LIBRARY_SELECTION>PCR</LIBRARY_SELECTION>\n")
	b.WriteString("        <LIBRARY_LAYOUT>\n")
	b.WriteString("          <PAIRED/>\n")
	b.WriteString("        </LIBRARY_LAYOUT>\n")

	if protocol := constructionProtocol(rec); protocol != "" {
		b.WriteString("        <LIBRARY_CONSTRUCTION_PROTOCOL>" + Escape(protocol) + "</LIBRARY_CONSTRUCTION_PROTOCOL>\n")
	}

	b.WriteString("      </LIBRARY_DESCRIPTOR>\n")
	b.WriteString("    </DESIGN>\n")
	b.WriteString("    <PLATFORM>\n")
	b.WriteString("      <ILLUMINA>\n")
	b.WriteString("        <INSTRUMENT_MODEL>" + Escape(w.InstrumentModel) + "</INSTRUMENT_MODEL>\n")
	b.WriteString("      </ILLUMINA>\n")
	b.WriteString("    </PLATFORM>\n")
	b.WriteString("  </EXPERIMENT>")
	return b.String()
}

// constructionProtocol assembles the library construction description from
// the optional concentration and quantification columns.
func constructionProtocol(rec faire.Record) string {
	var parts []string

	if conc := rec.Get("lib_conc"); conc.Present() {
		unit := rec.GetString("lib_conc_unit")
		if unit == "" {
			unit = "ng/uL"
		}
		parts = append(parts, "Library concentration: "+conc.Raw+" "+unit)
	}
	if meth := rec.Get("lib_conc_meth"); meth.Present() {
		parts = append(parts, "Quantification method: "+meth.Raw)
	}

	return strings.Join(parts, "; ")
}

// WriteRun renders one RUN entity fragment listing the demultiplexed read
// files with their MD5 checksums.
func (w *RunWriter) WriteRun(rec faire.Record, experimentAlias, runAlias string) string {
	var b strings.Builder
	b.WriteString(`  <RUN alias="` + Escape(runAlias) + `" center_name="` + Escape(w.CenterName) + "\">\n")
	b.WriteString(`    <EXPERIMENT_REF refname="` + Escape(experimentAlias) + "\"/>\n")
	b.WriteString("    <DATA_BLOCK>\n")
	b.WriteString("      <FILES>\n")

	writeFile(&b, rec.GetString("filename"), rec.GetString("checksum_filename"))
	writeFile(&b, rec.GetString("filename2"), rec.GetString("checksum_filename2"))

	b.WriteString("      </FILES>\n")
	b.WriteString("    </DATA_BLOCK>\n")
	b.WriteString("  </RUN>")
	return b.String()
}

func writeFile(b *strings.Builder, filename, checksum string) {
	if filename == "" {
		return
	}
	b.WriteString(`        <FILE filename="` + Escape(filename) +
		`" filetype="fastq" checksum_method="MD5" checksum="` + Escape(checksum) + "\"/>\n")
}
