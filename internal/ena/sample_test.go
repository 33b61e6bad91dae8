package ena

import (
	"strings"
	"testing"

	"github.com/oceanomics/faire2ena/internal/mapping"
)

func testWriter() *SampleWriter {
	return NewSampleWriter("408172", "OceanOmics", mapping.Units, mapping.MandatoryFields)
}

func TestWriteSampleStructure(t *testing.T) {
	dest := mapping.Destination{
		"project_name":    "PRJ_TEST",
		"collection_date": "2021-05-04",
		"temperature":     "21.3",
	}

	xml := testWriter().WriteSample(dest, "V1_S1")

	for _, want := range []string{
		`<SAMPLE alias="V1_S1" center_name="OceanOmics">`,
		"<TAXON_ID>408172</TAXON_ID>",
		"<TAG>project_name</TAG>",
		"<VALUE>PRJ_TEST</VALUE>",
	} {
		if !strings.Contains(xml, want) {
			t.Errorf("output missing %q\n%s", want, xml)
		}
	}
}

func TestWriteSampleSortedTags(t *testing.T) {
	dest := mapping.Destination{
		"temperature":     "21.3",
		"collection_date": "2021-05-04",
		"salinity":        "35.2",
	}

	xml := testWriter().WriteSample(dest, "s")

	dateIdx := strings.Index(xml, "<TAG>collection_date</TAG>")
	salIdx := strings.Index(xml, "<TAG>salinity</TAG>")
	tempIdx := strings.Index(xml, "<TAG>temperature</TAG>")
	if !(dateIdx < salIdx && salIdx < tempIdx) {
		t.Errorf("tags not in lexicographic order:\n%s", xml)
	}
}

func TestWriteSampleChecklistTrailerLast(t *testing.T) {
	dest := mapping.Destination{"temperature": "21.3"}
	xml := testWriter().WriteSample(dest, "s")

	checklistIdx := strings.Index(xml, "<TAG>ENA-CHECKLIST</TAG>")
	if checklistIdx < 0 {
		t.Fatal("checklist attribute missing")
	}
	if !strings.Contains(xml, "<VALUE>ERC000024</VALUE>") {
		t.Error("checklist value missing")
	}
	if strings.LastIndex(xml, "<TAG>") != checklistIdx {
		t.Error("checklist attribute is not the last attribute")
	}

	// Checklist trailer is unconditional
	empty := testWriter().WriteSample(mapping.Destination{}, "s")
	if !strings.Contains(empty, "<TAG>ENA-CHECKLIST</TAG>") {
		t.Error("checklist attribute missing from empty record")
	}
}

func TestWriteSampleEscaping(t *testing.T) {
	dest := mapping.Destination{"sample_collection_method": "net & trawl <5m> depth"}
	xml := testWriter().WriteSample(dest, "s")

	if !strings.Contains(xml, "<VALUE>net &amp; trawl &lt;5m&gt; depth</VALUE>") {
		t.Errorf("value not escaped:\n%s", xml)
	}
	if strings.Contains(xml, "net & trawl") || strings.Contains(xml, "<5m>") {
		t.Error("raw special characters leaked into output")
	}
}

func TestWriteSampleUnits(t *testing.T) {
	dest := mapping.Destination{"depth": "5", "temperature": "21.3"}
	xml := testWriter().WriteSample(dest, "s")

	if !strings.Contains(xml, "<UNITS>m</UNITS>") {
		t.Error("depth should carry its unit annotation")
	}
	if !strings.Contains(xml, "<UNITS>ºC</UNITS>") {
		t.Error("temperature should carry its unit annotation")
	}
}

func TestWriteSampleSuppression(t *testing.T) {
	dest := mapping.Destination{
		"temperature":           "",
		"salinity":              mapping.UnknownValue,
		"negative_control_type": mapping.ControlSentinel, // optional field
		"environmental_medium":  mapping.ControlSentinel, // mandatory field
	}
	xml := testWriter().WriteSample(dest, "s")

	if strings.Contains(xml, "<TAG>temperature</TAG>") {
		t.Error("empty value should be suppressed")
	}
	if strings.Contains(xml, "<TAG>salinity</TAG>") {
		t.Error("Unknown value should be suppressed")
	}
	if strings.Contains(xml, "<TAG>negative_control_type</TAG>") {
		t.Error("control sentinel on optional field should be suppressed")
	}
	if !strings.Contains(xml, "<TAG>environmental_medium</TAG>") {
		t.Error("control sentinel on mandatory field should be emitted")
	}
}

func TestWrapSet(t *testing.T) {
	doc := WrapSet("SAMPLE_SET", []string{"  <SAMPLE/>", "  <SAMPLE/>"})

	if !strings.HasPrefix(doc, `<?xml version="1.0" encoding="UTF-8"?>`+"\n<SAMPLE_SET>\n") {
		t.Errorf("bad document head:\n%s", doc)
	}
	if !strings.HasSuffix(doc, "</SAMPLE_SET>\n") {
		t.Errorf("bad document tail:\n%s", doc)
	}
	if strings.Count(doc, "<?xml") != 1 {
		t.Error("document must carry exactly one declaration")
	}
	if strings.Count(doc, "<SAMPLE/>") != 2 {
		t.Error("fragments lost during wrapping")
	}
}

func TestEscape(t *testing.T) {
	got := Escape(`a&b<c>d"e`)
	if got != `a&amp;b&lt;c&gt;d"e` {
		t.Errorf("Escape = %q", got)
	}
}
