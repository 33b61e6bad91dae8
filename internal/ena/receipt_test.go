package ena

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleReceipt = `<?xml version="1.0" encoding="UTF-8"?>
<RECEIPT receiptDate="2021-06-01T10:15:00.000+01:00" success="true">
  <SAMPLE accession="ERS0000001" alias="V1_S1" status="PRIVATE">
    <EXT_ID accession="SAMEA0000001" type="biosample"/>
  </SAMPLE>
  <SAMPLE accession="ERS0000002" alias="V1_S2" status="PRIVATE"/>
  <SAMPLE alias="V1_S3" status="PRIVATE"/>
  <SUBMISSION accession="ERA0000001" alias="ena-SUBMISSION-01"/>
  <ACTIONS>ADD</ACTIONS>
</RECEIPT>
`

func TestParseReceipt(t *testing.T) {
	accessions, err := ParseReceipt(strings.NewReader(sampleReceipt))
	if err != nil {
		t.Fatalf("ParseReceipt: %v", err)
	}

	want := AccessionMap{
		"V1_S1": "ERS0000001",
		"V1_S2": "ERS0000002",
	}
	if len(accessions) != len(want) {
		t.Fatalf("got %d entries, want %d: %v", len(accessions), len(want), accessions)
	}
	for alias, accession := range want {
		if accessions[alias] != accession {
			t.Errorf("accessions[%q] = %q, want %q", alias, accessions[alias], accession)
		}
	}
	if _, ok := accessions["V1_S3"]; ok {
		t.Error("sample without accession should be skipped")
	}
}

func TestParseReceiptMalformed(t *testing.T) {
	_, err := ParseReceipt(strings.NewReader("<RECEIPT><SAMPLE"))
	if err == nil {
		t.Fatal("expected error for truncated document")
	}
}

func TestParseReceiptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "receipt.xml")
	if err := os.WriteFile(path, []byte(sampleReceipt), 0644); err != nil {
		t.Fatal(err)
	}

	accessions, err := ParseReceiptFile(path)
	if err != nil {
		t.Fatalf("ParseReceiptFile: %v", err)
	}
	if accessions["V1_S2"] != "ERS0000002" {
		t.Errorf("accessions[V1_S2] = %q", accessions["V1_S2"])
	}

	if _, err := ParseReceiptFile(filepath.Join(t.TempDir(), "missing.xml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestAccessionMapEntries(t *testing.T) {
	m := AccessionMap{"b": "ERS2", "a": "ERS1", "c": "ERS3"}
	entries := m.Entries()
	if len(entries) != 3 {
		t.Fatalf("got %d entries", len(entries))
	}
	for i, want := range []string{"a", "b", "c"} {
		if entries[i].Alias != want {
			t.Errorf("entries[%d].Alias = %q, want %q", i, entries[i].Alias, want)
		}
	}
}
