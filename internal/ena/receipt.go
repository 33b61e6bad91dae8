package ena

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// ReceiptEntry is one registered sample from a submission receipt.
type ReceiptEntry struct {
	Alias     string
	Accession string
}

// AccessionMap resolves sample aliases to their archive accessions.
type AccessionMap map[string]string

// Entries returns the map as a slice sorted by alias.
func (m AccessionMap) Entries() []ReceiptEntry {
	entries := make([]ReceiptEntry, 0, len(m))
	for alias, accession := range m {
		entries = append(entries, ReceiptEntry{Alias: alias, Accession: accession})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Alias < entries[j].Alias })
	return entries
}

// ParseReceipt extracts the alias -> accession mapping from a submission
// receipt. SAMPLE elements anywhere in the document count; elements without
// both attributes are skipped.
func ParseReceipt(r io.Reader) (AccessionMap, error) {
	decoder := xml.NewDecoder(r)
	decoder.Strict = false // receipts occasionally carry undeclared entities

	accessions := make(AccessionMap)
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse receipt: %w", err)
		}

		start, ok := token.(xml.StartElement)
		if !ok || !strings.EqualFold(start.Name.Local, "SAMPLE") {
			continue
		}

		var alias, accession string
		for _, attr := range start.Attr {
			switch attr.Name.Local {
			case "alias":
				alias = attr.Value
			case "accession":
				accession = attr.Value
			}
		}
		if alias != "" && accession != "" {
			accessions[alias] = accession
		}
	}

	return accessions, nil
}

// ParseReceiptFile reads a receipt document from disk.
func ParseReceiptFile(path string) (AccessionMap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open receipt: %w", err)
	}
	defer f.Close()

	return ParseReceipt(f)
}
