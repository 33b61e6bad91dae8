// Package validator checks mapped sample records against the checklist
// constraints ENA enforces server-side: collection-date format and mandatory
// attribute presence. Recoverable problems come back as warnings with the
// substitution already applied, the way ENA's own validator reports them.
package validator

import (
	"fmt"
	"regexp"

	"github.com/oceanomics/faire2ena/internal/mapping"
)

// NotProvided is the INSDC sentinel substituted for unparseable dates.
const NotProvided = "not provided"

// dateTerm is an ISO-8601-like date at year, month, day, minute or second
// precision, with an optional timezone offset.
const dateTerm = `[12]\d{3}(-(0[1-9]|1[0-2])(-(0[1-9]|[12]\d|3[01])(T[0-2]\d:[0-5]\d(:[0-5]\d)?(Z|[+-][01]\d:?[0-5]\d)?)?)?)?`

// collectionDatePattern accepts a single date term, a `/`-separated range of
// two terms, or one of the INSDC controlled vocabulary sentinels.
var collectionDatePattern = regexp.MustCompile(
	`^(` + dateTerm + `(/` + dateTerm + `)?` +
		`|not applicable` +
		`|not collected` +
		`|not provided` +
		`|restricted access` +
		`|missing: control sample` +
		`|missing: sample group` +
		`|missing: synthetic construct` +
		`|missing: lab stock` +
		`|missing: third party data` +
		`|missing: data agreement established pre-2023` +
		`|missing: endangered species` +
		`|missing: human-identifiable` +
		`|missing: not applicable` +
		`)$`)

// ValidCollectionDate reports whether value satisfies the collection_date
// grammar.
func ValidCollectionDate(value string) bool {
	return collectionDatePattern.MatchString(value)
}

// Warning is a recoverable validation finding for one record.
type Warning struct {
	Sample  string
	Field   string
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("sample %s: %s", w.Sample, w.Message)
}

// Result collects the findings for one record.
type Result struct {
	Warnings []Warning
}

// Validator applies checklist validation to destination records.
type Validator struct{}

// New creates a validator.
func New() *Validator {
	return &Validator{}
}

// ValidateRecord runs the post-mapping checks on a destination record,
// mutating it where a substitution applies. It runs after default filling,
// so a defaulted collection date is still grammar-checked here.
func (v *Validator) ValidateRecord(dest mapping.Destination, sampleName string) Result {
	var res Result

	if date, ok := dest["collection_date"]; ok && !ValidCollectionDate(date) {
		dest["collection_date"] = NotProvided
		res.Warnings = append(res.Warnings, Warning{
			Sample:  sampleName,
			Field:   "collection_date",
			Message: fmt.Sprintf("invalid collection_date %q, replaced with %q", date, NotProvided),
		})
	}

	return res
}
