// Package processor drives the per-record conversion pipeline over whole
// FAIRe tables, aggregating entity fragments into submission documents and
// collecting the per-record diagnostics.
package processor

import (
	"github.com/oceanomics/faire2ena/internal/ena"
	"github.com/oceanomics/faire2ena/internal/errors"
	"github.com/oceanomics/faire2ena/internal/faire"
	"github.com/oceanomics/faire2ena/internal/mapping"
	"github.com/oceanomics/faire2ena/internal/validator"
)

// SampleOptions configures a sample-metadata batch.
type SampleOptions struct {
	ProjectName string
	TaxonID     string
	CenterName  string
}

// SampleResult is the outcome of one sample batch.
type SampleResult struct {
	Document string   // complete SAMPLE_SET document
	Samples  int      // entities emitted
	Warnings []string // per-record diagnostics, in record order
}

// SampleProcessor converts sampleMetadata records into a SAMPLE_SET
// document.
type SampleProcessor struct {
	opts      SampleOptions
	mapper    *mapping.Mapper
	validator *validator.Validator
	writer    *ena.SampleWriter
}

// NewSampleProcessor creates a processor over the given mapping tables.
func NewSampleProcessor(opts SampleOptions, tables mapping.Tables) *SampleProcessor {
	m := mapping.NewMapper(tables)
	return &SampleProcessor{
		opts:      opts,
		mapper:    m,
		validator: validator.New(),
		writer:    ena.NewSampleWriter(opts.TaxonID, opts.CenterName, tables.Units, tables.Mandatory),
	}
}

// Process runs the pipeline over all records in input order. Recoverable
// per-record problems (missing mandatory fields, invalid dates) become
// warnings; a mandatory field with no configured default aborts the batch.
func (p *SampleProcessor) Process(records []faire.Record) (*SampleResult, error) {
	const op = errors.Op("processor.ProcessSamples")

	result := &SampleResult{}
	fragments := make([]string, 0, len(records))

	for _, rec := range records {
		alias := rec.GetString("samp_name")
		if alias == "" {
			alias = "unknown"
		}

		dest, warnings := p.mapper.Convert(rec, p.opts.ProjectName)
		for _, w := range warnings {
			result.Warnings = append(result.Warnings, "sample "+alias+": "+w)
		}

		filled, err := p.mapper.FillDefaults(dest, alias)
		result.Warnings = append(result.Warnings, filled...)
		if err != nil {
			return nil, errors.E(op, errors.KindConfig, err)
		}

		vres := p.validator.ValidateRecord(dest, alias)
		for _, w := range vres.Warnings {
			result.Warnings = append(result.Warnings, w.String())
		}

		fragments = append(fragments, p.writer.WriteSample(dest, alias))
	}

	result.Samples = len(fragments)
	result.Document = ena.WrapSet("SAMPLE_SET", fragments)
	return result, nil
}
