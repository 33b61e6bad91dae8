package processor

import (
	"fmt"

	"github.com/oceanomics/faire2ena/internal/ena"
	"github.com/oceanomics/faire2ena/internal/faire"
)

// RunOptions configures an experiment/run batch.
type RunOptions struct {
	StudyAccession  string
	CenterName      string
	InstrumentModel string
	Assay           string // optional suffix on experiment/run aliases
}

// RunResult is the outcome of one run-metadata batch.
type RunResult struct {
	ExperimentDocument string // complete EXPERIMENT_SET document
	RunDocument        string // complete RUN_SET document
	Experiments        int
	Skipped            []string // sample aliases without accessions, in record order
	Warnings           []string
}

// maxSkippedNamed caps how many skipped aliases the summary lists by name.
const maxSkippedNamed = 10

// RunProcessor converts experimentRunMetadata records into paired
// EXPERIMENT_SET and RUN_SET documents, joining each record to its
// registered sample accession.
type RunProcessor struct {
	opts   RunOptions
	writer *ena.RunWriter
}

// NewRunProcessor creates a processor for one batch.
func NewRunProcessor(opts RunOptions) *RunProcessor {
	return &RunProcessor{
		opts:   opts,
		writer: ena.NewRunWriter(opts.StudyAccession, opts.CenterName, opts.InstrumentModel),
	}
}

// Process renders experiment and run fragments for every record whose
// sample alias resolves in the accession map. Records without a sample name
// are skipped without diagnostic; unresolvable aliases are withheld from
// both documents and reported once at end of batch.
func (p *RunProcessor) Process(records []faire.Record, accessions ena.AccessionMap) (*RunResult, error) {
	result := &RunResult{}
	var experimentFragments, runFragments []string

	for _, rec := range records {
		sampName := rec.GetString("samp_name")
		if sampName == "" {
			continue
		}

		sampleAccession, ok := accessions[sampName]
		if !ok {
			result.Skipped = append(result.Skipped, sampName)
			continue
		}

		experimentAlias := rec.GetString("lib_id")
		if experimentAlias == "" {
			experimentAlias = sampName
		}
		if p.opts.Assay != "" {
			experimentAlias += "_" + p.opts.Assay
		}
		runAlias := experimentAlias + "_run"

		experimentFragments = append(experimentFragments,
			p.writer.WriteExperiment(rec, sampleAccession, experimentAlias))
		runFragments = append(runFragments,
			p.writer.WriteRun(rec, experimentAlias, runAlias))
	}

	result.Experiments = len(experimentFragments)
	result.ExperimentDocument = ena.WrapSet("EXPERIMENT_SET", experimentFragments)
	result.RunDocument = ena.WrapSet("RUN_SET", runFragments)
	result.Warnings = skippedSummary(result.Skipped)
	return result, nil
}

// skippedSummary formats the end-of-batch warning: first maxSkippedNamed
// aliases by name plus a count of the remainder.
func skippedSummary(skipped []string) []string {
	if len(skipped) == 0 {
		return nil
	}

	lines := []string{fmt.Sprintf("skipped %d sample(s) without accessions:", len(skipped))}
	for i, name := range skipped {
		if i == maxSkippedNamed {
			lines = append(lines, fmt.Sprintf("  ... and %d more", len(skipped)-maxSkippedNamed))
			break
		}
		lines = append(lines, "  - "+name)
	}
	return lines
}
