package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oceanomics/faire2ena/internal/faire"
	"github.com/oceanomics/faire2ena/internal/mapping"
	"github.com/oceanomics/faire2ena/internal/processor"
)

var samplesCmd = &cobra.Command{
	Use:   "samples",
	Short: "Convert sample metadata to a SAMPLE_SET submission document",
	Long: `Convert a FAIRe sampleMetadata table into an ENA SAMPLE_SET XML document
against the water environmental checklist (ERC000024).

Missing mandatory fields are filled with checklist defaults and invalid
collection dates are replaced with the "not provided" sentinel; both are
reported per sample. Control samples (any samp_category other than "sample")
get the control sentinel in location and environment fields and no
measurement attributes.`,
	Example: `  faire2ena samples -i sampleMetadata.csv -n AUSARG_voyage1 -c "OceanOmics" -o ena_samples.xml

  # Project-specific taxonomy
  faire2ena samples -i sampleMetadata.tsv -n PRJ -c CENTRE -o out.xml --taxon-id 408172`,
	RunE: runSamples,
}

var (
	samplesInput    string
	samplesOutput   string
	samplesProject  string
	samplesCenter   string
	samplesTaxonID  string
	samplesSkipRows int
)

func init() {
	samplesCmd.Flags().StringVarP(&samplesInput, "input", "i", "", "Path of the FAIRe sampleMetadata table (CSV/TSV)")
	samplesCmd.Flags().StringVarP(&samplesOutput, "output", "o", "", "Output file for the SAMPLE_SET XML")
	samplesCmd.Flags().StringVarP(&samplesProject, "name", "n", "", "Name of the project for ENA submission")
	samplesCmd.Flags().StringVarP(&samplesCenter, "center-name", "c", "", "Name of the sequencing centre")
	samplesCmd.Flags().StringVar(&samplesTaxonID, "taxon-id", "", "NCBI taxonomy id (default from config)")
	samplesCmd.Flags().IntVar(&samplesSkipRows, "skip-rows", -1, "Checklist header rows above the column header (default from config)")
	samplesCmd.MarkFlagRequired("input")
	samplesCmd.MarkFlagRequired("output")
	samplesCmd.MarkFlagRequired("name")
	samplesCmd.MarkFlagRequired("center-name")
}

func runSamples(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	taxonID := samplesTaxonID
	if taxonID == "" {
		taxonID = cfg.Submission.TaxonID
	}
	skipRows := samplesSkipRows
	if skipRows < 0 {
		skipRows = cfg.Tables.SkipRows
	}

	printDebug("Reading %s (skip %d header rows)", samplesInput, skipRows)
	records, err := faire.ReaderForFile(samplesInput, skipRows).ReadFile(samplesInput)
	if err != nil {
		return err
	}
	printInfo("Read %d sample record(s) from %s", len(records), samplesInput)

	proc := processor.NewSampleProcessor(processor.SampleOptions{
		ProjectName: samplesProject,
		TaxonID:     taxonID,
		CenterName:  samplesCenter,
	}, mapping.DefaultTables())

	result, err := proc.Process(records)
	if err != nil {
		return err
	}

	for _, w := range result.Warnings {
		printWarning("%s", w)
	}

	if err := os.WriteFile(samplesOutput, []byte(result.Document), 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	printSuccess("Generated SAMPLE_SET XML with %d sample(s) -> %s", result.Samples, samplesOutput)
	return nil
}
