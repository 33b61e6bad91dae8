package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oceanomics/faire2ena/internal/database"
	"github.com/oceanomics/faire2ena/internal/ena"
	"github.com/oceanomics/faire2ena/internal/faire"
	"github.com/oceanomics/faire2ena/internal/processor"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Convert run metadata to EXPERIMENT and RUN submission documents",
	Long: `Convert a FAIRe experimentRunMetadata table into paired ENA EXPERIMENT_SET
and RUN_SET XML documents.

Each record is joined to its registered sample accession, taken from a
submission receipt (--receipt) or from the local accession registry
populated by "faire2ena receipt ingest". Records whose sample alias has no
accession are excluded from both documents and summarized at end of run.`,
	Example: `  # Resolve accessions from a receipt file
  faire2ena runs -i experimentRunMetadata.csv -r receipt.xml -s PRJEB12345 -c "OceanOmics"

  # Resolve accessions from the local registry, tagging a 16S assay
  faire2ena runs -i experimentRunMetadata.csv -s PRJEB12345 -c "OceanOmics" -a 16S`,
	RunE: runRuns,
}

var (
	runsInput            string
	runsReceipt          string
	runsStudy            string
	runsCenter           string
	runsExperimentOutput string
	runsRunOutput        string
	runsInstrument       string
	runsAssay            string
	runsSkipRows         int
)

func init() {
	runsCmd.Flags().StringVarP(&runsInput, "input", "i", "", "Path of the FAIRe experimentRunMetadata table (CSV/TSV)")
	runsCmd.Flags().StringVarP(&runsReceipt, "receipt", "r", "", "Path to the ENA sample submission receipt XML")
	runsCmd.Flags().StringVarP(&runsStudy, "study-accession", "s", "", "ENA study accession (e.g., PRJEB12345)")
	runsCmd.Flags().StringVarP(&runsCenter, "center-name", "c", "", "Name of the sequencing centre")
	runsCmd.Flags().StringVarP(&runsExperimentOutput, "experiment-output", "e", "ena_experiments.xml", "Output file for the EXPERIMENT_SET XML")
	runsCmd.Flags().StringVarP(&runsRunOutput, "run-output", "o", "ena_runs.xml", "Output file for the RUN_SET XML")
	runsCmd.Flags().StringVarP(&runsInstrument, "instrument-model", "m", "", "Sequencing instrument model (default from config)")
	runsCmd.Flags().StringVarP(&runsAssay, "assay", "a", "", "Assay name appended to experiment/run aliases (e.g., 16S, COI)")
	runsCmd.Flags().IntVar(&runsSkipRows, "skip-rows", -1, "Checklist header rows above the column header (default from config)")
	runsCmd.MarkFlagRequired("input")
	runsCmd.MarkFlagRequired("study-accession")
	runsCmd.MarkFlagRequired("center-name")
}

func runRuns(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	instrument := runsInstrument
	if instrument == "" {
		instrument = cfg.Submission.InstrumentModel
	}
	skipRows := runsSkipRows
	if skipRows < 0 {
		skipRows = cfg.Tables.SkipRows
	}

	accessions, err := loadAccessionMap(cfg.Registry.Path)
	if err != nil {
		return err
	}
	printInfo("Loaded %d sample accession(s)", len(accessions))

	if runsAssay != "" {
		printInfo("Adding assay suffix '_%s' to all experiment and run names", runsAssay)
	}

	records, err := faire.ReaderForFile(runsInput, skipRows).ReadFile(runsInput)
	if err != nil {
		return err
	}
	printInfo("Read %d run record(s) from %s", len(records), runsInput)

	proc := processor.NewRunProcessor(processor.RunOptions{
		StudyAccession:  runsStudy,
		CenterName:      runsCenter,
		InstrumentModel: instrument,
		Assay:           runsAssay,
	})

	result, err := proc.Process(records, accessions)
	if err != nil {
		return err
	}

	if err := os.WriteFile(runsExperimentOutput, []byte(result.ExperimentDocument), 0644); err != nil {
		return fmt.Errorf("failed to write experiment output: %w", err)
	}
	printSuccess("Generated EXPERIMENT_SET XML with %d experiment(s) -> %s", result.Experiments, runsExperimentOutput)

	if err := os.WriteFile(runsRunOutput, []byte(result.RunDocument), 0644); err != nil {
		return fmt.Errorf("failed to write run output: %w", err)
	}
	printSuccess("Generated RUN_SET XML with %d run(s) -> %s", result.Experiments, runsRunOutput)

	for _, w := range result.Warnings {
		printWarning("%s", w)
	}
	return nil
}

// loadAccessionMap builds the alias -> accession join input. The registry is
// loaded first when present; an explicit receipt file overrides it for
// overlapping aliases.
func loadAccessionMap(registryPath string) (ena.AccessionMap, error) {
	accessions := make(ena.AccessionMap)

	if runsReceipt == "" {
		if _, err := os.Stat(registryPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("no --receipt given and no accession registry at %s", registryPath)
		}
	}

	if _, err := os.Stat(registryPath); err == nil {
		db, err := database.Initialize(registryPath)
		if err != nil {
			return nil, err
		}
		defer db.Close()

		stored, err := db.LoadAccessions()
		if err != nil {
			return nil, err
		}
		for alias, accession := range stored {
			accessions[alias] = accession
		}
		printDebug("Loaded %d accession(s) from registry %s", len(stored), registryPath)
	}

	if runsReceipt != "" {
		fromReceipt, err := ena.ParseReceiptFile(runsReceipt)
		if err != nil {
			return nil, err
		}
		for alias, accession := range fromReceipt {
			accessions[alias] = accession
		}
		printDebug("Loaded %d accession(s) from receipt %s", len(fromReceipt), runsReceipt)
	}

	return accessions, nil
}
