package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version info
var (
	version = "0.2.0"
	commit  = "dev"
	date    = "unknown"
)

// Global flags
var (
	noColor    bool
	quiet      bool
	verbose    bool
	debug      bool
	configPath string
)

// Root command
var rootCmd = &cobra.Command{
	Use:   "faire2ena",
	Short: "FAIRe to ENA submission converter",
	Long: `faire2ena converts FAIRe-formatted eDNA metadata tables into ENA
submission XML and uploads read files to the ENA Webin FTP area.

Sample metadata becomes a SAMPLE_SET document against the water environmental
checklist (ERC000024); run metadata becomes paired EXPERIMENT_SET and RUN_SET
documents joined to previously registered sample accessions.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	Example: `  # Convert sample metadata
  faire2ena samples -i sampleMetadata.csv -n PRJ_NAME -c "OceanOmics" -o ena_samples.xml

  # Register accessions from a submission receipt
  faire2ena receipt ingest receipt.xml

  # Convert run metadata using the registry
  faire2ena runs -i experimentRunMetadata.csv -s PRJEB12345 -c "OceanOmics"

  # Upload read files
  faire2ena upload --user webin-1234 --subdir project1`,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-error output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")

	rootCmd.AddCommand(samplesCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(receiptCmd)
	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(configCmd)

	receiptCmd.AddCommand(receiptShowCmd)
	receiptCmd.AddCommand(receiptIngestCmd)

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
