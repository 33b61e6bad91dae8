package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/oceanomics/faire2ena/internal/database"
	"github.com/oceanomics/faire2ena/internal/ena"
	"github.com/oceanomics/faire2ena/internal/paths"
)

var receiptCmd = &cobra.Command{
	Use:   "receipt",
	Short: "Inspect and register ENA submission receipts",
}

var receiptShowCmd = &cobra.Command{
	Use:   "show <receipt.xml>",
	Short: "Print the alias to accession table from a receipt",
	Args:  cobra.ExactArgs(1),
	RunE:  runReceiptShow,
}

var receiptIngestCmd = &cobra.Command{
	Use:   "ingest <receipt.xml>",
	Short: "Store receipt accessions in the local registry",
	Long: `Parse a submission receipt and store its sample accessions in the local
registry database, so later "faire2ena runs" invocations can resolve sample
aliases without the receipt file. Re-ingesting a receipt updates existing
aliases in place.`,
	Args: cobra.ExactArgs(1),
	RunE: runReceiptIngest,
}

func runReceiptShow(cmd *cobra.Command, args []string) error {
	accessions, err := ena.ParseReceiptFile(args[0])
	if err != nil {
		return err
	}
	printInfo("Loaded %d sample accession(s) from receipt", len(accessions))

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ALIAS\tACCESSION")
	for _, entry := range accessions.Entries() {
		fmt.Fprintf(w, "%s\t%s\n", entry.Alias, entry.Accession)
	}
	return w.Flush()
}

func runReceiptIngest(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	accessions, err := ena.ParseReceiptFile(args[0])
	if err != nil {
		return err
	}
	if len(accessions) == 0 {
		printWarning("Receipt %s contains no sample accessions", args[0])
		return nil
	}

	if err := paths.EnsureDirectories(); err != nil {
		return err
	}

	db, err := database.Initialize(cfg.Registry.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	stored, err := db.StoreAccessions(accessions, args[0])
	if err != nil {
		return err
	}

	total, err := db.Count()
	if err != nil {
		return err
	}

	printSuccess("Registered %d accession(s) from %s (%d total in %s)", stored, args[0], total, cfg.Registry.Path)
	return nil
}
