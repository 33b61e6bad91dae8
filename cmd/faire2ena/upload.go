package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oceanomics/faire2ena/internal/ui"
	"github.com/oceanomics/faire2ena/internal/uploader"
)

var uploadCmd = &cobra.Command{
	Use:   "upload [directory]",
	Short: "Upload read files to the ENA Webin FTP area",
	Long: `Upload every *.fastq.gz file in the given directory (default: current
directory) to the ENA Webin FTP intake, one file at a time. The batch stops
at the first failed transfer and echoes the transfer client's output.

Credentials can come from flags, the config file, or the
FAIRE2ENA_WEBIN_USERNAME / FAIRE2ENA_WEBIN_PASSWORD environment variables.
The default host is the ENA TEST server; files there are deleted within 24
hours.`,
	Example: `  faire2ena upload --user webin-1234 --subdir voyage1

  # Production intake
  faire2ena upload /data/reads --host webin.ebi.ac.uk --user webin-1234`,
	Args: cobra.MaximumNArgs(1),
	RunE: runUpload,
}

var (
	uploadHost   string
	uploadSubdir string
	uploadUser   string
	uploadPass   string
)

func init() {
	uploadCmd.Flags().StringVar(&uploadHost, "host", "", "FTP host (default from config; test server)")
	uploadCmd.Flags().StringVar(&uploadSubdir, "subdir", "", "Folder on the FTP area to upload into")
	uploadCmd.Flags().StringVar(&uploadUser, "user", "", "Webin username")
	uploadCmd.Flags().StringVar(&uploadPass, "password", "", "Webin password (prefer the environment variable)")
}

func runUpload(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	opts := uploader.Options{
		Host:     firstNonEmpty(uploadHost, cfg.FTP.Host),
		Subdir:   firstNonEmpty(uploadSubdir, cfg.FTP.Subdir),
		Username: firstNonEmpty(uploadUser, cfg.FTP.Username),
		Password: firstNonEmpty(uploadPass, cfg.FTP.Password),
	}
	if opts.Username == "" || opts.Password == "" {
		return fmt.Errorf("webin credentials are required (flags, config, or environment)")
	}

	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	files, err := uploader.FindReadFiles(dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no *.fastq.gz files found in %s", dir)
	}

	up := uploader.New(opts)
	printInfo("Uploading %d file(s) to %s", len(files), up.RemoteURL())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	spinner := ui.NewSpinner("Uploading")
	if !verbose {
		spinner.Start()
	}

	err = up.UploadAll(ctx, files, func(path string) {
		if verbose {
			printInfo("Uploading %s", filepath.Base(path))
		} else {
			spinner.Update("Uploading " + filepath.Base(path))
		}
	})
	if !verbose {
		spinner.Stop("")
	}
	if err != nil {
		return err
	}

	printSuccess("All uploads complete")
	printInfo("Files are now in your ENA upload area: %s", up.RemoteURL())
	if opts.Host == "webin2.ebi.ac.uk" {
		printInfo("Note: files on the TEST server are automatically deleted within 24 hours")
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
