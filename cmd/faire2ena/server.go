package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/oceanomics/faire2ena/internal/api"
	"github.com/oceanomics/faire2ena/internal/database"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the conversion preview HTTP server",
	Long: `Start a small HTTP service exposing the mapping/validation pipeline and
the accession registry:

  POST /api/v1/samples/convert   preview one sample record as checklist XML
  POST /api/v1/runs/convert      preview one run record as experiment/run XML
  GET  /api/v1/accessions        list registered sample accessions
  GET  /api/v1/accessions/{alias}
  GET  /api/v1/health`,
	RunE: runServer,
}

var (
	serverHost string
	serverPort int
)

func init() {
	serverCmd.Flags().StringVar(&serverHost, "host", "localhost", "Host to bind to")
	serverCmd.Flags().IntVarP(&serverPort, "port", "p", 8080, "Port to listen on")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// The registry is optional for previews
	var db *database.DB
	if _, err := os.Stat(cfg.Registry.Path); err == nil {
		db, err = database.Initialize(cfg.Registry.Path)
		if err != nil {
			return err
		}
		defer db.Close()
	} else {
		printWarning("No accession registry at %s; accession endpoints disabled", cfg.Registry.Path)
	}

	srv := api.NewServer(cfg, db, api.Options{Host: serverHost, Port: serverPort})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	printInfo("Preview server listening on %s:%d", serverHost, serverPort)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
	case <-ctx.Done():
		printInfo("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
	return nil
}
