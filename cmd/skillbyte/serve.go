package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/skillbyte/internal/server"
)

var (
	servePort     int
	serveNoRemote bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server exposing POST /analyze, POST /text-analyze, POST /jobs/rank,
GET /jobs and GET /health.

Remote feedback is used when the configured provider has an API key.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 5001, "Port to listen on (overrides PORT)")
	serveCmd.Flags().BoolVar(&serveNoRemote, "no-remote", false, "Never call the remote provider")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadConfig(cmd, os.Getenv)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}

	remote := remoteAuto
	if serveNoRemote {
		remote = remoteOff
	}
	p, err := newPipeline(ctx, cfg, remote)
	if err != nil {
		return err
	}
	defer p.Close()

	srv, err := server.New(server.Config{
		Port:     cfg.Port,
		Analyzer: p.analyzer,
		Catalog:  p.catalog,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
