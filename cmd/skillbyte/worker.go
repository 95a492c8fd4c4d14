package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonathan/skillbyte/internal/worker"
)

var (
	workerCount    int
	workerNoRemote bool
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Consume analysis requests from RabbitMQ",
	Long: `Start a pool of consumers on the "analysis_requests" queue. Each request carries
resume text or an object key in the configured bucket; status updates and the
finished report are published to the "analysis_results" exchange with routing
key "analysis.<id>".

RABBITMQ_URL (or rabbitmq_url in the config file) is required.`,
	RunE: runWorker,
}

func init() {
	workerCmd.Flags().IntVarP(&workerCount, "workers", "w", 3, "Number of concurrent consumers (overrides SKILLBYTE_WORKERS)")
	workerCmd.Flags().BoolVar(&workerNoRemote, "no-remote", false, "Never call the remote provider")
	rootCmd.AddCommand(workerCmd)
}

func runWorker(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd, os.Getenv)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = workerCount
	}
	if cfg.RabbitMQURL == "" {
		return fmt.Errorf("RABBITMQ_URL environment variable is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	remote := remoteAuto
	if workerNoRemote {
		remote = remoteOff
	}
	p, err := newPipeline(ctx, cfg, remote)
	if err != nil {
		return err
	}
	defer p.Close()

	store, err := newObjectStore(ctx, cfg)
	if err != nil {
		return err
	}

	conn, err := worker.Dial(cfg.RabbitMQURL)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	pool := worker.NewPool(conn, worker.NewProcessor(p.analyzer, store), cfg.Workers)
	return pool.Run(ctx)
}
