package main

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/config"
	"github.com/jonathan/resume-matcher/internal/objectstore"
	"github.com/jonathan/resume-matcher/internal/pipeline"
	"github.com/jonathan/resume-matcher/internal/worker"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Consume analysis jobs from an AMQP queue",
	Long: `Consume analysis jobs from an AMQP queue and publish results to a results queue.

Jobs carry the résumé inline or as an object key in the configured S3 bucket.`,
	RunE: runWorker,
}

var (
	workerAMQPURL      string
	workerQueue        string
	workerResultsQueue string
	workerCount        int
)

func init() {
	workerCmd.Flags().StringVar(&workerAMQPURL, "amqp-url", "", "AMQP broker URL (overrides config)")
	workerCmd.Flags().StringVar(&workerQueue, "queue", "", "Queue to consume jobs from (overrides config)")
	workerCmd.Flags().StringVar(&workerResultsQueue, "results-queue", "", "Queue to publish results to (overrides config)")
	workerCmd.Flags().IntVar(&workerCount, "workers", 0, "Number of concurrent consumers (overrides config)")

	rootCmd.AddCommand(workerCmd)
}

func runWorker(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}

	if workerAMQPURL != "" {
		cfg.Worker.AMQPURL = workerAMQPURL
	}
	if workerQueue != "" {
		cfg.Worker.Queue = workerQueue
	}
	if workerResultsQueue != "" {
		cfg.Worker.ResultsQueue = workerResultsQueue
	}
	if workerCount != 0 {
		cfg.Worker.Concurrency = workerCount
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.Worker.AMQPURL == "" {
		return fmt.Errorf("an AMQP URL is required: pass --amqp-url or set %sAMQP_URL", config.EnvPrefix)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	analyzer, err := pipeline.NewAnalyzer(cfg, pipeline.WithLogger(logger))
	if err != nil {
		return err
	}

	processor := &worker.Processor{
		Analyzer: analyzer,
		Bucket:   cfg.ObjectStore.Bucket,
		Retries:  cfg.Worker.MaxRetries,
		Backoff:  500 * time.Millisecond,
		Logger:   logger,
	}
	if cfg.ObjectStore.Bucket != "" {
		client, err := objectstore.New(ctx, cfg.ObjectStore)
		if err != nil {
			return err
		}
		processor.Objects = client
	}

	conn, open, err := worker.Dial(cfg.Worker.AMQPURL)
	if err != nil {
		return err
	}
	defer conn.Close()

	consumer := &worker.Consumer{
		Open:         open,
		Queue:        cfg.Worker.Queue,
		ResultsQueue: cfg.Worker.ResultsQueue,
		Workers:      cfg.Worker.Concurrency,
		Processor:    processor,
		Logger:       logger,
	}

	logger.Info("worker started",
		"queue", cfg.Worker.Queue,
		"results_queue", cfg.Worker.ResultsQueue,
		"workers", cfg.Worker.Concurrency)
	if err := consumer.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	logger.Info("worker stopped")
	return nil
}
