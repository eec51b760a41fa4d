package main

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jonathan/jobboard/internal/config"
	"github.com/jonathan/jobboard/internal/metrics"
	"github.com/jonathan/jobboard/internal/notify"
)

var workerMetricsAddr string

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Process queued notifications",
	Long:  `Run an asynq worker that delivers application notifications enqueued by the API server. Requires REDIS_ADDR.`,
	RunE:  runWorker,
}

func init() {
	workerCmd.Flags().StringVar(&workerMetricsAddr, "metrics-addr", ":9091", "Address for the Prometheus endpoint (empty to disable)")
	rootCmd.AddCommand(workerCmd)
}

func runWorker(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.Notify.RedisAddr == "" {
		return fmt.Errorf("REDIS_ADDR environment variable is required")
	}

	sender, err := newSender(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	if workerMetricsAddr != "" {
		metricsServer := &http.Server{
			Addr:              workerMetricsAddr,
			Handler:           promhttp.Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		}
		go func() {
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logrus.WithError(err).Error("metrics server stopped")
			}
		}()
		defer metricsServer.Close()
	}

	srv := asynq.NewServer(asynq.RedisClientOpt{Addr: cfg.Notify.RedisAddr}, asynq.Config{
		Concurrency: cfg.Notify.Concurrency,
	})

	mux := asynq.NewServeMux()
	mux.Use(metrics.AsynqMiddleware())
	mux.Handle(notify.TypeApplicationNotify, notify.NewTaskHandler(sender))

	logrus.WithField("redis_addr", cfg.Notify.RedisAddr).Info("worker started")
	if err := srv.Run(mux); err != nil {
		return fmt.Errorf("worker stopped: %w", err)
	}
	return nil
}
