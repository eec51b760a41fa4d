package main

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jonathan/jobboard/internal/config"
	"github.com/jonathan/jobboard/internal/db"
	"github.com/jonathan/jobboard/internal/db/memdb"
	"github.com/jonathan/jobboard/internal/notify"
	"github.com/jonathan/jobboard/internal/schemas"
	"github.com/jonathan/jobboard/internal/server"
	"github.com/jonathan/jobboard/internal/server/ratelimit"
)

const (
	storePostgres = "postgres"
	storeMemory   = "memory"

	notifierDrainTimeout = 30 * time.Second
)

var (
	servePort  int
	serveStore string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server that exposes the job board REST endpoints.
The schema is created and the default catalog seeded on startup when needed.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on (overrides PORT)")
	serveCmd.Flags().StringVar(&serveStore, "store", storePostgres, "Storage backend: postgres or memory")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}

	ctx := cmd.Context()

	store, closeStore, err := openStore(ctx, cfg, serveStore)
	if err != nil {
		return err
	}
	defer closeStore()

	if _, err := seedDefaultCatalog(ctx, store); err != nil {
		return err
	}

	notifier, closeNotifier, err := newNotifier(ctx, cfg)
	if err != nil {
		return err
	}

	srv := server.New(server.Config{
		Port:        cfg.Port,
		AdminAPIKey: cfg.AdminAPIKey,
		JWT:         cfg.JWT,
		Password:    cfg.Password,
		RateLimit:   ratelimit.FromSettings(cfg.RateLimit),
	}, store, notifier)

	if cfg.AdminAPIKey == "" {
		logrus.Warn("ADMIN_API_KEY not set, admin routes will refuse every request")
	}

	err = srv.Start()
	closeNotifier()
	return err
}

// openStore opens the named backend. The returned func releases it.
func openStore(ctx context.Context, cfg *config.Config, kind string) (server.Store, func(), error) {
	switch kind {
	case storeMemory:
		logrus.Warn("using in-memory store, data is lost on exit")
		return memdb.New(), func() {}, nil
	case storePostgres:
		database, err := connectDB(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		if err := database.EnsureSchema(ctx); err != nil {
			database.Close()
			return nil, nil, fmt.Errorf("failed to ensure schema: %w", err)
		}
		return database, database.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown store %q (want %s or %s)", kind, storePostgres, storeMemory)
	}
}

func connectDB(ctx context.Context, cfg *config.Config) (*db.DB, error) {
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}
	database, err := db.Connect(ctx, cfg.DatabaseURL, cfg.StoreTimeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return database, nil
}

// seedDefaultCatalog inserts the built-in postings into an empty catalog.
func seedDefaultCatalog(ctx context.Context, store server.JobStore) (int, error) {
	jobs, err := schemas.DefaultCatalog()
	if err != nil {
		return 0, err
	}
	n, err := server.NewJobService(store).Seed(ctx, jobs)
	if err != nil {
		return 0, fmt.Errorf("failed to seed default catalog: %w", err)
	}
	return n, nil
}

// newNotifier picks the queue when a broker is configured and the in-process
// dispatcher otherwise. The returned func drains or closes it.
func newNotifier(ctx context.Context, cfg *config.Config) (server.Notifier, func(), error) {
	if cfg.Notify.RedisAddr != "" {
		client := asynq.NewClient(asynq.RedisClientOpt{Addr: cfg.Notify.RedisAddr})
		logrus.WithField("redis_addr", cfg.Notify.RedisAddr).Info("notifications queued for worker")
		return notify.NewQueue(client, cfg.Notify.Timeout), func() {
			if err := client.Close(); err != nil {
				logrus.WithError(err).Warn("failed to close asynq client")
			}
		}, nil
	}

	sender, err := newSender(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	d := notify.NewDispatcher(sender, cfg.Notify.Concurrency, cfg.Notify.Timeout)
	return d, func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifierDrainTimeout)
		defer cancel()
		if err := d.Close(ctx); err != nil {
			logrus.WithError(err).Warn("pending notifications abandoned")
		}
	}, nil
}

// newSender returns a Gmail sender when credentials are configured and a
// log-only sender otherwise.
func newSender(ctx context.Context, cfg *config.Config) (notify.Sender, error) {
	if cfg.Notify.CredentialsFile == "" {
		logrus.Info("GMAIL_CREDENTIALS_FILE not set, notifications will only be logged")
		return notify.LogSender{}, nil
	}
	sender, err := notify.NewGmailSender(ctx, cfg.Notify.CredentialsFile, cfg.Notify.From)
	if err != nil {
		return nil, err
	}
	return sender, nil
}
