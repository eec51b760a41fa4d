package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/jobboard/internal/config"
	"github.com/jonathan/jobboard/internal/db/memdb"
	"github.com/jonathan/jobboard/internal/notify"
)

// TestMain runs before all tests and loads .env if available
func TestMain(m *testing.M) {
	_ = godotenv.Load()
	os.Exit(m.Run())
}

func testConfig() *config.Config {
	return &config.Config{
		Port:         8080,
		StoreTimeout: time.Second,
		Notify: config.NotifyConfig{
			Timeout:     time.Second,
			Concurrency: 2,
			From:        "hr@jobboard.example",
		},
	}
}

func TestRootCommand_Subcommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"serve", "worker", "init-db", "seed"} {
		assert.True(t, names[want], "missing subcommand %s", want)
	}
}

func TestSetupLogging(t *testing.T) {
	defer logrus.SetLevel(logrus.InfoLevel)

	require.NoError(t, setupLogging(""))
	assert.Equal(t, logrus.InfoLevel, logrus.GetLevel())

	require.NoError(t, setupLogging("debug"))
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())

	assert.Error(t, setupLogging("loud"))
}

func TestOpenStore(t *testing.T) {
	ctx := context.Background()

	store, closeStore, err := openStore(ctx, testConfig(), storeMemory)
	require.NoError(t, err)
	defer closeStore()
	assert.IsType(t, &memdb.Store{}, store)

	_, _, err = openStore(ctx, testConfig(), "sqlite")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown store")

	_, _, err = openStore(ctx, testConfig(), storePostgres)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestSeedDefaultCatalog(t *testing.T) {
	ctx := context.Background()
	store := memdb.New()

	n, err := seedDefaultCatalog(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, 20, n)

	n, err = seedDefaultCatalog(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, 0, n, "a non-empty catalog is left alone")

	count, err := store.CountJobs(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(20), count)
}

func TestSeedFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"title":"Go Developer","company":"Gophers Inc","location":"Remote","type":"Contract","description":"Write Go.","requirements":"Go"}
	]`), 0o644))

	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	store := memdb.New()

	n, err := seedFromFile(cmd, store, path)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`[{"title":"missing fields"}]`), 0o644))
	_, err = seedFromFile(cmd, memdb.New(), bad)
	assert.Error(t, err)
}

func TestNewNotifier_DefaultsToLoggingDispatcher(t *testing.T) {
	ctx := context.Background()

	sender, err := newSender(ctx, testConfig())
	require.NoError(t, err)
	assert.IsType(t, notify.LogSender{}, sender)

	notifier, closeNotifier, err := newNotifier(ctx, testConfig())
	require.NoError(t, err)
	defer closeNotifier()
	assert.IsType(t, &notify.Dispatcher{}, notifier)
}

func TestNewNotifier_QueueWhenRedisConfigured(t *testing.T) {
	cfg := testConfig()
	cfg.Notify.RedisAddr = "localhost:6379"

	notifier, closeNotifier, err := newNotifier(context.Background(), cfg)
	require.NoError(t, err)
	defer closeNotifier()
	assert.IsType(t, &notify.Queue{}, notifier)
}

func TestNewSender_BadCredentials(t *testing.T) {
	cfg := testConfig()
	cfg.Notify.CredentialsFile = filepath.Join(t.TempDir(), "missing.json")

	_, err := newSender(context.Background(), cfg)
	assert.Error(t, err)
}
