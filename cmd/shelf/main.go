package main

import (
	"fmt"
	"os"
	"time"

	"github.com/studyhall-labs/shelf-cli/internal/adapters/driven/cache"
	"github.com/studyhall-labs/shelf-cli/internal/adapters/driven/cache/memory"
	"github.com/studyhall-labs/shelf-cli/internal/adapters/driven/cache/sqlite"
	configfile "github.com/studyhall-labs/shelf-cli/internal/adapters/driven/config/file"
	"github.com/studyhall-labs/shelf-cli/internal/adapters/driven/provider/genlang"
	"github.com/studyhall-labs/shelf-cli/internal/adapters/driving/cli"
	"github.com/studyhall-labs/shelf-cli/internal/core/ports/driven"
	"github.com/studyhall-labs/shelf-cli/internal/core/services"
	"github.com/studyhall-labs/shelf-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configStore, err := configfile.NewStore("")
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}
	cfg, err := configStore.Load()
	if err != nil {
		return err
	}

	cli.SetVersion(version)

	// Commands that need the provider guard against a missing service
	// themselves, so version and help work without an API key.
	if cfg.APIKey != "" {
		cleanup, err := wireServices(cfg)
		if err != nil {
			return err
		}
		defer cleanup()
	} else {
		logger.Debug("no API key configured; set %s or api_key in %s",
			configfile.EnvAPIKey, configStore.Path())
	}

	return cli.Execute()
}

// wireServices builds the provider client, cache and core services, and
// injects them into the CLI. The returned cleanup closes the cache.
func wireServices(cfg *configfile.Config) (func(), error) {
	client, err := genlang.NewClient(genlang.Config{
		APIKey:        cfg.APIKey,
		BaseURL:       cfg.BaseURL,
		Model:         cfg.Model,
		FallbackModel: cfg.FallbackModel,
	})
	if err != nil {
		return nil, fmt.Errorf("creating provider client: %w", err)
	}

	cleanup := func() {}
	var kv driven.KV
	if sqliteKV, err := sqlite.NewKV(cfg.DataDir); err != nil {
		// Registry degrades to in-memory; modules are still listed from
		// the cloud, only the offline view is lost.
		logger.Warn("local registry unavailable (%v), using in-memory cache", err)
		kv = memory.NewKV()
	} else {
		kv = sqliteKV
		cleanup = func() {
			if err := sqliteKV.Close(); err != nil {
				logger.Warn("closing registry: %v", err)
			}
		}
	}
	repo := cache.NewRepository(kv)

	retrier := services.NewRetrier(services.RetryPolicy{
		MaxAttempts: cfg.MaxAttempts,
		BaseDelay:   secondsOrZero(cfg.BaseDelaySeconds),
	})
	reconciler := services.NewReconciler(client, repo, retrier, services.ReconcilerConfig{})
	pipeline := services.NewUploadPipeline(client, client, repo, retrier, services.PipelineConfig{
		PollInterval: secondsOrZero(cfg.PollIntervalSeconds),
		MaxPolls:     cfg.MaxPolls,
	})

	cli.SetLibrary(services.NewLibraryService(client, repo, reconciler, pipeline, retrier))
	cli.SetAnswerer(services.NewQueryService(client, retrier))
	return cleanup, nil
}

// secondsOrZero converts a config tunable to a duration, leaving zero
// for "use the default".
func secondsOrZero(n int) time.Duration {
	if n <= 0 {
		return 0
	}
	return time.Duration(n) * time.Second
}
