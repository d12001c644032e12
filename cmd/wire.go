package main

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"gitlab.com/pagetest.net/internal/adapter/browser"
	"gitlab.com/pagetest.net/internal/adapter/filestore"
	"gitlab.com/pagetest.net/internal/adapter/llm"
	"gitlab.com/pagetest.net/internal/adapter/memory"
	"gitlab.com/pagetest.net/internal/adapter/postgres/runrepository"
	"gitlab.com/pagetest.net/internal/adapter/redis/catalogport"
	"gitlab.com/pagetest.net/internal/adapter/redis/lockport"
	"gitlab.com/pagetest.net/internal/adapter/runner"
	"gitlab.com/pagetest.net/internal/config"
	"gitlab.com/pagetest.net/internal/core/ports/primary"
	"gitlab.com/pagetest.net/internal/core/services/synth"
	"gitlab.com/pagetest.net/internal/core/services/testgen"
	logger2 "gitlab.com/pagetest.net/internal/global/logger"
)

// application holds the wired service and the connections to close on exit.
type application struct {
	service *testgen.TestGenService
	store   *filestore.Store
	closers []func() error
}

func (a *application) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			logger2.Warn("Failed to close resource", "error", err)
		}
	}
}

func buildApplication(ctx context.Context, cfg *config.AppConfig, logger primary.Logger) (*application, error) {
	app := &application{}

	store, err := filestore.New(cfg.ArtifactConfig.Dir, cfg.ArtifactConfig.Suffix, logger)
	if err != nil {
		return nil, err
	}
	app.store = store

	model, err := llm.NewProvider(cfg.ModelConfig, logger)
	if err != nil {
		return nil, err
	}

	deps := testgen.Dependencies{
		Store:       store,
		Catalog:     memory.NewCatalog(),
		Renderer:    browser.NewChromeRenderer(cfg.RendererConfig, logger),
		Synthesizer: synth.NewSynthesizer(model, cfg.ModelConfig, logger),
		Runner:      runner.NewProcessRunner(cfg.RunnerConfig, store.Dir(), logger),
		Runs:        memory.NewRunRepository(0),
		Locker:      memory.Locker{},
	}

	if cfg.RedisConfig.Enabled() {
		redisClient, err := setupRedis(ctx, cfg.RedisConfig)
		if err != nil {
			app.Close()
			return nil, err
		}
		app.closers = append(app.closers, redisClient.Close)
		deps.Catalog = catalogport.NewArtifactCatalog(redisClient, cfg.RedisConfig.KeyPrefix, logger)
		deps.Locker = lockport.NewKeyLocker(redisClient, cfg.RedisConfig.KeyPrefix, cfg.RedisConfig.LockTTL, logger)
		logger.Info("Using redis catalog and lock", "addr", cfg.RedisConfig.Url)
	}

	if cfg.PostgresConfig.Enabled() {
		db, err := setupDatabase(ctx, cfg.PostgresConfig)
		if err != nil {
			app.Close()
			return nil, err
		}
		app.closers = append(app.closers, db.Close)
		runs := runrepository.NewRunRepository(db, cfg.PostgresConfig.Schema, logger)
		if err := runs.EnsureTableExists(ctx); err != nil {
			app.Close()
			return nil, err
		}
		deps.Runs = runs
		logger.Info("Using postgres run history", "schema", cfg.PostgresConfig.Schema)
	}

	app.service = testgen.NewTestGenService(deps, logger)
	return app, nil
}

// setupDatabase sets up the PostgreSQL connection
func setupDatabase(ctx context.Context, cfg *config.PostgresConfig) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", cfg.Url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to reach database: %w", err)
	}
	return db, nil
}

// setupRedis sets up the Redis connection
func setupRedis(ctx context.Context, cfg *config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Url,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to reach redis at %s: %w", cfg.Url, err)
	}
	return client, nil
}
