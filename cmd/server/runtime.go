package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/diewo77/go-visitors/internal/config"
	"github.com/diewo77/go-visitors/internal/db"
	"github.com/diewo77/go-visitors/internal/logging"
	"github.com/diewo77/go-visitors/internal/models"
	"github.com/diewo77/go-visitors/internal/registry"
	"github.com/diewo77/go-visitors/internal/store"
	"github.com/diewo77/go-visitors/internal/store/gormstore"
	"github.com/diewo77/go-visitors/internal/store/postgrest"
)

// runtime is what every command needs: config, logger and the registry over
// the configured store.
type runtime struct {
	spec  *config.EnvSpec
	log   *zap.Logger
	store store.Store
	reg   *registry.Registry
	close func()
}

// storeMode controls schema handling when opening a SQL store.
type storeMode int

const (
	// migrateIfConfigured runs the SQL files only when MIGRATIONS is set.
	migrateIfConfigured storeMode = iota
	// migrateAlways runs the SQL files regardless (postgres only).
	migrateAlways
)

func newRuntime(ctx context.Context, mode storeMode) (*runtime, error) {
	spec, err := config.Load()
	if err != nil {
		return nil, err
	}
	log, err := logging.NewLogger(spec.LogLevel, spec.Dev)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	s, closeStore, err := openStore(ctx, spec, log, mode)
	if err != nil {
		_ = log.Sync()
		return nil, err
	}
	reg := registry.New(s, log, registry.WithRetention(spec.RetentionWindow))
	return &runtime{
		spec:  spec,
		log:   log,
		store: s,
		reg:   reg,
		close: func() {
			closeStore()
			_ = log.Sync()
		},
	}, nil
}

func openStore(ctx context.Context, spec *config.EnvSpec, log *zap.Logger, mode storeMode) (store.Store, func(), error) {
	if spec.StoreBackend == config.BackendPostgREST {
		if mode == migrateAlways {
			log.Warn("migrations are not applied through the PostgREST backend; run them against the database directly")
		}
		log.Info("using PostgREST store", zap.String("url", spec.RemoteStoreURL))
		return postgrest.New(spec.RemoteStoreURL, spec.RemoteStoreKey, log), func() {}, nil
	}

	opts := db.Options{
		Driver:        spec.DBDriver,
		DSN:           spec.DSN(),
		SQLMigrations: spec.Migrations,
		MigrationsDir: "migrations",
		Debug:         spec.DBDebug,
		Retries:       5,
		RetryWait:     2 * time.Second,
	}
	if mode == migrateAlways {
		opts.SQLMigrations = true
	}
	conn, err := db.Open(opts, log)
	if err != nil {
		return nil, nil, err
	}
	closeDB := func() {
		if sqlDB, err := conn.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	// Without SQL migrations gorm AutoMigrate keeps the schema in sync on
	// every start.
	if err := db.Migrate(ctx, conn, opts, log); err != nil {
		closeDB()
		return nil, nil, err
	}
	return gormstore.New(conn, models.All()...), closeDB, nil
}
