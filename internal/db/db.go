// Package db opens the SQL database behind the gorm store and applies schema
// migrations.
package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/diewo77/go-visitors/internal/models"
	migrate "github.com/golang-migrate/migrate/v4"
	// Blank imports register the postgres driver and file source for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Options selects the driver and migration strategy.
type Options struct {
	Driver string // "postgres" or "sqlite"
	DSN    string
	// SQLMigrations runs the files in MigrationsDir through golang-migrate
	// (postgres only). Otherwise the schema comes from gorm AutoMigrate.
	SQLMigrations bool
	MigrationsDir string
	Debug         bool
	Retries       int
	RetryWait     time.Duration
}

// Open connects with retries and verifies connectivity.
func Open(opts Options, log *zap.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch opts.Driver {
	case "postgres":
		opts.DSN = NormalizeDSN(opts.DSN)
		dialector = postgres.Open(opts.DSN)
	case "sqlite":
		dialector = sqlite.Open(opts.DSN)
	default:
		return nil, fmt.Errorf("unsupported driver %q", opts.Driver)
	}
	if opts.DSN == "" {
		return nil, errors.New("empty database DSN")
	}
	logLevel := logger.Silent
	if opts.Debug {
		logLevel = logger.Info
	}
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logLevel)}

	retries := opts.Retries
	if retries <= 0 {
		retries = 1
	}
	var (
		conn *gorm.DB
		err  error
	)
	for i := 0; i < retries; i++ {
		conn, err = gorm.Open(dialector, cfg)
		if err == nil {
			break
		}
		log.Warn("retrying database connection", zap.Int("attempt", i+1), zap.Error(err))
		time.Sleep(opts.RetryWait)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect database after retries: %w", err)
	}
	if pingErr := conn.Exec("SELECT 1").Error; pingErr != nil {
		return nil, fmt.Errorf("db ping failed: %w", pingErr)
	}
	log.Info("database connected", zap.String("driver", opts.Driver), zap.String("dsn", MaskDSN(opts.DSN)))
	return conn, nil
}

// Migrate brings the schema up to date and checks that every table exists.
func Migrate(ctx context.Context, conn *gorm.DB, opts Options, log *zap.Logger) error {
	if opts.SQLMigrations && opts.Driver == "postgres" {
		dir := opts.MigrationsDir
		if dir == "" {
			dir = "migrations"
		}
		if err := runSQLMigrations(dir, ToURLDSN(opts.DSN)); err != nil {
			return fmt.Errorf("sql migrations failed: %w", err)
		}
		log.Info("sql migrations applied", zap.String("dir", dir))
	} else {
		for _, m := range models.All() {
			if err := conn.WithContext(ctx).AutoMigrate(m); err != nil {
				return fmt.Errorf("automigrate %T: %w", m, err)
			}
		}
		log.Debug("automigrate completed")
	}
	for _, m := range models.All() {
		if !conn.Migrator().HasTable(m.TableName()) {
			return errors.New("missing table after migration: " + m.TableName())
		}
	}
	return nil
}

func runSQLMigrations(dir, dsn string) error {
	m, err := migrate.New("file://"+dir, dsn)
	if err != nil {
		return err
	}
	defer m.Close()
	if err = m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}
