// Package storetest provides an in-memory SQLite store for tests.
package storetest

import (
	"context"
	"strings"
	"testing"

	"github.com/diewo77/go-visitors/internal/db"
	"github.com/diewo77/go-visitors/internal/logging"
	"github.com/diewo77/go-visitors/internal/models"
	"github.com/diewo77/go-visitors/internal/store/gormstore"
)

// New opens a fresh migrated database, unique per test.
func New(t testing.TB) *gormstore.Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	opts := db.Options{Driver: "sqlite", DSN: "file:" + name + "?mode=memory&cache=shared"}
	log := logging.NewNoopLogger()
	conn, err := db.Open(opts, log)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.Migrate(context.Background(), conn, opts, log); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := conn.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return gormstore.New(conn, models.All()...)
}
