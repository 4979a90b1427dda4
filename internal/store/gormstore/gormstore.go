// Package gormstore implements store.Store on a gorm connection (PostgreSQL
// in production, SQLite in tests and single-node installs).
package gormstore

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/diewo77/go-visitors/internal/store"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"
)

type Store struct {
	db     *gorm.DB
	models map[string]reflect.Type
}

// New registers the models the store may touch, keyed by their table name.
func New(db *gorm.DB, models ...schema.Tabler) *Store {
	s := &Store{db: db, models: make(map[string]reflect.Type, len(models))}
	for _, m := range models {
		t := reflect.TypeOf(m)
		if t.Kind() == reflect.Ptr {
			t = t.Elem()
		}
		s.models[m.TableName()] = t
	}
	return s
}

// DB exposes the underlying connection for migrations and health checks.
func (s *Store) DB() *gorm.DB { return s.db }

func (s *Store) model(table string) (any, error) {
	t, ok := s.models[table]
	if !ok {
		return nil, fmt.Errorf("gormstore: unknown table %q", table)
	}
	return reflect.New(t).Interface(), nil
}

func (s *Store) scope(ctx context.Context, q store.Query, withOrder bool) (*gorm.DB, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	m, err := s.model(q.Table)
	if err != nil {
		return nil, err
	}
	tx := s.db.WithContext(ctx).Model(m)
	for _, f := range q.Filters {
		switch f.Op {
		case store.OpEq:
			tx = tx.Where(f.Column+" = ?", f.Value)
		case store.OpNeq:
			tx = tx.Where(f.Column+" <> ?", f.Value)
		case store.OpLt:
			tx = tx.Where(f.Column+" < ?", f.Value)
		case store.OpGte:
			tx = tx.Where(f.Column+" >= ?", f.Value)
		case store.OpILike:
			// LOWER/LIKE works on both PostgreSQL and SQLite.
			tx = tx.Where("LOWER("+f.Column+") LIKE ?", "%"+strings.ToLower(fmt.Sprint(f.Value))+"%")
		case store.OpIsNull:
			tx = tx.Where(f.Column + " IS NULL")
		}
	}
	if withOrder {
		for _, o := range q.Order {
			tx = tx.Order(clause.OrderByColumn{Column: clause.Column{Name: o.Column}, Desc: o.Desc})
		}
		if q.Limit > 0 {
			tx = tx.Limit(q.Limit)
		}
	}
	return tx, nil
}

func (s *Store) FindOne(ctx context.Context, q store.Query, dest any) error {
	tx, err := s.scope(ctx, q, true)
	if err != nil {
		return err
	}
	if err := tx.Take(dest).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return store.ErrNotFound
		}
		return fmt.Errorf("find %s: %w", q.Table, err)
	}
	return nil
}

func (s *Store) FindMany(ctx context.Context, q store.Query, dest any) error {
	tx, err := s.scope(ctx, q, true)
	if err != nil {
		return err
	}
	if err := tx.Find(dest).Error; err != nil {
		return fmt.Errorf("list %s: %w", q.Table, err)
	}
	return nil
}

func (s *Store) Count(ctx context.Context, q store.Query) (int64, error) {
	tx, err := s.scope(ctx, q, false)
	if err != nil {
		return 0, err
	}
	var n int64
	if err := tx.Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count %s: %w", q.Table, err)
	}
	return n, nil
}

func (s *Store) Insert(ctx context.Context, table string, record any) error {
	if _, err := s.model(table); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Table(table).Create(record).Error; err != nil {
		return fmt.Errorf("insert %s: %w", table, err)
	}
	return nil
}

func (s *Store) Update(ctx context.Context, q store.Query, patch map[string]any) (int64, error) {
	if len(q.Filters) == 0 {
		return 0, fmt.Errorf("update %s: refusing unfiltered update", q.Table)
	}
	tx, err := s.scope(ctx, q, false)
	if err != nil {
		return 0, err
	}
	res := tx.Updates(patch)
	if res.Error != nil {
		return 0, fmt.Errorf("update %s: %w", q.Table, res.Error)
	}
	return res.RowsAffected, nil
}

func (s *Store) Remove(ctx context.Context, q store.Query) (int64, error) {
	if len(q.Filters) == 0 {
		return 0, fmt.Errorf("remove %s: refusing unfiltered delete", q.Table)
	}
	tx, err := s.scope(ctx, q, false)
	if err != nil {
		return 0, err
	}
	m, _ := s.model(q.Table)
	res := tx.Delete(m)
	if res.Error != nil {
		return 0, fmt.Errorf("remove %s: %w", q.Table, res.Error)
	}
	return res.RowsAffected, nil
}

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

var _ store.Store = (*Store)(nil)
