// Package store defines the generic record store the registry is built on.
// Backends translate a Query into their own dialect: SQL through gorm, or
// PostgREST query strings over HTTP.
package store

import (
	"context"
	"errors"
	"fmt"
	"regexp"
)

var ErrNotFound = errors.New("record not found")

// Op is a filter comparison.
type Op string

const (
	OpEq     Op = "eq"
	OpNeq    Op = "neq"
	OpLt     Op = "lt"
	OpGte    Op = "gte"
	OpILike  Op = "ilike" // case-insensitive substring match
	OpIsNull Op = "is_null"
)

// Filter is one predicate on a column. Filters in a Query are ANDed.
type Filter struct {
	Column string
	Op     Op
	Value  any
}

func Eq(col string, v any) Filter   { return Filter{Column: col, Op: OpEq, Value: v} }
func Neq(col string, v any) Filter  { return Filter{Column: col, Op: OpNeq, Value: v} }
func Lt(col string, v any) Filter   { return Filter{Column: col, Op: OpLt, Value: v} }
func Gte(col string, v any) Filter  { return Filter{Column: col, Op: OpGte, Value: v} }
func Contains(col, s string) Filter { return Filter{Column: col, Op: OpILike, Value: s} }
func IsNull(col string) Filter      { return Filter{Column: col, Op: OpIsNull} }

// Order sorts by a column.
type Order struct {
	Column string
	Desc   bool
}

// Query selects rows of one table.
type Query struct {
	Table   string
	Filters []Filter
	Order   []Order
	Limit   int
}

// From starts a query on table.
func From(table string) Query { return Query{Table: table} }

func (q Query) Where(f ...Filter) Query {
	q.Filters = append(append([]Filter(nil), q.Filters...), f...)
	return q
}

func (q Query) OrderBy(col string, desc bool) Query {
	q.Order = append(append([]Order(nil), q.Order...), Order{Column: col, Desc: desc})
	return q
}

func (q Query) Take(n int) Query {
	q.Limit = n
	return q
}

var identRe = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// Validate rejects identifiers that are not plain snake_case names. Column
// names end up in SQL and URLs verbatim.
func (q Query) Validate() error {
	if !identRe.MatchString(q.Table) {
		return fmt.Errorf("invalid table %q", q.Table)
	}
	for _, f := range q.Filters {
		if !identRe.MatchString(f.Column) {
			return fmt.Errorf("invalid column %q", f.Column)
		}
		switch f.Op {
		case OpEq, OpNeq, OpLt, OpGte, OpILike, OpIsNull:
		default:
			return fmt.Errorf("invalid operator %q", f.Op)
		}
	}
	for _, o := range q.Order {
		if !identRe.MatchString(o.Column) {
			return fmt.Errorf("invalid order column %q", o.Column)
		}
	}
	return nil
}

// Store is the data-store contract. dest and record are pointers to model
// structs (or slices of them for FindMany). FindOne returns ErrNotFound when
// nothing matches. Update and Remove report the number of affected rows.
type Store interface {
	FindOne(ctx context.Context, q Query, dest any) error
	FindMany(ctx context.Context, q Query, dest any) error
	Count(ctx context.Context, q Query) (int64, error)
	Insert(ctx context.Context, table string, record any) error
	Update(ctx context.Context, q Query, patch map[string]any) (int64, error)
	Remove(ctx context.Context, q Query) (int64, error)
	Ping(ctx context.Context) error
}
