// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides the generic document-store contract
// the services talk to.
//
// A Collection is small: find, insert, update, increment, delete and index
// setup. Filters are plain column -> value equality maps,
// which covers every query the gallery API issues.
//
// Error semantics:
//   - FindOne returns ErrNotFound when nothing matches.
//   - UpdateMany/IncrementMany/DeleteMany act on every matching row, report
//     the number affected and return a nil error when nothing matched.
//     Callers that need a single row filter on a unique column.
//   - Unique violations surface as raw driver errors; use IsDuplicate.
package repo

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// ErrInvalidID is returned by ParseID for strings that are not store ids.
var ErrInvalidID = errors.New("invalid id")

// Filter is an equality filter: column name -> required value. A nil or
// empty Filter matches every record.
type Filter map[string]any

// Sort orders FindMany results by a single column.
type Sort struct {
	Column string
	Desc   bool
}

// NewestFirst orders by creation time, most recent first.
var NewestFirst = &Sort{Column: "created_at", Desc: true}

// Collection is the document-store contract for one record type.
type Collection[T any] interface {
	// FindMany returns every record matching filter. sort may be nil
	// (store order); limit <= 0 means no limit.
	FindMany(ctx context.Context, filter Filter, sort *Sort, limit int) ([]T, error)

	// FindOne returns the first record matching filter or ErrNotFound.
	FindOne(ctx context.Context, filter Filter) (*T, error)

	// InsertOne persists doc.
	InsertOne(ctx context.Context, doc *T) error

	// UpdateMany sets the given columns on every record matching filter.
	UpdateMany(ctx context.Context, filter Filter, update map[string]any) (int64, error)

	// IncrementMany atomically adds delta to column on every matching record.
	IncrementMany(ctx context.Context, filter Filter, column string, delta int64) (int64, error)

	// DeleteMany removes every record matching filter. An empty filter is
	// refused by GORM's missing-where guard.
	DeleteMany(ctx context.Context, filter Filter) (int64, error)

	// EnsureUniqueIndex creates a unique index over columns if missing.
	EnsureUniqueIndex(ctx context.Context, name string, columns ...string) error
}

// GormCollection implements Collection on top of a *gorm.DB handle.
type GormCollection[T any] struct {
	db *gorm.DB
}

// NewCollection binds a collection for T to db.
func NewCollection[T any](db *gorm.DB) *GormCollection[T] {
	return &GormCollection[T]{db: db}
}

func (c *GormCollection[T]) scoped(ctx context.Context, filter Filter) *gorm.DB {
	q := c.db.WithContext(ctx).Model(new(T))
	if len(filter) > 0 {
		q = q.Where(map[string]any(filter))
	}
	return q
}

// FindMany implements Collection.
func (c *GormCollection[T]) FindMany(ctx context.Context, filter Filter, sort *Sort, limit int) ([]T, error) {
	q := c.scoped(ctx, filter)
	if sort != nil {
		q = q.Order(clause.OrderByColumn{Column: clause.Column{Name: sort.Column}, Desc: sort.Desc})
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	out := make([]T, 0)
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// FindOne implements Collection.
func (c *GormCollection[T]) FindOne(ctx context.Context, filter Filter) (*T, error) {
	var out T
	if err := c.scoped(ctx, filter).Take(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

// InsertOne implements Collection.
func (c *GormCollection[T]) InsertOne(ctx context.Context, doc *T) error {
	return c.db.WithContext(ctx).Create(doc).Error
}

// UpdateMany implements Collection.
func (c *GormCollection[T]) UpdateMany(ctx context.Context, filter Filter, update map[string]any) (int64, error) {
	if len(update) == 0 {
		return 0, nil
	}
	res := c.scoped(ctx, filter).Updates(update)
	return res.RowsAffected, res.Error
}

// IncrementMany implements Collection. The addition happens in SQL so
// concurrent increments never lose updates.
func (c *GormCollection[T]) IncrementMany(ctx context.Context, filter Filter, column string, delta int64) (int64, error) {
	res := c.scoped(ctx, filter).
		UpdateColumn(column, gorm.Expr("? + ?", clause.Column{Name: column}, delta))
	return res.RowsAffected, res.Error
}

// DeleteMany implements Collection.
func (c *GormCollection[T]) DeleteMany(ctx context.Context, filter Filter) (int64, error) {
	q := c.db.WithContext(ctx)
	if len(filter) > 0 {
		q = q.Where(map[string]any(filter))
	}
	res := q.Delete(new(T))
	return res.RowsAffected, res.Error
}

// EnsureUniqueIndex implements Collection.
func (c *GormCollection[T]) EnsureUniqueIndex(ctx context.Context, name string, columns ...string) error {
	if len(columns) == 0 {
		return errors.New("repo: unique index needs at least one column")
	}
	stmt := &gorm.Statement{DB: c.db}
	if err := stmt.Parse(new(T)); err != nil {
		return err
	}
	cols := make([]any, len(columns))
	for i, col := range columns {
		cols[i] = clause.Column{Name: col}
	}
	return c.db.WithContext(ctx).Exec(
		"CREATE UNIQUE INDEX IF NOT EXISTS ? ON ? ?",
		clause.Column{Name: name}, clause.Table{Name: stmt.Schema.Table}, cols,
	).Error
}

// ParseID converts an opaque id string into the canonical store id.
func ParseID(s string) (string, error) {
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return "", ErrInvalidID
	}
	return id.String(), nil
}

// IsDuplicate reports whether err is a unique constraint violation.
func IsDuplicate(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// SQLite typically: "UNIQUE constraint failed"
	// Postgres typically: "duplicate key value violates unique constraint"
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "constraint failed: unique") ||
		strings.Contains(msg, "duplicate key")
}
