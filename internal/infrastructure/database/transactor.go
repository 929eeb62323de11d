package database

import (
	"context"

	"gorm.io/gorm"
)

// Transactor hands out connections and runs multi-write flows atomically
type Transactor interface {
	// Conn returns a non-transactional handle bound to ctx
	Conn(ctx context.Context) *gorm.DB
	// WithinTransaction commits when fn returns nil and rolls back otherwise
	WithinTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type gormTransactor struct {
	db *gorm.DB
}

func NewTransactor(db *gorm.DB) Transactor {
	return &gormTransactor{db: db}
}

func (t *gormTransactor) Conn(ctx context.Context) *gorm.DB {
	return t.db.WithContext(ctx)
}

// WithinTransaction delegates to gorm, which also rolls back when fn panics
// and nests through savepoints when called on an open transaction.
func (t *gormTransactor) WithinTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return t.db.WithContext(ctx).Transaction(fn)
}
