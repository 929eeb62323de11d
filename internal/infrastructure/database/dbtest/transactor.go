// Package dbtest provides database test doubles.
package dbtest

import (
	"context"

	"gorm.io/gorm"
)

// Transactor runs callbacks with a nil *gorm.DB so repository mocks see a stable handle.
// Commits and Rollbacks count how each transaction ended.
type Transactor struct {
	Commits   int
	Rollbacks int
}

func (t *Transactor) Conn(ctx context.Context) *gorm.DB {
	return nil
}

func (t *Transactor) WithinTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if err := fn(nil); err != nil {
		t.Rollbacks++
		return err
	}
	t.Commits++
	return nil
}
