package database

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockTransactor(t *testing.T) (Transactor, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		DisableAutomaticPing:   true,
	})
	require.NoError(t, err)
	return NewTransactor(db), mock
}

func deactivate(tx *gorm.DB) error {
	return tx.Exec("UPDATE users SET is_active = false WHERE username = ?", "juan").Error
}

func TestWithinTransactionCommits(t *testing.T) {
	tx, mock := newMockTransactor(t)
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE users SET is_active").WithArgs("juan").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := tx.WithinTransaction(context.Background(), deactivate)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithinTransactionRollsBackOnError(t *testing.T) {
	tx, mock := newMockTransactor(t)
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE users SET is_active").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectRollback()

	failure := errors.New("profile missing")
	err := tx.WithinTransaction(context.Background(), func(db *gorm.DB) error {
		if err := deactivate(db); err != nil {
			return err
		}
		return failure
	})

	assert.ErrorIs(t, err, failure)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithinTransactionRollsBackOnPanic(t *testing.T) {
	tx, mock := newMockTransactor(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	assert.Panics(t, func() {
		_ = tx.WithinTransaction(context.Background(), func(*gorm.DB) error {
			panic("boom")
		})
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithinTransactionReportsBeginFailure(t *testing.T) {
	tx, mock := newMockTransactor(t)
	mock.ExpectBegin().WillReturnError(errors.New("connection refused"))

	called := false
	err := tx.WithinTransaction(context.Background(), func(*gorm.DB) error {
		called = true
		return nil
	})

	require.Error(t, err)
	assert.False(t, called)
	assert.NoError(t, mock.ExpectationsWereMet())
}
