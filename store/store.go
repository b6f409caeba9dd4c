// Package store persists clients, contracts, invoices and settings with gorm.
//
// Lookups by id return nil and no error when the row does not exist; callers
// decide whether that is a 404 or a fallback.
package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB exposes the underlying connection, for health checks.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Ping checks that the database answers.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func newID() string {
	return uuid.NewString()
}

// first loads one row into dest and reports whether it exists.
func first(tx *gorm.DB, dest interface{}, conds ...interface{}) (bool, error) {
	err := tx.First(dest, conds...).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
