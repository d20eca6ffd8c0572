package db

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// Store is the gorm implementation of Repository.
type Store struct {
	db *gorm.DB
}

var _ Repository = (*Store)(nil)

func NewStore(gdb *gorm.DB) *Store {
	return &Store{db: gdb}
}

// DB exposes the underlying handle, e.g. for closing it.
func (s *Store) DB() *gorm.DB {
	return s.db
}

func (s *Store) Transaction(ctx context.Context, fn func(Repository) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

func (s *Store) conn(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

// translate maps gorm errors onto the repository's sentinel errors.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	}
	return err
}

// inTx runs fn in a transaction; inside Transaction it becomes a savepoint.
func (s *Store) inTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return s.conn(ctx).Transaction(fn)
}
