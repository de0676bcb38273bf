// Package sqlstore implements the repository interfaces on database/sql for
// both the SQLite and PostgreSQL dialects.
package sqlstore

import (
	"context"

	"github.com/osse101/ScrapTracker_Go/internal/database"
	"github.com/osse101/ScrapTracker_Go/internal/repository"
)

// Store vends repositories bound either to the pool or to one transaction.
type Store struct {
	db      *database.DB
	entries *EntryRepository
	options *OptionRepository
	inTx    bool
}

// New creates a Store on db.
func New(db *database.DB) *Store {
	return &Store{
		db:      db,
		entries: &EntryRepository{db: db.DB, dialect: db.Dialect, pool: db.DB},
		options: &OptionRepository{db: db.DB, dialect: db.Dialect},
	}
}

func (s *Store) Entries() repository.Entry  { return s.entries }
func (s *Store) Options() repository.Option { return s.options }

// WithTx runs fn inside a transaction. Nested calls reuse the outer one.
func (s *Store) WithTx(ctx context.Context, fn func(tx repository.Store) error) error {
	if s.inTx {
		return fn(s)
	}
	return database.WithTx(ctx, s.db.DB, func(ctx context.Context, tx database.DBTX) error {
		return fn(&Store{
			db:      s.db,
			entries: &EntryRepository{db: tx, dialect: s.db.Dialect},
			options: &OptionRepository{db: tx, dialect: s.db.Dialect},
			inTx:    true,
		})
	})
}

// Ping checks connectivity of the underlying pool.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}
