package repository

import "context"

// Store vends repositories bound to one connection pool and runs units of
// work atomically.
type Store interface {
	Entries() Entry
	Options() Option
	// WithTx runs fn with repositories bound to a single transaction. The
	// transaction commits when fn returns nil and rolls back otherwise.
	WithTx(ctx context.Context, fn func(tx Store) error) error
	Ping(ctx context.Context) error
}
