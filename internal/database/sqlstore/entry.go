package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/osse101/ScrapTracker_Go/internal/database"
	"github.com/osse101/ScrapTracker_Go/internal/domain"
)

const entryColumns = "id, created_at, parts, line, reason, sequence, shift, notes, comments"

// EntryRepository implements repository.Entry over database/sql.
type EntryRepository struct {
	db      database.DBTX
	dialect database.Dialect
	// pool is set when db is not already a transaction, so multi-statement
	// operations can open their own.
	pool *sql.DB
}

// Insert persists e and returns the assigned id.
func (r *EntryRepository) Insert(ctx context.Context, e *domain.Entry) (int64, error) {
	query := r.dialect.Rebind(`INSERT INTO items (created_at, parts, line, reason, sequence, shift, notes, comments)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`)

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		e.CreatedAt, e.Parts, e.Line, e.Reason, e.Sequence, e.Shift, nullString(e.Notes), nullString(e.Comments),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToInsertEntry, err)
	}
	return id, nil
}

// Delete removes the entry with id if present.
func (r *EntryRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, r.dialect.Rebind(`DELETE FROM items WHERE id = ?`), id); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToDeleteEntry, err)
	}
	return nil
}

// Query returns entries matching filter in the requested id order.
func (r *EntryRepository) Query(ctx context.Context, filter domain.EntryFilter, order domain.SortOrder) ([]domain.Entry, error) {
	where, args := whereClause(r.dialect, filter)
	query := r.dialect.Rebind("SELECT " + entryColumns + " FROM items" + where + orderClause(order))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryEntries, err)
	}
	defer rows.Close()

	entries := make([]domain.Entry, 0)
	for rows.Next() {
		var (
			e        domain.Entry
			notes    sql.NullString
			comments sql.NullString
		)
		if err := rows.Scan(&e.ID, &e.CreatedAt, &e.Parts, &e.Line, &e.Reason, &e.Sequence, &e.Shift, &notes, &comments); err != nil {
			return nil, fmt.Errorf("%s: %w: %v", ErrMsgFailedToScanEntry, domain.ErrValidation, err)
		}
		e.Notes = stringPtr(notes)
		e.Comments = stringPtr(comments)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryEntries, err)
	}
	return entries, nil
}

// ReplaceAll deletes all entries and inserts entries with their ids.
func (r *EntryRepository) ReplaceAll(ctx context.Context, entries []domain.Entry) error {
	return r.atomic(ctx, func(ctx context.Context, tx database.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM items`); err != nil {
			return fmt.Errorf("%s: %w", ErrMsgFailedToClearEntries, err)
		}

		insert := r.dialect.Rebind(`INSERT INTO items (` + entryColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		for _, e := range entries {
			if _, err := tx.ExecContext(ctx, insert,
				e.ID, e.CreatedAt, e.Parts, e.Line, e.Reason, e.Sequence, e.Shift, nullString(e.Notes), nullString(e.Comments),
			); err != nil {
				return fmt.Errorf("%s %d: %w", ErrMsgFailedToInsertEntry, e.ID, err)
			}
		}

		// SQLite AUTOINCREMENT tracks the high-water mark itself; postgres
		// needs the identity sequence moved past the imported ids.
		if r.dialect == database.Postgres {
			if _, err := tx.ExecContext(ctx, `SELECT setval('items_id_seq',
				GREATEST((SELECT COALESCE(MAX(id), 0) FROM items), (SELECT last_value FROM items_id_seq)))`); err != nil {
				return fmt.Errorf("%s: %w", ErrMsgFailedToResetSequence, err)
			}
		}
		return nil
	})
}

// Count returns the unfiltered number of entries.
func (r *EntryRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM items`).Scan(&n); err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToCountEntries, err)
	}
	return n, nil
}

func (r *EntryRepository) atomic(ctx context.Context, fn func(ctx context.Context, tx database.DBTX) error) error {
	if r.pool == nil {
		return fn(ctx, r.db)
	}
	return database.WithTx(ctx, r.pool, fn)
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
