package sqlstore

import (
	"context"
	"fmt"

	"github.com/osse101/ScrapTracker_Go/internal/database"
	"github.com/osse101/ScrapTracker_Go/internal/domain"
)

// OptionRepository implements repository.Option over database/sql.
type OptionRepository struct {
	db      database.DBTX
	dialect database.Dialect
}

// List returns the group's values in ascending order.
func (r *OptionRepository) List(ctx context.Context, group domain.OptionGroup) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		r.dialect.Rebind(`SELECT value FROM options WHERE option_group = ? ORDER BY value ASC`), string(group))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListOptions, err)
	}
	defer rows.Close()

	values := make([]string, 0)
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListOptions, err)
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListOptions, err)
	}
	return values, nil
}

// Count returns the number of values in group.
func (r *OptionRepository) Count(ctx context.Context, group domain.OptionGroup) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		r.dialect.Rebind(`SELECT COUNT(*) FROM options WHERE option_group = ?`), string(group)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToCountOptions, err)
	}
	return n, nil
}

// Add inserts value unless it already exists.
func (r *OptionRepository) Add(ctx context.Context, group domain.OptionGroup, value string) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		r.dialect.Rebind(`INSERT INTO options (option_group, value) VALUES (?, ?) ON CONFLICT DO NOTHING`),
		string(group), value)
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgFailedToInsertOption, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgFailedToGetRowsAffected, err)
	}
	return n > 0, nil
}

// Remove deletes value if present.
func (r *OptionRepository) Remove(ctx context.Context, group domain.OptionGroup, value string) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		r.dialect.Rebind(`DELETE FROM options WHERE option_group = ? AND value = ?`), string(group), value)
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgFailedToDeleteOption, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgFailedToGetRowsAffected, err)
	}
	return n > 0, nil
}

// DeleteGroup removes every value in group.
func (r *OptionRepository) DeleteGroup(ctx context.Context, group domain.OptionGroup) error {
	if _, err := r.db.ExecContext(ctx,
		r.dialect.Rebind(`DELETE FROM options WHERE option_group = ?`), string(group)); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToClearOptions, err)
	}
	return nil
}
