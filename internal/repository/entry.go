package repository

import (
	"context"

	"github.com/osse101/ScrapTracker_Go/internal/domain"
)

// Entry defines the interface for scrap entry persistence
type Entry interface {
	// Insert persists e (ID is ignored) and returns the store-assigned id.
	Insert(ctx context.Context, e *domain.Entry) (int64, error)
	// Delete removes the entry with id. A missing id is not an error.
	Delete(ctx context.Context, id int64) error
	Query(ctx context.Context, filter domain.EntryFilter, order domain.SortOrder) ([]domain.Entry, error)
	// ReplaceAll deletes every entry and inserts entries with their ids.
	ReplaceAll(ctx context.Context, entries []domain.Entry) error
	Count(ctx context.Context) (int, error)
}
