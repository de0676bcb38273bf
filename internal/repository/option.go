package repository

import (
	"context"

	"github.com/osse101/ScrapTracker_Go/internal/domain"
)

// Option defines the interface for dropdown option persistence
type Option interface {
	List(ctx context.Context, group domain.OptionGroup) ([]string, error)
	Count(ctx context.Context, group domain.OptionGroup) (int, error)
	// Add inserts value, ignoring duplicates. It reports whether a row was added.
	Add(ctx context.Context, group domain.OptionGroup, value string) (bool, error)
	// Remove deletes value. It reports whether a row was removed.
	Remove(ctx context.Context, group domain.OptionGroup, value string) (bool, error)
	DeleteGroup(ctx context.Context, group domain.OptionGroup) error
}
