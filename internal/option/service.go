// Package option manages the editable dropdown groups. Every group keeps at
// least one member: it is seeded with defaults when empty and refuses to
// drop its last value.
package option

import (
	"context"
	"fmt"

	"github.com/osse101/ScrapTracker_Go/internal/domain"
	"github.com/osse101/ScrapTracker_Go/internal/logger"
	"github.com/osse101/ScrapTracker_Go/internal/repository"
	"github.com/osse101/ScrapTracker_Go/internal/utils"
)

// Service defines the option group operations
type Service interface {
	EnsureDefaults(ctx context.Context, group domain.OptionGroup) error
	List(ctx context.Context, group domain.OptionGroup) ([]string, error)
	Add(ctx context.Context, group domain.OptionGroup, value string) (bool, error)
	Remove(ctx context.Context, group domain.OptionGroup, value string) (bool, error)
	ReplaceGroup(ctx context.Context, group domain.OptionGroup, values []string) error
}

// Defaults maps each group to the values seeded when it is empty.
type Defaults map[domain.OptionGroup][]string

// StandardDefaults returns the built-in seed values.
func StandardDefaults() Defaults {
	return Defaults{
		domain.OptionGroupLine:  domain.DefaultLines,
		domain.OptionGroupShift: domain.DefaultShifts,
	}
}

type service struct {
	store    repository.Store
	defaults Defaults
}

// NewService creates a new option service. Groups missing from defaults
// fall back to StandardDefaults.
func NewService(store repository.Store, defaults Defaults) Service {
	merged := StandardDefaults()
	for g, values := range defaults {
		if len(utils.NormalizeValues(values)) > 0 {
			merged[g] = values
		}
	}
	return &service{store: store, defaults: merged}
}

// EnsureDefaults seeds group when it has no members.
func (s *service) EnsureDefaults(ctx context.Context, group domain.OptionGroup) error {
	if !group.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidOptionGroup, group)
	}
	return s.store.WithTx(ctx, func(tx repository.Store) error {
		return s.seed(ctx, tx.Options(), group)
	})
}

func (s *service) seed(ctx context.Context, repo repository.Option, group domain.OptionGroup) error {
	n, err := repo.Count(ctx, group)
	if err != nil {
		return fmt.Errorf(ErrMsgSeedFailed+": %w", group, err)
	}
	if n > 0 {
		return nil
	}

	values := utils.NormalizeValues(s.defaults[group])
	for _, v := range values {
		if _, err := repo.Add(ctx, group, v); err != nil {
			return fmt.Errorf(ErrMsgSeedFailed+": %w", group, err)
		}
	}
	logger.FromContext(ctx).Info(LogMsgDefaultsSeeded, "group", group, "count", len(values))
	return nil
}

// List returns the group's values in ascending order, seeding defaults first
// if the group is empty.
func (s *service) List(ctx context.Context, group domain.OptionGroup) ([]string, error) {
	if err := s.EnsureDefaults(ctx, group); err != nil {
		return nil, err
	}
	values, err := s.store.Options().List(ctx, group)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgListFailed+": %w", group, err)
	}
	return values, nil
}

// Add inserts value into group. An unknown group, an empty value or an
// existing value leaves the store untouched and reports false.
func (s *service) Add(ctx context.Context, group domain.OptionGroup, value string) (bool, error) {
	log := logger.FromContext(ctx)

	value = utils.NormalizeText(value)
	if !group.Valid() || value == "" {
		log.Warn(LogMsgIgnoredAdd, "group", group, "value", value)
		return false, nil
	}

	added, err := s.store.Options().Add(ctx, group, value)
	if err != nil {
		return false, fmt.Errorf(ErrMsgAddFailed+": %w", group, err)
	}
	if added {
		log.Info(LogMsgOptionAdded, "group", group, "value", value)
	}
	return added, nil
}

// Remove deletes value from group unless it is the group's only member.
// Refusals and missing values report false without an error.
func (s *service) Remove(ctx context.Context, group domain.OptionGroup, value string) (bool, error) {
	log := logger.FromContext(ctx)

	value = utils.NormalizeText(value)
	if !group.Valid() || value == "" {
		return false, nil
	}

	var removed bool
	err := s.store.WithTx(ctx, func(tx repository.Store) error {
		n, err := tx.Options().Count(ctx, group)
		if err != nil {
			return err
		}
		if n <= 1 {
			log.Info(LogMsgRefusedLastRemoval, "group", group, "value", value)
			return nil
		}
		removed, err = tx.Options().Remove(ctx, group, value)
		return err
	})
	if err != nil {
		return false, fmt.Errorf(ErrMsgRemoveFailed+": %w", group, err)
	}
	if removed {
		log.Info(LogMsgOptionRemoved, "group", group, "value", value)
	}
	return removed, nil
}

// ReplaceGroup overwrites group with values, re-seeding defaults if nothing
// usable remains. Callers wanting atomicity with other writes pass a
// service built on a transaction store.
func (s *service) ReplaceGroup(ctx context.Context, group domain.OptionGroup, values []string) error {
	if !group.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidOptionGroup, group)
	}

	values = utils.NormalizeValues(values)
	err := s.store.WithTx(ctx, func(tx repository.Store) error {
		repo := tx.Options()
		if err := repo.DeleteGroup(ctx, group); err != nil {
			return err
		}
		for _, v := range values {
			if _, err := repo.Add(ctx, group, v); err != nil {
				return err
			}
		}
		return s.seed(ctx, repo, group)
	})
	if err != nil {
		return fmt.Errorf(ErrMsgReplaceFailed+": %w", group, err)
	}

	logger.FromContext(ctx).Info(LogMsgGroupReplaced, "group", group, "count", len(values))
	return nil
}
