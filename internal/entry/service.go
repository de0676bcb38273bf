// Package entry owns the lifecycle of scrap entries: validating submitted
// forms, stamping them and handing them to the repository.
package entry

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/ScrapTracker_Go/internal/domain"
	"github.com/osse101/ScrapTracker_Go/internal/logger"
	"github.com/osse101/ScrapTracker_Go/internal/repository"
	"github.com/osse101/ScrapTracker_Go/internal/utils"
)

// Service defines the entry operations used by handlers and the backup codec
type Service interface {
	Insert(ctx context.Context, form domain.EntryForm) (int64, error)
	Delete(ctx context.Context, id int64) error
	Query(ctx context.Context, filter domain.EntryFilter, order domain.SortOrder) ([]domain.Entry, error)
	ReplaceAll(ctx context.Context, entries []domain.Entry) error
	Count(ctx context.Context) (int, error)
}

// ServiceOption customises a service at construction.
type ServiceOption func(*service)

// WithClock overrides the clock used to stamp created_at.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *service) { s.now = now }
}

type service struct {
	repo     repository.Entry
	validate *validator.Validate
	now      func() time.Time
}

// NewService creates a new entry service
func NewService(repo repository.Entry, opts ...ServiceOption) Service {
	s := &service{
		repo:     repo,
		validate: validator.New(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Insert validates form and stores it as a new entry stamped with the
// current local time.
func (s *service) Insert(ctx context.Context, form domain.EntryForm) (int64, error) {
	log := logger.FromContext(ctx)

	form = normalizeForm(form)
	if err := s.validate.Struct(form); err != nil {
		log.Info(LogMsgInvalidEntry, "error", err)
		return 0, fmt.Errorf("%w: %w", domain.ErrValidation, err)
	}

	// The column is a 32-bit INTEGER on postgres and imports enforce the
	// same range.
	seq, err := strconv.ParseInt(form.Sequence, 10, 32)
	if err != nil {
		log.Info(LogMsgInvalidEntry, "sequence", form.Sequence)
		return 0, fmt.Errorf("%w: %s", domain.ErrValidation, ErrMsgInvalidSequence)
	}

	e := &domain.Entry{
		CreatedAt: domain.FormatTimestamp(s.now()),
		Parts:     form.Parts,
		Line:      form.Line,
		Reason:    form.Reason,
		Sequence:  int(seq),
		Shift:     form.Shift,
		Notes:     domain.OptionalString(form.Notes),
		Comments:  domain.OptionalString(form.Comments),
	}

	id, err := s.repo.Insert(ctx, e)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgInsertEntryFailed, err)
	}

	log.Info(LogMsgEntryAdded, "id", id, "line", e.Line, "shift", e.Shift)
	return id, nil
}

// Delete removes the entry if it exists. Deleting a missing id succeeds.
func (s *service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf(ErrMsgDeleteEntryFailed+": %w", id, err)
	}
	logger.FromContext(ctx).Info(LogMsgEntryDeleted, "id", id)
	return nil
}

// Query returns the entries matching filter.
func (s *service) Query(ctx context.Context, filter domain.EntryFilter, order domain.SortOrder) ([]domain.Entry, error) {
	filter = filter.Normalize()
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	entries, err := s.repo.Query(ctx, filter, order)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgQueryFailed, err)
	}
	return entries, nil
}

// ReplaceAll swaps the whole entry set for entries, keeping their ids.
func (s *service) ReplaceAll(ctx context.Context, entries []domain.Entry) error {
	for _, e := range entries {
		if err := checkRequired(e); err != nil {
			return err
		}
	}

	logger.FromContext(ctx).Info(LogMsgEntriesReplace, "count", len(entries))
	if err := s.repo.ReplaceAll(ctx, entries); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgReplaceFailed, err)
	}
	return nil
}

// Count returns the total number of stored entries.
func (s *service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

func normalizeForm(f domain.EntryForm) domain.EntryForm {
	return domain.EntryForm{
		Parts:    utils.NormalizeText(f.Parts),
		Line:     utils.NormalizeText(f.Line),
		Reason:   utils.NormalizeText(f.Reason),
		Sequence: utils.NormalizeText(f.Sequence),
		Shift:    utils.NormalizeText(f.Shift),
		Notes:    utils.NormalizeText(f.Notes),
		Comments: utils.NormalizeText(f.Comments),
	}
}

func checkRequired(e domain.Entry) error {
	fields := []struct {
		name  string
		value string
	}{
		{"created_at", e.CreatedAt},
		{"parts", e.Parts},
		{"line", e.Line},
		{"reason", e.Reason},
		{"shift", e.Shift},
	}
	for _, f := range fields {
		if f.value == "" {
			return fmt.Errorf("%w: "+ErrMsgMissingField, domain.ErrValidation, e.ID, f.name)
		}
	}
	return nil
}
