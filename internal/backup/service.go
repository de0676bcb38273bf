// Package backup serialises the whole tracker state to JSON and CSV and
// restores it from a JSON backup.
package backup

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/osse101/ScrapTracker_Go/internal/domain"
	"github.com/osse101/ScrapTracker_Go/internal/entry"
	"github.com/osse101/ScrapTracker_Go/internal/logger"
	"github.com/osse101/ScrapTracker_Go/internal/option"
	"github.com/osse101/ScrapTracker_Go/internal/repository"
	"github.com/osse101/ScrapTracker_Go/internal/validation"
)

//go:embed backup.schema.json
var backupSchema []byte

var documentValidator = validation.MustSchemaValidator("backup.schema.json", backupSchema)

// Service defines the backup operations
type Service interface {
	Snapshot(ctx context.Context) (*domain.BackupDocument, error)
	ExportJSON(ctx context.Context, w io.Writer) error
	ExportCSV(ctx context.Context, w io.Writer) error
	ImportJSON(ctx context.Context, r io.Reader) (*ImportResult, error)
}

// ImportResult summarises an applied import.
type ImportResult struct {
	Items  int
	Lines  int
	Shifts int
}

type service struct {
	store    repository.Store
	defaults option.Defaults
	now      func() time.Time
}

// NewService creates a backup service over store. defaults are re-seeded
// into any option group an import leaves empty.
func NewService(store repository.Store, defaults option.Defaults) Service {
	return &service{store: store, defaults: defaults, now: time.Now}
}

// Snapshot reads the options and all entries in ascending id order.
func (s *service) Snapshot(ctx context.Context) (*domain.BackupDocument, error) {
	opts := option.NewService(s.store, s.defaults)

	lines, err := opts.List(ctx, domain.OptionGroupLine)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgSnapshot, err)
	}
	shifts, err := opts.List(ctx, domain.OptionGroupShift)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgSnapshot, err)
	}
	items, err := entry.NewService(s.store.Entries()).Query(ctx, domain.EntryFilter{}, domain.SortOldestFirst)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgSnapshot, err)
	}

	return &domain.BackupDocument{
		Options: domain.BackupOptions{Line: lines, Shift: shifts},
		Items:   items,
	}, nil
}

// ExportJSON writes the pretty printed backup document.
func (s *service) ExportJSON(ctx context.Context, w io.Writer) error {
	doc, err := s.Snapshot(ctx)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgEncodeJSON, err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgEncodeJSON, err)
	}
	return nil
}

// ExportCSV writes one row per entry under domain.CSVHeader. Absent notes and
// comments become empty cells.
func (s *service) ExportCSV(ctx context.Context, w io.Writer) error {
	items, err := entry.NewService(s.store.Entries()).Query(ctx, domain.EntryFilter{}, domain.SortOldestFirst)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgSnapshot, err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(domain.CSVHeader); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgWriteCSV, err)
	}
	for _, e := range items {
		row := []string{
			e.CreatedAt,
			e.Parts,
			e.Line,
			e.Reason,
			strconv.Itoa(e.Sequence),
			e.Shift,
			domain.StringValue(e.Notes),
			domain.StringValue(e.Comments),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("%s: %w", ErrMsgWriteCSV, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgWriteCSV, err)
	}
	return nil
}

// ImportJSON replaces the option groups and every entry with the contents of
// the document read from r. The document is fully parsed and validated
// before anything is written, and the writes share one transaction, so a
// rejected import leaves the store as it was.
func (s *service) ImportJSON(ctx context.Context, r io.Reader) (*ImportResult, error) {
	log := logger.FromContext(ctx)

	doc, err := s.parse(r)
	if err != nil {
		log.Warn(LogMsgImportRejected, "error", err)
		return nil, err
	}

	err = s.store.WithTx(ctx, func(tx repository.Store) error {
		opts := option.NewService(tx, s.defaults)
		if err := opts.ReplaceGroup(ctx, domain.OptionGroupLine, doc.Options.Line); err != nil {
			return err
		}
		if err := opts.ReplaceGroup(ctx, domain.OptionGroupShift, doc.Options.Shift); err != nil {
			return err
		}
		return entry.NewService(tx.Entries()).ReplaceAll(ctx, doc.Items)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgApplyImport, err)
	}

	result := &ImportResult{Items: len(doc.Items), Lines: len(doc.Options.Line), Shifts: len(doc.Options.Shift)}
	log.Info(LogMsgImportApplied, "items", result.Items, "lines", result.Lines, "shifts", result.Shifts)
	return result, nil
}

// parse reads, schema-checks and decodes a backup document. Every failure
// wraps domain.ErrImport.
func (s *service) parse(r io.Reader) (*domain.BackupDocument, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxImportBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrImport, ErrMsgReadDocument, err)
	}
	if len(data) > MaxImportBytes {
		return nil, fmt.Errorf("%w: "+ErrMsgDocumentTooLarge, domain.ErrImport, MaxImportBytes)
	}

	if err := documentValidator.ValidateBytes(data); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrImport, ErrMsgSchema, err)
	}

	var raw rawDocument
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrImport, ErrMsgDecode, err)
	}

	return raw.toDocument(domain.FormatTimestamp(s.now()))
}
