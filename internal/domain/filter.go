package domain

import (
	"fmt"
	"strings"
	"time"
)

// SortOrder selects id ordering for entry queries.
type SortOrder int

const (
	// SortNewestFirst orders by id descending (dashboard).
	SortNewestFirst SortOrder = iota
	// SortOldestFirst orders by id ascending (exports).
	SortOldestFirst
)

// EntryFilter narrows an entry query. Empty fields impose no constraint and
// all set fields are combined with AND.
type EntryFilter struct {
	Line           string `json:"line,omitempty"`
	Shift          string `json:"shift,omitempty"`
	Text           string `json:"q,omitempty"`
	ReasonContains string `json:"reason,omitempty"`
	DateFrom       string `json:"from,omitempty"`
	DateTo         string `json:"to,omitempty"`
}

// IsEmpty reports whether the filter matches every entry.
func (f EntryFilter) IsEmpty() bool {
	return f == EntryFilter{}
}

// Normalize trims every field.
func (f EntryFilter) Normalize() EntryFilter {
	return EntryFilter{
		Line:           strings.TrimSpace(f.Line),
		Shift:          strings.TrimSpace(f.Shift),
		Text:           strings.TrimSpace(f.Text),
		ReasonContains: strings.TrimSpace(f.ReasonContains),
		DateFrom:       strings.TrimSpace(f.DateFrom),
		DateTo:         strings.TrimSpace(f.DateTo),
	}
}

// Validate checks the date bounds are well formed YYYY-MM-DD values.
func (f EntryFilter) Validate() error {
	if f.DateFrom != "" {
		if _, err := time.Parse(DateLayout, f.DateFrom); err != nil {
			return fmt.Errorf("%w: from date %q must be YYYY-MM-DD", ErrValidation, f.DateFrom)
		}
	}
	if f.DateTo != "" {
		if _, err := time.Parse(DateLayout, f.DateTo); err != nil {
			return fmt.Errorf("%w: to date %q must be YYYY-MM-DD", ErrValidation, f.DateTo)
		}
	}
	return nil
}

// LowerBound returns the inclusive created_at lower bound, or "" when unset.
func (f EntryFilter) LowerBound() string {
	if f.DateFrom == "" {
		return ""
	}
	return f.DateFrom + " 00:00:00"
}

// UpperBound returns the inclusive created_at upper bound, or "" when unset.
func (f EntryFilter) UpperBound() string {
	if f.DateTo == "" {
		return ""
	}
	return f.DateTo + " 23:59:59"
}
