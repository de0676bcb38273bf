package domain

import "time"

// TimestampLayout is the created_at format. It is zero padded so string
// comparison orders timestamps chronologically.
const TimestampLayout = "2006-01-02 15:04:05"

// DateLayout is the format of filter date bounds.
const DateLayout = "2006-01-02"

// Entry is one recorded scrap event.
type Entry struct {
	ID        int64   `json:"id"`
	CreatedAt string  `json:"created_at"`
	Parts     string  `json:"parts"`
	Line      string  `json:"line"`
	Reason    string  `json:"reason"`
	Sequence  int     `json:"sequence"`
	Shift     string  `json:"shift"`
	Notes     *string `json:"notes"`
	Comments  *string `json:"comments"`
}

// EntryForm carries the raw values submitted for a new entry. Sequence stays
// a string until the entry service has validated it.
type EntryForm struct {
	Parts    string `form:"parts" validate:"required,max=200"`
	Line     string `form:"line" validate:"required,max=100"`
	Reason   string `form:"reason" validate:"required,max=200"`
	Sequence string `form:"sequence" validate:"required,max=20"`
	Shift    string `form:"shift" validate:"required,max=100"`
	Notes    string `form:"notes" validate:"max=2000"`
	Comments string `form:"comments" validate:"max=2000"`
}

// FormatTimestamp renders t in the created_at layout using t's location.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// OptionalString returns nil for an empty string so absent notes and
// comments are stored as NULL rather than "".
func OptionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// StringValue dereferences s, returning "" for nil.
func StringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
