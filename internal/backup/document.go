package backup

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/osse101/ScrapTracker_Go/internal/domain"
)

// rawDocument mirrors the backup JSON before integer coercion.
type rawDocument struct {
	Options *domain.BackupOptions `json:"options"`
	Items   []rawItem             `json:"items"`
}

type rawItem struct {
	ID        any     `json:"id"`
	CreatedAt *string `json:"created_at"`
	Parts     string  `json:"parts"`
	Line      string  `json:"line"`
	Reason    string  `json:"reason"`
	Sequence  any     `json:"sequence"`
	Shift     string  `json:"shift"`
	Notes     *string `json:"notes"`
	Comments  *string `json:"comments"`
}

// toDocument coerces ids and sequences to integers, fills a missing
// created_at with now and rejects duplicate ids.
func (raw rawDocument) toDocument(now string) (*domain.BackupDocument, error) {
	doc := &domain.BackupDocument{Items: make([]domain.Entry, 0, len(raw.Items))}
	if raw.Options != nil {
		doc.Options = *raw.Options
	}

	seen := make(map[int64]struct{}, len(raw.Items))
	for i, it := range raw.Items {
		id, err := coerceInt(it.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: "+ErrMsgBadInteger, domain.ErrImport, i, "id")
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: "+ErrMsgDuplicateID, domain.ErrImport, i, id)
		}
		seen[id] = struct{}{}

		seq, err := coerceInt(it.Sequence)
		if err != nil || seq < math.MinInt32 || seq > math.MaxInt32 {
			return nil, fmt.Errorf("%w: "+ErrMsgBadInteger, domain.ErrImport, i, "sequence")
		}

		createdAt := now
		if it.CreatedAt != nil && strings.TrimSpace(*it.CreatedAt) != "" {
			createdAt = strings.TrimSpace(*it.CreatedAt)
			if _, err := time.Parse(domain.TimestampLayout, createdAt); err != nil {
				return nil, fmt.Errorf("%w: "+ErrMsgBadTimestamp, domain.ErrImport, i, createdAt)
			}
		}

		doc.Items = append(doc.Items, domain.Entry{
			ID:        id,
			CreatedAt: createdAt,
			Parts:     it.Parts,
			Line:      it.Line,
			Reason:    it.Reason,
			Sequence:  int(seq),
			Shift:     it.Shift,
			Notes:     optionalText(it.Notes),
			Comments:  optionalText(it.Comments),
		})
	}
	return doc, nil
}

// optionalText maps null, empty and blank values to nil, matching what the
// entry form stores for an absent note.
func optionalText(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}

// coerceInt accepts an integral JSON number or a string holding a base 10
// integer.
func coerceInt(v any) (int64, error) {
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, nil
		}
		f, err := n.Float64()
		if err != nil || f != math.Trunc(f) || math.Abs(f) > 1<<53 {
			return 0, fmt.Errorf("not an integer: %s", n)
		}
		return int64(f), nil
	case string:
		return strconv.ParseInt(strings.TrimSpace(n), 10, 64)
	default:
		return 0, fmt.Errorf("unsupported type %T", v)
	}
}
