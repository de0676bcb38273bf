// Package stats computes the dashboard breakdowns over a filtered entry set.
package stats

import (
	"sort"

	"github.com/osse101/ScrapTracker_Go/internal/domain"
)

// Aggregate counts entries by line, shift and reason. Each breakdown is
// ordered by count descending and then key ascending; the reason breakdown
// keeps only the first TopReasonsLimit rows.
func Aggregate(entries []domain.Entry) domain.Totals {
	byLine := make(map[string]int)
	byShift := make(map[string]int)
	byReason := make(map[string]int)

	for _, e := range entries {
		byLine[e.Line]++
		byShift[e.Shift]++
		byReason[e.Reason]++
	}

	reasons := rank(byReason)
	if len(reasons) > TopReasonsLimit {
		reasons = reasons[:TopReasonsLimit]
	}

	return domain.Totals{
		Total:    len(entries),
		ByLine:   rank(byLine),
		ByShift:  rank(byShift),
		ByReason: reasons,
	}
}

func rank(counts map[string]int) []domain.CountRow {
	rows := make([]domain.CountRow, 0, len(counts))
	for k, n := range counts {
		rows = append(rows, domain.CountRow{Key: k, Count: n})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count != rows[j].Count {
			return rows[i].Count > rows[j].Count
		}
		return rows[i].Key < rows[j].Key
	})
	return rows
}
