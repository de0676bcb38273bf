package domain

// CountRow is one bucket of a grouped count.
type CountRow struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// Totals is the dashboard aggregation over a filtered entry set.
type Totals struct {
	Total    int        `json:"total"`
	ByLine   []CountRow `json:"by_line"`
	ByShift  []CountRow `json:"by_shift"`
	ByReason []CountRow `json:"by_reason"`
}
