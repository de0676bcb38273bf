package sqlstore

import (
	"strings"

	"github.com/osse101/ScrapTracker_Go/internal/database"
	"github.com/osse101/ScrapTracker_Go/internal/domain"
)

// whereClause translates filter into a WHERE fragment (including the
// keyword, or "" for an empty filter) and its positional arguments.
// Substring filters are case folded through dialect.
func whereClause(dialect database.Dialect, filter domain.EntryFilter) (string, []any) {
	var conds []string
	var args []any

	if filter.Line != "" {
		conds = append(conds, "line = ?")
		args = append(args, filter.Line)
	}
	if filter.Shift != "" {
		conds = append(conds, "shift = ?")
		args = append(args, filter.Shift)
	}
	if filter.Text != "" {
		pattern := containsPattern(dialect.FoldArg(filter.Text))
		conds = append(conds, "("+dialect.FoldColumn("parts")+` LIKE ? ESCAPE '\' OR `+dialect.FoldColumn("reason")+` LIKE ? ESCAPE '\')`)
		args = append(args, pattern, pattern)
	}
	if filter.ReasonContains != "" {
		conds = append(conds, dialect.FoldColumn("reason")+` LIKE ? ESCAPE '\'`)
		args = append(args, containsPattern(dialect.FoldArg(filter.ReasonContains)))
	}
	if lower := filter.LowerBound(); lower != "" {
		conds = append(conds, "created_at >= ?")
		args = append(args, lower)
	}
	if upper := filter.UpperBound(); upper != "" {
		conds = append(conds, "created_at <= ?")
		args = append(args, upper)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// containsPattern builds a substring LIKE pattern from an already folded
// value, escaping wildcards typed by the user.
func containsPattern(s string) string {
	r := strings.NewReplacer(likeEscape, likeEscape+likeEscape, "%", likeEscape+"%", "_", likeEscape+"_")
	return "%" + r.Replace(s) + "%"
}

func orderClause(order domain.SortOrder) string {
	if order == domain.SortOldestFirst {
		return " ORDER BY id ASC"
	}
	return " ORDER BY id DESC"
}
