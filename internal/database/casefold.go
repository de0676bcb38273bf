package database

import (
	"database/sql/driver"
	"fmt"

	"golang.org/x/text/cases"
	"modernc.org/sqlite"
)

// CaseFoldFunc is the SQL function registered with the sqlite driver that
// applies Unicode case folding. SQLite's built-in LOWER only folds ASCII.
const CaseFoldFunc = "casefold"

func init() {
	sqlite.MustRegisterDeterministicScalarFunction(CaseFoldFunc, 1, sqliteCaseFold)
}

func sqliteCaseFold(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		return FoldText(v), nil
	case []byte:
		return FoldText(string(v)), nil
	default:
		return FoldText(fmt.Sprint(v)), nil
	}
}

// FoldText applies the same Unicode case folding the casefold SQL function
// applies to column values.
func FoldText(s string) string {
	return cases.Fold().String(s)
}
