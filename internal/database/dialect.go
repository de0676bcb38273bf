package database

import (
	"strconv"
	"strings"
)

// Dialect captures the few places where SQLite and PostgreSQL statements
// differ. Queries are written with '?' placeholders and rebound per dialect.
type Dialect interface {
	Name() string
	Rebind(query string) string
	// GooseDialect is the dialect name understood by goose.
	GooseDialect() string
	// MigrationsDir is the embedded migrations directory for this dialect.
	MigrationsDir() string
	// FoldColumn wraps a column expression for case-insensitive matching.
	FoldColumn(expr string) string
	// FoldArg folds a bound value the same way FoldColumn folds the column.
	FoldArg(s string) string
}

type sqliteDialect struct{}

func (sqliteDialect) Name() string               { return DriverSQLite }
func (sqliteDialect) Rebind(query string) string { return query }
func (sqliteDialect) GooseDialect() string       { return "sqlite3" }
func (sqliteDialect) MigrationsDir() string      { return "migrations/sqlite" }

func (sqliteDialect) FoldColumn(expr string) string { return CaseFoldFunc + "(" + expr + ")" }
func (sqliteDialect) FoldArg(s string) string      { return FoldText(s) }

type postgresDialect struct{}

func (postgresDialect) Name() string          { return DriverPostgres }
func (postgresDialect) GooseDialect() string  { return "pgx" }
func (postgresDialect) MigrationsDir() string { return "migrations/postgres" }

// LOWER on postgres follows the database locale, which covers non-ASCII
// letters for UTF-8 databases.
func (postgresDialect) FoldColumn(expr string) string { return "LOWER(" + expr + ")" }
func (postgresDialect) FoldArg(s string) string      { return strings.ToLower(s) }

// Rebind rewrites '?' placeholders to $1, $2, ... Question marks inside
// single-quoted literals are left alone.
func (postgresDialect) Rebind(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 8)

	n := 0
	inQuote := false
	for i := 0; i < len(query); i++ {
		c := query[i]
		switch {
		case c == '\'':
			inQuote = !inQuote
			b.WriteByte(c)
		case c == '?' && !inQuote:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

var (
	SQLite   Dialect = sqliteDialect{}
	Postgres Dialect = postgresDialect{}
)
