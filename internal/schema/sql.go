package schema

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Dialect selects the SQL flavour used to render statements.
type Dialect int

const (
	Postgres Dialect = iota + 1
	SQLite
)

func (d Dialect) String() string {
	switch d {
	case Postgres:
		return "postgres"
	case SQLite:
		return "sqlite"
	default:
		return "unknown"
	}
}

// Placeholder returns the bind parameter for the n-th (1-based) argument.
func (d Dialect) Placeholder(n int) string {
	if d == Postgres {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}

// TableExistsSQL returns a single-row, single-column boolean query.
func (d Dialect) TableExistsSQL(table string) string {
	if d == Postgres {
		return "SELECT to_regclass('public." + table + "') IS NOT NULL"
	}
	return "SELECT EXISTS (SELECT 1 FROM sqlite_master WHERE type = 'table' AND name = '" + table + "')"
}

func (d Dialect) columnType(c Column) string {
	if c.Default.Kind == DefaultSerial {
		if d == Postgres {
			return "SERIAL"
		}
		return "INTEGER"
	}
	switch c.Type {
	case Integer:
		return "INTEGER"
	case Text:
		return "TEXT"
	case Timestamp:
		if d == Postgres {
			return "TIMESTAMPTZ"
		}
		return "DATETIME"
	}
	return "TEXT"
}

func (d Dialect) defaultExpr(c Column) string {
	switch c.Default.Kind {
	case DefaultCreationTime:
		if d == Postgres {
			return "now()"
		}
		return "CURRENT_TIMESTAMP"
	case DefaultLiteral:
		switch v := c.Default.Value.(type) {
		case string:
			return quote(v)
		case int64:
			return strconv.FormatInt(v, 10)
		case time.Time:
			return quote(v.UTC().Format(time.RFC3339Nano))
		}
	}
	return ""
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func (d Dialect) columnDef(c Column) string {
	parts := []string{c.Name, d.columnType(c)}
	if c.PrimaryKey {
		parts = append(parts, "PRIMARY KEY")
		if d == SQLite && c.Default.Kind == DefaultSerial {
			parts = append(parts, "AUTOINCREMENT")
		}
	} else if c.NotNull {
		parts = append(parts, "NOT NULL")
	}
	if c.Unique && !c.PrimaryKey {
		parts = append(parts, "UNIQUE")
	}
	if expr := d.defaultExpr(c); expr != "" {
		parts = append(parts, "DEFAULT "+expr)
	}
	return strings.Join(parts, " ")
}

// CreateSQL renders the CREATE TABLE statement for t.
func (t *Table) CreateSQL(d Dialect) string {
	defs := make([]string, 0, len(t.columns))
	for _, c := range t.columns {
		defs = append(defs, d.columnDef(c))
	}
	return "CREATE TABLE IF NOT EXISTS " + t.name + " (\n  " + strings.Join(defs, ",\n  ") + "\n);"
}

// IndexSQL renders one CREATE INDEX statement per indexed column.
func (t *Table) IndexSQL(d Dialect) []string {
	var out []string
	for _, c := range t.columns {
		if !c.Indexed {
			continue
		}
		out = append(out, fmt.Sprintf("CREATE INDEX IF NOT EXISTS idx_%s_%s ON %s (%s);", t.name, c.Name, t.name, c.Name))
	}
	return out
}

// ColumnList is the comma-separated list of every column, in declaration order.
func (t *Table) ColumnList() string {
	names := make([]string, 0, len(t.columns))
	for _, c := range t.columns {
		names = append(names, c.Name)
	}
	return strings.Join(names, ", ")
}

// InsertSQL renders an INSERT for the fields present in v, skipping serial columns, and
// returns the query with its arguments. The statement returns the full row.
func (t *Table) InsertSQL(d Dialect, v Values) (string, []any) {
	var (
		cols  []string
		marks []string
		args  []any
	)
	for _, c := range t.columns {
		if c.Default.Kind == DefaultSerial {
			continue
		}
		val, ok := v[c.Field]
		if !ok {
			continue
		}
		args = append(args, val)
		cols = append(cols, c.Name)
		marks = append(marks, d.Placeholder(len(args)))
	}
	q := "INSERT INTO " + t.name + " (" + strings.Join(cols, ", ") + ") VALUES (" +
		strings.Join(marks, ", ") + ") RETURNING " + t.ColumnList()
	return q, args
}

// SelectSQL renders "SELECT <all columns> FROM <table>" followed by the optional clause.
func (t *Table) SelectSQL(clause string) string {
	q := "SELECT " + t.ColumnList() + " FROM " + t.name
	if clause != "" {
		q += " " + clause
	}
	return q
}
