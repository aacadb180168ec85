package schema

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidDefinition is returned when a table or projection is declared inconsistently.
var ErrInvalidDefinition = errors.New("invalid schema definition")

// Table is the canonical, immutable descriptor of a persisted entity.
// It is safe for concurrent use.
type Table struct {
	name    string
	columns []Column
	byField map[string]int
}

// FieldSpec describes one field of the full-row shape.
type FieldSpec struct {
	Field      string
	Column     string
	Type       Type
	Nullable   bool
	PrimaryKey bool
}

// Define builds a table descriptor from its columns.
func Define(name string, columns ...Column) (*Table, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: table name is required", ErrInvalidDefinition)
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("%w: table %s has no columns", ErrInvalidDefinition, name)
	}

	t := &Table{
		name:    name,
		columns: make([]Column, 0, len(columns)),
		byField: make(map[string]int, len(columns)),
	}
	names := make(map[string]struct{}, len(columns))
	pk := 0

	for _, c := range columns {
		if c.Name == "" || c.Field == "" {
			return nil, fmt.Errorf("%w: table %s has a column without a name", ErrInvalidDefinition, name)
		}
		if c.Type < Integer || c.Type > Timestamp {
			return nil, fmt.Errorf("%w: %s.%s has unknown type", ErrInvalidDefinition, name, c.Name)
		}
		if _, dup := names[c.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate column %s.%s", ErrInvalidDefinition, name, c.Name)
		}
		if _, dup := t.byField[c.Field]; dup {
			return nil, fmt.Errorf("%w: duplicate field %s on table %s", ErrInvalidDefinition, c.Field, name)
		}
		if c.PrimaryKey {
			pk++
		}

		switch c.Default.Kind {
		case DefaultSerial:
			if c.Type != Integer {
				return nil, fmt.Errorf("%w: serial column %s.%s must be an integer", ErrInvalidDefinition, name, c.Name)
			}
		case DefaultLiteral:
			v, err := coerce(c.Type, c.Default.Value)
			if err != nil {
				return nil, fmt.Errorf("%w: default for %s.%s: %v", ErrInvalidDefinition, name, c.Name, err)
			}
			c.Default.Value = v
		case DefaultCreationTime:
			if c.Type != Timestamp {
				return nil, fmt.Errorf("%w: creation-time default on non-timestamp %s.%s", ErrInvalidDefinition, name, c.Name)
			}
		}

		names[c.Name] = struct{}{}
		t.byField[c.Field] = len(t.columns)
		t.columns = append(t.columns, c)
	}

	if pk > 1 {
		return nil, fmt.Errorf("%w: table %s declares %d primary keys", ErrInvalidDefinition, name, pk)
	}
	return t, nil
}

// MustDefine is Define for package-level declarations.
func MustDefine(name string, columns ...Column) *Table {
	t, err := Define(name, columns...)
	if err != nil {
		panic(err)
	}
	return t
}

func (t *Table) Name() string { return t.name }

// Columns returns a copy of the column list in declaration order.
func (t *Table) Columns() []Column {
	out := make([]Column, len(t.columns))
	copy(out, t.columns)
	return out
}

// Column looks a column up by its field name.
func (t *Table) Column(field string) (Column, bool) {
	i, ok := t.byField[field]
	if !ok {
		return Column{}, false
	}
	return t.columns[i], true
}

// Shape is the full-row shape: every column, as stored.
func (t *Table) Shape() []FieldSpec {
	out := make([]FieldSpec, 0, len(t.columns))
	for _, c := range t.columns {
		out = append(out, FieldSpec{
			Field:      c.Field,
			Column:     c.Name,
			Type:       c.Type,
			Nullable:   !c.NotNull,
			PrimaryKey: c.PrimaryKey,
		})
	}
	return out
}

// ResolveDefaults returns a copy of v with literal and creation-time defaults filled for absent
// fields. Serial columns stay absent so storage can assign them.
func (t *Table) ResolveDefaults(v Values, now time.Time) Values {
	out := make(Values, len(t.columns))
	for k, val := range v {
		out[k] = val
	}
	for _, c := range t.columns {
		if _, ok := out[c.Field]; ok {
			continue
		}
		switch c.Default.Kind {
		case DefaultLiteral:
			out[c.Field] = c.Default.Value
		case DefaultCreationTime:
			out[c.Field] = now
		}
	}
	return out
}
