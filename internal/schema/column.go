// Package schema describes persisted tables with a single canonical column list and derives
// everything else from it: the insert-time validator, the full-row shape, struct bindings and
// the SQL used to create and fill the tables.
package schema

// Type is the semantic type of a column.
type Type int

const (
	Integer Type = iota + 1
	Text
	Timestamp
)

func (t Type) String() string {
	switch t {
	case Integer:
		return "integer"
	case Text:
		return "text"
	case Timestamp:
		return "timestamp"
	default:
		return "unknown"
	}
}

// DefaultKind selects how a column gets a value when the caller does not supply one.
type DefaultKind int

const (
	// DefaultNone means the caller must supply the value (or the column is nullable).
	DefaultNone DefaultKind = iota
	// DefaultSerial means storage generates the value; it is never resolved before insert.
	DefaultSerial
	// DefaultLiteral fills a fixed value.
	DefaultLiteral
	// DefaultCreationTime fills the time the row is created.
	DefaultCreationTime
)

// DefaultPolicy is the default-value policy of a column.
type DefaultPolicy struct {
	Kind  DefaultKind
	Value any
}

// Column declares one persisted column. Name is the storage name, Field the name used by
// insert and full-row shapes.
type Column struct {
	Name       string
	Field      string
	Type       Type
	NotNull    bool
	Unique     bool
	PrimaryKey bool
	Indexed    bool
	Default    DefaultPolicy
	// Rules is an optional go-playground/validator tag applied to supplied values.
	Rules string
}

// Option configures a Column.
type Option func(*Column)

// Col declares a column. Columns are nullable unless NotNull or PrimaryKey is given.
func Col(name string, typ Type, opts ...Option) Column {
	c := Column{Name: name, Field: name, Type: typ}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Serial declares a storage-generated integer column.
func Serial(name string, opts ...Option) Column {
	return Col(name, Integer, append([]Option{func(c *Column) {
		c.Default = DefaultPolicy{Kind: DefaultSerial}
		c.NotNull = true
	}}, opts...)...)
}

// Field sets the shape-level field name when it differs from the column name.
func Field(name string) Option {
	return func(c *Column) { c.Field = name }
}

func NotNull() Option {
	return func(c *Column) { c.NotNull = true }
}

func Unique() Option {
	return func(c *Column) { c.Unique = true }
}

// PrimaryKey marks the column as the primary key. It implies NotNull.
func PrimaryKey() Option {
	return func(c *Column) {
		c.PrimaryKey = true
		c.NotNull = true
	}
}

// Indexed requests a non-unique index on the column.
func Indexed() Option {
	return func(c *Column) { c.Indexed = true }
}

// Default sets a literal default value.
func Default(v any) Option {
	return func(c *Column) { c.Default = DefaultPolicy{Kind: DefaultLiteral, Value: v} }
}

// DefaultNow defaults the column to the row's creation time.
func DefaultNow() Option {
	return func(c *Column) { c.Default = DefaultPolicy{Kind: DefaultCreationTime} }
}

// Rules attaches a validator tag, e.g. "min=1" or "gte=0".
func Rules(tag string) Option {
	return func(c *Column) { c.Rules = tag }
}

// Required reports whether an insert must supply the column.
func (c Column) Required() bool {
	return c.NotNull && c.Default.Kind == DefaultNone
}
