package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var rules = validator.New()

const (
	maxNumberLen = 64
	maxNumberExp = 100
)

// Projection selects the fields an insert schema accepts.
type Projection struct {
	pick   bool
	fields []string
}

// Omit accepts every field except the given ones.
func Omit(fields ...string) Projection {
	return Projection{fields: fields}
}

// Pick accepts only the given fields.
func Pick(fields ...string) Projection {
	return Projection{pick: true, fields: fields}
}

// InsertSchema validates candidate input for creating a row.
type InsertSchema struct {
	table    *Table
	columns  []Column
	accepted map[string]struct{}
}

// InsertSchema derives the insert validator for the projection. Naming a field that the table
// does not declare is a definition error.
func (t *Table) InsertSchema(p Projection) (*InsertSchema, error) {
	selected := make(map[string]struct{}, len(p.fields))
	for _, f := range p.fields {
		if _, ok := t.byField[f]; !ok {
			return nil, fmt.Errorf("%w: table %s has no field %q", ErrInvalidDefinition, t.name, f)
		}
		selected[f] = struct{}{}
	}

	s := &InsertSchema{table: t, accepted: make(map[string]struct{})}
	for _, c := range t.columns {
		_, named := selected[c.Field]
		if named != p.pick {
			continue
		}
		s.columns = append(s.columns, c)
		s.accepted[c.Field] = struct{}{}
	}
	return s, nil
}

// MustInsertSchema is InsertSchema for package-level declarations.
func (t *Table) MustInsertSchema(p Projection) *InsertSchema {
	s, err := t.InsertSchema(p)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *InsertSchema) Table() *Table { return s.table }

// Fields lists accepted fields in declaration order.
func (s *InsertSchema) Fields() []string {
	out := make([]string, 0, len(s.columns))
	for _, c := range s.columns {
		out = append(out, c.Field)
	}
	return out
}

// Required lists the fields a caller must supply.
func (s *InsertSchema) Required() []string {
	var out []string
	for _, c := range s.columns {
		if c.Required() {
			out = append(out, c.Field)
		}
	}
	return out
}

// Validate checks input against the insert shape and returns the typed values. Every problem
// is reported at once in a *ValidationError.
func (s *InsertSchema) Validate(input map[string]any) (Values, error) {
	var issues []FieldIssue

	for field := range input {
		if _, ok := s.accepted[field]; !ok {
			issues = append(issues, FieldIssue{
				Field:   field,
				Code:    CodeUnknownField,
				Message: "field is not accepted on insert",
			})
		}
	}

	out := make(Values, len(s.columns))
	for _, c := range s.columns {
		raw, present := input[c.Field]
		if raw == nil {
			switch {
			case present && !c.NotNull:
				out[c.Field] = nil
			case c.Required():
				issues = append(issues, FieldIssue{Field: c.Field, Code: CodeRequired, Message: "field is required"})
			}
			continue
		}

		v, err := coerce(c.Type, raw)
		if err != nil {
			issues = append(issues, FieldIssue{Field: c.Field, Code: CodeInvalidType, Message: err.Error()})
			continue
		}
		if c.Rules != "" {
			if err := rules.Var(v, c.Rules); err != nil {
				issues = append(issues, FieldIssue{Field: c.Field, Code: CodeInvalidValue, Message: ruleMessage(err)})
				continue
			}
		}
		out[c.Field] = v
	}

	if len(issues) > 0 {
		return nil, newValidationError(s.table.name, issues)
	}
	return out, nil
}

func ruleMessage(err error) string {
	var ves validator.ValidationErrors
	if errors.As(err, &ves) && len(ves) > 0 {
		fe := ves[0]
		if fe.Param() != "" {
			return fmt.Sprintf("must satisfy %s=%s", fe.Tag(), fe.Param())
		}
		return "must satisfy " + fe.Tag()
	}
	return err.Error()
}

// coerce converts a candidate value to the canonical Go representation of typ:
// int64 for Integer, string for Text, time.Time for Timestamp.
func coerce(typ Type, raw any) (any, error) {
	switch typ {
	case Text:
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("expected text, got %T", raw)
		}
		return s, nil
	case Integer:
		return toInt64(raw)
	case Timestamp:
		switch v := raw.(type) {
		case time.Time:
			return v, nil
		case string:
			ts, err := time.Parse(time.RFC3339Nano, v)
			if err != nil {
				return nil, errors.New("expected RFC 3339 timestamp")
			}
			return ts, nil
		}
		return nil, fmt.Errorf("expected timestamp, got %T", raw)
	}
	return nil, fmt.Errorf("unsupported type %s", typ)
}

func toInt64(raw any) (int64, error) {
	switch v := raw.(type) {
	case int:
		return int64(v), nil
	case int8:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case uint8:
		return int64(v), nil
	case uint16:
		return int64(v), nil
	case uint32:
		return int64(v), nil
	case uint:
		if uint64(v) > math.MaxInt64 {
			return 0, fmt.Errorf("integer out of range")
		}
		return int64(v), nil
	case uint64:
		if v > math.MaxInt64 {
			return 0, fmt.Errorf("integer out of range")
		}
		return int64(v), nil
	case float32:
		return floatToInt64(float64(v))
	case float64:
		return floatToInt64(v)
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i, nil
		}
		return numberToInt64(v)
	}
	return 0, fmt.Errorf("expected integer, got %T", raw)
}

// numberToInt64 accepts integral values written with a fraction or exponent, such as "5.0" or "1e3".
// Inputs longer than maxNumberLen or with an exponent beyond maxNumberExp cannot denote an int64
// and are rejected before exact parsing.
func numberToInt64(n json.Number) (int64, error) {
	s := n.String()
	if len(s) > maxNumberLen {
		return 0, fmt.Errorf("expected integer, got %s", s)
	}
	if i := strings.IndexAny(s, "eE"); i >= 0 {
		exp, err := strconv.Atoi(s[i+1:])
		if err != nil || exp > maxNumberExp || exp < -maxNumberExp {
			return 0, fmt.Errorf("expected integer, got %s", s)
		}
	}
	r, ok := new(big.Rat).SetString(s)
	if !ok || !r.IsInt() {
		return 0, fmt.Errorf("expected integer, got %s", n.String())
	}
	if !r.Num().IsInt64() {
		return 0, fmt.Errorf("integer out of range")
	}
	return r.Num().Int64(), nil
}

func floatToInt64(f float64) (int64, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, fmt.Errorf("expected integer, got %v", f)
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, fmt.Errorf("integer out of range")
	}
	return int64(f), nil
}

// Values holds typed field values keyed by field name.
type Values map[string]any

func (v Values) Has(field string) bool {
	_, ok := v[field]
	return ok
}

func (v Values) String(field string) string {
	s, _ := v[field].(string)
	return s
}

func (v Values) Int64(field string) int64 {
	i, _ := v[field].(int64)
	return i
}

func (v Values) Time(field string) time.Time {
	t, _ := v[field].(time.Time)
	return t
}
