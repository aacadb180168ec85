package schema

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"
)

var timeType = reflect.TypeOf(time.Time{})

type binding struct {
	col   Column
	index []int
}

// bindings maps every column of t to the struct field tagged `db:"<column>"`. The struct must
// cover the table exactly and use field types compatible with the column types.
func bindings(t *Table, typ reflect.Type) ([]binding, error) {
	if typ.Kind() != reflect.Struct {
		return nil, fmt.Errorf("schema: %s is not a struct", typ)
	}

	tagged := make(map[string]reflect.StructField)
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		name, _, _ := strings.Cut(f.Tag.Get("db"), ",")
		if name == "" || name == "-" {
			continue
		}
		tagged[name] = f
	}

	var errs []error
	out := make([]binding, 0, len(t.columns))
	for _, c := range t.columns {
		f, ok := tagged[c.Name]
		if !ok {
			errs = append(errs, fmt.Errorf("%s: no field tagged db:%q", typ.Name(), c.Name))
			continue
		}
		delete(tagged, c.Name)
		if err := compatible(c, f.Type); err != nil {
			errs = append(errs, fmt.Errorf("%s.%s: %w", typ.Name(), f.Name, err))
			continue
		}
		out = append(out, binding{col: c, index: f.Index})
	}
	for name := range tagged {
		errs = append(errs, fmt.Errorf("%s: column %q is not declared on table %s", typ.Name(), name, t.name))
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return out, nil
}

func compatible(c Column, ft reflect.Type) error {
	if ft.Kind() == reflect.Pointer {
		if c.NotNull {
			return fmt.Errorf("column %s is not null and cannot bind to a pointer", c.Name)
		}
		ft = ft.Elem()
	}
	switch c.Type {
	case Integer:
		switch ft.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			return nil
		}
	case Text:
		if ft.Kind() == reflect.String {
			return nil
		}
	case Timestamp:
		if ft == timeType {
			return nil
		}
	}
	return fmt.Errorf("column %s of type %s cannot bind to %s", c.Name, c.Type, ft)
}

func structValue(v any, wantPtr bool) (reflect.Value, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return reflect.Value{}, errors.New("schema: nil pointer")
		}
		rv = rv.Elem()
	} else if wantPtr {
		return reflect.Value{}, fmt.Errorf("schema: %T is not a pointer", v)
	}
	if rv.Kind() != reflect.Struct {
		return reflect.Value{}, fmt.Errorf("schema: %T is not a struct", v)
	}
	return rv, nil
}

// Conforms reports whether the struct type of v is a valid full-row type for t.
func Conforms(t *Table, v any) error {
	rv, err := structValue(v, false)
	if err != nil {
		return err
	}
	_, err = bindings(t, rv.Type())
	return err
}

// Pointers returns scan destinations for every column of t, in declaration order.
func Pointers(t *Table, dst any) ([]any, error) {
	rv, err := structValue(dst, true)
	if err != nil {
		return nil, err
	}
	bs, err := bindings(t, rv.Type())
	if err != nil {
		return nil, err
	}
	out := make([]any, 0, len(bs))
	for _, b := range bs {
		out = append(out, rv.FieldByIndex(b.index).Addr().Interface())
	}
	return out, nil
}

// ValuesOf reads every column of t from src.
func ValuesOf(t *Table, src any) (Values, error) {
	rv, err := structValue(src, false)
	if err != nil {
		return nil, err
	}
	bs, err := bindings(t, rv.Type())
	if err != nil {
		return nil, err
	}
	out := make(Values, len(bs))
	for _, b := range bs {
		fv := rv.FieldByIndex(b.index)
		if fv.Kind() == reflect.Pointer {
			if fv.IsNil() {
				out[b.col.Field] = nil
				continue
			}
			fv = fv.Elem()
		}
		switch b.col.Type {
		case Integer:
			if fv.CanInt() {
				out[b.col.Field] = fv.Int()
			} else {
				out[b.col.Field] = int64(fv.Uint())
			}
		case Text:
			out[b.col.Field] = fv.String()
		case Timestamp:
			out[b.col.Field] = fv.Interface().(time.Time)
		}
	}
	return out, nil
}

// Decode copies values into dst. Fields missing from values are left untouched.
func Decode(t *Table, values Values, dst any) error {
	rv, err := structValue(dst, true)
	if err != nil {
		return err
	}
	bs, err := bindings(t, rv.Type())
	if err != nil {
		return err
	}
	for _, b := range bs {
		val, ok := values[b.col.Field]
		if !ok {
			continue
		}
		fv := rv.FieldByIndex(b.index)
		if val == nil {
			fv.Set(reflect.Zero(fv.Type()))
			continue
		}
		v, err := coerce(b.col.Type, val)
		if err != nil {
			return fmt.Errorf("schema: field %s: %w", b.col.Field, err)
		}
		if fv.Kind() == reflect.Pointer {
			fv.Set(reflect.New(fv.Type().Elem()))
			fv = fv.Elem()
		}
		switch x := v.(type) {
		case int64:
			if fv.CanInt() {
				if fv.OverflowInt(x) {
					return fmt.Errorf("schema: field %s: %d overflows %s", b.col.Field, x, fv.Type())
				}
				fv.SetInt(x)
			} else {
				if x < 0 || fv.OverflowUint(uint64(x)) {
					return fmt.Errorf("schema: field %s: %d overflows %s", b.col.Field, x, fv.Type())
				}
				fv.SetUint(uint64(x))
			}
		case string:
			fv.SetString(x)
		case time.Time:
			fv.Set(reflect.ValueOf(x))
		}
	}
	return nil
}
