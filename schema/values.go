package schema

import (
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Decoder converts the raw value found at path into a typed value.
//
// Raw values are what encoding/json produces for an any target (string,
// bool, float64, []any, map[string]any, nil), plus the matching Go-native
// forms ([]string, map[string]string, time.Time) for callers that build
// input by hand.
type Decoder[T any] func(path string, raw any) (T, error)

// String accepts a string.
func String(path string, raw any) (string, error) {
	s, ok := raw.(string)
	if !ok {
		return "", TypeError(path, "string", raw)
	}
	return s, nil
}

// Bool accepts a boolean.
func Bool(path string, raw any) (bool, error) {
	b, ok := raw.(bool)
	if !ok {
		return false, TypeError(path, "boolean", raw)
	}
	return b, nil
}

// StringMap accepts an object whose values are all strings.
func StringMap(path string, raw any) (map[string]string, error) {
	switch m := raw.(type) {
	case map[string]string:
		out := make(map[string]string, len(m))
		for k, v := range m {
			out[k] = v
		}
		return out, nil
	case map[string]any:
		out := make(map[string]string, len(m))
		for k, v := range m {
			s, ok := v.(string)
			if !ok {
				return nil, TypeError(Join(path, k), "string", v)
			}
			out[k] = s
		}
		return out, nil
	}
	return nil, TypeError(path, "object", raw)
}

// Literal accepts a string equal to one of the allowed values.
func Literal[T ~string](allowed ...T) Decoder[T] {
	names := make([]string, len(allowed))
	for i, a := range allowed {
		names[i] = string(a)
	}
	return func(path string, raw any) (T, error) {
		s, ok := raw.(string)
		if !ok {
			return "", TypeError(path, "string", raw)
		}
		for _, a := range allowed {
			if string(a) == s {
				return a, nil
			}
		}
		return "", EnumError(path, s, names)
	}
}

// Transform maps the result of a successful decode. The reverse direction is
// not modelled: encoding is left to the value's JSON marshalling.
func Transform[A, B any](d Decoder[A], f func(A) B) Decoder[B] {
	return func(path string, raw any) (B, error) {
		a, err := d(path, raw)
		if err != nil {
			var zero B
			return zero, err
		}
		return f(a), nil
	}
}

// Array accepts a list and decodes every element with elem.
func Array[T any](elem Decoder[T]) Decoder[[]T] {
	return func(path string, raw any) ([]T, error) {
		items, ok := elements(raw)
		if !ok {
			return nil, TypeError(path, "array", raw)
		}
		out := make([]T, 0, len(items))
		for i, item := range items {
			v, err := elem(Index(path, i), item)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	}
}

// NonEmptyMessage is reported when a collection requires at least one item.
const NonEmptyMessage = "at least one entry is required"

// NonEmpty rejects an empty decoded collection.
func NonEmpty[T any](d Decoder[[]T]) Decoder[[]T] {
	return func(path string, raw any) ([]T, error) {
		items, err := d(path, raw)
		if err != nil {
			return nil, err
		}
		if err := CheckNonEmpty(path, items); err != nil {
			return nil, err
		}
		return items, nil
	}
}

// CheckNonEmpty fails with a constraint violation if items has no entries.
func CheckNonEmpty[T any](path string, items []T) error {
	if len(items) == 0 {
		return ConstraintError(path, NonEmptyMessage, items)
	}
	return nil
}

// Union tries each alternative in order and returns the first success.
//
// If every alternative fails, an error that got past the top-level type
// check of some alternative (a deeper field, or a constraint on a value of
// the right type) is returned as the most specific explanation. Otherwise the
// result is a ShapeMismatch naming the expected forms.
func Union[T any](expected string, alts ...Decoder[T]) Decoder[T] {
	return func(path string, raw any) (T, error) {
		var zero T
		var specific error
		for _, alt := range alts {
			v, err := alt(path, raw)
			if err == nil {
				return v, nil
			}
			if specific == nil && !isTopLevelTypeError(err, path) {
				specific = err
			}
		}
		if specific != nil {
			return zero, specific
		}
		return zero, &Error{
			Kind:    ShapeMismatch,
			Path:    path,
			Message: "expected " + expected + ", got " + describe(raw),
			Value:   raw,
		}
	}
}

// dateLayouts lists the accepted string forms of a date, tried in order.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Date accepts a time.Time or a parseable date string and returns it in UTC.
func Date(path string, raw any) (time.Time, error) {
	switch v := raw.(type) {
	case time.Time:
		return v.UTC(), nil
	case *time.Time:
		if v != nil {
			return v.UTC(), nil
		}
	case string:
		s := strings.TrimSpace(v)
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t.UTC(), nil
			}
		}
		return time.Time{}, &Error{
			Kind:    FieldType,
			Path:    path,
			Message: "expected a date, got unparseable string " + strconv.Quote(v),
			Value:   v,
		}
	}
	return time.Time{}, TypeError(path, "date or date string", raw)
}

func isTopLevelTypeError(err error, path string) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == FieldType && e.Path == path
}

func elements(raw any) ([]any, bool) {
	switch v := raw.(type) {
	case []any:
		return v, true
	case nil, string, []byte:
		return nil, false
	}
	rv := reflect.ValueOf(raw)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}
