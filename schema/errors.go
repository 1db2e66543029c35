package schema

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a validation failure.
type Kind uint8

const (
	ShapeMismatch       Kind = iota + 1 // input matches none of the accepted forms
	ConstraintViolation                 // structurally valid, but breaks a rule
	EnumMismatch                        // value outside a fixed literal set
	FieldType                           // wrong primitive or structured type, or missing
)

var kindNames = map[Kind]string{
	ShapeMismatch:       "shape mismatch",
	ConstraintViolation: "constraint violation",
	EnumMismatch:        "enum mismatch",
	FieldType:           "field type",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", k)
}

// Sentinel errors for errors.Is matching against an *Error of the same kind.
var (
	ErrShapeMismatch       = errors.New("shape mismatch")
	ErrConstraintViolation = errors.New("constraint violation")
	ErrEnumMismatch        = errors.New("enum mismatch")
	ErrFieldType           = errors.New("field type")
)

// Error describes a validation failure at a field path.
type Error struct {
	Kind    Kind
	Path    string   // e.g. messages[0].to[1]
	Message string   // human-readable reason
	Value   any      // offending value, when known
	Allowed []string // accepted literals for EnumMismatch
}

// Error returns the path-prefixed message.
func (e *Error) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return e.Path + ": " + e.Message
}

// Is reports whether target is the sentinel for the error kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrShapeMismatch:
		return e.Kind == ShapeMismatch
	case ErrConstraintViolation:
		return e.Kind == ConstraintViolation
	case ErrEnumMismatch:
		return e.Kind == EnumMismatch
	case ErrFieldType:
		return e.Kind == FieldType
	}
	return false
}

// TypeError returns a FieldType error for a value that is not of the expected type.
func TypeError(path, expected string, value any) *Error {
	return &Error{
		Kind:    FieldType,
		Path:    path,
		Message: fmt.Sprintf("expected %s, got %s", expected, describe(value)),
		Value:   value,
	}
}

// MissingError returns a FieldType error for an absent required field.
func MissingError(path string) *Error {
	return &Error{Kind: FieldType, Path: path, Message: "is missing"}
}

// ConstraintError returns a ConstraintViolation error.
func ConstraintError(path, message string, value any) *Error {
	return &Error{Kind: ConstraintViolation, Path: path, Message: message, Value: value}
}

// EnumError returns an EnumMismatch error listing the allowed literals.
func EnumError(path string, value any, allowed []string) *Error {
	return &Error{
		Kind:    EnumMismatch,
		Path:    path,
		Message: fmt.Sprintf("%q is not one of %s", fmt.Sprint(value), strings.Join(allowed, ", ")),
		Value:   value,
		Allowed: allowed,
	}
}

// Join appends a field name to a path.
func Join(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}

// Index appends an element index to a path.
func Index(path string, i int) string {
	return fmt.Sprintf("%s[%d]", path, i)
}

func describe(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case float64, float32, int, int64, int32, uint, uint64, uint32:
		return "number"
	}
	return fmt.Sprintf("%T", v)
}
