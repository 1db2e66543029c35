package schema

// Field describes one named property of an object shape and how its raw
// value is decoded into the target struct T.
type Field[T any] struct {
	Name     string
	Optional bool
	// Default, when set, is applied to the target if the field is absent.
	Default func(*T)
	decode  func(path string, raw any, dst *T) error
}

// Required declares a field that must be present.
func Required[T, V any](name string, d Decoder[V], set func(*T, V)) Field[T] {
	return Field[T]{Name: name, decode: assign(d, set)}
}

// Optional declares a field that may be absent.
func Optional[T, V any](name string, d Decoder[V], set func(*T, V)) Field[T] {
	return Field[T]{Name: name, Optional: true, decode: assign(d, set)}
}

// WithDefault returns a copy of f that fills the target when the field is absent.
func (f Field[T]) WithDefault(def func(*T)) Field[T] {
	f.Optional = true
	f.Default = def
	return f
}

func assign[T, V any](d Decoder[V], set func(*T, V)) func(string, any, *T) error {
	return func(path string, raw any, dst *T) error {
		v, err := d(path, raw)
		if err != nil {
			return err
		}
		set(dst, v)
		return nil
	}
}

// Shape is an ordered set of fields decoded into T. Shapes are immutable:
// Omit and Extend return new shapes and leave the receiver untouched, so
// derived shapes can be built once at package initialisation.
type Shape[T any] struct {
	name   string
	fields []Field[T]
}

// Struct declares a shape from its fields. Later fields with a name already
// present replace the earlier definition.
func Struct[T any](name string, fields ...Field[T]) *Shape[T] {
	s := &Shape[T]{name: name}
	return s.Extend(fields...)
}

// Name returns the shape name used in messages.
func (s *Shape[T]) Name() string { return s.name }

// Fields returns the field names in decode order.
func (s *Shape[T]) Fields() []string {
	names := make([]string, len(s.fields))
	for i, f := range s.fields {
		names[i] = f.Name
	}
	return names
}

// Has reports whether the shape declares the named field.
func (s *Shape[T]) Has(name string) bool {
	return s.index(name) >= 0
}

// Omit returns a shape without the named fields.
func (s *Shape[T]) Omit(names ...string) *Shape[T] {
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		drop[n] = true
	}
	out := &Shape[T]{name: s.name, fields: make([]Field[T], 0, len(s.fields))}
	for _, f := range s.fields {
		if !drop[f.Name] {
			out.fields = append(out.fields, f)
		}
	}
	return out
}

// Extend returns a shape with the given fields added. A field whose name is
// already declared replaces that definition in place; new names are appended.
func (s *Shape[T]) Extend(fields ...Field[T]) *Shape[T] {
	out := &Shape[T]{name: s.name, fields: append([]Field[T](nil), s.fields...)}
	for _, f := range fields {
		if i := out.index(f.Name); i >= 0 {
			out.fields[i] = f
			continue
		}
		out.fields = append(out.fields, f)
	}
	return out
}

// Decode validates raw against the shape. Keys not declared by the shape are
// ignored. The first failure is returned.
func (s *Shape[T]) Decode(path string, raw any) (T, error) {
	var out T
	obj, ok := raw.(map[string]any)
	if !ok {
		return out, TypeError(path, "object", raw)
	}
	for _, f := range s.fields {
		fieldPath := Join(path, f.Name)
		v, present := obj[f.Name]
		if !present {
			switch {
			case f.Default != nil:
				f.Default(&out)
			case !f.Optional:
				return out, MissingError(fieldPath)
			}
			continue
		}
		if err := f.decode(fieldPath, v, &out); err != nil {
			return out, err
		}
	}
	return out, nil
}

// Decoder returns s.Decode as a Decoder for nesting in other shapes.
func (s *Shape[T]) Decoder() Decoder[T] {
	return s.Decode
}

func (s *Shape[T]) index(name string) int {
	for i, f := range s.fields {
		if f.Name == name {
			return i
		}
	}
	return -1
}
