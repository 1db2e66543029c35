package schema

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNonEmpty(t *testing.T) {
	list := NonEmpty(Array(String))
	for _, n := range []int{0, 1, 3} {
		raw := make([]any, n)
		for i := range raw {
			raw[i] = "x"
		}
		_, err := list("items", raw)
		if n == 0 {
			require.ErrorIs(t, err, ErrConstraintViolation)
			assert.Equal(t, "items: "+NonEmptyMessage, err.Error())
			continue
		}
		assert.NoError(t, err, "length %d", n)
	}
}

func TestArrayNative(t *testing.T) {
	v, err := Array(String)("", []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, v)

	_, err = Array(String)("", "a")
	assert.ErrorIs(t, err, ErrFieldType)
}

func TestLiteral(t *testing.T) {
	type color string
	d := Literal[color]("red", "blue")

	v, err := d("color", "blue")
	require.NoError(t, err)
	assert.Equal(t, color("blue"), v)

	_, err = d("color", "green")
	var verr *Error
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, EnumMismatch, verr.Kind)
	assert.Equal(t, []string{"red", "blue"}, verr.Allowed)
	assert.Equal(t, `color: "green" is not one of red, blue`, verr.Error())

	_, err = d("color", 1.0)
	assert.ErrorIs(t, err, ErrFieldType)
}

func TestUnion(t *testing.T) {
	d := Union("string or non-empty array",
		Transform(String, func(s string) []string { return []string{s} }),
		NonEmpty(Array(String)),
	)

	v, err := d("to", "a")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, v)

	v, err = d("to", []any{"a"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, v)

	_, err = d("to", 5.0)
	assert.ErrorIs(t, err, ErrShapeMismatch)

	_, err = d("to", []any{})
	assert.ErrorIs(t, err, ErrConstraintViolation, "constraint beats shape mismatch")

	_, err = d("to", []any{"a", true})
	var verr *Error
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "to[1]", verr.Path)
}

func TestStringMap(t *testing.T) {
	m, err := StringMap("vars", map[string]any{"#{a}": "1"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"#{a}": "1"}, m)

	_, err = StringMap("vars", map[string]any{"#{a}": 1.0})
	var verr *Error
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "vars.#{a}", verr.Path)
}

func TestDate(t *testing.T) {
	want := time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC)
	kst := time.FixedZone("KST", 9*60*60)

	tests := []struct {
		name string
		raw  any
		want time.Time
	}{
		{"native", want.In(kst), want},
		{"pointer", &want, want},
		{"rfc3339", "2026-10-14T18:30:00+09:00", want},
		{"local layout", "2026-10-14 09:30:00", want},
		{"date only", "2026-10-14", time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Date("scheduledDate", tt.raw)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %v", got)
			assert.Equal(t, time.UTC, got.Location())
		})
	}

	_, err := Date("scheduledDate", "tomorrow")
	assert.ErrorIs(t, err, ErrFieldType)
	_, err = Date("scheduledDate", 12.0)
	assert.ErrorIs(t, err, ErrFieldType)
}
