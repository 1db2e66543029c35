package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type contact struct {
	Name  string
	Phone string
	Tags  []string
}

var contactShape = Struct("Contact",
	Required("name", String, func(c *contact, v string) { c.Name = v }),
	Optional("phone", String, func(c *contact, v string) { c.Phone = v }),
	Optional("tags", Array(String), func(c *contact, v []string) { c.Tags = v }),
)

func TestShapeDecode(t *testing.T) {
	c, err := contactShape.Decode("", map[string]any{
		"name":  "kim",
		"tags":  []any{"a", "b"},
		"extra": 1,
	})
	require.NoError(t, err)
	assert.Equal(t, contact{Name: "kim", Tags: []string{"a", "b"}}, c)
}

func TestShapeDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		kind Kind
		path string
	}{
		{"not an object", []any{}, FieldType, "contact"},
		{"missing required", map[string]any{}, FieldType, "contact.name"},
		{"null value", map[string]any{"name": nil}, FieldType, "contact.name"},
		{"wrong element", map[string]any{"name": "a", "tags": []any{"x", 2.0}}, FieldType, "contact.tags[1]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := contactShape.Decode("contact", tt.raw)
			var verr *Error
			require.True(t, errors.As(err, &verr), "got %v", err)
			assert.Equal(t, tt.kind, verr.Kind)
			assert.Equal(t, tt.path, verr.Path)
		})
	}
}

func TestOmitExtend(t *testing.T) {
	upper := Transform(String, func(s string) string { return s + "!" })
	override := Optional("phone", upper, func(c *contact, v string) { c.Phone = v })

	composed := contactShape.Omit("phone").Extend(override)
	inPlace := contactShape.Extend(override)

	assert.Equal(t, []string{"name", "phone", "tags"}, contactShape.Fields(), "receiver is untouched")
	assert.Equal(t, []string{"name", "tags", "phone"}, composed.Fields())
	assert.Equal(t, []string{"name", "phone", "tags"}, inPlace.Fields())

	raw := map[string]any{"name": "kim", "phone": "010", "tags": []any{"x"}}
	a, err := composed.Decode("", raw)
	require.NoError(t, err)
	b, err := inPlace.Decode("", raw)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, "010!", a.Phone)
}

func TestOmitDropsField(t *testing.T) {
	noTags := contactShape.Omit("tags")
	assert.False(t, noTags.Has("tags"))
	c, err := noTags.Decode("", map[string]any{"name": "kim", "tags": 5})
	require.NoError(t, err, "omitted fields are no longer checked")
	assert.Nil(t, c.Tags)
}

func TestDefault(t *testing.T) {
	shape := Struct("Contact",
		Optional("name", String, func(c *contact, v string) { c.Name = v }).
			WithDefault(func(c *contact) { c.Name = "anonymous" }),
	)
	c, err := shape.Decode("", map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, "anonymous", c.Name)

	c, err = shape.Decode("", map[string]any{"name": "kim"})
	require.NoError(t, err)
	assert.Equal(t, "kim", c.Name)
}
