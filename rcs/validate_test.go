package rcs

import (
	"errors"
	"testing"

	"github.com/kr/pretty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"msgsend/schema"
)

func button(name string) map[string]any {
	return map[string]any{"buttonType": "WL", "buttonName": name, "link": "https://example.com"}
}

func TestDecodeOption(t *testing.T) {
	raw := map[string]any{
		"brandId":     "BR.1234",
		"templateId":  "TPL.1",
		"copyAllowed": true,
		"variables":   map[string]any{"#{name}": "kim"},
		"mmsType":     "M3",
		"disableSms":  true,
		"additionalBody": map[string]any{
			"title":       "slide",
			"description": "first slide",
			"imageId":     "IMG.1",
			"buttons":     []any{button("open")},
		},
		"buttons": []any{button("a"), button("b"), button("c")},
	}
	opt, err := NewValidator().Decode("rcsOptions", raw)
	require.NoError(t, err)
	t.Log(pretty.Sprint(opt))

	assert.Equal(t, "BR.1234", opt.BrandID)
	assert.Equal(t, M3, opt.MMSType)
	assert.True(t, *opt.CopyAllowed)
	assert.Nil(t, opt.CommercialType)
	assert.True(t, opt.DisableSMS)
	assert.Equal(t, map[string]string{"#{name}": "kim"}, opt.Variables)
	require.NotNil(t, opt.AdditionalBody)
	assert.Equal(t, "IMG.1", opt.AdditionalBody.ImageID)
	assert.Len(t, opt.AdditionalBody.Buttons, 1)
	assert.Len(t, opt.Buttons, 3, "button lists are unbounded by default")
}

func TestDisableSMSDefault(t *testing.T) {
	opt, err := NewValidator().Decode("", map[string]any{"brandId": "BR"})
	require.NoError(t, err)
	assert.False(t, opt.DisableSMS, "fallback stays enabled")
	assert.Nil(t, opt.Buttons)
}

func TestMMSTypeMismatch(t *testing.T) {
	_, err := NewValidator().Decode("rcsOptions", map[string]any{"brandId": "BR", "mmsType": "X9"})
	var verr *schema.Error
	require.True(t, errors.As(err, &verr), "got %v", err)
	assert.Equal(t, schema.EnumMismatch, verr.Kind)
	assert.Equal(t, "rcsOptions.mmsType", verr.Path)
	assert.Equal(t, MMSType("X9"), verr.Value)

	allowed := make([]string, len(MMSTypes))
	for i, m := range MMSTypes {
		allowed[i] = string(m)
	}
	assert.Equal(t, allowed, verr.Allowed)
}

func TestOptionErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]any
		err  error
		path string
	}{
		{"missing brand", map[string]any{}, schema.ErrFieldType, "rcsOptions.brandId"},
		{"bad copyAllowed", map[string]any{"brandId": "BR", "copyAllowed": "yes"}, schema.ErrFieldType, "rcsOptions.copyAllowed"},
		{"bad variable", map[string]any{"brandId": "BR", "variables": map[string]any{"#{a}": 1.0}}, schema.ErrFieldType, "rcsOptions.variables.#{a}"},
		{"body without title", map[string]any{"brandId": "BR", "additionalBody": map[string]any{"description": "d"}}, schema.ErrFieldType, "rcsOptions.additionalBody.title"},
		{"button not an object", map[string]any{"brandId": "BR", "buttons": []any{"open"}}, schema.ErrFieldType, "rcsOptions.buttons[0]"},
		{"mmsType not a string", map[string]any{"brandId": "BR", "mmsType": 3.0}, schema.ErrFieldType, "rcsOptions.mmsType"},
	}
	v := NewValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := v.Decode("rcsOptions", tt.raw)
			require.ErrorIs(t, err, tt.err)
			var verr *schema.Error
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.path, verr.Path)
		})
	}
}

func TestMaxButtons(t *testing.T) {
	v := NewValidator(WithMaxButtons(2))
	assert.Equal(t, 2, v.MaxButtons())

	_, err := v.Decode("rcsOptions", map[string]any{
		"brandId": "BR",
		"buttons": []any{button("a"), button("b")},
	})
	require.NoError(t, err)

	_, err = v.Decode("rcsOptions", map[string]any{
		"brandId": "BR",
		"additionalBody": map[string]any{
			"title":       "t",
			"description": "d",
			"buttons":     []any{button("a"), button("b"), button("c")},
		},
	})
	require.ErrorIs(t, err, schema.ErrConstraintViolation)
	var verr *schema.Error
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "rcsOptions.additionalBody.buttons", verr.Path)
}

func TestValidateNil(t *testing.T) {
	assert.NoError(t, NewValidator().Validate("rcsOptions", nil))
}
