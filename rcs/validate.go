package rcs

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"msgsend/schema"
)

// Validator checks decoded options against the value rules declared in the
// struct tags. It is safe for concurrent use.
type Validator struct {
	validate   *validator.Validate
	maxButtons int
}

// ValidatorOption configures a Validator.
type ValidatorOption func(*Validator)

// WithMaxButtons limits every button list to n entries. Zero or less keeps
// lists unbounded.
func WithMaxButtons(n int) ValidatorOption {
	return func(v *Validator) { v.maxButtons = n }
}

// NewValidator returns a Validator.
func NewValidator(opts ...ValidatorOption) *Validator {
	validate := validator.New()
	// report wire names in error paths
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	v := &Validator{validate: validate}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// MaxButtons returns the configured button limit, zero if unbounded.
func (v *Validator) MaxButtons() int {
	if v.maxButtons < 0 {
		return 0
	}
	return v.maxButtons
}

// Decode decodes raw at path and validates the result.
func (v *Validator) Decode(path string, raw any) (Option, error) {
	opt, err := OptionShape.Decode(path, raw)
	if err != nil {
		return Option{}, err
	}
	if err := v.Validate(path, &opt); err != nil {
		return Option{}, err
	}
	return opt, nil
}

// Validate checks an already decoded option. path prefixes error paths.
func (v *Validator) Validate(path string, opt *Option) error {
	if opt == nil {
		return nil
	}
	if err := v.validate.Struct(opt); err != nil {
		return translate(path, err)
	}
	if v.maxButtons > 0 {
		if err := v.checkButtons(schema.Join(path, "buttons"), opt.Buttons); err != nil {
			return err
		}
		if body := opt.AdditionalBody; body != nil {
			if err := v.checkButtons(schema.Join(schema.Join(path, "additionalBody"), "buttons"), body.Buttons); err != nil {
				return err
			}
		}
	}
	return nil
}

func (v *Validator) checkButtons(path string, buttons []Button) error {
	if len(buttons) == 0 {
		return nil
	}
	if err := v.validate.Var(buttons, fmt.Sprintf("max=%d", v.maxButtons)); err != nil {
		return schema.ConstraintError(path,
			fmt.Sprintf("at most %d buttons are allowed, got %d", v.maxButtons, len(buttons)), len(buttons))
	}
	return nil
}

// translate converts the first validator failure into a schema error.
func translate(path string, err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	fieldPath := path
	// Namespace is "Option.field.sub"; drop the root struct name.
	if _, rest, ok := strings.Cut(fe.Namespace(), "."); ok {
		for _, part := range strings.Split(rest, ".") {
			fieldPath = schema.Join(fieldPath, part)
		}
	}
	switch fe.Tag() {
	case "oneof":
		return schema.EnumError(fieldPath, fe.Value(), strings.Fields(fe.Param()))
	case "required":
		return schema.MissingError(fieldPath)
	default:
		return schema.ConstraintError(fieldPath,
			fmt.Sprintf("failed %q rule", fe.Tag()), fe.Value())
	}
}
