package service

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var looseEmailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// NewValidator returns the validator shared by services and handlers. Field errors carry
// the JSON name of the field, and the loose_email tag accepts anything shaped like
// local@domain.tld. notblank rejects whitespace-only text.
func NewValidator() *validator.Validate {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(field.Tag.Get("query"), ",", 2)[0]
		}
		if name == "" {
			return field.Name
		}
		return name
	})
	_ = validate.RegisterValidation("loose_email", func(fl validator.FieldLevel) bool {
		return looseEmailPattern.MatchString(fl.Field().String())
	})
	_ = validate.RegisterValidation("notblank", validators.NotBlank)
	return validate
}
