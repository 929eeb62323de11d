package validator

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	v := validator.New()
	// Report fields by their JSON names so messages match the request body
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return &CustomValidator{validator: v}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// messages renders the text after the field name for each tag
var messages = map[string]func(param string) string{
	"required": func(string) string { return "is required" },
	"email":    func(string) string { return "must be a valid email address" },
	"uuid":     func(string) string { return "must be a valid UUID" },
	"min":      func(p string) string { return "must be at least " + p + " characters" },
	"max":      func(p string) string { return "must be at most " + p + " characters" },
	"gte":      func(p string) string { return "must be greater than or equal to " + p },
	"lte":      func(p string) string { return "must be less than or equal to " + p },
	"datetime": func(p string) string { return "must match the format " + p },
	"dive":     func(string) string { return "contains an invalid item" },
	"oneof": func(p string) string {
		return "must be one of: " + strings.Join(strings.Fields(p), ", ")
	},
}

// FormatValidationErrors maps each failing field to a readable message
func (cv *CustomValidator) FormatValidationErrors(err error) map[string]string {
	out := make(map[string]string)

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return out
	}
	for _, e := range fieldErrs {
		field := e.Field()
		render, ok := messages[e.Tag()]
		if !ok {
			out[field] = field + " is invalid"
			continue
		}
		out[field] = field + " " + render(e.Param())
	}
	return out
}
