package rest

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var slugRe = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Validator plugs go-playground/validator into echo. Field names in errors are
// taken from json tags.
type Validator struct {
	v *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugRe.MatchString(fl.Field().String())
	})

	return &Validator{v: v}
}

func (cv *Validator) Validate(i any) error {
	return cv.v.Struct(i)
}

// fieldErrors flattens validation errors into the API error list.
func fieldErrors(err error) []FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Field:   fe.Field(),
			Message: fieldMessage(fe),
		})
	}

	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Required"
	case "email":
		return "Invalid email"
	case "url":
		return "Invalid url"
	case "slug":
		return "Must contain only lowercase letters, digits and dashes"
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", fe.Param())
	case "min":
		return fmt.Sprintf("Must be at least %s characters", fe.Param())
	case "gt":
		return fmt.Sprintf("Must be greater than %s", fe.Param())
	default:
		return "Invalid value"
	}
}
