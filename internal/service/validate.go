package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"bookstore-catalog/internal/slug"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// los mensajes usan el nombre JSON del campo
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// el nombre tiene que dejar algo después de normalizar, si no el slug queda vacío
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slug.Normalize(fl.Field().String()) != ""
	})
	return v
}

// validateInput devuelve el primer campo inválido como *ValidationError.
func validateInput(in interface{}) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}

	fe := fieldErrs[0]
	field, param := fe.Field(), fe.Param()

	var message string
	switch fe.Tag() {
	case "required":
		message = fmt.Sprintf("%s is required", field)
	case "min":
		message = fmt.Sprintf("%s must be at least %s characters", field, param)
	case "max":
		message = fmt.Sprintf("%s must be at most %s characters", field, param)
	case "gte":
		message = fmt.Sprintf("%s must be greater than or equal to %s", field, param)
	case "gt":
		message = fmt.Sprintf("%s must be greater than %s", field, param)
	case "lte":
		message = fmt.Sprintf("%s must be less than or equal to %s", field, param)
	case "slug":
		message = fmt.Sprintf("%s must contain latin, greek or cyrillic letters or digits", field)
	case "oneof":
		message = fmt.Sprintf("%s must be one of: %s", field, param)
	default:
		message = fmt.Sprintf("%s is invalid", field)
	}

	return &ValidationError{Field: field, Message: message}
}
