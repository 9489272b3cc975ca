// Package validate runs go-playground/validator over request structs and reports
// failures as domain validation errors keyed by JSON field name.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"plataforma-formacao/internal/domain"
)

const notBlankTag = "notblank"

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New()

	val.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = val.RegisterValidation(notBlankTag, func(fl validator.FieldLevel) bool {
		if str, ok := fl.Field().Interface().(string); ok {
			return strings.TrimSpace(str) != ""
		}
		return false
	})

	return val
}

// Struct validates s. Failures come back as domain.ErrInvalidInput with the offending
// fields in Details.
func Struct(s interface{}) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return domain.ErrInvalidInput.WithDetails(strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", notBlankTag:
		return fmt.Sprintf("%s é obrigatório", fe.Field())
	case "max":
		return fmt.Sprintf("%s excede o máximo de %s caracteres", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s exige pelo menos %s caracteres", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s deve ser um de: %s", fe.Field(), fe.Param())
	case "email":
		return fmt.Sprintf("%s não é um email válido", fe.Field())
	default:
		return fmt.Sprintf("%s é inválido", fe.Field())
	}
}
