package httpx

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/odyssey-erp/cadastro/internal/shared"
)

// Validator checks request DTOs against their `validate` struct tags and
// reports violations using the JSON field names.
type Validator struct {
	validate *validator.Validate
}

// NewValidator builds a Validator with the "digits", "cpfcnpj" and "notblank"
// tags registered.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	_ = v.RegisterValidation("digits", func(fl validator.FieldLevel) bool {
		for _, r := range fl.Field().String() {
			if r < '0' || r > '9' {
				return false
			}
		}
		return true
	})
	_ = v.RegisterValidation("cpfcnpj", func(fl validator.FieldLevel) bool {
		n := len(fl.Field().String())
		return n == 11 || n == 14
	})
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	return &Validator{validate: v}
}

// Struct validates target; violations come back as a shared.ErrValidation.
func (v *Validator) Struct(target any) error {
	err := v.validate.Struct(target)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		messages = append(messages, fieldMessage(fe))
	}
	return shared.Invalid("%s", strings.Join(messages, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s é obrigatório", fe.Field())
	case "notblank":
		return fmt.Sprintf("%s não pode estar em branco", fe.Field())
	case "digits":
		return fmt.Sprintf("%s deve conter apenas dígitos", fe.Field())
	case "len":
		return fmt.Sprintf("%s deve conter %s dígitos", fe.Field(), fe.Param())
	case "cpfcnpj":
		return fmt.Sprintf("%s deve ter 11 dígitos (CPF) ou 14 dígitos (CNPJ)", fe.Field())
	case "max":
		return fmt.Sprintf("%s deve ter no máximo %s caracteres", fe.Field(), fe.Param())
	case "email":
		return fmt.Sprintf("%s inválido", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s deve ser um de: %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s inválido (%s)", fe.Field(), fe.Tag())
	}
}
