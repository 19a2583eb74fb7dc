package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/dtroode/dokugo-server/internal/apierror"
)

// Validator checks request structs against their validate tags and turns
// the first failure into a client-facing message.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v}
}

// Struct returns nil or an *apierror.APIError with status 400.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) || len(fieldErrors) == 0 {
		return fmt.Errorf("failed to validate request: %w", err)
	}

	return apierror.NewErrValidation(fieldMessage(fieldErrors[0]))
}

func fieldMessage(fe validator.FieldError) string {
	label := fmt.Sprintf("%q", fe.Field())

	switch fe.Tag() {
	case "required":
		return label + " wajib diisi"
	case "email":
		return label + " harus berupa email yang valid"
	case "alphanum":
		return label + " hanya boleh berisi huruf dan angka"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s panjangnya harus lebih dari atau sama dengan %s karakter", label, fe.Param())
		}
		return fmt.Sprintf("%s harus lebih dari atau sama dengan %s", label, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s panjangnya harus kurang dari atau sama dengan %s karakter", label, fe.Param())
		}
		return fmt.Sprintf("%s harus kurang dari atau sama dengan %s", label, fe.Param())
	case "gte":
		return fmt.Sprintf("%s harus lebih dari atau sama dengan %s", label, fe.Param())
	case "lte":
		return fmt.Sprintf("%s harus kurang dari atau sama dengan %s", label, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s harus salah satu dari [%s]", label, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "datetime":
		return label + " harus berformat YYYY-MM-DD"
	default:
		return label + " tidak valid"
	}
}
