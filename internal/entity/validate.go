package entity

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// в ошибках используем имена полей из JSON
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if id, ok := field.Interface().(NullableID); ok && id.Valid() {
			return id.id
		}
		return nil
	}, NullableID{})
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	return v
}

// validateStruct runs the struct's validate tags and wraps the first failure in kind.
func validateStruct(kind error, s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("%w: %v", kind, err)
	}

	fe := fieldErrs[0]
	switch fe.Tag() {
	case "required", "notblank":
		return fmt.Errorf("%w: %s is required", kind, fe.Field())
	case "oneof":
		return fmt.Errorf("%w: %s must be one of [%s], got %q", kind, fe.Field(), fe.Param(), fmt.Sprint(fe.Value()))
	case "email":
		return fmt.Errorf("%w: %s %q is malformed", kind, fe.Field(), fmt.Sprint(fe.Value()))
	case "max":
		return fmt.Errorf("%w: %s must be at most %s characters", kind, fe.Field(), fe.Param())
	case "gte":
		return fmt.Errorf("%w: %s must not be negative", kind, fe.Field())
	default:
		return fmt.Errorf("%w: %s failed %s", kind, fe.Field(), fe.Tag())
	}
}
