// Package validation evaluates the declarative field rules of request inputs
// and reports failures as a per-field apperrors.ValidationError.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"catalog-backend/internal/apperrors"
	"catalog-backend/internal/models"

	"github.com/go-playground/validator/v10"
)

type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})

	out := &Validator{validate: v}
	for tag, fn := range customRules {
		if err := out.Register(tag, fn); err != nil {
			panic(err)
		}
	}
	return out
}

// customRules are the catalog-specific tags available on every Validator.
var customRules = map[string]validator.Func{
	"classification": func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		for _, classification := range models.Classifications {
			if value == classification {
				return true
			}
		}
		return false
	},
	"cast_role": func(fl validator.FieldLevel) bool {
		return models.CastMemberRole(fl.Field().Int()).Valid()
	},
}

// Register adds a custom validation tag.
func (v *Validator) Register(tag string, fn validator.Func) error {
	if err := v.validate.RegisterValidation(tag, fn); err != nil {
		return fmt.Errorf("register validation %q: %w", tag, err)
	}
	return nil
}

// Struct validates s and returns nil or a *apperrors.ValidationError.
func (v *Validator) Struct(s any) *apperrors.ValidationError {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	verr := apperrors.NewValidationError()

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		verr.Add("_", err.Error())
		return verr
	}

	for _, fe := range fieldErrors {
		verr.Add(fieldName(fe), message(fe))
	}
	return verr
}

// fieldName collapses element errors such as "genres[2]" onto their field.
func fieldName(fe validator.FieldError) string {
	name := fe.Field()
	if idx := strings.Index(name, "["); idx > 0 {
		name = name[:idx]
	}
	return name
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("may not be greater than %s characters", fe.Param())
		}
		return fmt.Sprintf("may not be greater than %s", fe.Param())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must have at least %s items", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "uuid":
		return "must be a valid UUID"
	case "datetime":
		return fmt.Sprintf("does not match the format %s", fe.Param())
	case "classification":
		return "must be one of " + strings.Join(models.Classifications, ", ")
	case "cast_role":
		return "is invalid"
	}
	return fmt.Sprintf("failed on the %q rule", fe.Tag())
}
