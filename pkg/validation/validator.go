package validation

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// validate is a singleton validator instance
var validate = validator.New()

// Struct validates v against its `validate` struct tags and returns the first
// violation in a readable form.
func Struct(v any) error {
	if err := validate.Struct(v); err != nil {
		return formatValidationError(err)
	}
	return nil
}

func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return err
	}

	e := validationErrs[0]
	field := e.Field()
	param := e.Param()

	switch e.Tag() {
	case "required":
		return fmt.Errorf("%s: field is required", field)
	case "gte", "min":
		return fmt.Errorf("%s: must be at least %s (got %v)", field, param, e.Value())
	case "lte", "max":
		return fmt.Errorf("%s: must not exceed %s (got %v)", field, param, e.Value())
	case "oneof":
		return fmt.Errorf("%s: must be one of [%s] (got %v)", field, param, e.Value())
	default:
		return fmt.Errorf("%s: validation failed (%s)", field, e.Tag())
	}
}
