package validation

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
)

// ErrInvalidConfig is matched by every error returned from Validate.
var ErrInvalidConfig = errors.New("invalid configuration")

// FieldError describes one rejected configuration field.
type FieldError struct {
	Config string
	Field  string
	Reason string
	Cause  error
}

func (e *FieldError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s.%s: %v", e.Config, e.Field, e.Cause)
	}
	return fmt.Sprintf("%s.%s: %s", e.Config, e.Field, e.Reason)
}

func (e *FieldError) Unwrap() error { return e.Cause }

// ConfigValidator collects field errors through chained checks so a caller
// sees every problem with a config in one pass.
type ConfigValidator struct {
	name   string
	errors []*FieldError
}

// NewConfigValidator starts a validator; configName prefixes every field.
func NewConfigValidator(configName string) *ConfigValidator {
	return &ConfigValidator{name: configName}
}

func (cv *ConfigValidator) reject(field string, cause error, format string, args ...any) {
	cv.errors = append(cv.errors, &FieldError{
		Config: cv.name,
		Field:  field,
		Reason: fmt.Sprintf(format, args...),
		Cause:  cause,
	})
}

// Required rejects blank strings.
func (cv *ConfigValidator) Required(field, value string) *ConfigValidator {
	if strings.TrimSpace(value) == "" {
		cv.reject(field, nil, "required field is empty")
	}
	return cv
}

func (cv *ConfigValidator) Positive(field string, value int) *ConfigValidator {
	if value <= 0 {
		cv.reject(field, nil, "value %d must be positive", value)
	}
	return cv
}

func (cv *ConfigValidator) NonNegative(field string, value int) *ConfigValidator {
	if value < 0 {
		cv.reject(field, nil, "value %d must be non-negative", value)
	}
	return cv
}

// NonNegativeFloat rejects negative values, NaN and infinities.
func (cv *ConfigValidator) NonNegativeFloat(field string, value float64) *ConfigValidator {
	if math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
		cv.reject(field, nil, "value %v must be a finite non-negative number", value)
	}
	return cv
}

func (cv *ConfigValidator) OneOf(field, value string, allowed []string) *ConfigValidator {
	if !slices.Contains(allowed, value) {
		cv.reject(field, nil, "value %q must be one of %v", value, allowed)
	}
	return cv
}

// S3URI requires value to have the form s3://bucket/key.
func (cv *ConfigValidator) S3URI(field, value string) *ConfigValidator {
	rest, ok := strings.CutPrefix(value, "s3://")
	if !ok {
		cv.reject(field, nil, "%q is not an s3:// URI", value)
		return cv
	}
	bucket, key, _ := strings.Cut(rest, "/")
	if bucket == "" || key == "" {
		cv.reject(field, nil, "%q must be s3://bucket/key", value)
	}
	return cv
}

// Custom records the error returned by fn, keeping it reachable through
// errors.Is and errors.As.
func (cv *ConfigValidator) Custom(field string, fn func() error) *ConfigValidator {
	if err := fn(); err != nil {
		cv.reject(field, err, "%v", err)
	}
	return cv
}

// When runs validations only if condition holds.
func (cv *ConfigValidator) When(condition bool, validations func(*ConfigValidator)) *ConfigValidator {
	if condition {
		validations(cv)
	}
	return cv
}

func (cv *ConfigValidator) HasErrors() bool {
	return len(cv.errors) > 0
}

// Errors returns the rejected fields in the order they were checked.
func (cv *ConfigValidator) Errors() []*FieldError {
	return cv.errors
}

// Validate returns nil, or an error matching ErrInvalidConfig that joins
// every FieldError.
func (cv *ConfigValidator) Validate() error {
	if len(cv.errors) == 0 {
		return nil
	}
	errs := make([]error, 0, len(cv.errors)+1)
	errs = append(errs, fmt.Errorf("%s: %w", cv.name, ErrInvalidConfig))
	for _, fe := range cv.errors {
		errs = append(errs, fe)
	}
	return errors.Join(errs...)
}
