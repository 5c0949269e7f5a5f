// Package validation provides custom validation rules for the application.
package validation

import (
	"fmt"
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/agrosync/internal/errors"
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput.
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NotBlank validates that a string is not empty after trimming whitespace.
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "cannot be blank"),
)

// OneOf validates that a string value is a member of the allowed set.
type OneOf struct {
	Allowed []string
}

// Validate checks set membership for string values.
func (r OneOf) Validate(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		if stringer, isStringer := value.(fmt.Stringer); isStringer {
			s = stringer.String()
		} else {
			return validation.NewError("validation_one_of", "must be a string")
		}
	}

	for _, allowed := range r.Allowed {
		if s == allowed {
			return nil
		}
	}

	return validation.NewError(
		"validation_one_of",
		fmt.Sprintf("must be one of: %s", strings.Join(r.Allowed, ", ")),
	)
}
