package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dom/members-api/internal/domain"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// checkInput validates v against its struct tags and reports the first
// failing field as a domain.ErrValidation.
func checkInput(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	fe := fieldErrs[0]
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%w: %s is required", domain.ErrValidation, field)
	case "email":
		return fmt.Errorf("%w: %s must be a valid email address", domain.ErrValidation, field)
	case "min":
		return fmt.Errorf("%w: %s must be at least %s characters", domain.ErrValidation, field, fe.Param())
	default:
		return fmt.Errorf("%w: %s is invalid", domain.ErrValidation, field)
	}
}
