package handler

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// Validator wraps the validator instance
type Validator struct {
	validate *validator.Validate
}

var (
	validate     *Validator
	validateOnce sync.Once
)

// GetValidator returns the shared validator, registering custom tags once
func GetValidator() *Validator {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		_ = v.RegisterValidation("account_id", validateAccountID)
		validate = &Validator{validate: v}
	})
	return validate
}

// ValidateStruct validates a struct using tags
func (v *Validator) ValidateStruct(s any) error {
	return v.validate.Struct(s)
}

// ValidateVar validates a single value against a tag expression
func (v *Validator) ValidateVar(field any, tag string) error {
	return v.validate.Var(field, tag)
}

// validateAccountID accepts 1-100 characters without control characters
func validateAccountID(fl validator.FieldLevel) bool {
	return IsValidAccountID(fl.Field().String())
}

// IsValidAccountID reports whether id is usable as an account id
func IsValidAccountID(id string) bool {
	if id == "" || len(id) > maxAccountIDLen {
		return false
	}
	for _, r := range id {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// FormatValidationError turns validation errors into a field map without
// exposing struct names
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	errs := make(map[string]string)
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errs["error"] = ErrMsgInvalidRequestFormat
		return errs
	}

	for _, e := range validationErrors {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			errs[field] = ValidationMsgRequired
		case "account_id":
			errs[field] = ValidationMsgAccountID
		case "max":
			errs[field] = fmt.Sprintf(ValidationMsgMax, e.Param())
		case "min":
			errs[field] = fmt.Sprintf(ValidationMsgMin, e.Param())
		default:
			errs[field] = ValidationMsgInvalid
		}
	}
	return errs
}
