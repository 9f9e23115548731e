// Package validator adapts go-playground/validator to echo.
package validator

import (
	"storefront/internal/util"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// Validator implements echo.Validator.
type Validator struct {
	validate *validator.Validate
}

// New creates a validator with the project's custom rules registered.
func New() *Validator {
	return &Validator{validate: util.NewValidator()}
}

// Validate validates a bound request struct.
func (v *Validator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return errors.WithStack(err)
	}

	return nil
}
