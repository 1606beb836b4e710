// Package validator adapts go-playground/validator to echo's Validator interface.
package validator

import (
	validatorLib "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	domainerrors "pustaka/internal/domain/errors"
)

type echoValidator struct {
	validate *validatorLib.Validate
}

// New creates the validator used for request body structs.
func New() echo.Validator {
	return &echoValidator{validate: validatorLib.New()}
}

// Validate checks the struct tags and maps any violation to the API's
// generic validation error.
func (v *echoValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return nil
}
