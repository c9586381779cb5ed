// Package validator adapts go-playground/validator to echo's Validator
// interface so handlers can declare constraints on request DTOs.
package validator

import (
	domainerrors "tastebud/internal/domain/errors"

	playground "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type echoValidator struct {
	validate *playground.Validate
}

// New builds the request validator installed on the echo server.
func New() echo.Validator {
	return &echoValidator{validate: playground.New()}
}

// Validate checks struct tags and maps failures onto the validation error
// so the central error handler renders a 400 with field details.
func (v *echoValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return nil
}
