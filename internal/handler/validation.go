package handler

import (
	"fmt"

	"shop-location-api/internal/service"
	"shop-location-api/internal/textnorm"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidations adds the custom binding rules to gin's validator.
func RegisterValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("handler: unexpected validator engine %T", binding.Validator.Engine())
	}
	if err := v.RegisterValidation("postal7", validatePostal7); err != nil {
		return fmt.Errorf("handler: failed to register postal7: %w", err)
	}
	return nil
}

// validatePostal7 accepts text holding exactly seven digits once full-width
// digits, hyphens and spaces are dropped.
func validatePostal7(fl validator.FieldLevel) bool {
	return len(textnorm.DigitsOnly(fl.Field().String())) == service.PostalCodeLength
}

func invalidPostalCode(err error) error {
	return fmt.Errorf("handler: %w: %v", service.ErrInvalidPostalCode, err)
}
