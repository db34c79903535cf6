package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/andrescamacho/craftreq/internal/domain/crafting"
)

// Validator is a wrapper around go-playground/validator
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new validator instance with custom validation rules.
// It panics if a custom rule cannot be registered.
func NewValidator() *Validator {
	v := validator.New()

	if err := v.RegisterValidation("match_policy", validateMatchPolicy); err != nil {
		panic(fmt.Sprintf("register match_policy validation: %v", err))
	}

	return &Validator{
		validate: v,
	}
}

// Validate validates a struct using validation tags
func (v *Validator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return v.formatValidationError(err)
	}
	return nil
}

// formatValidationError converts validator errors into readable messages
func (v *Validator) formatValidationError(err error) error {
	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		var messages []string
		for _, e := range validationErrs {
			messages = append(messages, fmt.Sprintf(
				"field '%s' failed validation: %s (value: '%v')",
				e.Field(),
				e.Tag(),
				e.Value(),
			))
		}
		return fmt.Errorf("validation failed:\n  %s", strings.Join(messages, "\n  "))
	}
	return err
}

// ValidateConfig validates the entire configuration
func ValidateConfig(cfg *Config) error {
	v := NewValidator()
	return v.Validate(cfg)
}

func validateMatchPolicy(fl validator.FieldLevel) bool {
	_, err := crafting.ParseMatchPolicy(fl.Field().String())
	return err == nil
}
