package config

import (
	"github.com/go-playground/validator/v10"

	"github.com/forgebot/rangediff/internal/common/errorwrapper"
)

// ValidateConfig validates the configuration using struct tags
func ValidateConfig(cfg *GlobalConfig) error {
	validate := validator.New()

	if err := validate.Struct(cfg); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok && len(validationErrors) > 0 {
			first := validationErrors[0]
			return errorwrapper.NewValidationError(first.Namespace(), first.Value(), "failed validation on tag '"+first.Tag()+"'")
		}
		return errorwrapper.WrapError(err, "config validation failed")
	}

	return nil
}
