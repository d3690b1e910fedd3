package config

import (
	"math"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

// validatorInstance configures and returns the shared validator instance used
// across the config package. The registered rules mirror the ranges the
// simulation engine accepts for custom sites.
func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("latitude_range", func(fl validator.FieldLevel) bool {
			val := fl.Field().Float()
			return val >= -90 && val <= 90
		})

		_ = v.RegisterValidation("longitude_range", func(fl validator.FieldLevel) bool {
			val := fl.Field().Float()
			return val >= -180 && val <= 180
		})

		_ = v.RegisterValidation("timezone_range", func(fl validator.FieldLevel) bool {
			val := fl.Field().Float()
			return val >= -12 && val <= 14
		})

		_ = v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
			val := fl.Field().Float()
			return !math.IsNaN(val) && !math.IsInf(val, 0)
		})

		validateInst = v
	})

	return validateInst
}

// GetValidator returns the configured validator instance for use outside the
// config package.
func GetValidator() *validator.Validate {
	return validatorInstance()
}
