// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"spendwise/internal/models"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		RegisterOn(v)
	}
}

// RegisterOn adds the custom tags to v.
func RegisterOn(v *validator.Validate) {
	_ = v.RegisterValidation("payment_type", validatePaymentType)
	_ = v.RegisterValidation("category", validateCategory)
	_ = v.RegisterValidation("gender", validateGender)
	_ = v.RegisterValidation("txdate", validateTxDate)
}

func validatePaymentType(fl validator.FieldLevel) bool {
	return models.PaymentType(fl.Field().String()).Valid()
}

func validateCategory(fl validator.FieldLevel) bool {
	return models.Category(fl.Field().String()).Valid()
}

func validateGender(fl validator.FieldLevel) bool {
	return models.Gender(fl.Field().String()).Valid()
}

// validateTxDate accepts YYYY-MM-DD or DD.MM.YYYY calendar dates.
func validateTxDate(fl validator.FieldLevel) bool {
	_, ok := models.NormalizeDate(fl.Field().String())
	return ok
}
