package validator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// BloodGroups lists the accepted ABO/Rh groups in display order.
var BloodGroups = []string{"A+", "A-", "B+", "B-", "O+", "O-", "AB+", "AB-"}

func IsBloodGroup(s string) bool {
	for _, bg := range BloodGroups {
		if bg == s {
			return true
		}
	}
	return false
}

// RegisterCustomValidations adds the project tags to gin's validator engine.
// Safe to call more than once.
func RegisterCustomValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin validator engine is not go-playground/validator")
	}
	return v.RegisterValidation("bloodgroup", func(fl validator.FieldLevel) bool {
		return IsBloodGroup(fl.Field().String())
	})
}

func FormatValidationError(err error) string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		messages := make([]string, 0, len(validationErrors))
		for _, fieldError := range validationErrors {
			messages = append(messages, getFieldErrorMessage(fieldError))
		}
		return strings.Join(messages, "; ")
	}
	return err.Error()
}

func getFieldErrorMessage(fe validator.FieldError) string {
	field := getFieldName(fe.Field())

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "bloodgroup":
		return fmt.Sprintf("%s must be one of %s", field, strings.Join(BloodGroups, ", "))
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "min":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

func getFieldName(field string) string {
	fieldNames := map[string]string{
		"Email":        "Email",
		"Password":     "Password",
		"FullName":     "Full name",
		"Age":          "Age",
		"BloodGroup":   "Blood group",
		"City":         "City",
		"Address":      "Address",
		"Phone":        "Phone number",
		"HospitalCode": "Hospital ID",
		"Name":         "Hospital name",
		"Units":        "Units",
		"Decision":     "Decision",
	}

	if name, ok := fieldNames[field]; ok {
		return name
	}
	return field
}
