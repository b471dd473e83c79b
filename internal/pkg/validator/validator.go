package validator

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()

	// Use JSON tag names in error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	registerCustomValidations()
}

func registerCustomValidations() {
	// notblank rejects strings made only of whitespace
	validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	// position is a CSS focal-point percentage
	validate.RegisterValidation("position", func(fl validator.FieldLevel) bool {
		v := fl.Field().Int()
		return v >= 0 && v <= 100
	})
}

// Validate validates a struct and returns a map of field errors
func Validate(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"_": err.Error()}
	}

	fieldErrors := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		switch fe.Tag() {
		case "required", "notblank":
			fieldErrors[field] = "This field is required"
		case "email":
			fieldErrors[field] = "Invalid email format"
		case "max":
			fieldErrors[field] = "Value is too long (max: " + fe.Param() + ")"
		case "url":
			fieldErrors[field] = "Invalid URL format"
		case "position":
			fieldErrors[field] = "Value must be between 0 and 100"
		default:
			fieldErrors[field] = "Invalid value"
		}
	}

	return fieldErrors
}

// ValidateVar validates a single variable
func ValidateVar(field interface{}, tag string) error {
	return validate.Var(field, tag)
}
