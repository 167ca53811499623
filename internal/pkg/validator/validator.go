package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/skillswap/skillswap-api/internal/pkg/schedule"
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

	// Register custom validations
	registerCustomValidations()
}

func registerCustomValidations() {
	// Weekday name validation (Mon / monday / Monday)
	validate.RegisterValidation("weekday", func(fl validator.FieldLevel) bool {
		_, err := schedule.NormalizeWeekday(fl.Field().String())
		return err == nil
	})

	// Experience level validation
	validate.RegisterValidation("experience_level", func(fl validator.FieldLevel) bool {
		level := fl.Field().String()
		validLevels := []string{"Beginner", "Intermediate", "Advanced", "Expert"}
		for _, l := range validLevels {
			if level == l {
				return true
			}
		}
		return false
	})

	// Time slot validation ("startMinute-endMinute")
	validate.RegisterValidation("time_slot", func(fl validator.FieldLevel) bool {
		_, err := schedule.ParseSlot(fl.Field().String())
		return err == nil
	})
}

// Validate validates a struct and returns a map of field errors
func Validate(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	for _, err := range err.(validator.ValidationErrors) {
		field := err.Field()
		switch err.Tag() {
		case "required":
			errors[field] = "This field is required"
		case "email":
			errors[field] = "Invalid email format"
		case "min":
			errors[field] = "Value is too short (min: " + err.Param() + ")"
		case "max":
			errors[field] = "Value is too long (max: " + err.Param() + ")"
		case "gte":
			errors[field] = "Value must be at least " + err.Param()
		case "lte":
			errors[field] = "Value must be at most " + err.Param()
		case "dive":
			errors[field] = "Invalid list element"
		case "weekday":
			errors[field] = "Invalid weekday name"
		case "experience_level":
			errors[field] = "Invalid experience level. Must be: Beginner, Intermediate, Advanced, or Expert"
		case "time_slot":
			errors[field] = "Invalid time slot. Must be formatted as startMinute-endMinute"
		default:
			errors[field] = "Invalid value"
		}
	}

	return errors
}

// ValidateVar validates a single variable
func ValidateVar(field interface{}, tag string) error {
	return validate.Var(field, tag)
}
