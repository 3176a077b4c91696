package models

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// Email validation regex pattern
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Phone number validation regex (international, optional leading +)
var phoneRegex = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)

// Allowed values for the enumerated request fields
var (
	DataTypes         = []string{"text", "json", "csv", "xml", "binary"}
	NotificationTypes = []string{"email", "sms"}
)

const (
	NotificationTypeEmail = "email"
	NotificationTypeSMS   = "sms"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("emailfmt", func(fl validator.FieldLevel) bool {
		return IsValidEmail(fl.Field().String())
	})
	_ = v.RegisterValidation("phonefmt", func(fl validator.FieldLevel) bool {
		return IsValidPhone(fl.Field().String())
	})
	return v
}

// IsValidEmail reports whether email has the local-part@domain.tld shape
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// IsValidPhone reports whether phone is an optional + followed by 2-15 digits, the first 1-9
func IsValidPhone(phone string) bool {
	return phoneRegex.MatchString(phone)
}

// NormalizePhone removes spaces and hyphens from a phone number
func NormalizePhone(phone string) string {
	return strings.ReplaceAll(strings.ReplaceAll(strings.TrimSpace(phone), " ", ""), "-", "")
}

// IsBlank reports whether s is empty or whitespace-only
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// ValidateRequired checks that a required string field is not empty or whitespace-only
func ValidateRequired(value, fieldName string) error {
	if IsBlank(value) {
		return NewValidationError(MissingField, fieldName, capitalize(fieldName)+" is required")
	}
	return nil
}

// ValidateEnum checks that value is one of allowed. label names the field in the message.
func ValidateEnum(value, fieldName, label string, allowed []string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	ve := NewValidationError(InvalidEnum, fieldName,
		fmt.Sprintf("Invalid %s. Must be one of: %s", label, strings.Join(allowed, ", ")))
	ve.Value = value
	return ve
}

// ValidateEmail validates email format and returns a validation error if invalid
func ValidateEmail(email, fieldName string) error {
	if !IsValidEmail(email) {
		return &ValidationError{
			Field:   fieldName,
			Kind:    InvalidFormat,
			Message: "Invalid email format",
			Value:   email,
		}
	}
	return nil
}

// ValidatePhone validates phone format and returns a validation error if invalid
func ValidatePhone(phone, fieldName string) error {
	if !IsValidPhone(phone) {
		return &ValidationError{
			Field:   fieldName,
			Kind:    InvalidFormat,
			Message: "Invalid phone number format",
			Value:   phone,
		}
	}
	return nil
}

// ValidateStruct runs the struct's `validate` tags and converts the first
// failure into a *ValidationError.
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return NewValidationError(InvalidBody, "", err.Error())
	}

	fe := fieldErrs[0]
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return NewValidationError(MissingField, field, capitalize(field)+" is required")
	case "emailfmt":
		return ValidateEmail(fmt.Sprint(fe.Value()), field)
	case "phonefmt":
		return ValidatePhone(fmt.Sprint(fe.Value()), field)
	default:
		return NewValidationError(InvalidFormat, field, fmt.Sprintf("Invalid %s", field))
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
