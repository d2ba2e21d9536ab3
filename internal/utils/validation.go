package utils

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors represents multiple validation errors
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	var messages []string
	for _, err := range ve {
		messages = append(messages, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return strings.Join(messages, ", ")
}

// IsValidEmail checks whether the string looks like an email address.
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// ValidateStruct validates a struct using reflection and struct tags
func ValidateStruct(s interface{}) error {
	var errors ValidationErrors

	v := reflect.ValueOf(s)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	if v.Kind() != reflect.Struct {
		return fmt.Errorf("expected struct, got %s", v.Kind())
	}

	t := v.Type()

	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := t.Field(i)

		if !field.CanInterface() {
			continue
		}

		validateTag := fieldType.Tag.Get("validate")
		if validateTag == "" {
			continue
		}

		rules := strings.Split(validateTag, ",")
		for _, rule := range rules {
			rule = strings.TrimSpace(rule)
			if err := validateField(fieldType.Name, field, rule); err != nil {
				errors = append(errors, *err)
			}
		}
	}

	if len(errors) > 0 {
		return errors
	}

	return nil
}

// validateField validates a single field against a rule
func validateField(fieldName string, field reflect.Value, rule string) *ValidationError {
	parts := strings.Split(rule, "=")
	ruleName := parts[0]
	var ruleValue string
	if len(parts) > 1 {
		ruleValue = parts[1]
	}

	switch ruleName {
	case "required":
		if isEmpty(field) {
			return &ValidationError{Field: fieldName, Message: "is required"}
		}
	case "email":
		if field.Kind() == reflect.String {
			email := field.String()
			if email != "" && !IsValidEmail(email) {
				return &ValidationError{Field: fieldName, Message: "must be a valid email address"}
			}
		}
	case "min":
		if field.Kind() == reflect.String {
			if len(field.String()) < parseIntOrDefault(ruleValue, 0) {
				return &ValidationError{Field: fieldName, Message: fmt.Sprintf("must be at least %s characters", ruleValue)}
			}
		} else if isNumeric(field) {
			if getNumericValue(field) < float64(parseIntOrDefault(ruleValue, 0)) {
				return &ValidationError{Field: fieldName, Message: fmt.Sprintf("must be at least %s", ruleValue)}
			}
		}
	case "max":
		if field.Kind() == reflect.String {
			if len(field.String()) > parseIntOrDefault(ruleValue, 0) {
				return &ValidationError{Field: fieldName, Message: fmt.Sprintf("must be at most %s characters", ruleValue)}
			}
		} else if isNumeric(field) {
			if getNumericValue(field) > float64(parseIntOrDefault(ruleValue, 0)) {
				return &ValidationError{Field: fieldName, Message: fmt.Sprintf("must be at most %s", ruleValue)}
			}
		}
	case "gte":
		if isNumeric(field) {
			if getNumericValue(field) < float64(parseIntOrDefault(ruleValue, 0)) {
				return &ValidationError{Field: fieldName, Message: fmt.Sprintf("must be greater than or equal to %s", ruleValue)}
			}
		}
	case "lte":
		if isNumeric(field) {
			if getNumericValue(field) > float64(parseIntOrDefault(ruleValue, 0)) {
				return &ValidationError{Field: fieldName, Message: fmt.Sprintf("must be less than or equal to %s", ruleValue)}
			}
		}
	}

	return nil
}

// isEmpty checks if a field value is empty
func isEmpty(field reflect.Value) bool {
	switch field.Kind() {
	case reflect.String:
		return strings.TrimSpace(field.String()) == ""
	case reflect.Slice, reflect.Map:
		return field.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return field.IsNil()
	default:
		return field.IsZero()
	}
}

// isNumeric checks if a field holds a numeric value
func isNumeric(field reflect.Value) bool {
	switch field.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// getNumericValue returns the field value as float64
func getNumericValue(field reflect.Value) float64 {
	switch field.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(field.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(field.Uint())
	case reflect.Float32, reflect.Float64:
		return field.Float()
	}
	return 0
}

func parseIntOrDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
