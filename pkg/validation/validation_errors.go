package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldMessages maps struct field names to the message shown for any failed
// rule on that field. The contact form reports one message per field.
var FieldMessages = map[string]string{
	"Name":           "Name is required.",
	"Email":          "A valid email is required.",
	"Phone":          "Phone is required.",
	"VideoType":      "Type of video is required.",
	"ProjectDetails": "Project details are required.",
}

// FieldLabels maps struct field names to labels for fields without a fixed message
var FieldLabels = map[string]string{
	"Name":           "Name",
	"Email":          "Email",
	"Phone":          "Phone",
	"VideoType":      "Type of video",
	"ProjectDetails": "Project details",
}

// FormatValidationErrors converts validator.ValidationErrors to user-friendly
// messages. Order follows struct field order; each field is reported once.
func FormatValidationErrors(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		// Not a validation error, return generic message
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(validationErrors))
	seen := make(map[string]bool, len(validationErrors))
	for _, e := range validationErrors {
		field := e.StructField()
		if seen[field] {
			continue
		}
		seen[field] = true
		messages = append(messages, formatSingleError(e))
	}

	return messages
}

// formatSingleError formats a single validation error to a user-friendly message
func formatSingleError(e validator.FieldError) string {
	if msg, ok := FieldMessages[e.StructField()]; ok {
		return msg
	}

	label := getFieldLabel(e.StructField())
	switch e.Tag() {
	case "required", "not_blank":
		return fmt.Sprintf("%s is required.", label)
	case "email":
		return fmt.Sprintf("%s must be a valid email.", label)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters.", label, e.Param())
	default:
		return fmt.Sprintf("%s is invalid.", label)
	}
}

// getFieldLabel returns the user-friendly label for a field
func getFieldLabel(fieldName string) string {
	if label, ok := FieldLabels[fieldName]; ok {
		return label
	}
	return formatCamelCase(fieldName)
}

// formatCamelCase converts CamelCase to spaced words
func formatCamelCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune(' ')
		}
		result.WriteRune(r)
	}
	return result.String()
}
