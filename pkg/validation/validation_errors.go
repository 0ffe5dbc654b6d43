package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps json field names to user-facing labels
var FieldLabels = map[string]string{
	// Auth fields
	"fullName":        "Full name",
	"email":           "Email",
	"password":        "Password",
	"confirmPassword": "Confirm password",
	"currentPassword": "Current password",
	"newPassword":     "New password",
	"phone":           "Phone number",
	"role":            "Role",
	"companyName":     "Company name",
	"agreeToTerms":    "Terms agreement",

	// Job fields
	"title":           "Title",
	"description":     "Description",
	"companyId":       "Company",
	"experienceLevel": "Experience level",
	"closingDate":     "Closing date",
	"salary":          "Salary",
	"min":             "Minimum salary",
	"max":             "Maximum salary",

	// Application fields
	"jobId":         "Job",
	"resumeId":      "Resume",
	"coverLetter":   "Cover letter",
	"availableFrom": "Availability date",
	"status":        "Status",
	"message":       "Message",
	"rating":        "Rating",

	// Company fields
	"name":     "Company name",
	"location": "Location",
	"industry": "Industry",
	"website":  "Website",
}

// FormatValidationErrors converts validator.ValidationErrors to user-friendly messages
func FormatValidationErrors(err error) []string {
	var messages []string

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}

	for _, e := range validationErrors {
		messages = append(messages, formatSingleError(e))
	}

	return messages
}

// formatSingleError formats a single validation error to a user-friendly message
func formatSingleError(e validator.FieldError) string {
	label := getFieldLabel(e.Field())
	tag := e.Tag()
	param := e.Param()

	switch tag {
	case "required":
		return fmt.Sprintf("%s is required", label)

	case "required_if":
		return fmt.Sprintf("%s is required for this role", label)

	case "min":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at least %s characters", label, param)
		}
		return fmt.Sprintf("%s must be at least %s", label, param)

	case "max":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s must be less than %s characters", label, param)
		}
		return fmt.Sprintf("%s must be at most %s", label, param)

	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", label, strings.ReplaceAll(param, " ", ", "))

	case "email":
		return fmt.Sprintf("Please enter a valid %s", strings.ToLower(label))

	case "url":
		return fmt.Sprintf("%s must be a valid URL", label)

	case "eq":
		if param == "true" {
			return "You must agree to the terms and conditions"
		}
		return fmt.Sprintf("%s must equal %s", label, param)

	case "valid_name":
		return fmt.Sprintf("%s may only contain letters, spaces and common punctuation", label)

	case "valid_phone":
		return fmt.Sprintf("Please enter a valid %s", strings.ToLower(label))

	case "no_emoji":
		return fmt.Sprintf("%s must not contain emoji or special symbols", label)

	case "strong_password":
		return fmt.Sprintf("%s must contain uppercase, lowercase, and numbers", label)

	case "future_date":
		return fmt.Sprintf("%s must be in the future", label)

	case "eqfield":
		if e.Field() == "confirmPassword" {
			return "Passwords do not match"
		}
		return fmt.Sprintf("%s must match %s", label, getFieldLabel(param))

	case "gtefield":
		return fmt.Sprintf("%s must be greater than or equal to %s", label, getFieldLabel(lowerFirst(param)))

	default:
		return fmt.Sprintf("%s is invalid (%s)", label, tag)
	}
}

// getFieldLabel returns the user-friendly label for a field
func getFieldLabel(fieldName string) string {
	if label, ok := FieldLabels[fieldName]; ok {
		return label
	}
	return formatCamelCase(fieldName)
}

// formatCamelCase converts camelCase to spaced words
func formatCamelCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune(' ')
			r += 'a' - 'A'
		}
		result.WriteRune(r)
	}
	return result.String()
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
