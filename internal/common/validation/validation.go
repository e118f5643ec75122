// Package validation holds the shared field-format checks used by the
// submission validator and the catalog consistency checks.
package validation

import "regexp"

// ValidationError describes a single failed check on a named field.
// Field is a dotted path into the submission payload; Code is a stable
// machine-readable reason such as "required" or "invalid_format".
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

var (
	emailPattern     = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phonePattern     = regexp.MustCompile(`^\+?[\d\s\-\(\)]{10,}$`)
	urlPattern       = regexp.MustCompile(`^(https?|ftp)://[^\s/$.?#].[^\s]*$`)
	answerKeyPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
)

// ValidateEmail reports whether the value looks like an email address.
func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidatePhone reports whether the value looks like a phone number.
func ValidatePhone(phone string) bool {
	return phonePattern.MatchString(phone)
}

// ValidateURL reports whether the value looks like an absolute URL.
func ValidateURL(url string) bool {
	return urlPattern.MatchString(url)
}

// ValidateAnswerKey reports whether a question id follows the
// kebab-case convention used for answer keys and form field paths,
// for example "years-in-business".
func ValidateAnswerKey(key string) bool {
	return answerKeyPattern.MatchString(key)
}
