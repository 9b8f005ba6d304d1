package validation

import "regexp"

var nameRegex = regexp.MustCompile(`^[a-z][a-z0-9-]{1,61}[a-z0-9]$`)

const nameRule = "name must be lowercase alphanumeric with hyphens, 3-63 characters, starting with a letter"

// FieldError represents a validation error on a specific field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func validName(name string) bool {
	return nameRegex.MatchString(name)
}
