package validation

import (
	"fmt"
	"strings"
)

var validLocationKinds = map[string]bool{"platform": true, "fpso": true, "rig": true, "onshore": true}

// CreateLocationRequest mirrors the fields needed for create location validation.
type CreateLocationRequest struct {
	Name   string
	Kind   string
	Berths int
}

// ValidateCreateLocationRequest validates the fields of a create location request.
func ValidateCreateLocationRequest(req CreateLocationRequest) []FieldError {
	var errs []FieldError

	name := strings.TrimSpace(req.Name)
	if name == "" {
		errs = append(errs, FieldError{Field: "name", Message: "name is required"})
	} else if !validName(name) {
		errs = append(errs, FieldError{Field: "name", Message: nameRule})
	}

	if req.Kind == "" {
		errs = append(errs, FieldError{Field: "kind", Message: "kind is required"})
	} else if !validLocationKinds[req.Kind] {
		errs = append(errs, FieldError{Field: "kind", Message: fmt.Sprintf("kind must be one of: %s", joinKeys(validLocationKinds))})
	}

	if req.Berths < 0 {
		errs = append(errs, FieldError{Field: "berths", Message: "berths must not be negative"})
	}

	return errs
}

// UpdateLocationRequest mirrors the fields needed for update location validation.
// Nil fields are not validated.
type UpdateLocationRequest struct {
	Kind   *string
	Berths *int
}

// ValidateUpdateLocationRequest validates only non-nil fields on an update request.
func ValidateUpdateLocationRequest(req UpdateLocationRequest) []FieldError {
	var errs []FieldError

	if req.Kind != nil && !validLocationKinds[*req.Kind] {
		errs = append(errs, FieldError{Field: "kind", Message: fmt.Sprintf("kind must be one of: %s", joinKeys(validLocationKinds))})
	}

	if req.Berths != nil && *req.Berths < 0 {
		errs = append(errs, FieldError{Field: "berths", Message: "berths must not be negative"})
	}

	return errs
}

// joinKeys returns a sorted, comma-separated string of map keys.
func joinKeys(m map[string]bool) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, fmt.Sprintf("%q", k))
	}
	// Sort for deterministic output
	for i := 0; i < len(keys); i++ {
		for j := i + 1; j < len(keys); j++ {
			if keys[i] > keys[j] {
				keys[i], keys[j] = keys[j], keys[i]
			}
		}
	}
	return strings.Join(keys, ", ")
}
