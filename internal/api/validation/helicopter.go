package validation

import (
	"regexp"
	"strings"
)

// Registration marks like "LN-OQC" or "G-MCGY"; uppercase letters, digits and
// a single hyphen group.
var tailNumberRegex = regexp.MustCompile(`^[A-Z0-9]{1,3}-[A-Z0-9]{1,5}$`)

// CreateHelicopterRequest mirrors the fields needed for create helicopter validation.
type CreateHelicopterRequest struct {
	TailNumber string
	Model      string
	Seats      int
}

// ValidateCreateHelicopterRequest validates the fields of a create helicopter request.
func ValidateCreateHelicopterRequest(req CreateHelicopterRequest) []FieldError {
	var errs []FieldError

	tail := strings.TrimSpace(req.TailNumber)
	if tail == "" {
		errs = append(errs, FieldError{Field: "tailNumber", Message: "tailNumber is required"})
	} else if !tailNumberRegex.MatchString(tail) {
		errs = append(errs, FieldError{Field: "tailNumber", Message: "tailNumber must be a registration mark like \"LN-OQC\""})
	}

	if len(req.Model) > 255 {
		errs = append(errs, FieldError{Field: "model", Message: "model must be at most 255 characters"})
	}

	if req.Seats <= 0 {
		errs = append(errs, FieldError{Field: "seats", Message: "seats must be positive"})
	}

	return errs
}

// UpdateHelicopterRequest mirrors the fields needed for update helicopter validation.
// Nil fields are not validated.
type UpdateHelicopterRequest struct {
	Model *string
	Seats *int
}

// ValidateUpdateHelicopterRequest validates only non-nil fields on an update request.
func ValidateUpdateHelicopterRequest(req UpdateHelicopterRequest) []FieldError {
	var errs []FieldError

	if req.Model != nil && len(*req.Model) > 255 {
		errs = append(errs, FieldError{Field: "model", Message: "model must be at most 255 characters"})
	}

	if req.Seats != nil && *req.Seats <= 0 {
		errs = append(errs, FieldError{Field: "seats", Message: "seats must be positive"})
	}

	return errs
}
