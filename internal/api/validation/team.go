package validation

import "strings"

// CreateTeamRequest mirrors the fields needed for create team validation.
type CreateTeamRequest struct {
	Name      string
	Size      int
	Specialty string
}

// ValidateCreateTeamRequest validates the fields of a create team request.
func ValidateCreateTeamRequest(req CreateTeamRequest) []FieldError {
	var errs []FieldError

	name := strings.TrimSpace(req.Name)
	if name == "" {
		errs = append(errs, FieldError{Field: "name", Message: "name is required"})
	} else if !validName(name) {
		errs = append(errs, FieldError{Field: "name", Message: nameRule})
	}

	if req.Size <= 0 {
		errs = append(errs, FieldError{Field: "size", Message: "size must be a positive headcount"})
	}

	if len(req.Specialty) > 255 {
		errs = append(errs, FieldError{Field: "specialty", Message: "specialty must be at most 255 characters"})
	}

	return errs
}

// UpdateTeamRequest mirrors the fields needed for update team validation.
// Nil fields are not validated.
type UpdateTeamRequest struct {
	Size      *int
	Specialty *string
}

// ValidateUpdateTeamRequest validates only non-nil fields on an update request.
func ValidateUpdateTeamRequest(req UpdateTeamRequest) []FieldError {
	var errs []FieldError

	if req.Size != nil && *req.Size <= 0 {
		errs = append(errs, FieldError{Field: "size", Message: "size must be a positive headcount"})
	}

	if req.Specialty != nil && len(*req.Specialty) > 255 {
		errs = append(errs, FieldError{Field: "specialty", Message: "specialty must be at most 255 characters"})
	}

	return errs
}
