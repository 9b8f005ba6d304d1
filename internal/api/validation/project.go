package validation

import "strings"

// ProfilePointRequest is one production profile point in a request body.
type ProfilePointRequest struct {
	Year int
	Rate float64
}

// CreatePortfolioRequest mirrors the fields needed for create portfolio validation.
type CreatePortfolioRequest struct {
	Name        string
	Description string
}

// ValidateCreatePortfolioRequest validates the fields of a create portfolio request.
func ValidateCreatePortfolioRequest(req CreatePortfolioRequest) []FieldError {
	var errs []FieldError

	name := strings.TrimSpace(req.Name)
	if name == "" {
		errs = append(errs, FieldError{Field: "name", Message: "name is required"})
	} else if !validName(name) {
		errs = append(errs, FieldError{Field: "name", Message: nameRule})
	}

	if len(req.Description) > 1000 {
		errs = append(errs, FieldError{Field: "description", Message: "description must be at most 1000 characters"})
	}

	return errs
}

// CreateProjectRequest mirrors the fields needed for create project validation.
type CreateProjectRequest struct {
	Name      string
	SpudYear  int
	DrillDays int
	Profile   []ProfilePointRequest
}

// ValidateCreateProjectRequest validates the fields of a create project request.
func ValidateCreateProjectRequest(req CreateProjectRequest) []FieldError {
	var errs []FieldError

	name := strings.TrimSpace(req.Name)
	if name == "" {
		errs = append(errs, FieldError{Field: "name", Message: "name is required"})
	} else if !validName(name) {
		errs = append(errs, FieldError{Field: "name", Message: nameRule})
	}

	if req.SpudYear < 1900 || req.SpudYear > 2200 {
		errs = append(errs, FieldError{Field: "spudYear", Message: "spudYear must be a calendar year between 1900 and 2200"})
	}

	if req.DrillDays <= 0 {
		errs = append(errs, FieldError{Field: "drillDays", Message: "drillDays must be positive"})
	}

	errs = append(errs, validateProfile(req.Profile)...)

	return errs
}

// UpdateProjectRequest mirrors the fields needed for update project validation.
// Nil/empty fields are not validated.
type UpdateProjectRequest struct {
	SpudYear  *int
	DrillDays *int
	Profile   []ProfilePointRequest
}

// ValidateUpdateProjectRequest validates only set fields on an update request.
func ValidateUpdateProjectRequest(req UpdateProjectRequest) []FieldError {
	var errs []FieldError

	if req.SpudYear != nil && (*req.SpudYear < 1900 || *req.SpudYear > 2200) {
		errs = append(errs, FieldError{Field: "spudYear", Message: "spudYear must be a calendar year between 1900 and 2200"})
	}

	if req.DrillDays != nil && *req.DrillDays <= 0 {
		errs = append(errs, FieldError{Field: "drillDays", Message: "drillDays must be positive"})
	}

	if req.Profile != nil {
		errs = append(errs, validateProfile(req.Profile)...)
	}

	return errs
}

func validateProfile(profile []ProfilePointRequest) []FieldError {
	var errs []FieldError

	if len(profile) == 0 {
		errs = append(errs, FieldError{Field: "profile", Message: "profile must not be empty"})
		return errs
	}

	lastYear := 0
	for _, pt := range profile {
		if pt.Rate < 0 {
			errs = append(errs, FieldError{Field: "profile", Message: "profile rates must not be negative"})
			break
		}
		if pt.Year <= lastYear {
			errs = append(errs, FieldError{Field: "profile", Message: "profile years must be strictly ascending"})
			break
		}
		lastYear = pt.Year
	}

	return errs
}
