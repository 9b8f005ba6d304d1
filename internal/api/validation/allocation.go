package validation

import (
	"fmt"
	"strings"
)

// Scenario evaluation is synchronous; cap the sample count so a request
// cannot hold a handler for long.
const maxScenarios = 100000

// AllocationTeamRequest is one team in an allocation request body.
type AllocationTeamRequest struct {
	Name        string
	Size        int
	Destination string
}

// CreateAllocationRequest mirrors the fields needed for allocation validation.
type CreateAllocationRequest struct {
	Name      string
	Teams     []AllocationTeamRequest
	Scenarios int
	Sigma     float64
}

// ValidateCreateAllocationRequest validates the fields of an allocation request.
func ValidateCreateAllocationRequest(req CreateAllocationRequest) []FieldError {
	var errs []FieldError

	name := strings.TrimSpace(req.Name)
	if name == "" {
		errs = append(errs, FieldError{Field: "name", Message: "name is required"})
	} else if !validName(name) {
		errs = append(errs, FieldError{Field: "name", Message: nameRule})
	}

	if len(req.Teams) == 0 {
		errs = append(errs, FieldError{Field: "teams", Message: "at least one team is required"})
	}
	for i, t := range req.Teams {
		if strings.TrimSpace(t.Name) == "" {
			errs = append(errs, FieldError{Field: fmt.Sprintf("teams[%d].name", i), Message: "team name is required"})
		}
		if t.Size <= 0 {
			errs = append(errs, FieldError{Field: fmt.Sprintf("teams[%d].size", i), Message: "team size must be positive"})
		}
		if strings.TrimSpace(t.Destination) == "" {
			errs = append(errs, FieldError{Field: fmt.Sprintf("teams[%d].destination", i), Message: "team destination is required"})
		}
	}

	if req.Scenarios < 0 {
		errs = append(errs, FieldError{Field: "scenarios", Message: "scenarios must not be negative"})
	} else if req.Scenarios > maxScenarios {
		errs = append(errs, FieldError{Field: "scenarios", Message: fmt.Sprintf("scenarios must be at most %d", maxScenarios)})
	}

	if req.Sigma < 0 || req.Sigma > 1 {
		errs = append(errs, FieldError{Field: "sigma", Message: "sigma must be between 0 and 1"})
	}

	return errs
}
