package validation

import (
	"fmt"
	"strings"
	"time"
)

var validStrategies = map[string]bool{"ordered": true, "balanced": true, "peak": true, "random": true}

// Plans are capped at a 50-year horizon; anything longer is almost certainly
// a unit mistake on the client side.
const maxHorizonDays = 18263

// CreatePlanRequest mirrors the fields needed for create plan validation.
type CreatePlanRequest struct {
	Name        string
	Strategy    string
	StartDate   string
	HorizonDays int
}

// ValidateCreatePlanRequest validates the fields of a create plan request.
func ValidateCreatePlanRequest(req CreatePlanRequest) []FieldError {
	var errs []FieldError

	name := strings.TrimSpace(req.Name)
	if name == "" {
		errs = append(errs, FieldError{Field: "name", Message: "name is required"})
	} else if !validName(name) {
		errs = append(errs, FieldError{Field: "name", Message: nameRule})
	}

	if req.Strategy != "" && !validStrategies[req.Strategy] {
		errs = append(errs, FieldError{Field: "strategy", Message: fmt.Sprintf("strategy must be one of: %s", joinKeys(validStrategies))})
	}

	if req.StartDate == "" {
		errs = append(errs, FieldError{Field: "startDate", Message: "startDate is required"})
	} else if _, err := time.Parse("2006-01-02", req.StartDate); err != nil {
		errs = append(errs, FieldError{Field: "startDate", Message: "startDate must be a date in YYYY-MM-DD format"})
	}

	if req.HorizonDays <= 0 {
		errs = append(errs, FieldError{Field: "horizonDays", Message: "horizonDays must be positive"})
	} else if req.HorizonDays > maxHorizonDays {
		errs = append(errs, FieldError{Field: "horizonDays", Message: fmt.Sprintf("horizonDays must be at most %d", maxHorizonDays)})
	}

	return errs
}
