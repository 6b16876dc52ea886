package tco

import (
	"fmt"
	"strings"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every input field that would make the model divide by zero
// or produce figures outside their meaningful range.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return "invalid inputs: " + strings.Join(parts, "; ")
}

func (e *ValidationError) add(field, format string, args ...any) {
	e.Errors = append(e.Errors, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

func Validate(in InputSet) error {
	verr := &ValidationError{}

	if in.ReturnTripDistance <= 0 {
		verr.add("returnTripDistance", "must be greater than 0")
	}
	if in.EmissionsHorizonYears < 0 {
		verr.add("emissionsHorizonYears", "must not be negative")
	}

	for _, kind := range AllKinds {
		p, _ := in.Params(kind)
		validateParams(verr, kind.String(), kind, p)
	}

	if len(verr.Errors) > 0 {
		return verr
	}
	return nil
}

func validateParams(verr *ValidationError, prefix string, kind PowertrainKind, p PowertrainParameters) {
	field := func(name string) string { return prefix + "." + name }

	if p.PurchasePrice <= 0 {
		verr.add(field("purchasePrice"), "must be greater than 0")
	}
	if p.ResidualValuePercent < 0 || p.ResidualValuePercent > 1 {
		verr.add(field("residualValuePercent"), "must be between 0 and 1, got %g", p.ResidualValuePercent)
	}
	if p.EndOfLifeValuePercent < 0 || p.EndOfLifeValuePercent > 1 {
		verr.add(field("endOfLifeValuePercent"), "must be between 0 and 1, got %g", p.EndOfLifeValuePercent)
	}
	if p.InterestRate < 0 {
		verr.add(field("interestRate"), "must not be negative")
	}
	if p.LoanTerm <= 0 {
		verr.add(field("loanTerm"), "must be at least 1 year")
	}
	if p.Lifespan <= 0 {
		verr.add(field("lifespan"), "must be at least 1 year")
	}
	if p.LoanTerm > p.Lifespan {
		verr.add(field("loanTerm"), "must not exceed lifespan (%d > %d)", p.LoanTerm, p.Lifespan)
	}
	if p.Consumption <= 0 {
		verr.add(field("consumption"), "must be greater than 0")
	}
	if p.EnergyPrice < 0 {
		verr.add(field("price"), "must not be negative")
	}
	if p.EmissionsFactor < 0 {
		verr.add(field("emissionsFactor"), "must not be negative")
	}
	if p.TripsPerMonth <= 0 {
		verr.add(field("tripsPerMonth"), "must be greater than 0")
	}
	if p.OperatingDays < 1 || p.OperatingDays > 366 {
		verr.add(field("operatingDays"), "must be between 1 and 366")
	}
	if p.InsurancePercent < 0 || p.InsurancePercent > 1 {
		verr.add(field("insurancePercent"), "must be between 0 and 1")
	}
	if p.MaintenancePerKm < 0 {
		verr.add(field("maintenancePerKm"), "must not be negative")
	}
	if p.OtherCostsPerKm < 0 {
		verr.add(field("otherCostsPerKm"), "must not be negative")
	}
	if kind == ChineseEVBaaS && p.BatterySubscriptionPerYear < 0 {
		verr.add(field("batterySubscriptionPerYear"), "must not be negative")
	}
}
