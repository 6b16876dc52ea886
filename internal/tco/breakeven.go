package tco

import "fmt"

type BreakEvenResult struct {
	Alternative           PowertrainKind `json:"alternative,omitempty"`
	Years                 *float64       `json:"years"`
	Months                *float64       `json:"months,omitempty"`
	AdditionalUpfrontCost float64        `json:"additionalUpfrontCost"`
	AnnualSavings         float64        `json:"annualSavings"`
	WithinLifespan        *bool          `json:"withinLifespan,omitempty"`
	Message               string         `json:"message"`
}

// BreakEven returns how long the alternative's annual savings over the baseline take
// to recover its additional upfront price. The result is not bounded by any lifespan.
func BreakEven(baseline, alternative TCOResult, upfrontDelta float64) BreakEvenResult {
	annualSavings := baseline.AnnualCostFinancePeriod - alternative.AnnualCostFinancePeriod

	res := BreakEvenResult{
		Alternative:           alternative.Kind,
		AdditionalUpfrontCost: upfrontDelta,
		AnnualSavings:         annualSavings,
	}

	if annualSavings <= 0 {
		res.Message = fmt.Sprintf("%s never pays back: its annual cost is not lower than %s",
			alternative.Kind.Label(), baseline.Kind.Label())
		return res
	}

	years := 0.0
	if upfrontDelta > 0 {
		years = upfrontDelta / annualSavings
	}
	months := years * 12
	res.Years = &years
	res.Months = &months

	if years == 0 {
		res.Message = fmt.Sprintf("%s pays back immediately: no additional upfront cost", alternative.Kind.Label())
	} else {
		res.Message = fmt.Sprintf("%s breaks even in %.1f years", alternative.Kind.Label(), years)
	}
	return res
}

// Bounded reports whether break-even happens within lifespan years and rewrites the
// message accordingly.
func (r BreakEvenResult) Bounded(lifespan int) BreakEvenResult {
	if r.Years == nil {
		return r
	}
	within := *r.Years <= float64(lifespan)
	r.WithinLifespan = &within
	if !within {
		r.Message = fmt.Sprintf("%s does not break even within the %d year lifespan (%.1f years needed)",
			r.Alternative.Label(), lifespan, *r.Years)
	}
	return r
}
