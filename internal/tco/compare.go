package tco

// Delta compares one cost category of two results. SavingsPercent is relative to the
// baseline and is nil when the baseline figure is zero.
type Delta struct {
	Baseline       float64  `json:"baseline"`
	Alternative    float64  `json:"alternative"`
	Savings        float64  `json:"savings"`
	SavingsPercent *float64 `json:"savingsPercent"`
}

func newDelta(baseline, alternative float64) Delta {
	savings := baseline - alternative
	return Delta{
		Baseline:       baseline,
		Alternative:    alternative,
		Savings:        savings,
		SavingsPercent: percentOf(savings, baseline),
	}
}

func percentOf(part, whole float64) *float64 {
	if whole == 0 {
		return nil
	}
	v := part / whole * 100
	return &v
}

type ComparisonResult struct {
	Baseline    PowertrainKind `json:"baselineKind"`
	Alternative PowertrainKind `json:"alternativeKind"`

	EnergyCostPerKm  Delta `json:"energyCostPerKm"`
	CapitalCostPerKm Delta `json:"capitalCostPerKm"`
	OtherCostsPerKm  Delta `json:"otherCostsPerKm"`
	TotalCostPerKm   Delta `json:"totalCostPerKm"`
	AnnualCost       Delta `json:"annualCosts"`
	LifetimeCost     Delta `json:"lifetimeCosts"`
	TCOCpk           Delta `json:"tcoCpk"`
}

// Compare diffs two results category by category as a − b.
func Compare(a, b TCOResult) ComparisonResult {
	return ComparisonResult{
		Baseline:    a.Kind,
		Alternative: b.Kind,

		EnergyCostPerKm:  newDelta(a.EnergyCostPerKm, b.EnergyCostPerKm),
		CapitalCostPerKm: newDelta(a.CapitalCostPerKm, b.CapitalCostPerKm),
		OtherCostsPerKm:  newDelta(a.OtherCostsPerKm, b.OtherCostsPerKm),
		TotalCostPerKm:   newDelta(a.TotalCostPerKmLoanPeriod, b.TotalCostPerKmLoanPeriod),
		AnnualCost:       newDelta(a.AnnualCostFinancePeriod, b.AnnualCostFinancePeriod),
		LifetimeCost:     newDelta(a.LifetimeCost, b.LifetimeCost),
		TCOCpk:           newDelta(a.TCOCpk, b.TCOCpk),
	}
}
