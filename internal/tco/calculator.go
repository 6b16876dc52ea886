package tco

import "math"

// TCOResult holds the per-km, annual and lifetime figures of one powertrain.
type TCOResult struct {
	Kind PowertrainKind `json:"kind"`

	AnnualKm        float64 `json:"annualKm"`
	TotalLifetimeKm float64 `json:"totalLifetimeKm"`
	DailyKm         float64 `json:"dailyKm"`

	EnergyCostPerKm          float64 `json:"energyCostPerKm"`
	EnergyCostPerYear        float64 `json:"energyCostPerYear"`
	CapitalCostPerKm         float64 `json:"capitalCostPerKm"`
	CapitalCostPerKmPostLoan float64 `json:"capitalCostPerKmPostLoan"`
	OtherCostsPerKm          float64 `json:"otherCostsPerKm"`
	OtherCostsPerYear        float64 `json:"otherCostsPerYear"`

	TotalCostPerKmLoanPeriod float64 `json:"totalCostPerKmLoanPeriod"`
	TotalCostPerKmPostLoan   float64 `json:"totalCostPerKmPostLoan"`

	AnnualLoanPayment       float64 `json:"annualLoanPayment"`
	AnnualCostFinancePeriod float64 `json:"annualCostFinancePeriod"`
	AnnualCostPostFinance   float64 `json:"annualCostPostFinance"`

	ResidualValue  float64 `json:"residualValue"`
	EndOfLifeValue float64 `json:"endOfLifeValue"`
	LifetimeCost   float64 `json:"lifetimeCost"`
	TCOCpk         float64 `json:"tcoCpk"`

	CO2PerKm    float64 `json:"co2PerKm"`
	CO2PerYear  float64 `json:"co2PerYear"`
	CO2Lifetime float64 `json:"co2Lifetime"`

	PurchasePrice float64 `json:"purchasePrice"`
	LoanTerm      int     `json:"loanTerm"`
	Lifespan      int     `json:"lifespan"`
}

// Calculate runs the cost model for one powertrain. It does not validate its inputs:
// a zero trip count or consumption yields Inf/NaN figures, so callers run Validate first.
func Calculate(in InputSet, kind PowertrainKind) (TCOResult, error) {
	p, err := in.Params(kind)
	if err != nil {
		return TCOResult{}, err
	}

	annualKm := in.ReturnTripDistance * p.TripsPerMonth * monthsPerYear

	var energyCostPerKm, co2PerKm float64
	switch kind.Fuel() {
	case FuelDiesel:
		// km per litre, so invert to litres per km
		litresPerKm := 1 / p.Consumption
		energyCostPerKm = litresPerKm * p.EnergyPrice
		co2PerKm = litresPerKm * p.EmissionsFactor
	case FuelElectric:
		price := p.EnergyPrice
		if kind == ChineseEVBaaS {
			price += p.BatterySubscriptionPerYear / (annualKm * p.Consumption)
		}
		energyCostPerKm = p.Consumption * price
		co2PerKm = p.Consumption * p.EmissionsFactor
	}

	loanTerm := float64(p.LoanTerm)
	lifespan := float64(p.Lifespan)

	annualLoanPayment := AnnualLoanPayment(p.PurchasePrice, p.ResidualValuePercent, p.InterestRate, p.LoanTerm)
	capitalCostPerKm := annualLoanPayment / annualKm

	capitalCostPerKmPostLoan := 0.0
	if postLoanYears := lifespan - loanTerm; postLoanYears > 0 {
		capitalCostPerKmPostLoan = (p.ResidualValuePercent - p.EndOfLifeValuePercent) * p.PurchasePrice /
			(annualKm * postLoanYears)
	}

	insurancePerYear := p.InsurancePercent * p.PurchasePrice / 2
	otherCostsPerKm := insurancePerYear/annualKm + p.MaintenancePerKm + p.OtherCostsPerKm

	energyCostPerYear := energyCostPerKm * annualKm
	otherCostsPerYear := otherCostsPerKm * annualKm

	annualCostFinancePeriod := annualLoanPayment + otherCostsPerYear + energyCostPerYear
	annualCostPostFinance := energyCostPerYear + otherCostsPerYear

	endOfLifeValue := p.EndOfLifeValuePercent * p.PurchasePrice
	lifetimeCost := annualCostFinancePeriod*loanTerm + annualCostPostFinance*(lifespan-loanTerm) - endOfLifeValue

	totalLifetimeKm := annualKm * lifespan
	co2PerYear := co2PerKm * annualKm

	return TCOResult{
		Kind:            kind,
		AnnualKm:        annualKm,
		TotalLifetimeKm: totalLifetimeKm,
		DailyKm:         annualKm / float64(p.OperatingDays),

		EnergyCostPerKm:          energyCostPerKm,
		EnergyCostPerYear:        energyCostPerYear,
		CapitalCostPerKm:         capitalCostPerKm,
		CapitalCostPerKmPostLoan: capitalCostPerKmPostLoan,
		OtherCostsPerKm:          otherCostsPerKm,
		OtherCostsPerYear:        otherCostsPerYear,

		TotalCostPerKmLoanPeriod: energyCostPerKm + capitalCostPerKm + otherCostsPerKm,
		TotalCostPerKmPostLoan:   energyCostPerKm + capitalCostPerKmPostLoan + otherCostsPerKm,

		AnnualLoanPayment:       annualLoanPayment,
		AnnualCostFinancePeriod: annualCostFinancePeriod,
		AnnualCostPostFinance:   annualCostPostFinance,

		ResidualValue:  p.ResidualValuePercent * p.PurchasePrice,
		EndOfLifeValue: endOfLifeValue,
		LifetimeCost:   lifetimeCost,
		TCOCpk:         lifetimeCost / totalLifetimeKm,

		CO2PerKm:    co2PerKm,
		CO2PerYear:  co2PerYear,
		CO2Lifetime: co2PerYear * lifespan,

		PurchasePrice: p.PurchasePrice,
		LoanTerm:      p.LoanTerm,
		Lifespan:      p.Lifespan,
	}, nil
}

// AnnualLoanPayment amortizes the purchase price net of the present value of the
// residual balloon over the loan term. A zero rate amortizes straight-line.
func AnnualLoanPayment(purchasePrice, residualValuePercent, rate float64, loanTerm int) float64 {
	n := float64(loanTerm)
	residual := purchasePrice * residualValuePercent

	if rate == 0 {
		return (purchasePrice - residual) / n
	}

	growth := math.Pow(1+rate, n)
	financed := purchasePrice - residual/growth
	return financed * rate * growth / (growth - 1)
}
