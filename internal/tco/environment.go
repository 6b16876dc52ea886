package tco

// EmissionsFigure is expressed in kg CO2.
type EmissionsFigure struct {
	Diesel           float64  `json:"diesel"`
	Electric         float64  `json:"electric"`
	Reduction        float64  `json:"reduction"`
	ReductionPercent *float64 `json:"reductionPercent"`
}

func newEmissionsFigure(diesel, electric float64) EmissionsFigure {
	reduction := diesel - electric
	return EmissionsFigure{
		Diesel:           diesel,
		Electric:         electric,
		Reduction:        reduction,
		ReductionPercent: percentOf(reduction, diesel),
	}
}

type EnvironmentalImpact struct {
	PerKm    EmissionsFigure `json:"perKm"`
	Annual   EmissionsFigure `json:"annual"`
	Lifetime EmissionsFigure `json:"lifetime"`

	// 0 when each side's own lifespan was used.
	HorizonYears int `json:"horizonYears"`
}

// EnvironmentalImpactOf compares CO2 output of a diesel and an electric result.
// With horizonYears > 0 both lifetime figures use that fixed horizon.
func EnvironmentalImpactOf(diesel, electric TCOResult, horizonYears int) EnvironmentalImpact {
	dieselLifetime := diesel.CO2Lifetime
	electricLifetime := electric.CO2Lifetime
	if horizonYears > 0 {
		dieselLifetime = diesel.CO2PerYear * float64(horizonYears)
		electricLifetime = electric.CO2PerYear * float64(horizonYears)
	}

	return EnvironmentalImpact{
		PerKm:        newEmissionsFigure(diesel.CO2PerKm, electric.CO2PerKm),
		Annual:       newEmissionsFigure(diesel.CO2PerYear, electric.CO2PerYear),
		Lifetime:     newEmissionsFigure(dieselLifetime, electricLifetime),
		HorizonYears: horizonYears,
	}
}
