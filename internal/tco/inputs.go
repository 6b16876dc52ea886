package tco

import "fmt"

const (
	DefaultCorridor = "south-africa"

	monthsPerYear = 12

	defaultInterestRate = 0.105
	defaultLoanTerm     = 5
	defaultLifespan     = 10
	chineseLifespan     = 8

	dieselEmissionsFactor = 2.68 // kg CO2 per litre
)

type CorridorProfile struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Currency       string  `json:"currency"`
	CurrencySymbol string  `json:"currencySymbol"`
	DistanceOneWay float64 `json:"distanceOneWay"`
	ExchangeRate   float64 `json:"exchangeRate"`
}

var corridors = []CorridorProfile{
	{ID: "south-africa", Name: "South Africa - N3 Corridor", Currency: "ZAR", CurrencySymbol: "R", DistanceOneWay: 600, ExchangeRate: 17.5},
	{ID: "kenya", Name: "Kenya - Mombasa to Nairobi", Currency: "KES", CurrencySymbol: "KSh", DistanceOneWay: 480, ExchangeRate: 130},
	{ID: "tanzania", Name: "Tanzania - Central Corridor", Currency: "TZS", CurrencySymbol: "TSh", DistanceOneWay: 1420, ExchangeRate: 2500},
	{ID: "ethiopia", Name: "Ethiopia - Addis Ababa to Djibouti", Currency: "ETB", CurrencySymbol: "Br", DistanceOneWay: 950, ExchangeRate: 55},
}

func Corridors() []CorridorProfile {
	out := make([]CorridorProfile, len(corridors))
	copy(out, corridors)
	return out
}

func LookupCorridor(id string) (CorridorProfile, bool) {
	for _, c := range corridors {
		if c.ID == id {
			return c, true
		}
	}
	return CorridorProfile{}, false
}

// PowertrainParameters holds the financing, energy and operating inputs of one truck variant.
// Consumption is km per litre for diesel variants and kWh per km for electric variants.
type PowertrainParameters struct {
	PurchasePrice         float64 `json:"purchasePrice"`
	ResidualValuePercent  float64 `json:"residualValuePercent"`
	EndOfLifeValuePercent float64 `json:"endOfLifeValuePercent"`
	InterestRate          float64 `json:"interestRate"`
	LoanTerm              int     `json:"loanTerm"`
	Lifespan              int     `json:"lifespan"`

	Consumption     float64 `json:"consumption"`
	EnergyPrice     float64 `json:"price"`
	EmissionsFactor float64 `json:"emissionsFactor"`

	TripsPerMonth    float64 `json:"tripsPerMonth"`
	OperatingDays    int     `json:"operatingDays"`
	InsurancePercent float64 `json:"insurancePercent"`
	MaintenancePerKm float64 `json:"maintenancePerKm"`
	OtherCostsPerKm  float64 `json:"otherCostsPerKm"`

	// Only read for ChineseEVBaaS.
	BatterySubscriptionPerYear float64 `json:"batterySubscriptionPerYear,omitempty"`
}

type InputSet struct {
	Corridor           string  `json:"corridor"`
	CorridorName       string  `json:"corridorName"`
	Currency           string  `json:"currency"`
	CurrencySymbol     string  `json:"currencySymbol"`
	ExchangeRate       float64 `json:"exchangeRate"`
	DistanceOneWay     float64 `json:"distanceOneWay"`
	ReturnTripDistance float64 `json:"returnTripDistance"`

	// EmissionsHorizonYears fixes the lifetime CO2 horizon. Zero uses each variant's lifespan.
	EmissionsHorizonYears int `json:"emissionsHorizonYears"`

	EuroDiesel       PowertrainParameters `json:"euroDiesel"`
	ChineseDiesel    PowertrainParameters `json:"chineseDiesel"`
	EuropeanEV       PowertrainParameters `json:"europeanEV"`
	ChineseEVCharged PowertrainParameters `json:"chineseEVCharged"`
	ChineseEVSwapped PowertrainParameters `json:"chineseEVSwapped"`
	ChineseEVBaaS    PowertrainParameters `json:"chineseEVBaaS"`
}

func (in InputSet) Params(kind PowertrainKind) (PowertrainParameters, error) {
	switch kind {
	case EuroDiesel:
		return in.EuroDiesel, nil
	case ChineseDiesel:
		return in.ChineseDiesel, nil
	case EuropeanEV:
		return in.EuropeanEV, nil
	case ChineseEVCharged:
		return in.ChineseEVCharged, nil
	case ChineseEVSwapped:
		return in.ChineseEVSwapped, nil
	case ChineseEVBaaS:
		return in.ChineseEVBaaS, nil
	}
	return PowertrainParameters{}, fmt.Errorf("%w: %d", ErrUnknownKind, int(kind))
}

// DefaultInputs builds a complete input set for a corridor. Unknown ids fall back to south-africa.
func DefaultInputs(corridorID string) InputSet {
	c, ok := LookupCorridor(corridorID)
	if !ok {
		c, _ = LookupCorridor(DefaultCorridor)
	}

	diesel := PowertrainParameters{
		ResidualValuePercent:  0.25,
		EndOfLifeValuePercent: 0.10,
		InterestRate:          defaultInterestRate,
		LoanTerm:              defaultLoanTerm,
		Lifespan:              defaultLifespan,
		EnergyPrice:           18,
		EmissionsFactor:       dieselEmissionsFactor,
		TripsPerMonth:         12,
		OperatingDays:         300,
		InsurancePercent:      0.04,
		MaintenancePerKm:      1.8,
		OtherCostsPerKm:       4,
	}
	electric := PowertrainParameters{
		ResidualValuePercent:  0.25,
		EndOfLifeValuePercent: 0.10,
		InterestRate:          defaultInterestRate,
		LoanTerm:              defaultLoanTerm,
		Lifespan:              defaultLifespan,
		Consumption:           1.35,
		EnergyPrice:           2.5,
		EmissionsFactor:       0, // renewable supply assumption
		TripsPerMonth:         12,
		OperatingDays:         300,
		InsurancePercent:      0.04,
		MaintenancePerKm:      1.0,
		OtherCostsPerKm:       4,
	}

	euroDiesel := diesel
	euroDiesel.PurchasePrice = 2200000
	euroDiesel.Consumption = 2.5

	chineseDiesel := diesel
	chineseDiesel.PurchasePrice = 1400000
	chineseDiesel.Consumption = 2.3
	chineseDiesel.Lifespan = chineseLifespan
	chineseDiesel.ResidualValuePercent = 0.20
	chineseDiesel.EndOfLifeValuePercent = 0.05
	chineseDiesel.MaintenancePerKm = 2.2

	europeanEV := electric
	europeanEV.PurchasePrice = 4500000
	europeanEV.TripsPerMonth = 8

	chineseCharged := electric
	chineseCharged.PurchasePrice = 3200000
	chineseCharged.Consumption = 1.4
	chineseCharged.TripsPerMonth = 10
	chineseCharged.Lifespan = chineseLifespan
	chineseCharged.ResidualValuePercent = 0.20
	chineseCharged.EndOfLifeValuePercent = 0.05
	chineseCharged.MaintenancePerKm = 1.1

	chineseSwapped := chineseCharged
	chineseSwapped.PurchasePrice = 3400000
	chineseSwapped.EnergyPrice = 3.2
	chineseSwapped.TripsPerMonth = 12

	chineseBaaS := chineseSwapped
	chineseBaaS.PurchasePrice = 2500000
	chineseBaaS.BatterySubscriptionPerYear = 240000

	return InputSet{
		Corridor:           c.ID,
		CorridorName:       c.Name,
		Currency:           c.Currency,
		CurrencySymbol:     c.CurrencySymbol,
		ExchangeRate:       c.ExchangeRate,
		DistanceOneWay:     c.DistanceOneWay,
		ReturnTripDistance: c.DistanceOneWay * 2,

		EuroDiesel:       euroDiesel,
		ChineseDiesel:    chineseDiesel,
		EuropeanEV:       europeanEV,
		ChineseEVCharged: chineseCharged,
		ChineseEVSwapped: chineseSwapped,
		ChineseEVBaaS:    chineseBaaS,
	}
}
