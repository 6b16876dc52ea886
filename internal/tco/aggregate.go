package tco

import (
	"bytes"
	"encoding/json"
	"time"
)

type DieselResults struct {
	Euro    TCOResult `json:"euro"`
	Chinese TCOResult `json:"chinese"`
}

type ElectricResults struct {
	EuropeanEV       TCOResult `json:"europeanEV"`
	ChineseEVCharged TCOResult `json:"chineseEVCharged"`
	ChineseEVSwapped TCOResult `json:"chineseEVSwapped"`
	ChineseEVBaaS    TCOResult `json:"chineseEVBaaS"`
}

type Comparisons struct {
	VsEuro    ComparisonResult `json:"vsEuro"`
	VsChinese ComparisonResult `json:"vsChinese"`
}

type AggregateResult struct {
	Diesel        DieselResults       `json:"diesel"`
	Electric      ElectricResults     `json:"electric"`
	Comparisons   Comparisons         `json:"comparisons"`
	BreakEven     BreakEvenResult     `json:"breakEven"`
	Environmental EnvironmentalImpact `json:"environmental"`

	Timestamp      time.Time `json:"timestamp"`
	Corridor       string    `json:"corridor"`
	CorridorName   string    `json:"corridorName"`
	Currency       string    `json:"currency"`
	CurrencySymbol string    `json:"currencySymbol"`
}

func (r AggregateResult) Result(kind PowertrainKind) (TCOResult, bool) {
	switch kind {
	case EuroDiesel:
		return r.Diesel.Euro, true
	case ChineseDiesel:
		return r.Diesel.Chinese, true
	case EuropeanEV:
		return r.Electric.EuropeanEV, true
	case ChineseEVCharged:
		return r.Electric.ChineseEVCharged, true
	case ChineseEVSwapped:
		return r.Electric.ChineseEVSwapped, true
	case ChineseEVBaaS:
		return r.Electric.ChineseEVBaaS, true
	}
	return TCOResult{}, false
}

func (r *AggregateResult) set(res TCOResult) {
	switch res.Kind {
	case EuroDiesel:
		r.Diesel.Euro = res
	case ChineseDiesel:
		r.Diesel.Chinese = res
	case EuropeanEV:
		r.Electric.EuropeanEV = res
	case ChineseEVCharged:
		r.Electric.ChineseEVCharged = res
	case ChineseEVSwapped:
		r.Electric.ChineseEVSwapped = res
	case ChineseEVBaaS:
		r.Electric.ChineseEVBaaS = res
	}
}

// Engine stamps aggregate results with the time of computation.
type Engine struct {
	now func() time.Time
}

func NewEngine(now func() time.Time) *Engine {
	if now == nil {
		now = time.Now
	}
	return &Engine{now: now}
}

// ComputeResults validates the inputs, runs every powertrain through the cost model and
// compares the canonical diesel/electric pairs.
func (e *Engine) ComputeResults(in InputSet) (AggregateResult, error) {
	if err := Validate(in); err != nil {
		return AggregateResult{}, err
	}

	var out AggregateResult
	for _, kind := range AllKinds {
		res, err := Calculate(in, kind)
		if err != nil {
			return AggregateResult{}, err
		}
		out.set(res)
	}

	euroDiesel := out.Diesel.Euro
	europeanEV := out.Electric.EuropeanEV

	out.Comparisons = Comparisons{
		VsEuro:    Compare(euroDiesel, europeanEV),
		VsChinese: Compare(out.Diesel.Chinese, out.Electric.ChineseEVCharged),
	}
	out.BreakEven = BreakEven(euroDiesel, europeanEV, europeanEV.PurchasePrice-euroDiesel.PurchasePrice).
		Bounded(europeanEV.Lifespan)
	out.Environmental = EnvironmentalImpactOf(euroDiesel, europeanEV, in.EmissionsHorizonYears)

	out.Timestamp = e.now().UTC()
	out.Corridor = in.Corridor
	out.CorridorName = in.CorridorName
	out.Currency = in.Currency
	out.CurrencySymbol = in.CurrencySymbol

	return out, nil
}

// HasCanonicalShape reports whether a stored result document carries the canonical
// diesel.euro and electric.europeanEV blocks.
func HasCanonicalShape(raw []byte) bool {
	doc, err := DecodeDocument(raw)
	if err != nil || len(doc) == 0 {
		return false
	}

	var shape struct {
		Diesel *struct {
			Euro json.RawMessage `json:"euro"`
		} `json:"diesel"`
		Electric *struct {
			EuropeanEV json.RawMessage `json:"europeanEV"`
		} `json:"electric"`
	}
	if err := json.Unmarshal(doc, &shape); err != nil {
		return false
	}
	if shape.Diesel == nil || shape.Electric == nil {
		return false
	}
	return isObject(shape.Diesel.Euro) && isObject(shape.Electric.EuropeanEV)
}

func isObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}
