package service

import (
	"bytes"
	_ "embed"
	"html/template"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/anyulbade/truck-tco-calculator/internal/tco"
)

//go:embed templates/report.html
var reportTemplate string

type ReportService struct {
	now func() time.Time
}

func NewReportService() *ReportService {
	return &ReportService{now: time.Now}
}

type ReportRow struct {
	Label             string
	Fuel              string
	PurchasePrice     float64
	AnnualKm          float64
	EnergyCostPerKm   float64
	CapitalCostPerKm  float64
	OtherCostsPerKm   float64
	TotalCostPerKm    float64
	AnnualCost        float64
	LifetimeCost      float64
	TCOCpk            float64
	CO2LifetimeTonnes float64
}

type ReportData struct {
	GeneratedAt    string
	CorridorName   string
	Currency       string
	CurrencySymbol string
	Distance       float64
	Rows           []ReportRow
	VsEuro         tco.ComparisonResult
	VsChinese      tco.ComparisonResult
	BreakEven      tco.BreakEvenResult
	Environmental  tco.EnvironmentalImpact
}

func (s *ReportService) Build(in tco.InputSet, res tco.AggregateResult) *ReportData {
	rows := make([]ReportRow, 0, len(tco.AllKinds))
	for _, kind := range tco.AllKinds {
		r, ok := res.Result(kind)
		if !ok {
			continue
		}
		rows = append(rows, ReportRow{
			Label:             kind.Label(),
			Fuel:              kind.Fuel().String(),
			PurchasePrice:     r.PurchasePrice,
			AnnualKm:          r.AnnualKm,
			EnergyCostPerKm:   r.EnergyCostPerKm,
			CapitalCostPerKm:  r.CapitalCostPerKm,
			OtherCostsPerKm:   r.OtherCostsPerKm,
			TotalCostPerKm:    r.TotalCostPerKmLoanPeriod,
			AnnualCost:        r.AnnualCostFinancePeriod,
			LifetimeCost:      r.LifetimeCost,
			TCOCpk:            r.TCOCpk,
			CO2LifetimeTonnes: r.CO2Lifetime / 1000,
		})
	}

	return &ReportData{
		GeneratedAt:    s.now().UTC().Format("2006-01-02 15:04:05 MST"),
		CorridorName:   res.CorridorName,
		Currency:       res.Currency,
		CurrencySymbol: res.CurrencySymbol,
		Distance:       in.ReturnTripDistance,
		Rows:           rows,
		VsEuro:         res.Comparisons.VsEuro,
		VsChinese:      res.Comparisons.VsChinese,
		BreakEven:      res.BreakEven,
		Environmental:  res.Environmental,
	}
}

func (s *ReportService) RenderHTML(data *ReportData) (string, error) {
	p := message.NewPrinter(language.English)
	funcMap := template.FuncMap{
		"amount": func(v float64) string { return p.Sprintf("%.0f", v) },
		"perKm":  func(v float64) string { return p.Sprintf("%.2f", v) },
		"pct": func(v *float64) string {
			if v == nil {
				return "n/a"
			}
			return p.Sprintf("%.1f%%", *v)
		},
		"years": func(v *float64) string {
			if v == nil {
				return "never"
			}
			return p.Sprintf("%.1f", *v)
		},
	}

	tmpl, err := template.New("report").Funcs(funcMap).Parse(reportTemplate)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}
