// Package report turns a computed ResultSet into the display model shared by
// the CLI writers and the HTTP API: headline KPIs, the ordered formula
// breakdown and the chart series.
package report

import (
	"fmt"

	"github.com/iwvelando/roi-estimator/internal/roi"
	"github.com/iwvelando/roi-estimator/pkg/format"
)

// Formula is one line of the calculation breakdown.
type Formula struct {
	Name       string  `json:"name"`
	Definition string  `json:"definition"`
	Value      string  `json:"value"`
	Raw        float64 `json:"raw"`
	Text       string  `json:"text"`
}

// KPI holds the three headline figures, already formatted.
type KPI struct {
	NetBenefit        string `json:"netBenefit"`
	HoursSaved        string `json:"hoursSaved"`
	AnnualizedBenefit string `json:"annualizedBenefit"`
}

// Series is the bar chart input: one value and label per task category.
type Series struct {
	Values []float64 `json:"values"`
	Labels []string  `json:"labels"`
}

// Report is the formatted view of a ResultSet.
type Report struct {
	KPI      KPI           `json:"kpi"`
	Results  roi.ResultSet `json:"results"`
	Formulas []Formula     `json:"formulas"`
	Chart    Series        `json:"chart"`
}

// HoursUnit is appended to the hours KPI.
const HoursUnit = "h/month"

// Build formats r. Formulas appear in calculation order.
func Build(r roi.ResultSet) Report {
	return Report{
		KPI: KPI{
			NetBenefit:        format.Currency(r.BaseNetBenefit),
			HoursSaved:        fmt.Sprintf("%s %s", format.Hours(r.TotalHoursSaved), HoursUnit),
			AnnualizedBenefit: format.Currency(r.AnnualizedBenefit),
		},
		Results:  r,
		Formulas: Formulas(r),
		Chart: Series{
			Values: r.Deltas(),
			Labels: roi.Labels(),
		},
	}
}

// Formulas returns the ten-step breakdown of r. The first entry is in hours,
// the rest in currency.
func Formulas(r roi.ResultSet) []Formula {
	formulas := []Formula{
		{
			Name:       "Hours saved (h)",
			Definition: "Σ(task time delta × units)",
			Value:      format.Hours(r.TotalHoursSaved),
			Raw:        r.TotalHoursSaved,
		},
		{
			Name:       "Labor cost savings",
			Definition: "hours saved × hourly wage",
			Value:      format.Currency(r.LaborCostSavings),
			Raw:        r.LaborCostSavings,
		},
		{
			Name:       "Modeled sales",
			Definition: "unit price × (permanent staff × work days + temporary staff × work days)",
			Value:      format.Currency(r.ModeledSales),
			Raw:        r.ModeledSales,
		},
		{
			Name:       "Unbilled recovery",
			Definition: "modeled sales × recovery rate",
			Value:      format.Currency(r.UnbilledRecovery),
			Raw:        r.UnbilledRecovery,
		},
		{
			Name:       "Paper, telecom and misc savings",
			Definition: "monthly cost × reduction rate",
			Value:      format.Currency(r.PaperSavings),
			Raw:        r.PaperSavings,
		},
		{
			Name:       "Monthly net benefit (base)",
			Definition: "labor cost savings + unbilled recovery + paper savings",
			Value:      format.Currency(r.BaseNetBenefit),
			Raw:        r.BaseNetBenefit,
		},
		{
			Name:       "Sales effect (per month)",
			Definition: "(hours saved × sales allocation ÷ hours per deal) × (average monthly revenue × gross margin)",
			Value:      format.Currency(r.SalesEffect),
			Raw:        r.SalesEffect,
		},
		{
			Name:       "Training effect (per month)",
			Definition: "(headcount × attrition improvement × recruit and train cost ÷ 12) + (complaints avoided × cost per complaint)",
			Value:      format.Currency(r.TrainingEffect),
			Raw:        r.TrainingEffect,
		},
		{
			Name:       "Total reinvestment effect (per month)",
			Definition: "sales effect + training effect",
			Value:      format.Currency(r.TotalReinvestment),
			Raw:        r.TotalReinvestment,
		},
		{
			Name:       "Annualized benefit (per year)",
			Definition: "(monthly net benefit + total reinvestment effect) × 12",
			Value:      format.Currency(r.AnnualizedBenefit),
			Raw:        r.AnnualizedBenefit,
		},
	}
	for i := range formulas {
		f := &formulas[i]
		f.Text = fmt.Sprintf("%s = %s = %s", f.Name, f.Definition, f.Value)
	}
	return formulas
}
