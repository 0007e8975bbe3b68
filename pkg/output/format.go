// Package output provides utilities for formatting and displaying estimate results.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/iwvelando/roi-estimator/internal/report"
	"github.com/iwvelando/roi-estimator/pkg/constants"
	"github.com/iwvelando/roi-estimator/pkg/format"
)

// Write renders rep to w in the named output format.
func Write(w io.Writer, outputFormat string, rep report.Report) error {
	switch outputFormat {
	case constants.OutputFormatPretty:
		return PrettyFormat(w, rep)
	case constants.OutputFormatCSV:
		return CsvFormat(w, rep)
	case constants.OutputFormatJSON:
		return JSONFormat(w, rep)
	default:
		return fmt.Errorf("unsupported output format %q", outputFormat)
	}
}

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(w io.Writer, rep report.Report) error {
	var b strings.Builder

	b.WriteString("--- ROI estimate ---\n")
	kpis := [][2]string{
		{"Monthly net benefit (base)", rep.KPI.NetBenefit},
		{"Hours saved", rep.KPI.HoursSaved},
		{"Annualized benefit", rep.KPI.AnnualizedBenefit},
	}
	kpiWidth := 0
	for _, kpi := range kpis {
		kpiWidth = max(kpiWidth, len(kpi[0]))
	}
	for _, kpi := range kpis {
		fmt.Fprintf(&b, "%-*s | %s\n", kpiWidth, kpi[0], kpi[1])
	}

	labelWidth := len("Task")
	for _, label := range rep.Chart.Labels {
		labelWidth = max(labelWidth, len(label))
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "%-*s | Hours saved\n", labelWidth, "Task")
	fmt.Fprintf(&b, "%-*s | ___________\n", labelWidth, "____")
	for i, value := range rep.Chart.Values {
		label := ""
		if i < len(rep.Chart.Labels) {
			label = rep.Chart.Labels[i]
		}
		fmt.Fprintf(&b, "%-*s | %s\n", labelWidth, label, format.Hours(value))
	}

	b.WriteString("\nFormulas\n")
	for i, f := range rep.Formulas {
		fmt.Fprintf(&b, "%2d. %s\n", i+1, f.Text)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// CsvFormat outputs in comma-separated value format. Each row carries the raw
// number and its display form.
func CsvFormat(w io.Writer, rep report.Report) error {
	cw := csv.NewWriter(w)
	records := [][]string{{"section", "name", "value", "formatted"}}

	records = append(records,
		[]string{"kpi", "netBenefit", rawNumber(rep.Results.BaseNetBenefit), rep.KPI.NetBenefit},
		[]string{"kpi", "hoursSaved", rawNumber(rep.Results.TotalHoursSaved), rep.KPI.HoursSaved},
		[]string{"kpi", "annualizedBenefit", rawNumber(rep.Results.AnnualizedBenefit), rep.KPI.AnnualizedBenefit},
	)
	for i, value := range rep.Chart.Values {
		label := ""
		if i < len(rep.Chart.Labels) {
			label = rep.Chart.Labels[i]
		}
		records = append(records, []string{"task", label, rawNumber(value), format.Hours(value)})
	}
	for _, f := range rep.Formulas {
		records = append(records, []string{"formula", f.Name, rawNumber(f.Raw), f.Value})
	}

	if err := cw.WriteAll(records); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}

// CsvString returns the CsvFormat output as a string.
func CsvString(rep report.Report) (string, error) {
	var b strings.Builder
	if err := CsvFormat(&b, rep); err != nil {
		return "", err
	}
	return b.String(), nil
}

// JSONFormat outputs the full report as indented JSON.
func JSONFormat(w io.Writer, rep report.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rep); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}

func rawNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
