package validation

import (
	"strings"
	"testing"
)

func TestValidateParameters(t *testing.T) {
	inputs := ParameterInputs{
		Values: map[string]float64{
			"headcount":             -3,
			"grossMarginPercent":    140,
			"hourlyWage":            1800,
			"attendanceOldMinutes":  5,
			"attendanceNewMinutes":  9,
			"invoiceOldMinutes":     20,
			"invoiceNewMinutes":     4,
			"permanentStaffPercent": 60,
		},
		Percent: map[string]bool{
			"grossMarginPercent":    true,
			"permanentStaffPercent": true,
		},
		Tasks: []TaskInput{
			{Name: "Attendance management", OldKey: "attendanceOldMinutes", NewKey: "attendanceNewMinutes"},
			{Name: "Invoice creation", OldKey: "invoiceOldMinutes", NewKey: "invoiceNewMinutes"},
		},
	}

	warnings := ValidateParameters(inputs)
	if len(warnings) != 3 {
		t.Fatalf("expected 3 warnings, got %d: %v", len(warnings), warnings)
	}
	if !strings.Contains(warnings[0], "grossMarginPercent") {
		t.Errorf("expected percent warning first, got %q", warnings[0])
	}
	if !strings.Contains(warnings[1], "headcount") {
		t.Errorf("expected negative headcount warning second, got %q", warnings[1])
	}
	if !strings.Contains(warnings[2], "Attendance management") {
		t.Errorf("expected task warning last, got %q", warnings[2])
	}
}

func TestValidateParametersClean(t *testing.T) {
	warnings := ValidateParameters(ParameterInputs{
		Values:  map[string]float64{"headcount": 50, "salesAllocationPercent": 100},
		Percent: map[string]bool{"salesAllocationPercent": true},
	})
	if len(warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", warnings)
	}
}
