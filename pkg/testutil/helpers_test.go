package testutil

import (
	"testing"

	"github.com/iwvelando/roi-estimator/internal/config"
	"github.com/iwvelando/roi-estimator/internal/report"
	"github.com/iwvelando/roi-estimator/internal/roi"
)

func TestFindFormula(t *testing.T) {
	formulas := []report.Formula{
		{Name: "Hours saved (h)", Value: "62.9"},
		{Name: "Labor cost savings", Value: "￥113,250"},
	}

	tests := []struct {
		name          string
		searchName    string
		expectFound   bool
		expectedValue string
	}{
		{
			name:          "Find first formula",
			searchName:    "Hours saved (h)",
			expectFound:   true,
			expectedValue: "62.9",
		},
		{
			name:          "Find second formula",
			searchName:    "Labor cost savings",
			expectFound:   true,
			expectedValue: "￥113,250",
		},
		{
			name:        "Missing formula",
			searchName:  "Paper savings",
			expectFound: false,
		},
		{
			name:        "Case sensitive",
			searchName:  "hours saved (h)",
			expectFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FindFormula(formulas, tt.searchName)
			if tt.expectFound {
				if result == nil {
					t.Fatalf("expected to find formula %q", tt.searchName)
				}
				if result.Value != tt.expectedValue {
					t.Errorf("expected value %q, got %q", tt.expectedValue, result.Value)
				}
				return
			}
			if result != nil {
				t.Errorf("expected nil for %q, got %+v", tt.searchName, result)
			}
		})
	}

	if FindFormula(nil, "anything") != nil {
		t.Error("expected nil for empty slice")
	}
}

func TestFindFormulaReturnsPointerIntoSlice(t *testing.T) {
	formulas := []report.Formula{{Name: "a", Value: "1"}}
	FindFormula(formulas, "a").Value = "2"
	if formulas[0].Value != "2" {
		t.Error("expected pointer into the original slice")
	}
}

func TestDefaultParameterMap(t *testing.T) {
	params := DefaultParameterMap()
	if len(params) != len(config.DefaultValues()) {
		t.Fatalf("expected %d parameters, got %d", len(config.DefaultValues()), len(params))
	}
	if config.ParseParameters(params, roi.AllocationSales) != config.DefaultParameters() {
		t.Error("default map does not parse to the default parameter set")
	}
}

func TestWithParameter(t *testing.T) {
	base := DefaultParameterMap()
	changed := WithParameter(base, config.KeyHeadcount, 10)

	if changed[config.KeyHeadcount] != 10 {
		t.Errorf("expected headcount 10, got %v", changed[config.KeyHeadcount])
	}
	if base[config.KeyHeadcount] != 50.0 {
		t.Errorf("original map was modified: %v", base[config.KeyHeadcount])
	}
}
