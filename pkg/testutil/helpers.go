// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/roi-estimator/internal/config"
	"github.com/iwvelando/roi-estimator/internal/report"
)

// FindFormula finds a formula by name in the breakdown.
// Returns a pointer to the formula if found, nil otherwise.
func FindFormula(formulas []report.Formula, name string) *report.Formula {
	for i := range formulas {
		if formulas[i].Name == name {
			return &formulas[i]
		}
	}
	return nil
}

// DefaultParameterMap returns the default boundary mapping in the form a
// decoded scenario file or request body has.
func DefaultParameterMap() map[string]interface{} {
	values := config.DefaultValues()
	params := make(map[string]interface{}, len(values))
	for key, value := range values {
		params[key] = value
	}
	return params
}

// WithParameter returns a copy of params with key set to value.
func WithParameter(params map[string]interface{}, key string, value interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(params)+1)
	for k, v := range params {
		out[k] = v
	}
	out[key] = value
	return out
}
