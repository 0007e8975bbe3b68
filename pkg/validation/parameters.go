package validation

import (
	"fmt"
	"sort"
)

// TaskInput names the old/new minute parameters of one task category.
type TaskInput struct {
	Name   string
	OldKey string
	NewKey string
}

// ParameterInputs is the flat view of estimate parameters used for warnings.
type ParameterInputs struct {
	Values  map[string]float64
	Percent map[string]bool
	Tasks   []TaskInput
}

// ValidateParameters returns human-readable warnings for suspicious inputs:
// negative values, percentages outside [0, 100] and tasks whose new time
// exceeds the old one. Warnings are ordered by parameter name, then by task.
func ValidateParameters(in ParameterInputs) []string {
	keys := make([]string, 0, len(in.Values))
	for key := range in.Values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var warnings []string
	for _, key := range keys {
		value := in.Values[key]
		if value < 0 {
			warnings = append(warnings, fmt.Sprintf("Parameter '%s' is negative (%g)", key, value))
			continue
		}
		if in.Percent[key] && value > 100 {
			warnings = append(warnings, fmt.Sprintf("Parameter '%s' exceeds 100%% (%g)", key, value))
		}
	}

	for _, task := range in.Tasks {
		oldMinutes, oldOK := in.Values[task.OldKey]
		newMinutes, newOK := in.Values[task.NewKey]
		if oldOK && newOK && newMinutes > oldMinutes {
			warnings = append(warnings, fmt.Sprintf("Task '%s' takes longer after adoption (%g > %g minutes)",
				task.Name, newMinutes, oldMinutes))
		}
	}

	return warnings
}
