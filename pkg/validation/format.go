// Package validation provides common validation utilities.
package validation

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/iwvelando/roi-estimator/pkg/constants"
)

// ValidateOutputFormat checks if the output format is one of the supported formats.
func ValidateOutputFormat(format string) error {
	switch format {
	case constants.OutputFormatPretty, constants.OutputFormatCSV, constants.OutputFormatJSON:
		return nil
	}
	return fmt.Errorf("expected output format of %s, %s or %s, got %s",
		constants.OutputFormatPretty, constants.OutputFormatCSV, constants.OutputFormatJSON, format)
}

// ValidateChartFormat checks if the chart format is one of the supported formats.
func ValidateChartFormat(format string) error {
	if format != constants.ChartFormatPNG && format != constants.ChartFormatSVG {
		return fmt.Errorf("expected chart format of %s or %s, got %s",
			constants.ChartFormatPNG, constants.ChartFormatSVG, format)
	}
	return nil
}

// ChartFormatFromPath derives the chart format from a file extension.
func ChartFormatFromPath(path string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if err := ValidateChartFormat(ext); err != nil {
		return "", fmt.Errorf("chart file %s: %w", path, err)
	}
	return ext, nil
}
