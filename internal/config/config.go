// Package config defines the data structures related to configuration and
// includes functions for loading the scenario file and parsing its
// parameters into an estimate input.
package config

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/iwvelando/roi-estimator/internal/roi"
	"github.com/iwvelando/roi-estimator/pkg/constants"
	"github.com/iwvelando/roi-estimator/pkg/validation"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for one estimate run.
type Configuration struct {
	Logging    LoggingConfig          `mapstructure:"logging" yaml:"logging,omitempty"`
	Output     OutputConfig           `mapstructure:"output" yaml:"output,omitempty"`
	Chart      ChartConfig            `mapstructure:"chart" yaml:"chart,omitempty"`
	Parameters map[string]interface{} `mapstructure:"parameters" yaml:"parameters,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `mapstructure:"level" yaml:"level,omitempty"`           // debug, info, warn, error
	Format     string `mapstructure:"format" yaml:"format,omitempty"`         // json, console
	OutputFile string `mapstructure:"outputfile" yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format,omitempty"` // pretty, csv, json
}

// ChartConfig holds bar chart output options.
type ChartConfig struct {
	File  string  `mapstructure:"file" yaml:"file,omitempty"`   // .png or .svg; empty disables the chart
	Width float64 `mapstructure:"width" yaml:"width,omitempty"` // container width in CSS pixels
	Scale float64 `mapstructure:"scale" yaml:"scale,omitempty"` // device pixel ratio
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %w", err)
	}

	return decode(v)
}

// LoadConfigurationFromReader loads YAML-formatted configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %w", err)
	}

	return decode(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yml")
	v.SetEnvPrefix("ROI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("output.format", constants.OutputFormatPretty)
	v.SetDefault("chart.width", constants.DefaultChartWidth)
	v.SetDefault("chart.scale", constants.DefaultChartScale)
	for key, value := range DefaultValues() {
		v.SetDefault("parameters."+key, value)
	}
	v.SetDefault("parameters."+KeyAllocationSource, roi.AllocationSales.String())
	return v
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}
	if configuration.Parameters == nil {
		configuration.Parameters = make(map[string]interface{})
	}
	return &configuration, nil
}

// ParameterSet parses the configured parameters into an estimate input.
func (c *Configuration) ParameterSet() roi.ParameterSet {
	return ParseParameters(c.Parameters, AllocationSource(c.Parameters))
}

// ValidateConfiguration performs general validation of the configuration and
// returns warnings. Nothing here prevents an estimate from running.
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if err := validation.ValidateOutputFormat(c.Output.Format); err != nil {
		warnings = append(warnings, err.Error())
	}
	if c.Chart.File != "" {
		if _, err := validation.ChartFormatFromPath(c.Chart.File); err != nil {
			warnings = append(warnings, err.Error())
		}
	}

	return append(warnings, ValidateParameters(c.Parameters)...)
}

// ValidateParameters returns warnings for values that are accepted but are
// probably not what the user meant.
func ValidateParameters(values map[string]interface{}) []string {
	inputs := validation.ParameterInputs{
		Values:  make(map[string]float64, len(values)),
		Percent: make(map[string]bool),
	}
	var warnings []string
	for key, value := range values {
		if strings.EqualFold(key, KeyAllocationSource) {
			text, _ := value.(string)
			if _, err := roi.ParseAllocationField(text); err != nil {
				warnings = append(warnings, fmt.Sprintf("Unknown %s '%v', sales is used", KeyAllocationSource, value))
			}
			continue
		}
		canonical, ok := canonicalKey(key)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("Unknown parameter '%s' is ignored", key))
			continue
		}
		inputs.Values[canonical] = CoerceNumber(value)
		inputs.Percent[canonical] = IsPercentKey(canonical)
	}
	sort.Strings(warnings)

	for _, c := range roi.Categories() {
		inputs.Tasks = append(inputs.Tasks, validation.TaskInput{
			Name:   c.String(),
			OldKey: TaskOldMinutesKey(c),
			NewKey: TaskNewMinutesKey(c),
		})
	}
	return append(warnings, validation.ValidateParameters(inputs)...)
}
