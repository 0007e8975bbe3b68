package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/iwvelando/roi-estimator/internal/chart"
	"github.com/iwvelando/roi-estimator/internal/config"
	"github.com/iwvelando/roi-estimator/internal/logging"
	"github.com/iwvelando/roi-estimator/internal/report"
	"github.com/iwvelando/roi-estimator/internal/roi"
	"github.com/iwvelando/roi-estimator/pkg/constants"
	"github.com/iwvelando/roi-estimator/pkg/output"
	"github.com/iwvelando/roi-estimator/pkg/validation"
	"go.uber.org/zap"
)

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv, json")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	chartFlag := flag.String("chart", "", "write the task savings chart to this .png or .svg file")
	flag.Parse()

	// Load the config file to get logging configuration
	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	logger, err := logging.New(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	// CLI overrides take precedence over config
	if *outputFormatFlag != "" {
		conf.Output.Format = *outputFormatFlag
	}
	if conf.Output.Format == "" {
		conf.Output.Format = constants.OutputFormatPretty
	}
	if *chartFlag != "" {
		conf.Chart.File = *chartFlag
	}

	if err := validation.ValidateOutputFormat(conf.Output.Format); err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	if err := run(logger, conf, os.Stdout); err != nil {
		logger.Fatal("failed to produce estimate",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}

// run computes the estimate described by conf, writes the report to stdout
// and, when configured, the chart to conf.Chart.File.
func run(logger *zap.Logger, conf *config.Configuration, stdout io.Writer) error {
	params := conf.ParameterSet()
	result := roi.Compute(params)
	rep := report.Build(result)

	logger.Debug("estimate computed",
		zap.String("op", "main.run"),
		zap.Float64("totalHoursSaved", result.TotalHoursSaved),
		zap.Float64("annualizedBenefit", result.AnnualizedBenefit),
	)

	if err := output.Write(stdout, conf.Output.Format, rep); err != nil {
		return err
	}

	if conf.Chart.File == "" {
		return nil
	}
	return writeChart(logger, conf.Chart, rep.Chart)
}

func writeChart(logger *zap.Logger, cfg config.ChartConfig, series report.Series) error {
	chartFormat, err := validation.ChartFormatFromPath(cfg.File)
	if err != nil {
		return err
	}

	width := cfg.Width
	if width <= 0 {
		width = constants.DefaultChartWidth
	}
	opts := chart.DefaultOptions()
	if cfg.Scale > 0 {
		opts.Scale = cfg.Scale
	}

	if dir := filepath.Dir(cfg.File); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create chart directory %s: %w", dir, err)
		}
	}
	file, err := os.Create(cfg.File)
	if err != nil {
		return fmt.Errorf("failed to create chart file %s: %w", cfg.File, err)
	}

	if err := chart.Encode(file, chartFormat, opts, width, series.Values, series.Labels); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close chart file %s: %w", cfg.File, err)
	}

	logger.Info("chart written",
		zap.String("op", "main.writeChart"),
		zap.String("file", cfg.File),
		zap.String("format", chartFormat),
	)
	return nil
}
