package server

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/iwvelando/roi-estimator/internal/config"
	"github.com/iwvelando/roi-estimator/pkg/constants"
	"gopkg.in/yaml.v3"
)

// Config defines runtime parameters for the HTTP server.
type Config struct {
	Address          string               `yaml:"address"`
	MaxBodySize      string               `yaml:"maxBodySize"`
	Logging          config.LoggingConfig `yaml:"logging"`
	Chart            ChartConfig          `yaml:"chart"`
	Cache            CacheConfig          `yaml:"cache"`
	maxBodySizeBytes int64
	cacheTTL         time.Duration
}

// ChartConfig holds the defaults used when a chart request omits them.
type ChartConfig struct {
	Width float64 `yaml:"width"`
	Scale float64 `yaml:"scale"`
}

// CacheConfig selects and sizes the rendered-chart cache. An empty
// RedisAddress keeps the cache in process.
type CacheConfig struct {
	RedisAddress string `yaml:"redisAddress"`
	TTL          string `yaml:"ttl"`
	MaxEntries   int    `yaml:"maxEntries"`
}

// LoadConfig loads the server configuration from YAML. If the file does not exist,
// defaults are returned without error.
func LoadConfig(path string) (*Config, error) {
	cfg := defaultConfig()

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read server config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse server config: %w", err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaultConfig() *Config {
	ttl, _ := time.ParseDuration(constants.DefaultCacheTTL)
	return &Config{
		Address:     constants.DefaultServerAddress,
		MaxBodySize: fmt.Sprintf("%d", constants.DefaultMaxBodySizeBytes),
		Logging:     config.LoggingConfig{},
		Chart: ChartConfig{
			Width: constants.DefaultChartWidth,
			Scale: constants.DefaultChartScale,
		},
		Cache: CacheConfig{
			TTL:        constants.DefaultCacheTTL,
			MaxEntries: constants.DefaultCacheMaxEntries,
		},
		maxBodySizeBytes: constants.DefaultMaxBodySizeBytes,
		cacheTTL:         ttl,
	}
}

// MaxBodySizeBytes returns the configured request body limit in bytes.
func (c *Config) MaxBodySizeBytes() int64 {
	return c.maxBodySizeBytes
}

// SetMaxBodySizeBytes overrides the configured request body limit.
func (c *Config) SetMaxBodySizeBytes(size int64) {
	if size > 0 {
		c.maxBodySizeBytes = size
		c.MaxBodySize = fmt.Sprintf("%d", size)
	}
}

// CacheTTL returns the parsed cache expiry.
func (c *Config) CacheTTL() time.Duration {
	return c.cacheTTL
}

func (c *Config) normalize() error {
	if c.Address == "" {
		c.Address = constants.DefaultServerAddress
	}

	if c.Chart.Width <= 0 {
		c.Chart.Width = constants.DefaultChartWidth
	}
	if c.Chart.Width > constants.MaxChartWidth {
		return fmt.Errorf("chart width %g exceeds maximum %g", c.Chart.Width, constants.MaxChartWidth)
	}
	if c.Chart.Scale <= 0 {
		c.Chart.Scale = constants.DefaultChartScale
	}
	if c.Chart.Scale > constants.MaxChartScale {
		return fmt.Errorf("chart scale %g exceeds maximum %g", c.Chart.Scale, constants.MaxChartScale)
	}

	if c.Cache.MaxEntries <= 0 {
		c.Cache.MaxEntries = constants.DefaultCacheMaxEntries
	}
	ttlStr := strings.TrimSpace(c.Cache.TTL)
	if ttlStr == "" {
		ttlStr = constants.DefaultCacheTTL
		c.Cache.TTL = ttlStr
	}
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil {
		return fmt.Errorf("invalid cache ttl %q: %w", c.Cache.TTL, err)
	}
	if ttl < 0 {
		return fmt.Errorf("cache ttl must not be negative: %s", c.Cache.TTL)
	}
	c.cacheTTL = ttl

	sizeStr := strings.TrimSpace(c.MaxBodySize)
	if sizeStr == "" {
		c.maxBodySizeBytes = constants.DefaultMaxBodySizeBytes
		c.MaxBodySize = fmt.Sprintf("%d", constants.DefaultMaxBodySizeBytes)
		return nil
	}

	bytes, err := ParseSize(sizeStr)
	if err != nil {
		return err
	}
	if bytes <= 0 {
		bytes = constants.DefaultMaxBodySizeBytes
	}
	c.maxBodySizeBytes = bytes
	return nil
}

// ParseSize converts a human-friendly byte string (e.g., "64K", "1M") into bytes.
func ParseSize(value string) (int64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return constants.DefaultMaxBodySizeBytes, nil
	}

	upper := strings.ToUpper(trimmed)
	idx := len(upper)
	for idx > 0 && !unicode.IsDigit(rune(upper[idx-1])) {
		idx--
	}
	if idx == 0 {
		return 0, fmt.Errorf("invalid size: %s", value)
	}
	numPart := strings.TrimSpace(upper[:idx])
	unitPart := strings.TrimSpace(upper[idx:])

	if numPart == "" {
		return 0, fmt.Errorf("invalid size: %s", value)
	}

	n, err := strconv.ParseInt(numPart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size value %q: %w", value, err)
	}

	var multiplier int64
	switch unitPart {
	case "", "B":
		multiplier = 1
	case "K", "KB":
		multiplier = 1024
	case "M", "MB":
		multiplier = 1024 * 1024
	default:
		return 0, fmt.Errorf("unsupported size unit %q", unitPart)
	}

	result := n * multiplier
	if result < 0 {
		return 0, fmt.Errorf("size overflow for value %s", value)
	}
	return result, nil
}
