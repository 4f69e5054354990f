// Package config provides configuration handling for the connectivity statistics agent.
package config

import (
	"encoding/json"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/irctrakz/connstats/pkg/api"
	"github.com/irctrakz/connstats/pkg/core"
	"github.com/irctrakz/connstats/pkg/logging"
	"github.com/irctrakz/connstats/pkg/metrics"
	"github.com/irctrakz/connstats/pkg/wireguard"
)

// Counter source kinds.
const (
	SourceAuto      = "auto"
	SourceSysfs     = "sysfs"
	SourceProcfs    = "procfs"
	SourceWireGuard = "wireguard"
)

// Config represents the complete agent configuration.
type Config struct {
	// Collector configures the statistics object.
	Collector core.CollectorConfig `json:"collector" yaml:"collector"`

	// Source selects where byte counters come from.
	Source core.SourceConfig `json:"source" yaml:"source"`

	// API configures the HTTP data-model surface.
	API api.Config `json:"api" yaml:"api"`

	// Metrics configures the Prometheus endpoint.
	Metrics metrics.Config `json:"metrics" yaml:"metrics"`

	// Reporter configures periodic log dumps.
	Reporter ReporterConfig `json:"reporter" yaml:"reporter"`

	// WireGuard configures the WireGuard transport, used with source kind "wireguard".
	WireGuard wireguard.DeviceConfig `json:"wireguard" yaml:"wireguard"`

	// Logging contains the logging configuration.
	Logging LoggingConfig `json:"logging" yaml:"logging"`
}

// ReporterConfig controls the periodic log reporter.
type ReporterConfig struct {
	// Interval between dumps (Go duration). Empty disables the reporter.
	Interval string `json:"interval" yaml:"interval"`

	// Format is "text" or "json".
	Format string `json:"format" yaml:"format"`
}

// LoggingConfig contains configuration for logging.
type LoggingConfig struct {
	// Level is the logging level (debug, info, warn, error).
	Level string `json:"level" yaml:"level"`

	// File is the log file path.
	File string `json:"file" yaml:"file"`

	// MaxSize is the maximum size of the log file in megabytes.
	MaxSize int `json:"maxSize" yaml:"maxSize"`

	// MaxBackups is the maximum number of old log files to retain.
	MaxBackups int `json:"maxBackups" yaml:"maxBackups"`

	// MaxAge is the maximum number of days to retain old log files.
	MaxAge int `json:"maxAge" yaml:"maxAge"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Collector: core.CollectorConfig{
			StrictCounters: false,
			InitialPeriod:  0,
		},
		Source: core.SourceConfig{
			Kind:       SourceAuto,
			SysfsRoot:  "/sys",
			ProcNetDev: "/proc/net/dev",
		},
		API: api.Config{
			Enabled: true,
			Bind:    ":8080",
		},
		Metrics: metrics.Config{
			Enabled: true,
			Path:    "/metrics",
		},
		Reporter: ReporterConfig{
			Interval: "",
			Format:   "text",
		},
		WireGuard: wireguard.DefaultDeviceConfig(),
		Logging: LoggingConfig{
			Level:      "info",
			File:       "",
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     7,
		},
	}
}

// LoadFromFile loads configuration from a .json, .yaml or .yml file.
func LoadFromFile(path string, config *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	switch {
	case strings.HasSuffix(path, ".json"):
		if err := json.Unmarshal(data, config); err != nil {
			return fmt.Errorf("failed to parse JSON config: %w", err)
		}
	case strings.HasSuffix(path, ".yaml"), strings.HasSuffix(path, ".yml"):
		if err := yaml.Unmarshal(data, config); err != nil {
			return fmt.Errorf("failed to parse YAML config: %w", err)
		}
	default:
		return fmt.Errorf("unsupported config file format: %s", path)
	}

	return nil
}

// LoadFromEnv loads configuration from CONNSTATS_* environment variables,
// then the WG_* variables of the WireGuard transport.
func LoadFromEnv(config *Config) {
	// Collector
	if val := os.Getenv("CONNSTATS_STRICT_COUNTERS"); val != "" {
		config.Collector.StrictCounters = truthy(val)
	}
	if val := os.Getenv("CONNSTATS_COLLECTION_PERIOD"); val != "" {
		if p, err := strconv.ParseUint(val, 10, 32); err == nil {
			config.Collector.InitialPeriod = uint32(p)
		}
	}

	// Source
	if val := os.Getenv("CONNSTATS_SOURCE"); val != "" {
		config.Source.Kind = strings.ToLower(val)
	}
	if val := os.Getenv("CONNSTATS_INTERFACE"); val != "" {
		config.Source.Interface = val
	}
	if val := os.Getenv("CONNSTATS_UPLINK"); val != "" {
		config.Source.Uplink = val
	}
	if val := os.Getenv("CONNSTATS_SYSFS_ROOT"); val != "" {
		config.Source.SysfsRoot = val
	}
	if val := os.Getenv("CONNSTATS_PROC_NET_DEV"); val != "" {
		config.Source.ProcNetDev = val
	}

	// API and metrics
	if val := os.Getenv("CONNSTATS_API_BIND"); val != "" {
		config.API.Bind = val
	}
	if val := os.Getenv("CONNSTATS_API_ENABLED"); val != "" {
		config.API.Enabled = truthy(val)
	}
	if val := os.Getenv("CONNSTATS_METRICS_ENABLED"); val != "" {
		config.Metrics.Enabled = truthy(val)
	}

	// Reporter
	if val := os.Getenv("METRICS_INTERVAL"); val != "" {
		config.Reporter.Interval = val
	}
	if val := os.Getenv("METRICS_FORMAT"); val != "" {
		config.Reporter.Format = strings.ToLower(val)
	}

	// Logging config
	if val := os.Getenv("LOGGING_LEVEL"); val != "" {
		config.Logging.Level = val
	}
	if val := os.Getenv("LOGGING_FILE"); val != "" {
		config.Logging.File = val
	}
	if val := os.Getenv("LOGGING_MAX_SIZE"); val != "" {
		if maxSize, err := strconv.Atoi(val); err == nil {
			config.Logging.MaxSize = maxSize
		}
	}
	if val := os.Getenv("LOGGING_MAX_BACKUPS"); val != "" {
		if maxBackups, err := strconv.Atoi(val); err == nil {
			config.Logging.MaxBackups = maxBackups
		}
	}
	if val := os.Getenv("LOGGING_MAX_AGE"); val != "" {
		if maxAge, err := strconv.Atoi(val); err == nil {
			config.Logging.MaxAge = maxAge
		}
	}

	config.WireGuard.LoadFromEnv()
}

func truthy(val string) bool {
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

// ReporterInterval parses Reporter.Interval; zero means disabled.
func (c *Config) ReporterInterval() (time.Duration, error) {
	if strings.TrimSpace(c.Reporter.Interval) == "" {
		return 0, nil
	}
	return time.ParseDuration(c.Reporter.Interval)
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	switch c.Source.Kind {
	case SourceAuto, SourceSysfs, SourceProcfs:
		if c.Source.Interface == "" && c.Source.Uplink == "" {
			return fmt.Errorf("source needs an interface or an uplink address")
		}
		if c.Source.Uplink != "" {
			if _, _, err := net.SplitHostPort(c.Source.Uplink); err != nil {
				return fmt.Errorf("invalid uplink address %q: %w", c.Source.Uplink, err)
			}
		}
	case SourceWireGuard:
		if err := c.WireGuard.Validate(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("invalid counter source: %s", c.Source.Kind)
	}

	if c.API.Enabled && c.API.Bind == "" {
		return fmt.Errorf("API bind address cannot be empty")
	}
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("invalid metrics path: %q", c.Metrics.Path)
	}

	d, err := c.ReporterInterval()
	if err != nil {
		return fmt.Errorf("invalid reporter interval: %w", err)
	}
	if d < 0 {
		return fmt.Errorf("invalid reporter interval: %s", c.Reporter.Interval)
	}
	switch c.Reporter.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid reporter format: %s", c.Reporter.Format)
	}

	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return err
	}

	return nil
}

// ApplyLogging applies the logging configuration.
func (c *Config) ApplyLogging() error {
	level, err := logging.ParseLevel(c.Logging.Level)
	if err != nil {
		level = logging.InfoLevel
	}
	logging.SetLevel(level)

	if c.Logging.File != "" {
		err := logging.EnableFileLogging(
			filepath.Dir(c.Logging.File),
			filepath.Base(c.Logging.File),
			c.Logging.MaxSize,
			c.Logging.MaxBackups,
			c.Logging.MaxAge,
		)
		if err != nil {
			return fmt.Errorf("failed to enable file logging: %w", err)
		}
	}

	return nil
}

// Marshal renders the configuration in the format implied by ext (".json",
// ".yaml" or ".yml").
func (c *Config) Marshal(ext string) ([]byte, error) {
	switch ext {
	case ".json":
		data, err := json.MarshalIndent(c, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal config to JSON: %w", err)
		}
		return data, nil
	case ".yaml", ".yml":
		data, err := yaml.Marshal(c)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal config to YAML: %w", err)
		}
		return data, nil
	}
	return nil, fmt.Errorf("unsupported config file format: %s", ext)
}

// SaveToFile saves the configuration to a file.
func (c *Config) SaveToFile(path string) error {
	data, err := c.Marshal(filepath.Ext(path))
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
