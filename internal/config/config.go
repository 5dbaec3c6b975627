package config

import (
	"os"
	"strconv"
	"strings"

	"resultdash/internal"
	"resultdash/internal/errors"
)

// Row-limiting policies
const (
	RowPolicyCount  = "count"
	RowPolicyWindow = "window"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig
	Data      DataConfig
	Dashboard DashboardConfig
	Profiling ProfilingConfig
	LogLevel  internal.LogLevel
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// DataConfig holds the result source and its normalization defaults
type DataConfig struct {
	ResultsFile       string
	DefaultCategory   string
	DefaultDisability string
}

// DashboardConfig holds the initial control values of the view
type DashboardConfig struct {
	RowPolicy       string
	DefaultRowCount int
	HistogramBins   int
}

// ProfilingConfig holds performance profiling settings
type ProfilingConfig struct {
	Port    string
	Enabled bool
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server:    *loadServerConfig(),
		Data:      *loadDataConfig(),
		Profiling: *loadProfilingConfig(),
	}

	dashboardConfig, err := loadDashboardConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load dashboard configuration")
	}
	config.Dashboard = *dashboardConfig

	config.LogLevel = internal.LogLevelInfo
	if name := os.Getenv("LOG_LEVEL"); name != "" {
		level, ok := internal.ParseLogLevel(name)
		if !ok {
			return nil, errors.ConfigInvalid("LOG_LEVEL must be one of ERROR, WARN, INFO, DEBUG, TRACE")
		}
		config.LogLevel = level
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:    getEnvOrDefault("PORT", "8080"),
		GinMode: getEnvOrDefault("GIN_MODE", "release"),
	}
}

func loadDataConfig() *DataConfig {
	return &DataConfig{
		ResultsFile:       getEnvOrDefault("RESULTS_FILE", "upsc_2022.xlsx"),
		DefaultCategory:   getEnvOrDefault("DEFAULT_CATEGORY", "Open"),
		DefaultDisability: getEnvOrDefault("DEFAULT_DISABILITY", "No"),
	}
}

func loadDashboardConfig() (*DashboardConfig, error) {
	rowCount, err := getEnvInt("DEFAULT_ROW_COUNT", 100)
	if err != nil {
		return nil, err
	}
	bins, err := getEnvInt("HISTOGRAM_BINS", 20)
	if err != nil {
		return nil, err
	}
	return &DashboardConfig{
		RowPolicy:       strings.ToLower(getEnvOrDefault("ROW_POLICY", RowPolicyCount)),
		DefaultRowCount: rowCount,
		HistogramBins:   bins,
	}, nil
}

func loadProfilingConfig() *ProfilingConfig {
	return &ProfilingConfig{
		Port:    getEnvOrDefault("PPROF_PORT", "6060"),
		Enabled: getEnvBoolOrDefault("PPROF_ENABLED", false),
	}
}

func validateConfig(config *Config) error {
	if config.Data.ResultsFile == "" {
		return errors.ConfigInvalid("RESULTS_FILE is required")
	}
	if strings.TrimSpace(config.Data.DefaultCategory) == "" {
		return errors.ConfigInvalid("DEFAULT_CATEGORY must not be blank")
	}
	if strings.TrimSpace(config.Data.DefaultDisability) == "" {
		return errors.ConfigInvalid("DEFAULT_DISABILITY must not be blank")
	}
	switch config.Server.GinMode {
	case "debug", "release", "test":
	default:
		return errors.ConfigInvalid("GIN_MODE must be debug, release or test")
	}
	switch config.Dashboard.RowPolicy {
	case RowPolicyCount, RowPolicyWindow:
	default:
		return errors.ConfigInvalid("ROW_POLICY must be count or window")
	}
	if config.Dashboard.DefaultRowCount < 1 {
		return errors.ConfigInvalid("DEFAULT_ROW_COUNT must be positive")
	}
	if config.Dashboard.HistogramBins < 1 {
		return errors.ConfigInvalid("HISTOGRAM_BINS must be positive")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return 0, errors.ConfigInvalid(key + " must be an integer")
	}
	return intValue, nil
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
