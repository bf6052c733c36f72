package duolog

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// Config defines the registry configuration parameters.
// All fields can be provided via TOML configuration files or DUOLOG_*
// environment variables.
type Config struct {
	PersistLocalLogs  bool   `json:"persist_local_logs" toml:"persist_local_logs"`   // Skip directory removal in TryClearLocalLog unless overridden
	CutLogPrefix      bool   `json:"cut_log_prefix" toml:"cut_log_prefix"`           // Short prefix form, omits pid/platform/runtime and the uptime segment
	DefaultLoggerName string `json:"default_logger_name" toml:"default_logger_name"` // Name of the lazily created default singleton
	LogToFileSystem   bool   `json:"log_to_filesystem" toml:"log_to_filesystem"`     // Default file sink switch for new loggers
	LogToConsole      bool   `json:"log_to_console" toml:"log_to_console"`           // Default console sink switch for new loggers
	DefaultLevel      string `json:"default_level" toml:"default_level"`             // none, error, warning, info, debug, trace
	LogWithColor      bool   `json:"log_with_color" toml:"log_with_color"`           // Colorized console output for new loggers
	LogDirectory      string `json:"log_directory" toml:"log_directory"`             // Base log directory, empty selects <executable dir>/logs
}

// DefaultConfig returns the configuration used when nothing is provided.
func DefaultConfig() *Config {
	return &Config{
		PersistLocalLogs:  false,
		CutLogPrefix:      true,
		DefaultLoggerName: "singleton-logger",
		LogToFileSystem:   true,
		LogToConsole:      true,
		DefaultLevel:      LevelInfo.String(),
		LogWithColor:      true,
		LogDirectory:      "",
	}
}

// ConfigFromEnv builds a Config from DUOLOG_* environment variables layered
// over the defaults. A .env file in the working directory is loaded first
// when present; a missing file is not an error.
func ConfigFromEnv() *Config {
	_ = godotenv.Load()
	cfg := DefaultConfig()
	cfg.PersistLocalLogs = envBool("DUOLOG_PERSIST_LOCAL_LOGS", cfg.PersistLocalLogs)
	cfg.CutLogPrefix = envBool("DUOLOG_CUT_LOG_PREFIX", cfg.CutLogPrefix)
	cfg.DefaultLoggerName = envString("DUOLOG_DEFAULT_LOGGER_NAME", cfg.DefaultLoggerName)
	cfg.LogToFileSystem = envBool("DUOLOG_LOG_TO_FILESYSTEM", cfg.LogToFileSystem)
	cfg.LogToConsole = envBool("DUOLOG_LOG_TO_CONSOLE", cfg.LogToConsole)
	cfg.DefaultLevel = strings.ToLower(envString("DUOLOG_DEFAULT_LEVEL", cfg.DefaultLevel))
	cfg.LogWithColor = envBool("DUOLOG_LOG_WITH_COLOR", cfg.LogWithColor)
	cfg.LogDirectory = envString("DUOLOG_LOG_DIRECTORY", cfg.LogDirectory)
	return cfg
}

// LoadConfig reads a TOML configuration file. Fields absent from the file
// keep their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// normalized returns a copy of c with unset string fields replaced by their
// defaults. Boolean fields are taken as-is; false is a valid setting. An
// empty LogDirectory is also valid and selects the computed default.
func (c *Config) normalized() *Config {
	def := DefaultConfig()
	out := *c
	out.DefaultLoggerName = getConfigValue(def.DefaultLoggerName, c.DefaultLoggerName)
	out.DefaultLevel = strings.ToLower(getConfigValue(def.DefaultLevel, c.DefaultLevel))
	return &out
}

// getConfigValue returns defaultVal if cfgVal equals the zero value for type
// T, otherwise returns cfgVal. Used for merging configuration values with
// their defaults.
func getConfigValue[T comparable](defaultVal, cfgVal T) T {
	var zero T
	if cfgVal == zero {
		return defaultVal
	}
	return cfgVal
}

func envString(key, fallback string) string {
	val, exists := os.LookupEnv(key)
	if !exists || val == "" {
		return fallback
	}
	return val
}

func envBool(key string, fallback bool) bool {
	val, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
