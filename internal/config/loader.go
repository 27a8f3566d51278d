package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/viper"
)

// ConfigFileName is the optional YAML file read from the storage directory
const ConfigFileName = "config"

// Loader handles loading configuration from multiple sources
type Loader struct {
	config     *Config
	configPath string
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{
		config:     NewConfig(),
		configPath: os.Getenv("TL_CONFIG"),
	}
}

// WithConfigFile makes the loader read an explicit config file instead of
// looking for config.yaml in the storage directory.
func (l *Loader) WithConfigFile(path string) *Loader {
	l.configPath = path
	return l
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Override with the YAML config file, if any
// 3. Override with environment variables
// 4. Override with command line flags (LoadWithOverrides)
func (l *Loader) Load() (*Config, error) {
	if err := l.loadFile(); err != nil {
		return nil, err
	}

	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// loadFile reads config.yaml with viper. A missing file is not an error.
func (l *Loader) loadFile() error {
	cfg := l.config

	v := viper.New()
	v.SetConfigType("yaml")
	if l.configPath != "" {
		v.SetConfigFile(l.configPath)
	} else {
		dir := cfg.Storage.Dir
		if envDir := os.Getenv("TL_DB_DIR"); envDir != "" {
			dir = envDir
		}
		v.SetConfigName(ConfigFileName)
		v.AddConfigPath(dir)
	}

	v.SetDefault("storage.dir", cfg.Storage.Dir)
	v.SetDefault("storage.filename", cfg.Storage.Filename)
	v.SetDefault("storage.key", cfg.Storage.Key)
	v.SetDefault("storage.query_timeout", cfg.Storage.QueryTimeout)
	v.SetDefault("storage.write_timeout", cfg.Storage.WriteTimeout)
	v.SetDefault("display.date_format", cfg.Display.DateFormat)
	v.SetDefault("display.list_format", cfg.Display.ListFormat)
	v.SetDefault("display.done_mark", cfg.Display.DoneMark)
	v.SetDefault("display.pending_mark", cfg.Display.PendingMark)
	v.SetDefault("display.name_width", cfg.Display.NameWidth)
	v.SetDefault("application.timeout", cfg.Application.Timeout)
	v.SetDefault("application.verbose", cfg.Application.Verbose)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		if l.configPath != "" && os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	cfg.Storage.Dir = expandHome(v.GetString("storage.dir"))
	cfg.Storage.Filename = v.GetString("storage.filename")
	cfg.Storage.Key = v.GetString("storage.key")
	cfg.Storage.QueryTimeout = v.GetDuration("storage.query_timeout")
	cfg.Storage.WriteTimeout = v.GetDuration("storage.write_timeout")
	if v.IsSet("storage.dir_permissions") {
		cfg.Storage.DirPermissions = ParseUint32WithFallback(v.GetString("storage.dir_permissions"), 8, cfg.Storage.DirPermissions)
	}
	cfg.Display.DateFormat = v.GetString("display.date_format")
	cfg.Display.ListFormat = v.GetString("display.list_format")
	cfg.Display.DoneMark = v.GetString("display.done_mark")
	cfg.Display.PendingMark = v.GetString("display.pending_mark")
	cfg.Display.NameWidth = v.GetInt("display.name_width")
	cfg.Application.Timeout = v.GetDuration("application.timeout")
	cfg.Application.Verbose = v.GetBool("application.verbose")

	return nil
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	config, err := l.Load()
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		overrides.Apply(config)
	}

	// Re-validate after applying overrides
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	DBDir      *string
	DBFilename *string
	StorageKey *string

	DateFormat *string
	ListFormat *string
	NameWidth  *int

	Timeout *time.Duration
	Verbose *bool
}

// Apply copies every set override into config
func (o *ConfigOverrides) Apply(config *Config) {
	if o.DBDir != nil {
		config.Storage.Dir = *o.DBDir
	}
	if o.DBFilename != nil {
		config.Storage.Filename = *o.DBFilename
	}
	if o.StorageKey != nil {
		config.Storage.Key = *o.StorageKey
	}
	if o.DateFormat != nil {
		config.Display.DateFormat = *o.DateFormat
	}
	if o.ListFormat != nil {
		config.Display.ListFormat = *o.ListFormat
	}
	if o.NameWidth != nil {
		config.Display.NameWidth = *o.NameWidth
	}
	if o.Timeout != nil {
		config.Application.Timeout = *o.Timeout
	}
	if o.Verbose != nil {
		config.Application.Verbose = *o.Verbose
	}
}

func expandHome(path string) string {
	if len(path) < 2 || path[:2] != "~/" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

// ParseDurationWithFallback parses a duration string with a fallback value
func ParseDurationWithFallback(s string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return fallback
}

// ParseIntWithFallback parses an integer string with a fallback value
func ParseIntWithFallback(s string, fallback int) int {
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	return fallback
}

// ParseBoolWithFallback parses a boolean string with a fallback value
func ParseBoolWithFallback(s string, fallback bool) bool {
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return fallback
}

// ParseUint32WithFallback parses a uint32 string with a fallback value
func ParseUint32WithFallback(s string, base int, fallback uint32) uint32 {
	if u, err := strconv.ParseUint(s, base, 32); err == nil {
		return uint32(u)
	}
	return fallback
}
