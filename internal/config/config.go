package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds all configuration options for the task list application
type Config struct {
	Storage     StorageConfig
	Display     DisplayConfig
	Application ApplicationConfig
}

// StorageConfig holds key-value store configuration
type StorageConfig struct {
	Dir            string        `env:"TL_DB_DIR" mapstructure:"dir"`
	Filename       string        `env:"TL_DB_FILENAME" mapstructure:"filename"`
	Key            string        `env:"TL_STORAGE_KEY" mapstructure:"key"`
	QueryTimeout   time.Duration `env:"TL_DB_QUERY_TIMEOUT" mapstructure:"query_timeout"`
	WriteTimeout   time.Duration `env:"TL_DB_WRITE_TIMEOUT" mapstructure:"write_timeout"`
	DirPermissions uint32        `env:"TL_DB_DIR_PERMISSIONS" mapstructure:"dir_permissions"`
}

// DisplayConfig holds display formatting configuration
type DisplayConfig struct {
	DateFormat  string `env:"TL_DATE_FORMAT" mapstructure:"date_format"`
	ListFormat  string `env:"TL_LIST_FORMAT" mapstructure:"list_format"`
	DoneMark    string `env:"TL_DONE_MARK" mapstructure:"done_mark"`
	PendingMark string `env:"TL_PENDING_MARK" mapstructure:"pending_mark"`
	// NameWidth cuts long task names when listing them. 0 shows names whole.
	// Stored names are never shortened.
	NameWidth int `env:"TL_NAME_WIDTH" mapstructure:"name_width"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout time.Duration `env:"TL_APP_TIMEOUT" mapstructure:"timeout"`
	Verbose bool          `env:"TL_APP_VERBOSE" mapstructure:"verbose"`
}

// DefaultStorageKey is the persistence key holding the task list
const DefaultStorageKey = "tasks"

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()

	return &Config{
		Storage: StorageConfig{
			Dir:            filepath.Join(homeDir, ".tasklist"),
			Filename:       "tl.db",
			Key:            DefaultStorageKey,
			QueryTimeout:   10 * time.Second,
			WriteTimeout:   5 * time.Second,
			DirPermissions: 0755,
		},
		Display: DisplayConfig{
			// Matches the en-US short date of the browser version.
			DateFormat:  "1/2/2006",
			ListFormat:  "table",
			DoneMark:    "[x]",
			PendingMark: "[ ]",
			NameWidth:   60,
		},
		Application: ApplicationConfig{
			Timeout: 60 * time.Second,
			Verbose: false,
		},
	}
}

// GetDatabasePath returns the full path to the database file
func (c *Config) GetDatabasePath() string {
	return filepath.Join(c.Storage.Dir, c.Storage.Filename)
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() error {
	// Storage configuration
	if dir := os.Getenv("TL_DB_DIR"); dir != "" {
		c.Storage.Dir = dir
	}
	if filename := os.Getenv("TL_DB_FILENAME"); filename != "" {
		c.Storage.Filename = filename
	}
	if key := os.Getenv("TL_STORAGE_KEY"); key != "" {
		c.Storage.Key = key
	}
	if timeout := os.Getenv("TL_DB_QUERY_TIMEOUT"); timeout != "" {
		c.Storage.QueryTimeout = ParseDurationWithFallback(timeout, c.Storage.QueryTimeout)
	}
	if timeout := os.Getenv("TL_DB_WRITE_TIMEOUT"); timeout != "" {
		c.Storage.WriteTimeout = ParseDurationWithFallback(timeout, c.Storage.WriteTimeout)
	}
	if perms := os.Getenv("TL_DB_DIR_PERMISSIONS"); perms != "" {
		c.Storage.DirPermissions = ParseUint32WithFallback(perms, 8, c.Storage.DirPermissions)
	}

	// Display configuration
	if format := os.Getenv("TL_DATE_FORMAT"); format != "" {
		c.Display.DateFormat = format
	}
	if format := os.Getenv("TL_LIST_FORMAT"); format != "" {
		c.Display.ListFormat = format
	}
	if mark := os.Getenv("TL_DONE_MARK"); mark != "" {
		c.Display.DoneMark = mark
	}
	if mark := os.Getenv("TL_PENDING_MARK"); mark != "" {
		c.Display.PendingMark = mark
	}
	if width := os.Getenv("TL_NAME_WIDTH"); width != "" {
		c.Display.NameWidth = ParseIntWithFallback(width, c.Display.NameWidth)
	}

	// Application configuration
	if timeout := os.Getenv("TL_APP_TIMEOUT"); timeout != "" {
		c.Application.Timeout = ParseDurationWithFallback(timeout, c.Application.Timeout)
	}
	if verbose := os.Getenv("TL_APP_VERBOSE"); verbose != "" {
		c.Application.Verbose = ParseBoolWithFallback(verbose, c.Application.Verbose)
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	if c.Storage.Dir == "" {
		return &ConfigError{Field: "storage.dir", Message: "database directory cannot be empty"}
	}
	if c.Storage.Filename == "" {
		return &ConfigError{Field: "storage.filename", Message: "database filename cannot be empty"}
	}
	if c.Storage.Key == "" {
		return &ConfigError{Field: "storage.key", Message: "storage key cannot be empty"}
	}
	if c.Storage.QueryTimeout <= 0 {
		return &ConfigError{Field: "storage.query_timeout", Message: "query timeout must be positive"}
	}
	if c.Storage.WriteTimeout <= 0 {
		return &ConfigError{Field: "storage.write_timeout", Message: "write timeout must be positive"}
	}

	if c.Display.DateFormat == "" {
		return &ConfigError{Field: "display.date_format", Message: "date format cannot be empty"}
	}
	switch c.Display.ListFormat {
	case "table", "json":
	default:
		return &ConfigError{Field: "display.list_format", Message: "list format must be table or json, got " + strconv.Quote(c.Display.ListFormat)}
	}

	if c.Display.NameWidth < 0 {
		return &ConfigError{Field: "display.name_width", Message: "name width cannot be negative"}
	}

	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
