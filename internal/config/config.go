// Package config loads scenefilter settings from a config file, the
// environment and command line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/ivoronin/scenefilter/internal/filter"
	"github.com/ivoronin/scenefilter/internal/logging"
)

// EnvPrefix prefixes environment overrides, e.g. SCENEFILTER_LOG_LEVEL.
const EnvPrefix = "SCENEFILTER"

// Config holds all settings.
type Config struct {
	// Definitions lists filter definition files loaded read-only. Empty
	// means the built-in stock filters.
	Definitions []string `mapstructure:"definitions"`

	// UserFilters is the file user filters are loaded from and saved to.
	UserFilters string `mapstructure:"user_filters"`

	// Scene is the YAML scene evaluated by default.
	Scene string `mapstructure:"scene"`

	// Active lists filters activated at startup.
	Active []string `mapstructure:"active"`

	Log   LogConfig   `mapstructure:"log"`
	Regex RegexConfig `mapstructure:"regex"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// RegexConfig controls rule pattern evaluation.
type RegexConfig struct {
	Timeout   time.Duration `mapstructure:"timeout"`
	CacheSize int           `mapstructure:"cache_size"`
}

// Default returns the built-in defaults.
func Default() *Config {
	return &Config{
		UserFilters: filepath.Join(Dir(), "filters.xml"),
		Log: LogConfig{
			Level:  "warn",
			Format: logging.FormatText,
		},
		Regex: RegexConfig{
			Timeout:   filter.DefaultMatchTimeout,
			CacheSize: filter.DefaultCacheSize,
		},
	}
}

// SetDefaults registers the defaults with v.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("definitions", d.Definitions)
	v.SetDefault("user_filters", d.UserFilters)
	v.SetDefault("scene", d.Scene)
	v.SetDefault("active", d.Active)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("regex.timeout", d.Regex.Timeout)
	v.SetDefault("regex.cache_size", d.Regex.CacheSize)
}

// New returns a viper instance with defaults and environment binding set
// up. When file is empty, scenefilter.yaml is searched in the working
// directory and Dir().
func New(file string) *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("scenefilter")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(Dir())
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(envReplacer)
	v.AutomaticEnv()
	return v
}

// Read loads the config file into v. A missing file is only an error when
// it was named explicitly.
func Read(v *viper.Viper, explicit bool) error {
	err := v.ReadInConfig()
	if err == nil {
		return nil
	}
	var notFound viper.ConfigFileNotFoundError
	if !explicit && errors.As(err, &notFound) {
		return nil
	}
	return fmt.Errorf("read config: %w", err)
}

// Load reads the settings from v and validates them.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings and returns all problems at once.
func (c *Config) Validate() error {
	var errs []error
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	switch c.Log.Format {
	case logging.FormatText, logging.FormatJSON:
	default:
		errs = append(errs, fmt.Errorf("log.format %q is invalid; valid values: text, json", c.Log.Format))
	}
	if c.Regex.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("regex.timeout must be positive, got %s", c.Regex.Timeout))
	}
	if c.Regex.CacheSize <= 0 {
		errs = append(errs, fmt.Errorf("regex.cache_size must be positive, got %d", c.Regex.CacheSize))
	}
	return errors.Join(errs...)
}

// Dir returns the user's scenefilter config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "scenefilter")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".scenefilter"
	}
	return filepath.Join(home, ".config", "scenefilter")
}
