// Package config loads lfucache settings from defaults, an optional config
// file, LFUCACHE_* environment variables and command-line flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"lfucache/internal/cache"
	"lfucache/internal/logging"
)

const (
	EnvPrefix = "LFUCACHE"

	DefaultCapacity = 4
	DefaultTieBreak = "newest"
)

// Config is the full configuration tree.
type Config struct {
	Cache   CacheConfig   `mapstructure:"cache" json:"cache"`
	Logging LoggingConfig `mapstructure:"logging" json:"logging"`
}

// CacheConfig configures the LFU engine.
type CacheConfig struct {
	Capacity int    `mapstructure:"capacity" json:"capacity" jsonschema:"minimum=1,default=4,description=Maximum number of entries"`
	TieBreak string `mapstructure:"tie_break" json:"tie_break" jsonschema:"enum=newest,enum=oldest,default=newest,description=Which entry to evict when several share the lowest usage count"`
}

// LoggingConfig configures the zerolog logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level" json:"level" jsonschema:"enum=trace,enum=debug,enum=info,enum=warn,enum=error,default=info"`
	Format string `mapstructure:"format" json:"format" jsonschema:"enum=console,enum=json,default=console"`
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"capacity":   "cache.capacity",
	"tie-break":  "cache.tie_break",
	"log-level":  "logging.level",
	"log-format": "logging.format",
}

// Load resolves the configuration.
//
// path may be empty, in which case no file is read. flags may be nil; only
// flags the user actually set override lower layers.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("failed to bind flag --%s: %w", name, err)
			}
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file at %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("cache.capacity", DefaultCapacity)
	v.SetDefault("cache.tie_break", DefaultTieBreak)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", logging.FormatConsole)
}

// Validate checks every field and reports all problems at once.
func (c *Config) Validate() error {
	var errs []error
	if c.Cache.Capacity <= 0 {
		errs = append(errs, fmt.Errorf("cache.capacity: %w", cache.ErrInvalidCapacity))
	}
	if _, err := cache.ParseTieBreak(c.Cache.TieBreak); err != nil {
		errs = append(errs, fmt.Errorf("cache.tie_break: %w", err))
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, fmt.Errorf("logging.level: %w", err))
	}
	if !logging.ValidFormat(c.Logging.Format) {
		errs = append(errs, fmt.Errorf("logging.format: unknown format %q", c.Logging.Format))
	}
	return errors.Join(errs...)
}

// CacheSettings converts the validated settings into a cache.Config.
func (c *Config) CacheSettings() (cache.Config, error) {
	tb, err := cache.ParseTieBreak(c.Cache.TieBreak)
	if err != nil {
		return cache.Config{}, err
	}
	return cache.Config{Capacity: c.Cache.Capacity, TieBreak: tb}, nil
}

// LoggingSettings converts the validated settings into a logging.Config.
func (c *Config) LoggingSettings() (logging.Config, error) {
	lvl, err := logging.ParseLevel(c.Logging.Level)
	if err != nil {
		return logging.Config{}, err
	}
	out := logging.DefaultConfig()
	out.Level = lvl
	out.Format = c.Logging.Format
	return out, nil
}
