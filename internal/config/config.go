package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultCreator  = "byHand"
	DefaultLogLevel = "warn"
)

type Config struct {
	// TimeZone is an IANA zone name. Empty means the zone configured for the
	// process (time.Local, which honours $TZ).
	TimeZone string `yaml:"time_zone"`
	Creator  string `yaml:"creator"`
	LogLevel string `yaml:"log_level"`
}

// Default returns the configuration used when no config file is given.
func Default() Config {
	cfg := Config{}
	applyDefaults(&cfg)
	return cfg
}

func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, err
	}

	applyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	cfg.TimeZone = strings.TrimSpace(cfg.TimeZone)
	if cfg.Creator == "" {
		cfg.Creator = DefaultCreator
	}
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
}

// Validate checks a configuration after defaults and CLI overrides are applied.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Creator) == "" {
		return fmt.Errorf("creator must not be blank")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be one of debug, info, warn, error (got %q)", c.LogLevel)
	}
	if c.TimeZone != "" {
		if _, err := time.LoadLocation(c.TimeZone); err != nil {
			return fmt.Errorf("time_zone: %w", err)
		}
	}
	return nil
}
