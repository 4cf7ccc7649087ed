// Package config resolves runtime settings for the formwizard binary. Values
// start from Default, are overlaid by an optional YAML file and then by
// FORMWIZARD_* environment variables. Command-line flags are applied last by
// the CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every variable name.
const EnvPrefix = "FORMWIZARD_"

type Config struct {
	Addr      string `yaml:"addr" env:"ADDR"`
	LogLevel  string `yaml:"logLevel" env:"LOG_LEVEL"`
	LogFormat string `yaml:"logFormat" env:"LOG_FORMAT"`

	// SubmitURL and LookupURL point at remote backends. When empty the
	// simulated submitter and the seeded status directory are used.
	SubmitURL   string        `yaml:"submitURL" env:"SUBMIT_URL"`
	LookupURL   string        `yaml:"lookupURL" env:"LOOKUP_URL"`
	SubmitDelay time.Duration `yaml:"submitDelay" env:"SUBMIT_DELAY"`
	LookupDelay time.Duration `yaml:"lookupDelay" env:"LOOKUP_DELAY"`

	SessionTTL        time.Duration `yaml:"sessionTTL" env:"SESSION_TTL"`
	ReadHeaderTimeout time.Duration `yaml:"readHeaderTimeout" env:"READ_HEADER_TIMEOUT"`
	ShutdownTimeout   time.Duration `yaml:"shutdownTimeout" env:"SHUTDOWN_TIMEOUT"`
}

// Default returns the settings used when nothing overrides them.
func Default() Config {
	return Config{
		Addr:              ":8080",
		LogLevel:          "info",
		LogFormat:         "json",
		SubmitDelay:       2 * time.Second,
		LookupDelay:       1500 * time.Millisecond,
		SessionTTL:        30 * time.Minute,
		ReadHeaderTimeout: 5 * time.Second,
		ShutdownTimeout:   10 * time.Second,
	}
}

// Load builds a Config from defaults, the YAML file at path (skipped when
// path is empty) and the environment. A nil environ reads the process
// environment.
func Load(path string, environ map[string]string) (Config, error) {
	cfg := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := cfg.MergeYAML(raw); err != nil {
			return Config{}, err
		}
	}
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix, Environment: environ}); err != nil {
		return Config{}, fmt.Errorf("config: parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// MergeYAML overlays the keys present in raw.
func (c *Config) MergeYAML(raw []byte) error {
	if err := yaml.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("config: parse yaml: %w", err)
	}
	return nil
}

// Validate rejects settings the server cannot start with.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Addr) == "" {
		errs = append(errs, errors.New("addr is required"))
	}
	switch strings.ToLower(c.LogFormat) {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("log format %q must be json or console", c.LogFormat))
	}
	if c.SubmitDelay < 0 {
		errs = append(errs, errors.New("submit delay must not be negative"))
	}
	if c.LookupDelay < 0 {
		errs = append(errs, errors.New("lookup delay must not be negative"))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("shutdown timeout must be positive"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}
