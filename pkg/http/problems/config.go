package problems

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Sokol111/problemdetail/pkg/problem"
	"github.com/spf13/viper"
)

// StatusMapping assigns a status to an error type by its full name.
type StatusMapping struct {
	Type   string `mapstructure:"type"`
	Status int    `mapstructure:"status"`
}

// Config is read from the "problems" section.
//
//	problems:
//	  type-namespace: "urn:problem:java:"
//	  default-status: 400
//	  prefer-xml: false
//	  log-throttle-interval: 1m
//	  statuses:
//	    - type: com.example.YouDidItWrongException
//	      status: 403
type Config struct {
	TypeNamespace       string          `mapstructure:"type-namespace"`
	DefaultStatus       int             `mapstructure:"default-status"`
	PreferXML           bool            `mapstructure:"prefer-xml"`
	LogThrottleInterval time.Duration   `mapstructure:"log-throttle-interval"`
	Statuses            []StatusMapping `mapstructure:"statuses"`
}

// DefaultConfig returns the settings used when the section is absent.
func DefaultConfig() Config {
	return Config{
		TypeNamespace:       problem.URNProblemJavaPrefix,
		DefaultStatus:       http.StatusBadRequest,
		LogThrottleInterval: time.Minute,
	}
}

func (c Config) Validate() error {
	if !validStatus(c.DefaultStatus) {
		return fmt.Errorf("default-status %d is not a valid HTTP status", c.DefaultStatus)
	}
	if c.LogThrottleInterval < 0 {
		return fmt.Errorf("log-throttle-interval cannot be negative")
	}
	for i, m := range c.Statuses {
		if strings.TrimSpace(m.Type) == "" {
			return fmt.Errorf("statuses[%d].type cannot be empty", i)
		}
		if !validStatus(m.Status) {
			return fmt.Errorf("statuses[%d].status %d is not a valid HTTP status", i, m.Status)
		}
	}
	return nil
}

func validStatus(status int) bool {
	return status >= 100 && status <= 599
}

func newConfig(v *viper.Viper) (Config, error) {
	cfg := DefaultConfig()

	if sub := v.Sub("problems"); sub != nil {
		if err := sub.Unmarshal(&cfg); err != nil {
			return Config{}, fmt.Errorf("failed to load problems config: %w", err)
		}
	}

	if cfg.TypeNamespace == "" {
		cfg.TypeNamespace = problem.URNProblemJavaPrefix
	}
	if cfg.DefaultStatus == 0 {
		cfg.DefaultStatus = http.StatusBadRequest
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid problems config: %w", err)
	}
	return cfg, nil
}

// NewRegistryFromConfig creates a registry with the configured fallback
// and status mappings.
func NewRegistryFromConfig(cfg Config) *Registry {
	r := NewRegistry(cfg.DefaultStatus)
	for _, m := range cfg.Statuses {
		r.Register(ParseErrorType(m.Type), m.Status)
	}
	return r
}
