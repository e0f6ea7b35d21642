package usecase

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the request limits. Values come from TIDES_* environment variables.
type Config struct {
	MaxPoints      int           `split_words:"true" default:"10000"`
	MaxRange       time.Duration `split_words:"true" default:"8760h"`
	MinInterval    time.Duration `split_words:"true" default:"1m"`
	MaxInterval    time.Duration `split_words:"true" default:"6h"`
	SearchRadiusKm float64       `split_words:"true" default:"80"`
	RoundDecimals  int           `split_words:"true" default:"3"`
	DefaultDatum   string        `split_words:"true" default:"MSL"`
}

// LoadConfig reads the configuration from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("tides", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.MinInterval <= 0 || cfg.MinInterval > cfg.MaxInterval {
		return Config{}, fmt.Errorf("interval limits [%v, %v] are invalid", cfg.MinInterval, cfg.MaxInterval)
	}
	return cfg, nil
}

// DefaultConfig returns the built-in limits.
func DefaultConfig() Config {
	return Config{
		MaxPoints:      10000,
		MaxRange:       365 * 24 * time.Hour,
		MinInterval:    time.Minute,
		MaxInterval:    6 * time.Hour,
		SearchRadiusKm: 80,
		RoundDecimals:  3,
		DefaultDatum:   "MSL",
	}
}
