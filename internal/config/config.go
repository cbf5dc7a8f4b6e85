package config

import (
	"fmt"
	"log/slog"

	"github.com/joho/godotenv"
	"go-simpler.org/env"

	"github.com/tsawler/absa"
)

type Config struct {
	Strategy    string `env:"ABSA_STRATEGY" default:"ensemble"`
	LexiconPath string `env:"ABSA_LEXICON_PATH"`

	ProximityWindow          int `env:"ABSA_PROXIMITY_WINDOW" default:"7"`
	DependencyFallbackWindow int `env:"ABSA_DEPENDENCY_FALLBACK_WINDOW" default:"5"`
	ContextWindow            int `env:"ABSA_CONTEXT_WINDOW" default:"3"`

	PositiveThreshold float64 `env:"ABSA_POSITIVE_THRESHOLD" default:"0.35"`
	NegativeThreshold float64 `env:"ABSA_NEGATIVE_THRESHOLD" default:"0.35"`

	LogLevel  string `env:"LOG_LEVEL" default:"info"`
	LogFormat string `env:"LOG_FORMAT" default:"text"`
}

func Load() (*Config, error) {
	cfg, err := Read()
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Read loads the configuration without validating it, so callers can apply
// overrides such as command-line flags before calling Validate.
func Read() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	return &cfg, nil
}

// Validate checks the strategy key and the engine parameters.
func (c *Config) Validate() error {
	if _, err := absa.NewStrategy(c.Strategy, nil, c.Engine()); err != nil {
		return err
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("LOG_FORMAT must be text or json, got %q", c.LogFormat)
	}
	return nil
}

// Engine maps the process configuration onto the engine defaults.
func (c *Config) Engine() absa.Config {
	cfg := absa.DefaultConfig()
	cfg.ProximityWindow = c.ProximityWindow
	cfg.DependencyFallbackWindow = c.DependencyFallbackWindow
	cfg.ContextWindow = c.ContextWindow
	cfg.Thresholds = absa.Thresholds{
		Positive: c.PositiveThreshold,
		Negative: c.NegativeThreshold,
	}
	return cfg
}

// Resource loads the configured lexicon, or the built-in one when no path is
// set.
func (c *Config) Resource() (*absa.PolarityResource, error) {
	if c.LexiconPath == "" {
		return absa.DefaultPolarityResource(), nil
	}
	return absa.LoadPolarityResource(c.LexiconPath)
}
