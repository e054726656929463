package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Planning PlanningConfig `yaml:"planning"`
	Display  DisplayConfig  `yaml:"display"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// PlanningConfig tunes the planning pipeline.
type PlanningConfig struct {
	// MaxDepth caps bundle nesting during decomposition. Zero or negative
	// falls back to the engine default.
	MaxDepth int `yaml:"max_depth"`
}

// DisplayConfig tunes output rendering.
type DisplayConfig struct {
	// CostPrecision is the number of decimal places for money amounts.
	CostPrecision int32 `yaml:"cost_precision"`
	// QuantityPrecision is the number of decimal places for quantities.
	QuantityPrecision int32 `yaml:"quantity_precision"`
}

// LoggingConfig tunes structured logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json", "text"
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Planning: PlanningConfig{MaxDepth: 10},
		Display: DisplayConfig{
			CostPrecision:     2,
			QuantityPrecision: 3,
		},
		Logging: LoggingConfig{Level: "info", Format: "text"},
	}
}

// Load reads a YAML configuration file, filling unset fields from defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Display.CostPrecision < 0 {
		return fmt.Errorf("cost_precision cannot be negative, got %d", c.Display.CostPrecision)
	}
	if c.Display.QuantityPrecision < 0 {
		return fmt.Errorf("quantity_precision cannot be negative, got %d", c.Display.QuantityPrecision)
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "", "json", "text":
	default:
		return fmt.Errorf("unknown log format %q", c.Logging.Format)
	}
	return nil
}
