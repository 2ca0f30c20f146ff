// Package config loads calculator and game settings: built-in defaults,
// then an optional YAML file, then SKILLRATE_* environment variables.
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/pable/go-skill-ratings/internal/elo"
	"github.com/pable/go-skill-ratings/internal/rating"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "SKILLRATE_"

// Calculator names accepted in config files and the environment.
const (
	CalculatorGaussian        = "gaussian"
	CalculatorFide            = "fide"
	CalculatorFideProvisional = "fide-provisional"
)

// Config is the resolved configuration.
type Config struct {
	Calculator string          `yaml:"calculator"`
	LogLevel   string          `yaml:"log_level"`
	Game       rating.GameInfo `yaml:"game"`
}

// envOverrides holds the variables that may override the file. Pointers stay
// nil when the variable is unset.
type envOverrides struct {
	Calculator      string   `env:"CALCULATOR"`
	LogLevel        string   `env:"LOG_LEVEL"`
	InitialMean     *float64 `env:"GAME_INITIAL_MEAN"`
	InitialStdDev   *float64 `env:"GAME_INITIAL_STD_DEV"`
	Beta            *float64 `env:"GAME_BETA"`
	DynamicsFactor  *float64 `env:"GAME_DYNAMICS_FACTOR"`
	DrawProbability *float64 `env:"GAME_DRAW_PROBABILITY"`
}

// Default returns FIDE Elo at chess scale (start 1200, 400-point logistic
// spread). The gaussian calculator at the TrueSkill scale moves a rating by at
// most 24 points against a beta of 25/6, so a ladder on it stops moving after
// one decisive match; it stays available through the config file.
func Default() Config {
	return Config{
		Calculator: CalculatorFide,
		LogLevel:   "info",
		Game:       rating.ChessGameInfo(),
	}
}

// Load resolves the configuration. An empty path skips the file layer.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyEnv(cfg *Config) error {
	var o envOverrides
	if err := env.ParseWithOptions(&o, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	if o.Calculator != "" {
		cfg.Calculator = o.Calculator
	}
	if o.LogLevel != "" {
		cfg.LogLevel = o.LogLevel
	}
	set := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	set(&cfg.Game.InitialMean, o.InitialMean)
	set(&cfg.Game.InitialStdDev, o.InitialStdDev)
	set(&cfg.Game.Beta, o.Beta)
	set(&cfg.Game.DynamicsFactor, o.DynamicsFactor)
	set(&cfg.Game.DrawProbability, o.DrawProbability)
	return nil
}

// Validate checks the calculator name and game parameters.
func (c Config) Validate() error {
	if _, err := c.pairCalculator(); err != nil {
		return err
	}
	if err := c.Game.Validate(); err != nil {
		return fmt.Errorf("game: %w", err)
	}
	return nil
}

func (c Config) pairCalculator() (*elo.TwoPlayerCalculator, error) {
	switch c.Calculator {
	case CalculatorGaussian:
		return elo.NewGaussianCalculator(), nil
	case CalculatorFide:
		return elo.NewFideCalculator(), nil
	case CalculatorFideProvisional:
		return elo.NewProvisionalFideCalculator(), nil
	default:
		return nil, fmt.Errorf("unknown calculator %q (want %s, %s or %s)",
			c.Calculator, CalculatorGaussian, CalculatorFide, CalculatorFideProvisional)
	}
}

// NewCalculator returns a dueling calculator over the configured two-player
// primitive.
func (c Config) NewCalculator(opts ...elo.Option) (*elo.DuelingCalculator, error) {
	pair, err := c.pairCalculator()
	if err != nil {
		return nil, err
	}
	return elo.NewDuelingCalculator(pair, opts...), nil
}
