package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix  = "EPL_"
	envConfig  = "EPL_CONFIG"
	minChartPx = 200
	maxChartPx = 4096
)

// Load builds a Config by layering, from low to high precedence:
//  1. defaults (New)
//  2. YAML file named by EPL_CONFIG
//  3. env (prefix EPL_, e.g. EPL_DATA_FILE -> data_file)
func Load(_ context.Context) (*Config, error) {
	k := koanf.New(".")

	if path := os.Getenv(envConfig); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), strings.ToLower(envPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}

	cfg := *New()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the fields the service cannot start without.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	c.normalize()
	switch c.DataSource {
	case SourceCSV:
		if c.DataFile == "" {
			return fmt.Errorf("%w: data_file must not be empty", ErrInvalidConfig)
		}
	case SourceSQL:
		if c.SQLDSN == "" {
			return fmt.Errorf("%w: sql_dsn must not be empty", ErrInvalidConfig)
		}
		if c.SQLDriver != "postgres" && c.SQLDriver != "sqlite" {
			return fmt.Errorf("%w: sql_driver %q (want postgres or sqlite)", ErrInvalidConfig, c.SQLDriver)
		}
	default:
		return fmt.Errorf("%w: data_source %q (want csv or sql)", ErrInvalidConfig, c.DataSource)
	}
	switch c.TeamUniverse {
	case "", "home", "all":
	default:
		return fmt.Errorf("%w: team_universe %q (want home or all)", ErrInvalidConfig, c.TeamUniverse)
	}
	if c.WarmWorkers < 0 {
		return fmt.Errorf("%w: warm_workers must be >= 0", ErrInvalidConfig)
	}
	if c.WarmWorkers > 0 && c.WarmQueueSize <= 0 {
		return fmt.Errorf("%w: warm_queue_size must be > 0 when warm-up is enabled", ErrInvalidConfig)
	}
	if c.ChartWidth < minChartPx || c.ChartWidth > maxChartPx ||
		c.ChartHeight < minChartPx || c.ChartHeight > maxChartPx {
		return fmt.Errorf("%w: chart size %dx%d outside [%d,%d]",
			ErrInvalidConfig, c.ChartWidth, c.ChartHeight, minChartPx, maxChartPx)
	}
	return nil
}

// normalize lower-cases the enumerated settings so every consumer sees
// the canonical names.
func (c *Config) normalize() {
	for _, v := range []*string{&c.DataSource, &c.SQLDriver, &c.TeamUniverse, &c.LogFormat, &c.LogLevel} {
		*v = strings.ToLower(strings.TrimSpace(*v))
	}
}
