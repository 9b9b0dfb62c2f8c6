package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Input   string            `mapstructure:"input"`
	Output  string            `mapstructure:"output"`
	Service string            `mapstructure:"service"`
	Format  string            `mapstructure:"format"` // csv, json; empty = by extension
	Vars    map[string]string `mapstructure:"vars"`   // extra vars on the "all" group
	Lookup  LookupConfig      `mapstructure:"lookup"`
	Log     LogConfig         `mapstructure:"log"`
}

type LookupConfig struct {
	Credentials   string        `mapstructure:"credentials"`
	Concurrency   int           `mapstructure:"concurrency"`
	RatePerSecond float64       `mapstructure:"rate_per_second"` // 0 = unlimited
	Timeout       time.Duration `mapstructure:"timeout"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"` // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"`
}

// Load builds the config from defaults and whatever viper has read.
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom unmarshals the given viper instance over the defaults.
func LoadFrom(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Output: "inventory.yml",
		Lookup: LookupConfig{
			Concurrency: 1,
			Timeout:     30 * time.Second,
		},
		Log: LogConfig{
			Level: "warn",
		},
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
