// Package config loads service configuration with viper: defaults first,
// an optional config.yml, then environment variables on top.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Service struct {
		Name string `mapstructure:"name"`
		Host string `mapstructure:"host"`
		Port string `mapstructure:"port"`
	} `mapstructure:"service"`
	Database struct {
		URL string `mapstructure:"url"`
	} `mapstructure:"database"`
	Redis struct {
		Addr string        `mapstructure:"addr"`
		TTL  time.Duration `mapstructure:"ttl"`
	} `mapstructure:"redis"`
	Otel struct {
		Host        string  `mapstructure:"host"`
		Probability float64 `mapstructure:"probability"`
	} `mapstructure:"otel"`
	Seed struct {
		File string `mapstructure:"file"`
	} `mapstructure:"seed"`
}

// Load reads configuration from config.yml if present, with environment
// variables overriding individual keys.
func Load() (*Config, error) {
	v := viper.New()
	v.AddConfigPath(".")
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetDefault("service.name", "orderdesk")
	v.SetDefault("service.host", "0.0.0.0")
	v.SetDefault("service.port", "8080")
	v.SetDefault("database.url", "postgres://postgres@localhost:5432/orderdesk?sslmode=disable")
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.ttl", time.Minute)
	v.SetDefault("otel.host", "")
	v.SetDefault("otel.probability", 0.05)
	v.SetDefault("seed.file", "example_orders.json")

	v.BindEnv("service.port", "PORT")
	v.BindEnv("database.url", "DATABASE_URL")
	v.BindEnv("redis.addr", "REDIS_ADDR")
	v.BindEnv("otel.host", "OTEL_HOST")
	v.BindEnv("seed.file", "SEED_FILE")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}
