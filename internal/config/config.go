package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	DefaultRatesEndpoint    = "https://api.freecurrencyapi.com/v1/latest"
	DefaultRatesBaseParam   = "base_currency"
	DefaultRatesTargetParam = "currencies"
	DefaultRatesTimeout     = 5 * time.Second
	DefaultFallbackRate     = 1.0
)

type Config struct {
	DBSource string
	Port     string
	Env      string
	LogLevel string

	RatesEndpoint    string
	RatesAPIKey      string
	RatesBaseParam   string
	RatesTargetParam string
	RatesTimeout     time.Duration
	FallbackRate     float64
}

func Load() (*Config, error) {
	dbSource := os.Getenv("DB_SOURCE")
	if dbSource == "" {
		return nil, fmt.Errorf("DB_SOURCE environment variable is required")
	}

	cfg := &Config{
		DBSource: dbSource,
		Port:     getenv("SERVER_PORT", "8080"),
		Env:      getenv("ENVIRONMENT", "development"),
		LogLevel: getenv("LOG_LEVEL", "info"),

		RatesEndpoint:    getenv("RATES_ENDPOINT", DefaultRatesEndpoint),
		RatesAPIKey:      os.Getenv("RATES_API_KEY"),
		RatesBaseParam:   getenv("RATES_BASE_PARAM", DefaultRatesBaseParam),
		RatesTargetParam: getenv("RATES_TARGET_PARAM", DefaultRatesTargetParam),
		RatesTimeout:     DefaultRatesTimeout,
		FallbackRate:     DefaultFallbackRate,
	}

	if v := os.Getenv("RATES_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("RATES_TIMEOUT must be a positive duration, got %q", v)
		}
		cfg.RatesTimeout = d
	}

	if v := os.Getenv("RATES_FALLBACK"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f <= 0 {
			return nil, fmt.Errorf("RATES_FALLBACK must be a positive number, got %q", v)
		}
		cfg.FallbackRate = f
	}

	return cfg, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
