package config

import (
	"testing"
	"time"
)

func TestLoadRequiresDBSource(t *testing.T) {
	t.Setenv("DB_SOURCE", "")
	if _, err := Load(); err == nil {
		t.Fatal("expected error without DB_SOURCE")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_SOURCE", "postgresql://u:p@localhost:5432/ledger")
	for _, k := range []string{"SERVER_PORT", "ENVIRONMENT", "LOG_LEVEL", "RATES_ENDPOINT", "RATES_API_KEY", "RATES_TIMEOUT", "RATES_FALLBACK", "RATES_BASE_PARAM", "RATES_TARGET_PARAM"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8080" || cfg.Env != "development" || cfg.LogLevel != "info" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.RatesEndpoint != DefaultRatesEndpoint || cfg.RatesTimeout != 5*time.Second || cfg.FallbackRate != 1.0 {
		t.Fatalf("unexpected rate defaults: %+v", cfg)
	}
	if cfg.RatesBaseParam != "base_currency" || cfg.RatesTargetParam != "currencies" {
		t.Fatalf("rate query params should default to freecurrencyapi names: %+v", cfg)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DB_SOURCE", "postgresql://u:p@localhost:5432/ledger")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("RATES_TIMEOUT", "750ms")
	t.Setenv("RATES_FALLBACK", "0.5")
	t.Setenv("RATES_API_KEY", "k")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "9090" || cfg.RatesTimeout != 750*time.Millisecond || cfg.FallbackRate != 0.5 || cfg.RatesAPIKey != "k" {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
}

func TestLoadRejectsBadNumbers(t *testing.T) {
	t.Setenv("DB_SOURCE", "postgresql://u:p@localhost:5432/ledger")

	t.Setenv("RATES_TIMEOUT", "soon")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for bad RATES_TIMEOUT")
	}

	t.Setenv("RATES_TIMEOUT", "")
	t.Setenv("RATES_FALLBACK", "-1")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for negative RATES_FALLBACK")
	}
}
