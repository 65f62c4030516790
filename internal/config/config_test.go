package config

import (
	"testing"
	"time"
)

func TestLoadDefaultsMatchFixedConstants(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.EndpointURL != DefaultEndpoint {
		t.Fatalf("endpoint = %q", cfg.EndpointURL)
	}
	if cfg.FetchTimeout != 5*time.Second {
		t.Fatalf("timeout = %s", cfg.FetchTimeout)
	}
	if cfg.MaxRetries != 3 {
		t.Fatalf("max retries = %d", cfg.MaxRetries)
	}
	if cfg.AgentToken != "chrome113" {
		t.Fatalf("agent token = %q", cfg.AgentToken)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("KEYFETCH_ENDPOINT_URL", "http://127.0.0.1:8080/code")
	t.Setenv("KEYFETCH_FETCH_TIMEOUT_SECONDS", "2")
	t.Setenv("KEYFETCH_MAX_RETRIES", "5")
	t.Setenv("KEYFETCH_NO_COLOR", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.EndpointURL != "http://127.0.0.1:8080/code" {
		t.Fatalf("endpoint = %q", cfg.EndpointURL)
	}
	if cfg.FetchTimeout != 2*time.Second || cfg.MaxRetries != 5 || !cfg.NoColor {
		t.Fatalf("unexpected overrides %+v", cfg)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]map[string]string{
		"scheme":  {"KEYFETCH_ENDPOINT_URL": "ftp://example.com/x"},
		"host":    {"KEYFETCH_ENDPOINT_URL": "https:///x"},
		"timeout": {"KEYFETCH_FETCH_TIMEOUT_SECONDS": "0"},
		"retries": {"KEYFETCH_MAX_RETRIES": "-1"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			for k, v := range env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %v", env)
			}
		})
	}
}
