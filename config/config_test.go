package config

import (
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
)

func TestAuthMode_UnmarshalText(t *testing.T) {
	tests := []struct {
		input       string
		expected    AuthMode
		expectError bool
	}{
		{"password", AuthModePassword, false},
		{"oauth", AuthModeOAuth, false},
		{"mock", AuthModeMock, false},
		{"OAuth", AuthModeOAuth, false},
		{"PASSWORD", AuthModePassword, false},
		{"", "", true},
		{"supabase", "", true},
	}

	for _, tt := range tests {
		var mode AuthMode
		err := mode.UnmarshalText([]byte(tt.input))
		if tt.expectError {
			if err == nil {
				t.Errorf("UnmarshalText(%q): expected error, got none", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("UnmarshalText(%q): unexpected error: %v", tt.input, err)
			continue
		}
		if mode != tt.expected {
			t.Errorf("UnmarshalText(%q) = %q, want %q", tt.input, mode, tt.expected)
		}
	}
}

func TestAppConfig_Defaults(t *testing.T) {
	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("env.Parse: %v", err)
	}
	cfg.Sanitize()

	if cfg.Auth.Mode != AuthModePassword {
		t.Errorf("Auth.Mode = %q, want %q", cfg.Auth.Mode, AuthModePassword)
	}
	if cfg.Auth.SessionDuration != 12*time.Hour {
		t.Errorf("Auth.SessionDuration = %v, want 12h", cfg.Auth.SessionDuration)
	}
	if cfg.HTTP.Addr != ":8080" {
		t.Errorf("HTTP.Addr = %q, want :8080", cfg.HTTP.Addr)
	}
	if cfg.Postgres.Port != 5432 {
		t.Errorf("Postgres.Port = %d, want 5432", cfg.Postgres.Port)
	}
	if cfg.Cache.RaagIndexTTL != 30*time.Minute {
		t.Errorf("Cache.RaagIndexTTL = %v, want 30m", cfg.Cache.RaagIndexTTL)
	}
	if cfg.Gurbani.SearchResultsPath != "verses" {
		t.Errorf("Gurbani.SearchResultsPath = %q, want verses", cfg.Gurbani.SearchResultsPath)
	}
}

func TestGurbaniConfig_Sanitize(t *testing.T) {
	g := GurbaniConfig{
		SearchBaseURL:     " https://api.example.com/v2/ ",
		SearchResultsPath: " ",
		Timeout:           -1,
	}
	g.Sanitize()

	if g.SearchBaseURL != "https://api.example.com/v2" {
		t.Errorf("SearchBaseURL = %q", g.SearchBaseURL)
	}
	if g.SearchResultsPath != "verses" {
		t.Errorf("SearchResultsPath = %q, want fallback", g.SearchResultsPath)
	}
	if g.Timeout != 10*time.Second {
		t.Errorf("Timeout = %v, want 10s", g.Timeout)
	}
}

func TestObservabilityMetricsConfig_Sanitize(t *testing.T) {
	c := ObservabilityMetricsConfig{Enabled: true, StatsdAddress: "   "}
	c.Sanitize()
	if c.IsEnabled() {
		t.Error("metrics should be disabled when the statsd address is blank")
	}
}
