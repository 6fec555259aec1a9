package bootstrap

import (
	"io"
	"log/slog"
	"testing"

	"github.com/gurmatacademy/portal/config"
)

func TestNewServicesNilDeps(t *testing.T) {
	container := NewServices(nil)

	if container.Auth != nil || container.Roster != nil || container.Assistant != nil {
		t.Fatalf("NewServices(nil) = %+v, want empty container", container)
	}
}

func TestBuildObservabilityDisabled(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	container := buildObservability(logger, config.ObservabilityConfig{})

	if container.MetricsSink != nil {
		t.Fatalf("buildObservability() sink = %v, want nil when metrics disabled", container.MetricsSink)
	}
}

func TestBuildObservabilityEnabled(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg := config.ObservabilityConfig{
		Metrics: config.ObservabilityMetricsConfig{
			Enabled:       true,
			StatsdAddress: "127.0.0.1:8125",
		},
	}

	container := buildObservability(logger, cfg)

	if container.MetricsSink == nil {
		t.Fatal("buildObservability() sink = nil, want statsd client")
	}
}

func TestNewGurbaniServiceRequiresUpstreamConfig(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repos := buildRepositories(nil, nil)

	cfg := &config.AppConfig{}
	if svc := newGurbaniService(cfg, repos, nil, logger); svc != nil {
		t.Fatalf("newGurbaniService() without upstream config = %v, want nil", svc)
	}

	cfg.Gurbani.SearchBaseURL = "https://api.banidb.com/v2"
	cfg.Gurbani.RaagIndexURL = "https://www.sikhitothemax.org/index/raag"
	cfg.Gurbani.SearchResultsPath = "verses"
	if svc := newGurbaniService(cfg, repos, nil, logger); svc == nil {
		t.Fatal("newGurbaniService() = nil, want service")
	}
}
