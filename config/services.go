package config

import (
	"strings"
	"time"
)

// GurbaniConfig contains configuration for the upstream Gurbani services the
// portal proxies: the shabad search API (JSON) and the raag index page (HTML).
type GurbaniConfig struct {
	// SearchBaseURL is the base URL of the upstream shabad search API.
	SearchBaseURL string `env:"GURBANI_SEARCH_BASE_URL" envDefault:"https://api.banidb.com/v2"`

	// SearchResultsPath is the JMESPath expression selecting the results array
	// from the upstream search response. The selected array is returned to
	// callers unchanged.
	SearchResultsPath string `env:"GURBANI_SEARCH_RESULTS_PATH" envDefault:"verses"`

	// RaagIndexURL is the upstream HTML page listing raags with page references.
	RaagIndexURL string `env:"GURBANI_RAAG_INDEX_URL" envDefault:"https://www.sikhitothemax.org/index/raag"`

	// Timeout bounds each upstream round trip.
	Timeout time.Duration `env:"GURBANI_UPSTREAM_TIMEOUT" envDefault:"10s"`

	// UserAgent is sent on upstream requests.
	UserAgent string `env:"GURBANI_USER_AGENT" envDefault:"gurmat-academy-portal/1.0"`
}

// Sanitize applies guardrails to upstream service configuration values.
func (g *GurbaniConfig) Sanitize() {
	g.SearchBaseURL = strings.TrimRight(strings.TrimSpace(g.SearchBaseURL), "/")
	g.RaagIndexURL = strings.TrimSpace(g.RaagIndexURL)
	g.SearchResultsPath = strings.TrimSpace(g.SearchResultsPath)
	if g.SearchResultsPath == "" {
		g.SearchResultsPath = "verses"
	}
	if g.Timeout <= 0 {
		g.Timeout = 10 * time.Second
	}
}
