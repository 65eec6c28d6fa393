package config

import (
	"strings"
	"time"
)

// BackendConfig contains connection settings for the FitPick platform API,
// the upstream every data operation proxies to.
type BackendConfig struct {
	// BaseURL is the root of the platform REST API
	// (e.g. "https://api.fitpick.example.com").
	BaseURL string `env:"FITPICK_API_BASE_URL" envDefault:"http://localhost:3000"`

	// Timeout bounds each outbound request to the platform.
	Timeout time.Duration `env:"FITPICK_API_TIMEOUT" envDefault:"10s"`
}

// Sanitize applies guardrails to backend configuration values.
func (b *BackendConfig) Sanitize() {
	b.BaseURL = strings.TrimRight(strings.TrimSpace(b.BaseURL), "/")
	if b.Timeout <= 0 {
		b.Timeout = 10 * time.Second
	}
}
