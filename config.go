package goKiosk

import (
	"time"

	"github.com/MrEthical07/goKiosk/password"
	"github.com/MrEthical07/goKiosk/signal"
)

// Config carries every tunable of the client. Instances are configured
// during initialization and treated as immutable after [Builder.Build].
type Config struct {
	Gateway  GatewayConfig
	Expiry   ExpiryConfig
	Signals  signal.Config
	Password password.Policy
	Metrics  MetricsConfig
}

/*
====================================
GATEWAY CONFIG
====================================
*/

// GatewayConfig tunes the HTTP chokepoint.
type GatewayConfig struct {
	// BaseURL is the backend root, e.g. "https://kiosk.example.com".
	// Required; trailing slash is trimmed.
	BaseURL string
	// Timeout bounds each call made by the default HTTP client. Ignored
	// when a custom client is supplied; zero disables the bound.
	Timeout time.Duration
	// UserAgent is sent on every request when non-empty.
	UserAgent string
}

/*
====================================
EXPIRY CONFIG
====================================
*/

// ExpiryConfig tunes the one-shot expiry latch.
type ExpiryConfig struct {
	// Cooldown is the window within which additional 401s are collapsed
	// into the first side effect. The window is a duplicate-suppression
	// heuristic, not a guarantee: 401s spaced wider than the window each
	// fire their own side effect.
	Cooldown time.Duration
	// Notice is the interrupting message carried on the session-expired
	// event; the shell renders it verbatim.
	Notice string
}

/*
====================================
METRICS CONFIG
====================================
*/

// MetricsConfig tunes the in-process counters.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

// DefaultConfig returns the configuration [New] starts from. Callers that
// need to tune more than the builder exposes start here and pass the result
// to [Builder.WithConfig].
func DefaultConfig() Config {
	return defaultConfig()
}

func defaultConfig() Config {
	return Config{
		Gateway: GatewayConfig{
			Timeout:   30 * time.Second,
			UserAgent: "goKiosk",
		},
		Expiry: ExpiryConfig{
			Cooldown: 5 * time.Second,
			Notice:   msgExpiryNotice,
		},
		Signals: signal.Config{
			Enabled:    true,
			BufferSize: 16,
			DropIfFull: true,
		},
		Password: password.DefaultPolicy(),
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

func cloneConfig(cfg Config) Config {
	// All fields are value types; a shallow copy is a deep copy.
	return cfg
}

func validateConfig(cfg Config) error {
	if cfg.Gateway.BaseURL == "" {
		return ErrBaseURLRequired
	}
	return nil
}
