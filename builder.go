package goKiosk

import (
	"context"
	"net/http"
	"net/http/cookiejar"
	"strings"

	"github.com/MrEthical07/goKiosk/session"
	"github.com/MrEthical07/goKiosk/signal"
	"github.com/redis/go-redis/v9"
)

// Builder assembles a [Client]. Zero value is not usable; start from [New].
//
//	client, err := goKiosk.New().
//		WithBaseURL("https://kiosk.example.com").
//		WithTokenFile("/var/lib/kiosk/token").
//		Build()
type Builder struct {
	config     Config
	httpClient *http.Client
	tokens     session.TokenStore
	sink       signal.Sink
	clock      Clock
	built      bool
}

// New returns a Builder pre-loaded with defaults.
func New() *Builder {
	return &Builder{config: defaultConfig()}
}

// WithConfig replaces the whole configuration. Call it first: later With*
// calls override individual fields.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithBaseURL sets the backend root, e.g. "https://kiosk.example.com".
func (b *Builder) WithBaseURL(u string) *Builder {
	b.config.Gateway.BaseURL = u
	return b
}

// WithHTTPClient supplies a custom transport. When the client carries no
// cookie jar, Build works on a shallow copy with a jar attached, so the
// backend's cookies travel with every call; the caller's client is never
// modified.
func (b *Builder) WithHTTPClient(hc *http.Client) *Builder {
	b.httpClient = hc
	return b
}

// WithTokenStore sets the persistence backend for the session token.
// Default is in-memory (token lost on process exit).
func (b *Builder) WithTokenStore(ts session.TokenStore) *Builder {
	b.tokens = ts
	return b
}

// WithTokenFile persists the token to a file with 0600 permissions.
func (b *Builder) WithTokenFile(path string) *Builder {
	b.tokens = session.NewFileTokenStore(path)
	return b
}

// WithRedis persists the token under [session.DefaultStorageKey] in Redis,
// with no expiry. Use [WithTokenStore] with [session.NewRedisTokenStore]
// for a custom key or TTL.
func (b *Builder) WithRedis(client redis.UniversalClient) *Builder {
	b.tokens = session.NewRedisTokenStore(client, "", 0)
	return b
}

// WithSignalSink sets where lifecycle events are delivered after
// subscribers run. Default is [signal.NoOpSink].
func (b *Builder) WithSignalSink(sink signal.Sink) *Builder {
	b.sink = sink
	return b
}

// WithClock overrides time measurement for the expiry cooldown. Tests use
// this; production code should not.
func (b *Builder) WithClock(clock Clock) *Builder {
	b.clock = clock
	return b
}

// WithMetricsEnabled toggles counter collection.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// Build validates the configuration and produces a ready Client. A Builder
// builds once; reuse returns [ErrBuilderUsed].
func (b *Builder) Build() (*Client, error) {
	if b.built {
		return nil, ErrBuilderUsed
	}

	cfg := cloneConfig(b.config)
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	hc := b.httpClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.Gateway.Timeout}
	}
	if hc.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, err
		}
		// Copy before attaching the jar: a caller-supplied client stays
		// untouched.
		clone := *hc
		clone.Jar = jar
		hc = &clone
	}

	tokens := b.tokens
	if tokens == nil {
		tokens = session.NewMemoryTokenStore()
	}

	store := session.NewStore(tokens)
	if err := store.Hydrate(context.Background()); err != nil {
		return nil, err
	}

	bus := signal.NewBus(cfg.Signals, b.sink)
	store.Bind(bus)

	b.built = true
	return &Client{
		config:     cfg,
		baseURL:    strings.TrimRight(cfg.Gateway.BaseURL, "/"),
		httpClient: hc,
		sessions:   store,
		tokens:     tokens,
		bus:        bus,
		latch:      newExpiryLatch(cfg.Expiry.Cooldown, b.clock),
		metrics:    NewMetrics(cfg.Metrics),
	}, nil
}
