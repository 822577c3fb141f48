// Command gokiosk-smoke drives a goKiosk client against a subscription
// backend and reports latency and failure statistics. When no base URL is
// given it starts an in-process stub backend, and when no Redis address is
// given the token store runs on miniredis, so the tool works with no
// external services at all.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	goKiosk "github.com/MrEthical07/goKiosk"
	"github.com/MrEthical07/goKiosk/session"
	"github.com/MrEthical07/goKiosk/signal"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func main() {
	var (
		baseURL     = flag.String("base-url", "", "backend base URL; if empty, an in-process stub backend is started")
		ops         = flag.Int("ops", 20000, "catalog list operations to issue")
		concurrency = flag.Int("concurrency", 64, "number of concurrent workers")
		redisAddr   = flag.String("redis-addr", "", "redis address for the token store; if empty, REDIS_ADDR env or miniredis is used")
		login       = flag.String("login", "smoke@example.com", "login for the seeded account")
		password    = flag.String("password", "Sm0keSecret", "password for the seeded account")
	)
	flag.Parse()

	if *ops <= 0 || *concurrency <= 0 {
		fmt.Fprintln(os.Stderr, "ops and concurrency must be > 0")
		os.Exit(2)
	}

	ctx := context.Background()

	target := *baseURL
	var stub *stubBackend
	if target == "" {
		stub = newStubBackend(*login, *password)
		srv := httptest.NewServer(stub)
		defer srv.Close()
		target = srv.URL
		fmt.Printf("using stub backend at %s\n", target)
	} else {
		fmt.Printf("using backend at %s\n", target)
	}

	addr := *redisAddr
	if addr == "" {
		addr = os.Getenv("REDIS_ADDR")
	}

	var (
		cleanup func()
		rdb     redis.UniversalClient
	)
	if addr == "" {
		mr, err := miniredis.Run()
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to start miniredis: %v\n", err)
			os.Exit(1)
		}
		rdb = redis.NewUniversalClient(&redis.UniversalOptions{Addrs: []string{mr.Addr()}})
		cleanup = func() {
			_ = rdb.Close()
			mr.Close()
		}
		fmt.Printf("using miniredis at %s\n", mr.Addr())
	} else {
		rdb = redis.NewUniversalClient(&redis.UniversalOptions{Addrs: []string{addr}})
		cleanup = func() { _ = rdb.Close() }
		fmt.Printf("using redis at %s\n", addr)
	}
	defer cleanup()

	events := signal.NewChannelSink(64)
	client, err := goKiosk.New().
		WithBaseURL(target).
		WithTokenStore(session.NewRedisTokenStore(rdb, "gokiosk:smoke:token", time.Hour)).
		WithSignalSink(events).
		Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "build client: %v\n", err)
		os.Exit(1)
	}
	defer client.Close()

	if _, err := client.Login(ctx, *login, *password); err != nil {
		fmt.Fprintf(os.Stderr, "login failed: %v\n", err)
		os.Exit(1)
	}
	profile, err := client.Me(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "profile fetch failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("authenticated as %s (%s)\n", profile.Username, profile.Role)

	stats := runListPhase(ctx, client, *ops, *concurrency)

	fmt.Println("---- results ----")
	printStats("list", stats)

	if stub != nil {
		runExpiryPhase(ctx, client, stub, events, *concurrency)
	}

	snap := client.MetricsSnapshot()
	fmt.Printf("metrics: success=%d failure=%d transport=%d auth_expired=%d signaled=%d suppressed=%d dropped=%d\n",
		snap.Counters[goKiosk.MetricRequestSuccess],
		snap.Counters[goKiosk.MetricRequestFailure],
		snap.Counters[goKiosk.MetricTransportError],
		snap.Counters[goKiosk.MetricAuthExpired],
		snap.Counters[goKiosk.MetricExpirySignaled],
		snap.Counters[goKiosk.MetricExpirySuppressed],
		client.SignalsDropped(),
	)
}

func runListPhase(ctx context.Context, client *goKiosk.Client, ops, concurrency int) phaseStats {
	var (
		wg        sync.WaitGroup
		cursor    int64
		failures  int64
		latencies = make([]time.Duration, 0, ops)
		mu        sync.Mutex
	)

	start := time.Now()
	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				i := int(atomic.AddInt64(&cursor, 1)) - 1
				if i >= ops {
					return
				}
				t0 := time.Now()
				_, err := client.ListPublications(ctx, nil)
				d := time.Since(t0)
				if err != nil {
					atomic.AddInt64(&failures, 1)
				}
				mu.Lock()
				latencies = append(latencies, d)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	total := time.Since(start)
	return computeStats(total, latencies, failures)
}

// runExpiryPhase flips the stub backend into rejecting every token and fires
// a concurrent burst, demonstrating that the burst collapses into a single
// session-expired broadcast.
func runExpiryPhase(ctx context.Context, client *goKiosk.Client, stub *stubBackend, events *signal.ChannelSink, concurrency int) {
	stub.ExpireTokens()

	var wg sync.WaitGroup
	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = client.MySubscriptions(ctx)
		}()
	}
	wg.Wait()

	deadline := time.After(time.Second)
	var expired, home int
	for {
		select {
		case e := <-events.Events():
			switch e.Type {
			case signal.TypeSessionExpired:
				expired++
			case signal.TypeNavigateHome:
				home++
			}
		case <-deadline:
			fmt.Printf("expiry burst: %d concurrent 401s -> %d session-expired, %d navigate-home\n",
				concurrency, expired, home)
			return
		}
	}
}

type phaseStats struct {
	total    time.Duration
	ops      int
	failures int64
	p50      time.Duration
	p95      time.Duration
	p99      time.Duration
	opsPerS  float64
}

func computeStats(total time.Duration, samples []time.Duration, failures int64) phaseStats {
	if len(samples) == 0 {
		return phaseStats{total: total}
	}
	sort.Slice(samples, func(i, j int) bool { return samples[i] < samples[j] })
	return phaseStats{
		total:    total,
		ops:      len(samples),
		failures: failures,
		p50:      percentile(samples, 50),
		p95:      percentile(samples, 95),
		p99:      percentile(samples, 99),
		opsPerS:  float64(len(samples)) / total.Seconds(),
	}
}

func percentile(samples []time.Duration, p int) time.Duration {
	if len(samples) == 0 {
		return 0
	}
	if p <= 0 {
		return samples[0]
	}
	if p >= 100 {
		return samples[len(samples)-1]
	}
	idx := (len(samples) - 1) * p / 100
	return samples[idx]
}

func printStats(name string, s phaseStats) {
	fmt.Printf("%s: ops=%d failures=%d total=%s ops/sec=%.0f p50=%s p95=%s p99=%s\n",
		name,
		s.ops,
		s.failures,
		s.total.Round(time.Millisecond),
		s.opsPerS,
		s.p50.Round(time.Microsecond),
		s.p95.Round(time.Microsecond),
		s.p99.Round(time.Microsecond),
	)
}

// stubBackend is a minimal in-memory rendition of the subscription service:
// one seeded account, a static catalog, and a switch that starts rejecting
// every bearer token to exercise the expiry path.
type stubBackend struct {
	login    string
	password string
	token    string
	catalog  []goKiosk.Publication

	expired atomic.Bool
}

func newStubBackend(login, password string) *stubBackend {
	return &stubBackend{
		login:    login,
		password: password,
		token:    "smoke-access-token",
		catalog: []goKiosk.Publication{
			{ID: 1, Title: "The Daily Gopher", Type: goKiosk.PublicationNewspaper, PriceMonthly: 9.99, PriceYearly: 99.99, IsVisible: true, IsAvailable: true},
			{ID: 2, Title: "Concurrency Weekly", Type: goKiosk.PublicationMagazine, PriceMonthly: 4.99, PriceYearly: 49.99, IsVisible: true, IsAvailable: true},
			{ID: 3, Title: "Systems Quarterly", Type: goKiosk.PublicationJournal, PriceMonthly: 14.99, PriceYearly: 149.99, IsVisible: true, IsAvailable: true},
		},
	}
}

// ExpireTokens makes every subsequent authenticated request answer 401.
func (s *stubBackend) ExpireTokens() {
	s.expired.Store(true)
}

func (s *stubBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/health":
		writeJSON(w, http.StatusOK, goKiosk.Health{Status: "ok"})
	case "/api/users/login":
		s.handleLogin(w, r)
	case "/api/users/me":
		if !s.authorized(r) {
			writeDetail(w, http.StatusUnauthorized, "Could not validate credentials")
			return
		}
		writeJSON(w, http.StatusOK, goKiosk.UserProfile{
			ID: 1, Email: s.login, Username: "smoke", Role: "reader", IsActive: true,
			CreatedAt: time.Now().UTC(),
		})
	case "/api/publications/":
		writeJSON(w, http.StatusOK, s.catalog)
	case "/api/subscriptions/my":
		if !s.authorized(r) {
			writeDetail(w, http.StatusUnauthorized, "Could not validate credentials")
			return
		}
		writeJSON(w, http.StatusOK, []goKiosk.Subscription{})
	default:
		writeDetail(w, http.StatusNotFound, "Not found")
	}
}

func (s *stubBackend) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeDetail(w, http.StatusBadRequest, "Malformed form body")
		return
	}
	if r.PostFormValue("login") != s.login || r.PostFormValue("password") != s.password {
		writeDetail(w, http.StatusUnauthorized, "Incorrect login or password")
		return
	}
	writeJSON(w, http.StatusOK, goKiosk.Token{AccessToken: s.token, TokenType: "bearer"})
}

func (s *stubBackend) authorized(r *http.Request) bool {
	if s.expired.Load() {
		return false
	}
	return r.Header.Get("Authorization") == "Bearer "+s.token
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
