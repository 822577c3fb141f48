//go:build integration
// +build integration

package test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	goKiosk "github.com/MrEthical07/goKiosk"
	"github.com/MrEthical07/goKiosk/session"
	"github.com/MrEthical07/goKiosk/signal"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// backendUser is a stored account on the stub backend.
type backendUser struct {
	profile  goKiosk.UserProfile
	password string
}

// stubBackend is an in-memory rendition of the subscription service with
// just enough behavior for end-to-end client flows: form login, bearer
// auth, a filterable catalog, and per-user subscriptions.
type stubBackend struct {
	mu      sync.Mutex
	users   map[string]*backendUser // keyed by login (email or username)
	tokens  map[string]int64        // access token -> user ID
	pubs    map[int64]goKiosk.Publication
	subs    map[int64]goKiosk.Subscription
	nextID  int64
	expired bool
}

func newStubBackend() *stubBackend {
	b := &stubBackend{
		users:  map[string]*backendUser{},
		tokens: map[string]int64{},
		pubs:   map[int64]goKiosk.Publication{},
		subs:   map[int64]goKiosk.Subscription{},
		nextID: 1,
	}
	b.seedPublication(goKiosk.Publication{Title: "The Daily Gopher", Type: goKiosk.PublicationNewspaper, PriceMonthly: 9.99, PriceYearly: 99.99, IsVisible: true, IsAvailable: true})
	b.seedPublication(goKiosk.Publication{Title: "Concurrency Weekly", Type: goKiosk.PublicationMagazine, PriceMonthly: 4.99, PriceYearly: 49.99, IsVisible: true, IsAvailable: true})
	b.seedPublication(goKiosk.Publication{Title: "Systems Quarterly", Type: goKiosk.PublicationJournal, PriceMonthly: 14.99, PriceYearly: 149.99, IsVisible: true, IsAvailable: true})
	return b
}

func (b *stubBackend) seedPublication(p goKiosk.Publication) {
	b.mu.Lock()
	defer b.mu.Unlock()
	p.ID = b.nextID
	p.CreatedAt = time.Now().UTC()
	b.nextID++
	b.pubs[p.ID] = p
}

// ExpireTokens makes every subsequent authenticated request answer 401.
func (b *stubBackend) ExpireTokens() {
	b.mu.Lock()
	b.expired = true
	b.mu.Unlock()
}

func (b *stubBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	switch {
	case path == "/health":
		writeJSON(w, http.StatusOK, goKiosk.Health{Status: "ok"})
	case path == "/api/users/register" && r.Method == http.MethodPost:
		b.handleRegister(w, r)
	case path == "/api/users/login" && r.Method == http.MethodPost:
		b.handleLogin(w, r)
	case path == "/api/users/me" && r.Method == http.MethodGet:
		b.withUser(w, r, func(u *backendUser) {
			writeJSON(w, http.StatusOK, u.profile)
		})
	case path == "/api/publications/" && r.Method == http.MethodGet:
		b.handleListPublications(w, r)
	case path == "/api/subscriptions/" && r.Method == http.MethodPost:
		b.withUser(w, r, func(u *backendUser) {
			b.handleCreateSubscription(w, r, u)
		})
	case path == "/api/subscriptions/my" && r.Method == http.MethodGet:
		b.withUser(w, r, func(u *backendUser) {
			b.handleMySubscriptions(w, u)
		})
	case strings.HasPrefix(path, "/api/subscriptions/") && r.Method == http.MethodDelete:
		b.withUser(w, r, func(u *backendUser) {
			b.handleCancelSubscription(w, path, u)
		})
	default:
		writeDetail(w, http.StatusNotFound, "Not found")
	}
}

func (b *stubBackend) handleRegister(w http.ResponseWriter, r *http.Request) {
	var reg goKiosk.Registration
	if err := json.NewDecoder(r.Body).Decode(&reg); err != nil {
		writeDetail(w, http.StatusBadRequest, "Malformed body")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.users[reg.Email]; ok {
		writeDetail(w, http.StatusBadRequest, "Email already registered")
		return
	}
	user := &backendUser{
		profile: goKiosk.UserProfile{
			ID:        b.nextID,
			Email:     reg.Email,
			Username:  reg.Username,
			FullName:  reg.FullName,
			Role:      "reader",
			IsActive:  true,
			CreatedAt: time.Now().UTC(),
		},
		password: reg.Password,
	}
	b.nextID++
	b.users[reg.Email] = user
	b.users[reg.Username] = user
	writeJSON(w, http.StatusCreated, user.profile)
}

func (b *stubBackend) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeDetail(w, http.StatusBadRequest, "Malformed form body")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	user, ok := b.users[r.PostFormValue("login")]
	if !ok || user.password != r.PostFormValue("password") {
		writeDetail(w, http.StatusUnauthorized, "Incorrect login or password")
		return
	}
	tok := fmt.Sprintf("tok-%d-%d", user.profile.ID, time.Now().UnixNano())
	b.tokens[tok] = user.profile.ID
	writeJSON(w, http.StatusOK, goKiosk.Token{AccessToken: tok, TokenType: "bearer"})
}

func (b *stubBackend) withUser(w http.ResponseWriter, r *http.Request, fn func(*backendUser)) {
	b.mu.Lock()
	auth := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	id, ok := b.tokens[auth]
	if b.expired {
		ok = false
	}
	var user *backendUser
	if ok {
		for _, u := range b.users {
			if u.profile.ID == id {
				user = u
				break
			}
		}
	}
	b.mu.Unlock()

	if user == nil {
		writeDetail(w, http.StatusUnauthorized, "Could not validate credentials")
		return
	}
	fn(user)
}

func (b *stubBackend) handleListPublications(w http.ResponseWriter, r *http.Request) {
	typ := r.URL.Query().Get("type")
	switch typ {
	case "", "magazine", "newspaper", "journal":
	default:
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"detail": []map[string]any{{
				"loc": []string{"query", "type"},
				"msg": "value is not a valid enumeration member",
			}},
		})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]goKiosk.Publication, 0, len(b.pubs))
	for _, p := range b.pubs {
		if typ != "" && string(p.Type) != typ {
			continue
		}
		out = append(out, p)
	}
	writeJSON(w, http.StatusOK, out)
}

func (b *stubBackend) handleCreateSubscription(w http.ResponseWriter, r *http.Request, u *backendUser) {
	var create goKiosk.SubscriptionCreate
	if err := json.NewDecoder(r.Body).Decode(&create); err != nil {
		writeDetail(w, http.StatusBadRequest, "Malformed body")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	pub, ok := b.pubs[create.PublicationID]
	if !ok {
		writeDetail(w, http.StatusNotFound, "Publication not found")
		return
	}
	now := time.Now().UTC()
	sub := goKiosk.Subscription{
		ID:            b.nextID,
		UserID:        u.profile.ID,
		PublicationID: pub.ID,
		StartDate:     now,
		EndDate:       now.AddDate(0, create.DurationMonths, 0),
		Status:        "active",
		Price:         pub.PriceMonthly * float64(create.DurationMonths),
		AutoRenew:     create.AutoRenew,
		CreatedAt:     now,
		Publication:   pub,
	}
	b.nextID++
	b.subs[sub.ID] = sub
	writeJSON(w, http.StatusCreated, sub)
}

func (b *stubBackend) handleMySubscriptions(w http.ResponseWriter, u *backendUser) {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]goKiosk.Subscription, 0)
	for _, s := range b.subs {
		if s.UserID == u.profile.ID {
			out = append(out, s)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (b *stubBackend) handleCancelSubscription(w http.ResponseWriter, path string, u *backendUser) {
	id, err := strconv.ParseInt(strings.TrimPrefix(path, "/api/subscriptions/"), 10, 64)
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "Malformed subscription id")
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	sub, ok := b.subs[id]
	if !ok || sub.UserID != u.profile.ID {
		writeDetail(w, http.StatusNotFound, "Subscription not found")
		return
	}
	sub.Status = "cancelled"
	b.subs[id] = sub
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

// newIntegrationClient wires a client to the stub backend with a Redis-backed
// token store on miniredis, the way a deployment with shared token state
// would run.
func newIntegrationClient(t *testing.T, backend *stubBackend) (*goKiosk.Client, *signal.ChannelSink, func()) {
	t.Helper()

	srv := httptest.NewServer(backend)

	mr, err := miniredis.Run()
	if err != nil {
		srv.Close()
		t.Fatalf("miniredis run failed: %v", err)
	}
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	events := signal.NewChannelSink(64)
	client, err := goKiosk.New().
		WithBaseURL(srv.URL).
		WithTokenStore(session.NewRedisTokenStore(rdb, "", 0)).
		WithSignalSink(events).
		Build()
	if err != nil {
		_ = rdb.Close()
		mr.Close()
		srv.Close()
		t.Fatalf("Build failed: %v", err)
	}

	return client, events, func() {
		client.Close()
		_ = rdb.Close()
		mr.Close()
		srv.Close()
	}
}
