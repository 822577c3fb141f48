package session

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MrEthical07/goKiosk/signal"
	"github.com/MrEthical07/goKiosk/token"
)

// Store holds the session record and enforces its transition function. All
// mutations go through Login, Logout, and SetUser; raw field access is never
// exposed, so every transition is auditable at these three choke points.
//
// Store is safe for concurrent use. Token reads are snapshots: a logout
// racing an in-flight request does not retroactively change that request's
// credentials, only the next one's.
type Store struct {
	mu    sync.Mutex
	tok   string
	user  *User
	aware bool // set once bound to a bus

	tokens TokenStore

	persistFailures atomic.Uint64
}

// NewStore creates a store persisting through tokens. A nil TokenStore keeps
// the session purely in-memory.
func NewStore(tokens TokenStore) *Store {
	if tokens == nil {
		tokens = NewMemoryTokenStore()
	}
	return &Store{tokens: tokens}
}

// Hydrate loads a previously persisted token, transitioning Anonymous →
// Authenticating when one exists. Called once at client construction; the
// profile is re-fetched lazily, so only the token survives a restart.
func (s *Store) Hydrate(ctx context.Context) error {
	tok, err := s.tokens.Load(ctx)
	if err != nil {
		return err
	}
	if tok == "" {
		return nil
	}

	s.mu.Lock()
	s.tok = tok
	s.user = nil
	s.mu.Unlock()
	return nil
}

// Login sets the token, entering Authenticating. The profile is cleared:
// whoever the token belongs to has not been confirmed yet.
func (s *Store) Login(tok string) {
	if tok == "" {
		return
	}
	s.mu.Lock()
	s.tok = tok
	s.user = nil
	s.mu.Unlock()

	s.persist()
}

// Logout clears token and profile in one transition and returns to
// Anonymous. Calling it twice is equivalent to calling it once.
func (s *Store) Logout() {
	s.logout()
	s.persist()
}

// logout performs the state transition and reports whether anything changed.
func (s *Store) logout() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tok == "" && s.user == nil {
		return false
	}
	s.tok = ""
	s.user = nil
	return true
}

// SetUser records the fetched profile, entering Active. A profile is refused
// while Anonymous: user is only meaningful when a token exists. SetUser(nil)
// drops back to Authenticating.
func (s *Store) SetUser(u *User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tok == "" {
		return
	}
	if u == nil {
		s.user = nil
		return
	}
	clone := *u
	s.user = &clone
}

// Current returns a snapshot of the session record.
func (s *Store) Current() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{Token: s.tok}
	if s.user != nil {
		clone := *s.user
		snap.User = &clone
	}
	return snap
}

// Token returns the current bearer token, empty when Anonymous.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tok
}

// State returns the current lifecycle state.
func (s *Store) State() State {
	return s.Current().State()
}

// ExpiresAt reports the exp claim of the held token when it is a JWT.
// Display-only; the gateway never pre-empts a call on this value.
func (s *Store) ExpiresAt() (time.Time, bool) {
	claims, err := token.Peek(s.Token())
	if err != nil || claims.ExpiresAt.IsZero() {
		return time.Time{}, false
	}
	return claims.ExpiresAt, true
}

// PersistFailures reports how many level-triggered persistence writes failed.
// Persistence is best-effort: a failed write never blocks a state transition.
func (s *Store) PersistFailures() uint64 {
	return s.persistFailures.Load()
}

// Bind subscribes the store to the gateway's expiry event. The reaction is
// the store's own logout followed by a navigate-home re-broadcast, so routing
// code observes the bus without knowing authentication exists.
func (s *Store) Bind(bus *signal.Bus) {
	if bus == nil {
		return
	}
	s.mu.Lock()
	if s.aware {
		s.mu.Unlock()
		return
	}
	s.aware = true
	s.mu.Unlock()

	bus.Subscribe(signal.TypeSessionExpired, func(ev signal.Event) []signal.Event {
		changed := s.logout()
		s.persist()
		if !changed {
			return nil
		}
		return []signal.Event{{
			Type:    signal.TypeNavigateHome,
			Message: ev.Message,
		}}
	})
}

// persist writes the current token value through the TokenStore. Driven by
// the level, not the edge: it always writes whatever is held right now.
func (s *Store) persist() {
	tok := s.Token()

	var err error
	if tok == "" {
		err = s.tokens.Clear(context.Background())
	} else {
		err = s.tokens.Save(context.Background(), tok)
	}
	if err != nil {
		s.persistFailures.Add(1)
	}
}
