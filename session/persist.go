package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// ErrStorageUnavailable wraps persistence backend failures so callers can
// distinguish "no token" from "could not ask".
var ErrStorageUnavailable = errors.New("token storage unavailable")

// DefaultStorageKey is the well-known key under which the token is persisted.
const DefaultStorageKey = "gokiosk:token"

// TokenStore persists the bearer token across restarts. Load returns an empty
// string (and no error) when nothing is persisted. Save and Clear must be
// idempotent: the store is written level-triggered, so repeated identical
// writes are expected.
type TokenStore interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, tok string) error
	Clear(ctx context.Context) error
}

// MemoryTokenStore is a process-local [TokenStore]. Nothing survives a
// restart; useful for tests and short-lived tools.
type MemoryTokenStore struct {
	mu  sync.Mutex
	tok string
}

// NewMemoryTokenStore creates an empty in-memory store.
func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

// Load returns the held token.
func (m *MemoryTokenStore) Load(context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tok, nil
}

// Save replaces the held token.
func (m *MemoryTokenStore) Save(_ context.Context, tok string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tok = tok
	return nil
}

// Clear drops the held token.
func (m *MemoryTokenStore) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tok = ""
	return nil
}

// FileTokenStore persists the token in a single file, mode 0600, written via
// temp-file rename so a crash never leaves a torn token behind.
type FileTokenStore struct {
	path string
}

// NewFileTokenStore creates a store writing to path. The parent directory is
// created on first Save.
func NewFileTokenStore(path string) *FileTokenStore {
	return &FileTokenStore{path: path}
}

// Load reads the persisted token. A missing file means no token.
func (f *FileTokenStore) Load(context.Context) (string, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Save writes the token atomically.
func (f *FileTokenStore) Save(_ context.Context, tok string) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	tmp, err := os.CreateTemp(dir, ".token-*")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	tmpName := tmp.Name()

	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	if _, err := tmp.WriteString(tok + "\n"); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return nil
}

// Clear removes the token file. Removing an absent file is not an error.
func (f *FileTokenStore) Clear(context.Context) error {
	err := os.Remove(f.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return nil
}
