package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// StorageKey is the key under which the current identity is persisted.
const StorageKey = "fleet-user"

// Storage is a string key-value store scoped to one browser session.
// *shared.Session satisfies it.
type Storage interface {
	Get(key string) string
	Set(key, value string)
	Delete(key string)
}

// Store holds zero or one current identity and mirrors it into Storage.
type Store struct {
	mu       sync.RWMutex
	current  *Identity
	storage  Storage
	provider Provider
	logger   *slog.Logger
}

// NewStore binds a Store to storage and a credential provider. The store starts logged out;
// call Restore to pick up a persisted identity.
func NewStore(storage Storage, provider Provider, logger *slog.Logger) *Store {
	if storage == nil {
		storage = NewMemoryStorage()
	}
	return &Store{storage: storage, provider: provider, logger: logger}
}

// Restore loads the persisted identity. Unreadable payloads are deleted and the store stays
// logged out; nothing is reported to the caller.
func (s *Store) Restore() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
	raw := s.storage.Get(StorageKey)
	if raw == "" {
		return
	}
	identity, err := decodeIdentity(raw)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("discard persisted identity", slog.Any("error", err))
		}
		s.storage.Delete(StorageKey)
		return
	}
	s.current = &identity
}

// Authenticate checks the credentials with the provider. A mismatch leaves the store untouched
// and reports false with a nil error; provider failures are returned as errors.
func (s *Store) Authenticate(ctx context.Context, username, password string) (bool, error) {
	if s.provider == nil {
		return false, errors.New("auth: store has no provider")
	}
	identity, err := s.provider.Authenticate(ctx, username, password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return false, nil
		}
		return false, err
	}
	payload, err := json.Marshal(identity)
	if err != nil {
		return false, fmt.Errorf("auth: encode identity: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = &identity
	s.storage.Set(StorageKey, string(payload))
	return true, nil
}

// Clear logs out and removes the persisted copy.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
	s.storage.Delete(StorageKey)
}

// Current returns a copy of the current identity.
func (s *Store) Current() (Identity, bool) {
	if s == nil {
		return Identity{}, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return Identity{}, false
	}
	return *s.current, true
}

func decodeIdentity(raw string) (Identity, error) {
	var identity Identity
	if err := json.Unmarshal([]byte(raw), &identity); err != nil {
		return Identity{}, fmt.Errorf("auth: decode identity: %w", err)
	}
	if !identity.Role.Valid() {
		return Identity{}, fmt.Errorf("auth: decode identity: %w", ErrUnknownRole)
	}
	return identity, nil
}

// MemoryStorage is a Storage backed by a map.
type MemoryStorage struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemoryStorage returns an empty MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: make(map[string]string)}
}

func (m *MemoryStorage) Get(key string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.values[key]
}

func (m *MemoryStorage) Set(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
}

func (m *MemoryStorage) Delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
}

type storeContextKey struct{}

// ContextWithStore attaches the request's Store to ctx.
func ContextWithStore(ctx context.Context, store *Store) context.Context {
	return context.WithValue(ctx, storeContextKey{}, store)
}

// StoreFromContext returns the Store attached by ContextWithStore, or nil.
func StoreFromContext(ctx context.Context) *Store {
	store, _ := ctx.Value(storeContextKey{}).(*Store)
	return store
}

// CurrentIdentity is a shortcut for StoreFromContext(ctx).Current.
func CurrentIdentity(ctx context.Context) (Identity, bool) {
	return StoreFromContext(ctx).Current()
}
