package auth

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestProvider(t *testing.T) *StaticProvider {
	t.Helper()
	p, err := NewStaticProvider(bcrypt.MinCost, DemoAccounts()...)
	require.NoError(t, err)
	return p
}

func TestRoleOrdering(t *testing.T) {
	assert.Less(t, RoleDriver.Rank(), RoleSiteManager.Rank())
	assert.Less(t, RoleSiteManager.Rank(), RoleSupervisor.Rank())
	assert.Less(t, RoleSupervisor.Rank(), RoleAdmin.Rank())
	assert.Zero(t, RoleUnknown.Rank())
	assert.Zero(t, Role(42).Rank())
	assert.Equal(t, []Role{RoleAdmin, RoleSupervisor, RoleSiteManager, RoleDriver}, Roles())
}

func TestRoleText(t *testing.T) {
	for _, role := range Roles() {
		text, err := role.MarshalText()
		require.NoError(t, err)
		var back Role
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, role, back)
	}

	_, err := RoleUnknown.MarshalText()
	assert.ErrorIs(t, err, ErrUnknownRole)

	var r Role
	assert.ErrorIs(t, r.UnmarshalText([]byte("admin")), ErrUnknownRole)
	assert.Equal(t, "Role(9)", Role(9).String())
}

func TestStoreAuthenticatePersists(t *testing.T) {
	storage := NewMemoryStorage()
	store := NewStore(storage, newTestProvider(t), nil)

	ok, err := store.Authenticate(context.Background(), "ADMIN", "admin")
	require.NoError(t, err)
	require.True(t, ok)

	current, ok := store.Current()
	require.True(t, ok)
	assert.Equal(t, "admin", current.Username)
	assert.Equal(t, RoleAdmin, current.Role)

	var persisted map[string]any
	require.NoError(t, json.Unmarshal([]byte(storage.Get(StorageKey)), &persisted))
	assert.Equal(t, "Admin", persisted["role"])

	restored := NewStore(storage, nil, nil)
	_, ok = restored.Current()
	assert.False(t, ok)
	restored.Restore()
	again, ok := restored.Current()
	require.True(t, ok)
	assert.Equal(t, current, again)
}

func TestStoreFailedAuthenticateKeepsState(t *testing.T) {
	storage := NewMemoryStorage()
	store := NewStore(storage, newTestProvider(t), nil)
	ok, err := store.Authenticate(context.Background(), "driver", "driver")
	require.NoError(t, err)
	require.True(t, ok)
	before := storage.Get(StorageKey)

	ok, err = store.Authenticate(context.Background(), "admin", "nope")
	require.NoError(t, err)
	assert.False(t, ok)

	current, ok := store.Current()
	require.True(t, ok)
	assert.Equal(t, RoleDriver, current.Role)
	assert.Equal(t, before, storage.Get(StorageKey))
}

type failingProvider struct{ err error }

func (p failingProvider) Authenticate(context.Context, string, string) (Identity, error) {
	return Identity{}, p.err
}

func TestStoreAuthenticateProviderError(t *testing.T) {
	boom := errors.New("db down")
	store := NewStore(nil, failingProvider{err: boom}, nil)

	ok, err := store.Authenticate(context.Background(), "admin", "admin")
	assert.False(t, ok)
	assert.ErrorIs(t, err, boom)

	_, err = NewStore(nil, nil, nil).Authenticate(context.Background(), "admin", "admin")
	assert.Error(t, err)
}

func TestStoreRestoreDiscardsBadPayloads(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"malformed", "{not json"},
		{"unknown role", `{"id":"9","username":"x","name":"X","role":"Owner"}`},
		{"missing role", `{"id":"9","username":"x","name":"X"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage := NewMemoryStorage()
			storage.Set(StorageKey, tt.raw)
			store := NewStore(storage, nil, nil)

			store.Restore()

			_, ok := store.Current()
			assert.False(t, ok)
			assert.Empty(t, storage.Get(StorageKey))
		})
	}
}

func TestStoreClear(t *testing.T) {
	storage := NewMemoryStorage()
	store := NewStore(storage, newTestProvider(t), nil)
	_, err := store.Authenticate(context.Background(), "manager", "manager")
	require.NoError(t, err)

	store.Clear()

	_, ok := store.Current()
	assert.False(t, ok)
	assert.Empty(t, storage.Get(StorageKey))

	store.Clear()
	_, ok = store.Current()
	assert.False(t, ok)
}

func TestStoreFromContext(t *testing.T) {
	_, ok := CurrentIdentity(context.Background())
	assert.False(t, ok)

	store := NewStore(nil, newTestProvider(t), nil)
	ctx := ContextWithStore(context.Background(), store)
	assert.Same(t, store, StoreFromContext(ctx))

	_, err := store.Authenticate(ctx, "supervisor", "supervisor")
	require.NoError(t, err)
	identity, ok := CurrentIdentity(ctx)
	require.True(t, ok)
	assert.Equal(t, "Jane Supervisor", identity.Name)
}
