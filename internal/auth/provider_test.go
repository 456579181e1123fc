package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestStaticProvider(t *testing.T) {
	p := newTestProvider(t)
	ctx := context.Background()

	identity, err := p.Authenticate(ctx, "Manager", "manager")
	require.NoError(t, err)
	assert.Equal(t, RoleSiteManager, identity.Role)
	assert.Equal(t, "manager@fleet.com", identity.Email)

	_, err = p.Authenticate(ctx, "manager", "Manager")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = p.Authenticate(ctx, "nobody", "nobody")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = p.Authenticate(ctx, " admin", "admin")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestNewStaticProviderRejectsBadAccounts(t *testing.T) {
	_, err := NewStaticProvider(bcrypt.MinCost, Account{Identity: Identity{Username: "ghost"}, Password: "x"})
	assert.ErrorIs(t, err, ErrUnknownRole)

	dup := Account{Identity: Identity{Username: "admin", Role: RoleAdmin}, Password: "x"}
	upper := dup
	upper.Username = "ADMIN"
	_, err = NewStaticProvider(bcrypt.MinCost, dup, upper)
	assert.Error(t, err)
}

type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *int64:
			*p = r.values[i].(int64)
		case *string:
			*p = r.values[i].(string)
		case *bool:
			*p = r.values[i].(bool)
		}
	}
	return nil
}

type fakeQuerier struct {
	row  fakeRow
	args []any
}

func (q *fakeQuerier) QueryRow(_ context.Context, _ string, args ...any) pgx.Row {
	q.args = args
	return q.row
}

func userRow(t *testing.T, role string, active bool) fakeRow {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	return fakeRow{values: []any{int64(7), "Jane", "Jane Supervisor", role, "jane@fleet.com", string(hash), active}}
}

func TestPGProvider(t *testing.T) {
	ctx := context.Background()

	t.Run("match", func(t *testing.T) {
		q := &fakeQuerier{row: userRow(t, "Supervisor", true)}
		identity, err := NewPGProvider(q).Authenticate(ctx, "JANE", "s3cret")
		require.NoError(t, err)
		assert.Equal(t, Identity{ID: "7", Username: "Jane", Name: "Jane Supervisor", Role: RoleSupervisor, Email: "jane@fleet.com"}, identity)
		assert.Equal(t, []any{"jane"}, q.args)
	})

	t.Run("wrong password", func(t *testing.T) {
		q := &fakeQuerier{row: userRow(t, "Supervisor", true)}
		_, err := NewPGProvider(q).Authenticate(ctx, "jane", "guess")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("inactive", func(t *testing.T) {
		q := &fakeQuerier{row: userRow(t, "Supervisor", false)}
		_, err := NewPGProvider(q).Authenticate(ctx, "jane", "s3cret")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("no rows", func(t *testing.T) {
		q := &fakeQuerier{row: fakeRow{err: pgx.ErrNoRows}}
		_, err := NewPGProvider(q).Authenticate(ctx, "jane", "s3cret")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("query failure", func(t *testing.T) {
		boom := errors.New("connection refused")
		q := &fakeQuerier{row: fakeRow{err: boom}}
		_, err := NewPGProvider(q).Authenticate(ctx, "jane", "s3cret")
		assert.ErrorIs(t, err, boom)
		assert.NotErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown role", func(t *testing.T) {
		q := &fakeQuerier{row: userRow(t, "Owner", true)}
		_, err := NewPGProvider(q).Authenticate(ctx, "jane", "s3cret")
		assert.ErrorIs(t, err, ErrUnknownRole)
	})
}

func TestNormalizeUsernameKeepsNonASCIILetters(t *testing.T) {
	assert.Equal(t, "straße", NormalizeUsername("Straße"))
	assert.Equal(t, "ſupervisor", NormalizeUsername("ſupervisor"))

	p := newTestProvider(t)
	ctx := context.Background()
	_, err := p.Authenticate(ctx, "ſupervisor", "supervisor")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	street, err := NewStaticProvider(bcrypt.MinCost, Account{
		Identity: Identity{Username: "Straße", Role: RoleDriver},
		Password: "pw",
	})
	require.NoError(t, err)
	identity, err := street.Authenticate(ctx, "STRAßE", "pw")
	require.NoError(t, err)
	assert.Equal(t, RoleDriver, identity.Role)
	_, err = street.Authenticate(ctx, "strasse", "pw")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
