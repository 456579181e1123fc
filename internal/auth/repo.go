package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

// Querier is the subset of pgxpool.Pool used by PGProvider.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PGProvider authenticates against the fleet_users table in PostgreSQL.
type PGProvider struct {
	db Querier
}

// NewPGProvider constructs a PostgreSQL backed Provider.
func NewPGProvider(db Querier) *PGProvider {
	return &PGProvider{db: db}
}

const findUserByUsername = `SELECT id, username, name, role, COALESCE(email, ''), password_hash, is_active
FROM fleet_users WHERE lower(username) = $1`

// Authenticate looks the user up by lowercased username and compares the bcrypt hash.
func (p *PGProvider) Authenticate(ctx context.Context, username, password string) (Identity, error) {
	var (
		id       int64
		identity Identity
		roleName string
		hash     string
		active   bool
	)
	err := p.db.QueryRow(ctx, findUserByUsername, NormalizeUsername(username)).
		Scan(&id, &identity.Username, &identity.Name, &roleName, &identity.Email, &hash, &active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Identity{}, ErrInvalidCredentials
		}
		return Identity{}, fmt.Errorf("auth: find user: %w", err)
	}
	if !active {
		return Identity{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return Identity{}, ErrInvalidCredentials
	}
	role, err := ParseRole(roleName)
	if err != nil {
		return Identity{}, fmt.Errorf("auth: user %d: %w", id, err)
	}
	identity.ID = strconv.FormatInt(id, 10)
	identity.Role = role
	return identity, nil
}

var _ Provider = (*PGProvider)(nil)
