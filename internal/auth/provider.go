package auth

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Provider verifies credentials and returns the matching identity.
// Implementations return ErrInvalidCredentials when the pair does not match.
type Provider interface {
	Authenticate(ctx context.Context, username, password string) (Identity, error)
}

// NormalizeUsername lowercases username with the same root-locale mapping
// PostgreSQL lower() applies, so static and database lookups agree.
// Full case folding is avoided: it maps "ß" to "ss" and "ſ" to "s".
func NormalizeUsername(username string) string {
	// Casers carry state and must not be shared between goroutines.
	return cases.Lower(language.Und).String(username)
}

// Account is a demo login entry.
type Account struct {
	Identity
	Password string
}

// DemoAccounts returns the fixed login table shipped with the dashboard.
func DemoAccounts() []Account {
	return []Account{
		{Identity: Identity{ID: "1", Username: "admin", Name: "John Admin", Role: RoleAdmin, Email: "admin@fleet.com"}, Password: "admin"},
		{Identity: Identity{ID: "2", Username: "supervisor", Name: "Jane Supervisor", Role: RoleSupervisor, Email: "supervisor@fleet.com"}, Password: "supervisor"},
		{Identity: Identity{ID: "3", Username: "manager", Name: "Mike Manager", Role: RoleSiteManager, Email: "manager@fleet.com"}, Password: "manager"},
		{Identity: Identity{ID: "4", Username: "driver", Name: "Sam Driver", Role: RoleDriver, Email: "driver@fleet.com"}, Password: "driver"},
	}
}

type staticEntry struct {
	identity Identity
	hash     []byte
}

// StaticProvider authenticates against an in-memory account table.
// It is immutable after construction and safe for concurrent use.
type StaticProvider struct {
	accounts map[string]staticEntry
}

// NewStaticProvider hashes the supplied account passwords with the given bcrypt cost.
// A cost of zero selects bcrypt.DefaultCost.
func NewStaticProvider(cost int, accounts ...Account) (*StaticProvider, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	entries := make(map[string]staticEntry, len(accounts))
	for _, acc := range accounts {
		if !acc.Role.Valid() {
			return nil, fmt.Errorf("auth: account %q: %w", acc.Username, ErrUnknownRole)
		}
		key := NormalizeUsername(acc.Username)
		if _, dup := entries[key]; dup {
			return nil, fmt.Errorf("auth: duplicate account %q", acc.Username)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(acc.Password), cost)
		if err != nil {
			return nil, fmt.Errorf("auth: hash password for %q: %w", acc.Username, err)
		}
		entries[key] = staticEntry{identity: acc.Identity, hash: hash}
	}
	return &StaticProvider{accounts: entries}, nil
}

// Authenticate matches the username case-insensitively and the password exactly.
func (p *StaticProvider) Authenticate(ctx context.Context, username, password string) (Identity, error) {
	entry, ok := p.accounts[NormalizeUsername(username)]
	if !ok {
		return Identity{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(entry.hash, []byte(password)); err != nil {
		return Identity{}, ErrInvalidCredentials
	}
	return entry.identity, nil
}

var _ Provider = (*StaticProvider)(nil)
