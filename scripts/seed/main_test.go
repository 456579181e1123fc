package main

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/rapidsphere/fleet-erp/internal/auth"
)

type captureExec struct {
	rows [][]any
}

func (c *captureExec) Exec(_ context.Context, _ string, args ...any) (pgconn.CommandTag, error) {
	c.rows = append(c.rows, args)
	if len(c.rows) == 1 {
		return pgconn.NewCommandTag("INSERT 0 0"), nil
	}
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func TestSeedUsers(t *testing.T) {
	db := &captureExec{}

	n, err := seedUsers(context.Background(), db, bcrypt.MinCost, auth.DemoAccounts())
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	require.Len(t, db.rows, 4)

	first := db.rows[0]
	assert.Equal(t, "admin", first[0])
	assert.Equal(t, "Admin", first[2])
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(first[4].(string)), []byte("admin")))
	assert.Equal(t, "Site Manager", db.rows[2][2])
}

func TestSeedUsersRejectsUnknownRole(t *testing.T) {
	_, err := seedUsers(context.Background(), &captureExec{}, bcrypt.MinCost, []auth.Account{{Identity: auth.Identity{Username: "x"}}})
	assert.ErrorIs(t, err, auth.ErrUnknownRole)
}
