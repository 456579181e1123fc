package db

import (
	"context"
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTx struct {
	pgx.Tx
	db *fakeDB
}

func (t *fakeTx) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	if t.db.failOn != "" && strings.Contains(sql, t.db.failOn) {
		return pgconn.CommandTag{}, errors.New("syntax error")
	}
	t.db.executed = append(t.db.executed, sql)
	return pgconn.NewCommandTag("CREATE TABLE"), nil
}

func (t *fakeTx) Commit(context.Context) error {
	t.db.commits++
	return nil
}

func (t *fakeTx) Rollback(context.Context) error {
	t.db.rollbacks++
	return nil
}

type fakeDB struct {
	failOn    string
	executed  []string
	commits   int
	rollbacks int
}

func (d *fakeDB) Begin(context.Context) (pgx.Tx, error) {
	return &fakeTx{db: d}, nil
}

func TestMigrateRunsInOrder(t *testing.T) {
	fsys := fstest.MapFS{
		"migrations/0002_b.sql": {Data: []byte("second")},
		"migrations/0001_a.sql": {Data: []byte("first")},
		"migrations/notes.txt":  {Data: []byte("ignored")},
	}
	db := &fakeDB{}

	require.NoError(t, migrate(context.Background(), db, fsys))
	assert.Equal(t, []string{"first", "second"}, db.executed)
	assert.Equal(t, 2, db.commits)
	assert.Zero(t, db.rollbacks)
}

func TestMigrateStopsOnFailure(t *testing.T) {
	fsys := fstest.MapFS{
		"migrations/0001_a.sql": {Data: []byte("first")},
		"migrations/0002_b.sql": {Data: []byte("broken")},
		"migrations/0003_c.sql": {Data: []byte("third")},
	}
	db := &fakeDB{failOn: "broken"}

	err := migrate(context.Background(), db, fsys)
	assert.ErrorContains(t, err, "0002_b.sql")
	assert.Equal(t, []string{"first"}, db.executed)
	assert.Equal(t, 1, db.rollbacks)
}

func TestEmbeddedMigrations(t *testing.T) {
	db := &fakeDB{}
	require.NoError(t, Migrate(context.Background(), db))
	require.Len(t, db.executed, 2)
	assert.Contains(t, db.executed[0], "fleet_users")
	assert.Contains(t, db.executed[1], "audit_logs")
}
