package app

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("SESSION_SECRET", "s")
	t.Setenv("CSRF_SECRET", "c")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.AppAddr)
	assert.Equal(t, AuthProviderStatic, cfg.AuthProvider)
	assert.Equal(t, 720*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 10, cfg.LoginRateLimit)
	assert.False(t, cfg.AuditEnabled)
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfigRequiresSecrets(t *testing.T) {
	t.Setenv("SESSION_SECRET", "")
	t.Setenv("CSRF_SECRET", "")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := Config{SessionSecret: "s", CSRFSecret: "c", AuthProvider: AuthProviderPostgres}
	require.NoError(t, base.Validate())

	bad := base
	bad.AuthProvider = "ldap"
	assert.ErrorContains(t, bad.Validate(), "ldap")

	bad = base
	bad.LoginRateLimit = -1
	assert.Error(t, bad.Validate())

	bad = base
	bad.CSRFSecret = ""
	assert.Error(t, bad.Validate())
}

func TestNewLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&Config{AppEnv: "staging", LogFormat: "json"}, &buf)
	logger.Debug("hello")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "hello", line["msg"])
	assert.Equal(t, "fleet", line["service"])
	assert.Equal(t, "staging", line["env"])
	assert.Contains(t, line, "source")
}

func TestNewLoggerProductionSkipsDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&Config{AppEnv: "production"}, &buf)
	logger.Debug("hidden")
	assert.Zero(t, buf.Len())
	logger.Info("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestConnectionOptions(t *testing.T) {
	cfg := Config{RedisAddr: "redis:6379", RedisPassword: "pw", RedisDB: 1, PGDSN: "postgres://x", PGMaxConns: 4}

	redisOpts := cfg.Redis()
	assert.Equal(t, "redis:6379", redisOpts.Addr)
	assert.Equal(t, 1, redisOpts.AsynqOpts().DB)

	pg := cfg.Postgres()
	assert.Equal(t, "postgres://x", pg.DSN)
	assert.Equal(t, int32(4), pg.MaxConns)

	bad := Config{SessionSecret: "s", CSRFSecret: "c", AuthProvider: AuthProviderStatic, RedisDB: -1}
	assert.Error(t, bad.Validate())
}
