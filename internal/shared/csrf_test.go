package shared

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSRFTokenLifecycle(t *testing.T) {
	m := NewCSRFManager("secret")
	ctx := context.Background()
	sess := &Session{ID: "session-a"}

	token, err := m.EnsureToken(ctx, sess)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	again, err := m.EnsureToken(ctx, sess)
	require.NoError(t, err)
	assert.Equal(t, token, again)

	assert.NoError(t, m.VerifyToken(ctx, sess, token))
	assert.ErrorIs(t, m.VerifyToken(ctx, sess, ""), ErrCSRFTokenMissing)
	assert.ErrorIs(t, m.VerifyToken(ctx, sess, token+"x"), ErrCSRFTokenMismatch)
	assert.ErrorIs(t, m.VerifyToken(ctx, nil, token), ErrCSRFTokenMissing)
}

func TestCSRFTokenBoundToSession(t *testing.T) {
	m := NewCSRFManager("secret")
	ctx := context.Background()

	a := &Session{ID: "session-a"}
	token, err := m.EnsureToken(ctx, a)
	require.NoError(t, err)

	// A token copied into another session fails the signature check.
	b := &Session{ID: "session-b"}
	b.Set(CSRFSessionKey, token)
	assert.ErrorIs(t, m.VerifyToken(ctx, b, token), ErrCSRFTokenMismatch)

	other := NewCSRFManager("other")
	assert.ErrorIs(t, other.VerifyToken(ctx, a, token), ErrCSRFTokenMismatch)

	_, err = m.EnsureToken(ctx, nil)
	assert.ErrorIs(t, err, ErrSessionMissing)
}
