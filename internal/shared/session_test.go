package shared

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSessionManager(t *testing.T) (*SessionManager, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewSessionManager(client, "sid", time.Hour, false), mr
}

func TestSessionRoundTrip(t *testing.T) {
	sm, mr := newTestSessionManager(t)
	ctx := context.Background()

	sess, err := sm.Load(ctx, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	sess.Set("fleet-user", `{"id":"1"}`)
	sess.AddFlash(FlashMessage{Kind: "success", Message: "hello"})

	rr := httptest.NewRecorder()
	require.NoError(t, sm.Commit(ctx, rr, sess))
	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, sess.ID, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.True(t, mr.Exists("fleet:session:"+sess.ID))
	assert.Equal(t, time.Hour, mr.TTL("fleet:session:"+sess.ID))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	loaded, err := sm.Load(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, loaded.ID)
	assert.Equal(t, `{"id":"1"}`, loaded.Get("fleet-user"))
	flash := loaded.PopFlash()
	require.NotNil(t, flash)
	assert.Equal(t, "hello", flash.Message)
	assert.Nil(t, loaded.PopFlash())
}

func TestSessionLoadFallbacks(t *testing.T) {
	sm, mr := newTestSessionManager(t)
	ctx := context.Background()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: "not-a-uuid"})
	sess, err := sm.Load(ctx, req)
	require.NoError(t, err)
	assert.NotEqual(t, "not-a-uuid", sess.ID)

	const id = "0b7f4f7e-8c51-4d8e-9d5c-3f1d2b8f6a10"
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: id})
	sess, err = sm.Load(ctx, req)
	require.NoError(t, err)
	assert.NotEqual(t, id, sess.ID, "unknown ids must not be adopted")
	assert.Empty(t, sess.Get("anything"))

	require.NoError(t, mr.Set("fleet:session:"+id, "{garbage"))
	sess, err = sm.Load(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, id, sess.ID)
	assert.Empty(t, sess.Get("anything"))
}

func TestSessionRenew(t *testing.T) {
	sm, mr := newTestSessionManager(t)
	ctx := context.Background()

	sess, err := sm.Load(ctx, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	sess.Set(CSRFSessionKey, "old-token")
	sess.Set("keep", "v")
	require.NoError(t, sm.Commit(ctx, httptest.NewRecorder(), sess))
	oldID := sess.ID

	require.NoError(t, sm.Renew(ctx, sess))
	assert.NotEqual(t, oldID, sess.ID)
	assert.False(t, mr.Exists("fleet:session:"+oldID))
	assert.Empty(t, sess.Get(CSRFSessionKey))
	assert.Equal(t, "v", sess.Get("keep"))

	rr := httptest.NewRecorder()
	require.NoError(t, sm.Commit(ctx, rr, sess))
	assert.True(t, mr.Exists("fleet:session:"+sess.ID))
	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, sess.ID, cookies[0].Value)

	assert.ErrorIs(t, sm.Renew(ctx, nil), ErrSessionMissing)
}

func TestSessionDestroy(t *testing.T) {
	sm, mr := newTestSessionManager(t)
	ctx := context.Background()

	sess, err := sm.Load(ctx, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	require.NoError(t, sm.Commit(ctx, httptest.NewRecorder(), sess))
	require.True(t, mr.Exists("fleet:session:"+sess.ID))

	sm.Destroy(sess)
	rr := httptest.NewRecorder()
	require.NoError(t, sm.Commit(ctx, rr, sess))
	assert.False(t, mr.Exists("fleet:session:"+sess.ID))
	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)
}

func TestSessionDeleteMissingKeyIsClean(t *testing.T) {
	sess := &Session{ID: "x"}
	sess.Delete("absent")
	assert.False(t, sess.dirty)

	sess.Set("k", "v")
	sess.dirty = false
	sess.Delete("k")
	assert.True(t, sess.dirty)
	assert.Empty(t, sess.Get("k"))
}

func TestSessionContext(t *testing.T) {
	assert.Nil(t, SessionFromContext(context.Background()))
	sess := &Session{ID: "x"}
	assert.Same(t, sess, SessionFromContext(ContextWithSession(context.Background(), sess)))
}
