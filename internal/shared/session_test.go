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

func newTestSessionManager(t *testing.T) *SessionManager {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewSessionManager(client, "test_session", time.Hour, false)
}

func TestSessionIssueAndLoad(t *testing.T) {
	sm := newTestSessionManager(t)
	ctx := context.Background()

	rec := httptest.NewRecorder()
	issued, err := sm.Issue(ctx, rec, 42, "admin@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, issued.ID)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "test_session", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])

	loaded, err := sm.Load(ctx, req)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, int64(42), loaded.AdminID)
	assert.Equal(t, "admin@example.com", loaded.Email)
}

func TestSessionLoadWithoutCookie(t *testing.T) {
	sm := newTestSessionManager(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	sess, err := sm.Load(context.Background(), req)
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestSessionLoadUnknownToken(t *testing.T) {
	sm := newTestSessionManager(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "test_session", Value: "forged-token"})

	sess, err := sm.Load(context.Background(), req)
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestSessionDestroy(t *testing.T) {
	sm := newTestSessionManager(t)
	ctx := context.Background()

	rec := httptest.NewRecorder()
	issued, err := sm.Issue(ctx, rec, 1, "admin@example.com")
	require.NoError(t, err)

	destroyRec := httptest.NewRecorder()
	require.NoError(t, sm.Destroy(ctx, destroyRec, issued))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(rec.Result().Cookies()[0])
	sess, err := sm.Load(ctx, req)
	require.NoError(t, err)
	assert.Nil(t, sess)

	// The cookie is expired on the client too.
	cookies := destroyRec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)
}

func TestSessionContextRoundTrip(t *testing.T) {
	sess := &Session{ID: "abc", AdminID: 9}
	ctx := WithSession(context.Background(), sess)

	assert.Equal(t, sess, SessionFromContext(ctx))
	assert.Nil(t, SessionFromContext(context.Background()))
}
