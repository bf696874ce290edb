package shared

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// SessionManager orchestrates cookie based sessions backed by Redis.
type SessionManager struct {
	client     *redis.Client
	cookieName string
	ttl        time.Duration
	secure     bool
}

// Session holds the authenticated admin for a request.
type Session struct {
	ID      string
	AdminID int64
	Email   string
}

type sessionPayload struct {
	AdminID int64  `json:"admin_id"`
	Email   string `json:"email"`
}

// NewSessionManager constructs a SessionManager.
func NewSessionManager(client *redis.Client, cookieName string, ttl time.Duration, secure bool) *SessionManager {
	return &SessionManager{
		client:     client,
		cookieName: cookieName,
		ttl:        ttl,
		secure:     secure,
	}
}

// Load resolves the session referenced by the request cookie. A missing or
// expired cookie yields a nil session, not an error.
func (sm *SessionManager) Load(ctx context.Context, r *http.Request) (*Session, error) {
	cookie, err := r.Cookie(sm.cookieName)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return nil, nil
		}
		return nil, err
	}

	payload, err := sm.client.Get(ctx, sm.redisKey(cookie.Value)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var stored sessionPayload
	if err := json.Unmarshal(payload, &stored); err != nil {
		return nil, err
	}

	return &Session{ID: cookie.Value, AdminID: stored.AdminID, Email: stored.Email}, nil
}

// Issue creates a new session for the admin and writes the cookie.
func (sm *SessionManager) Issue(ctx context.Context, w http.ResponseWriter, adminID int64, email string) (*Session, error) {
	id := uuid.NewString()
	payload, err := json.Marshal(sessionPayload{AdminID: adminID, Email: email})
	if err != nil {
		return nil, err
	}
	if err := sm.client.Set(ctx, sm.redisKey(id), payload, sm.ttl).Err(); err != nil {
		return nil, err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sm.cookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(sm.ttl.Seconds()),
		HttpOnly: true,
		Secure:   sm.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return &Session{ID: id, AdminID: adminID, Email: email}, nil
}

// Destroy removes the session from Redis and expires the cookie.
func (sm *SessionManager) Destroy(ctx context.Context, w http.ResponseWriter, sess *Session) error {
	if sess == nil {
		return nil
	}
	if err := sm.client.Del(ctx, sm.redisKey(sess.ID)).Err(); err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sm.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   sm.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (sm *SessionManager) redisKey(id string) string {
	return "sinobridge:session:" + id
}

type sessionCtxKey struct{}

// WithSession stores the session on the context.
func WithSession(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, sessionCtxKey{}, sess)
}

// SessionFromContext retrieves the session, nil when unauthenticated.
func SessionFromContext(ctx context.Context) *Session {
	sess, _ := ctx.Value(sessionCtxKey{}).(*Session)
	return sess
}
