package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/desertthunder/phono/internal/shared"
)

// SessionCookie is the name of the cookie carrying the session token.
const SessionCookie = "phono_session"

type sessionKey struct{}

// session pairs an authenticated user with an expiry deadline.
type session struct {
	userID    int64
	expiresAt time.Time
}

// SessionStore tracks authenticated sessions in memory.
//
// Tokens are opaque random identifiers; expired entries are dropped lazily on lookup.
type SessionStore struct {
	mu       sync.RWMutex
	ttl      time.Duration
	sessions map[string]session
}

// NewSessionStore creates a [SessionStore] whose sessions live for ttl.
func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{ttl: ttl, sessions: map[string]session{}}
}

// Create issues a new session token for userID.
func (s *SessionStore) Create(userID int64) string {
	token := shared.GenerateID()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[token] = session{userID: userID, expiresAt: time.Now().Add(s.ttl)}

	return token
}

// Resolve returns the user id bound to token, or false when the token is
// unknown or expired.
func (s *SessionStore) Resolve(token string) (int64, bool) {
	s.mu.RLock()
	sess, ok := s.sessions[token]
	s.mu.RUnlock()

	if !ok {
		return 0, false
	}

	if time.Now().After(sess.expiresAt) {
		s.Revoke(token)
		return 0, false
	}

	return sess.userID, true
}

// Revoke removes token from the store.
func (s *SessionStore) Revoke(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, token)
}

// RequireSession returns [Middleware] rejecting requests without a valid session cookie.
//
// On success the authenticated user id is stored on the request context for [UserID].
func RequireSession(store *SessionStore) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookie)
			if err != nil {
				http.Error(w, "Not authenticated", http.StatusUnauthorized)
				return
			}

			userID, ok := store.Resolve(cookie.Value)
			if !ok {
				http.Error(w, "Not authenticated", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), sessionKey{}, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserID extracts the authenticated user id placed on ctx by [RequireSession].
func UserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(sessionKey{}).(int64)
	return id, ok
}
