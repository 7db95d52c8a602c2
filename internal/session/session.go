// Package session keeps the backend session token for the current visitor.
package session

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/golang-jwt/jwt/v4"
)

// TokenKey is the single session entry the token lives under.
const TokenKey = "paskoocheh.token"

// TokenStore reads and replaces the visitor's token. An empty string means signed out.
type TokenStore interface {
	Token(ctx context.Context) string
	SetToken(ctx context.Context, token string) error
	ClearToken(ctx context.Context) error
}

const cookieName = "paskoocheh_session"

// NewManager configures the scs session manager. Sessions stay in memory; the cookie only
// carries the session id.
func NewManager(lifetime time.Duration, secure bool) *scs.SessionManager {
	manager := scs.New()
	if lifetime > 0 {
		manager.Lifetime = lifetime
	}
	manager.Cookie.Name = cookieName
	manager.Cookie.HttpOnly = true
	manager.Cookie.SameSite = http.SameSiteLaxMode
	manager.Cookie.Secure = secure
	return manager
}

// SCSStore keeps the token in the server-side session loaded by scs middleware.
type SCSStore struct {
	manager *scs.SessionManager
}

func NewSCSStore(manager *scs.SessionManager) *SCSStore {
	return &SCSStore{manager: manager}
}

func (s *SCSStore) Token(ctx context.Context) string {
	if s == nil || s.manager == nil {
		return ""
	}
	return readToken(s.manager, ctx)
}

// SetToken renews the session id before storing, so a pre-login session cookie never carries a token.
func (s *SCSStore) SetToken(ctx context.Context, token string) error {
	if err := s.manager.RenewToken(ctx); err != nil {
		return fmt.Errorf("renew session: %w", err)
	}
	s.manager.Put(ctx, TokenKey, token)
	return nil
}

func (s *SCSStore) ClearToken(ctx context.Context) error {
	if readToken(s.manager, ctx) == "" {
		return nil
	}
	s.manager.Remove(ctx, TokenKey)
	if err := s.manager.RenewToken(ctx); err != nil {
		return fmt.Errorf("renew session: %w", err)
	}
	return nil
}

// readToken tolerates a context without a loaded session, which scs reports by panicking.
func readToken(manager *scs.SessionManager, ctx context.Context) (token string) {
	defer func() {
		if recover() != nil {
			token = ""
		}
	}()
	return manager.GetString(ctx, TokenKey)
}

// MemoryStore holds one token for tests and command line use.
type MemoryStore struct {
	mu    sync.RWMutex
	token string
}

func NewMemoryStore(token string) *MemoryStore {
	return &MemoryStore{token: token}
}

func (s *MemoryStore) Token(context.Context) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *MemoryStore) SetToken(_ context.Context, token string) error {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) ClearToken(context.Context) error {
	return s.SetToken(context.Background(), "")
}

// TokenExpired reports whether token carries an exp claim earlier than now. The signature is
// never checked; tokens that are not JWTs, or carry no exp, are left for the backend to judge.
func TokenExpired(token string, now time.Time) bool {
	if token == "" {
		return false
	}

	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}

	return !now.Before(claims.ExpiresAt.Time)
}
