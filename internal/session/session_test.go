package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{Subject: "sara", ExpiresAt: jwt.NewNumericDate(expiresAt)}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("any-secret"))
	require.NoError(t, err)
	return token
}

func TestTokenExpired(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	assert.False(t, TokenExpired("", now))
	assert.False(t, TokenExpired("opaque-token", now))
	assert.False(t, TokenExpired(signedToken(t, now.Add(time.Hour)), now))
	assert.True(t, TokenExpired(signedToken(t, now.Add(-time.Minute)), now))

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "x"}).SignedString([]byte("k"))
	require.NoError(t, err)
	assert.False(t, TokenExpired(noExp, now))
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore("")
	assert.Empty(t, store.Token(ctx))

	require.NoError(t, store.SetToken(ctx, "abc"))
	assert.Equal(t, "abc", store.Token(ctx))

	require.NoError(t, store.ClearToken(ctx))
	assert.Empty(t, store.Token(ctx))
}

func TestSCSStoreRoundTrip(t *testing.T) {
	manager := NewManager(time.Hour, false)
	store := NewSCSStore(manager)

	var cookie *http.Cookie
	signIn := manager.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, store.SetToken(r.Context(), "jwt-1"))
	}))
	rec := httptest.NewRecorder()
	signIn.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/en/signin", nil))
	for _, c := range rec.Result().Cookies() {
		if c.Name == manager.Cookie.Name {
			cookie = c
		}
	}
	require.NotNil(t, cookie)

	var seen string
	read := manager.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = store.Token(r.Context())
		require.NoError(t, store.ClearToken(r.Context()))
		assert.Empty(t, store.Token(r.Context()))
	}))
	req := httptest.NewRequest(http.MethodGet, "/en/", nil)
	req.AddCookie(cookie)
	read.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "jwt-1", seen)
}

func TestSCSStoreWithoutLoadedSession(t *testing.T) {
	store := NewSCSStore(scs.New())
	assert.Empty(t, store.Token(context.Background()))

	var nilStore *SCSStore
	assert.Empty(t, nilStore.Token(context.Background()))
}

func TestNewManager(t *testing.T) {
	manager := NewManager(2*time.Hour, true)

	assert.Equal(t, 2*time.Hour, manager.Lifetime)
	assert.Equal(t, "paskoocheh_session", manager.Cookie.Name)
	assert.True(t, manager.Cookie.HttpOnly)
	assert.True(t, manager.Cookie.Secure)
	assert.Equal(t, http.SameSiteLaxMode, manager.Cookie.SameSite)
}
