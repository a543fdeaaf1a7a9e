package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthenticator_RoundTrip(t *testing.T) {
	a := New("test-secret")

	token, err := a.Issue("user-42", time.Hour)
	require.NoError(t, err)

	userID, err := a.UserID(token)
	require.NoError(t, err)
	assert.Equal(t, "user-42", userID)
}

func TestAuthenticator_RejectsBadTokens(t *testing.T) {
	a := New("test-secret")

	expired, err := a.Issue("u1", -time.Minute)
	require.NoError(t, err)

	otherKey, err := New("other-secret").Issue("u1", time.Hour)
	require.NoError(t, err)

	noUser, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "u1"}).
		SignedString([]byte("test-secret"))
	require.NoError(t, err)

	numeric, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": 7}).
		SignedString([]byte("test-secret"))
	require.NoError(t, err)

	for name, token := range map[string]string{
		"expired":   expired,
		"wrong key": otherKey,
		"no claim":  noUser,
		"garbage":   "not.a.token",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := a.UserID(token)
			assert.ErrorIs(t, err, ErrUnauthorized)
		})
	}

	userID, err := a.UserID(numeric)
	require.NoError(t, err, "integer user ids are accepted")
	assert.Equal(t, "7", userID)

	_, err = New("").UserID(numeric)
	assert.ErrorIs(t, err, ErrUnauthorized, "empty secret rejects everything")
}

func TestMiddleware(t *testing.T) {
	a := New("test-secret")
	token, err := a.Issue("u1", time.Hour)
	require.NoError(t, err)

	var seen string
	h := a.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = CurrentUser(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/picks", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "u1", seen)

	req = httptest.NewRequest(http.MethodGet, "/api/picks", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Unauthorized"}`, rec.Body.String())
}

func TestCurrentUser_Missing(t *testing.T) {
	_, err := CurrentUser(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestBearerToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := BearerToken(req)
	assert.False(t, ok)

	req.Header.Set("Authorization", "bearer abc")
	tok, ok := BearerToken(req)
	assert.True(t, ok)
	assert.Equal(t, "abc", tok)

	req.Header.Set("Authorization", "Basic abc")
	_, ok = BearerToken(req)
	assert.False(t, ok)
}
