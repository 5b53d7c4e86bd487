package auth

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/xxxsen/micropost/internal/model"
	appErr "github.com/xxxsen/micropost/internal/pkg/errors"
	"github.com/xxxsen/micropost/internal/pkg/jwt"
)

var secret = []byte("test-secret")

type countingLookup struct {
	users map[string]*model.User
	err   error
	calls int
}

func (l *countingLookup) GetByID(_ context.Context, userID string) (*model.User, error) {
	l.calls++
	if l.err != nil {
		return nil, l.err
	}
	user, ok := l.users[userID]
	if !ok {
		return nil, appErr.ErrNotFound
	}
	return user, nil
}

func newLookup() *countingLookup {
	return &countingLookup{users: map[string]*model.User{
		"u1": {ID: "u1", Email: "ann@example.com", Name: "Ann", PasswordHash: "secret-hash"},
	}}
}

func mustToken(t *testing.T, userID string, ttl time.Duration) string {
	t.Helper()
	token, err := jwt.GenerateToken(userID, secret, ttl)
	require.NoError(t, err)
	return token
}

// bareStringToken signs a payload that is valid JSON but not an object.
func bareStringToken(t *testing.T) string {
	t.Helper()
	enc := base64.RawURLEncoding
	signing := enc.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`)) + "." + enc.EncodeToString([]byte(`"hello"`))
	sig, err := jwtlib.SigningMethodHS256.Sign(signing, secret)
	require.NoError(t, err)
	return signing + "." + enc.EncodeToString(sig)
}

func TestIdentity(t *testing.T) {
	anon := Anonymous()
	require.True(t, anon.IsAnonymous())
	require.Equal(t, "", anon.UserID())
	_, ok := anon.User()
	require.False(t, ok)
	require.True(t, Identified(nil).IsAnonymous())

	var zero Identity
	require.True(t, zero.IsAnonymous())

	src := &model.User{ID: "u1", PasswordHash: "hash"}
	id := Identified(src)
	require.False(t, id.IsAnonymous())
	require.Equal(t, "u1", id.UserID())
	user, ok := id.User()
	require.True(t, ok)
	require.Empty(t, user.PasswordHash)
	require.Equal(t, "hash", src.PasswordHash)
}

func TestResolveValidToken(t *testing.T) {
	lookup := newLookup()
	a := NewAuthenticator(lookup, secret)

	id := a.Resolve(context.Background(), mustToken(t, "u1", time.Hour))
	require.False(t, id.IsAnonymous())
	require.Equal(t, "u1", id.UserID())
	user, _ := id.User()
	require.Equal(t, "Ann", user.Name)
	require.Empty(t, user.PasswordHash)
	require.Equal(t, 1, lookup.calls)
}

func TestResolveFailsOpen(t *testing.T) {
	cases := []struct {
		name      string
		token     func(t *testing.T) string
		lookupErr error
		calls     int
	}{
		{name: "no token", token: func(*testing.T) string { return "" }},
		{name: "garbage", token: func(*testing.T) string { return "not.a.token" }},
		{name: "expired", token: func(t *testing.T) string { return mustToken(t, "u1", -time.Minute) }},
		{
			name: "wrong secret",
			token: func(t *testing.T) string {
				token, err := jwt.GenerateToken("u1", []byte("other"), time.Hour)
				require.NoError(t, err)
				return token
			},
		},
		{name: "bare string payload", token: bareStringToken},
		{name: "empty user id", token: func(t *testing.T) string { return mustToken(t, "", time.Hour) }},
		{name: "deleted user", token: func(t *testing.T) string { return mustToken(t, "ghost", time.Hour) }, calls: 1},
		{
			name:      "lookup error",
			token:     func(t *testing.T) string { return mustToken(t, "u1", time.Hour) },
			lookupErr: errors.New("db down"),
			calls:     1,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			lookup := newLookup()
			lookup.err = tc.lookupErr
			a := NewAuthenticator(lookup, secret)

			id := a.Resolve(context.Background(), tc.token(t))
			require.True(t, id.IsAnonymous())
			require.Equal(t, tc.calls, lookup.calls)
		})
	}
}
