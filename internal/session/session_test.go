package session

import (
	"encoding/base64"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	t.Setenv(EnvToken, "")
	return NewStore(t.TempDir())
}

func TestStore_LoginLogoutRoundTrip(t *testing.T) {
	s := newTestStore(t)

	assert.False(t, s.IsAuthenticated())
	assert.Empty(t, s.AccessToken())

	require.NoError(t, s.SetTokens("a1", "r1"))
	assert.True(t, s.IsAuthenticated())
	assert.Equal(t, "a1", s.AccessToken())
	assert.Equal(t, "r1", s.RefreshToken())

	tokens, err := s.Tokens()
	require.NoError(t, err)
	require.NotNil(t, tokens)
	assert.Equal(t, "a1", tokens.Access)
	assert.Equal(t, "r1", tokens.Refresh)
	assert.Equal(t, "file", tokens.Source)

	require.NoError(t, s.Clear())
	assert.False(t, s.IsAuthenticated())
}

func TestStore_ClearIsIdempotent(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Clear())
	require.NoError(t, s.Clear())
}

func TestStore_EmptyAccessTokenRejected(t *testing.T) {
	s := newTestStore(t)

	assert.Error(t, s.SetTokens("", "r1"))
	assert.Error(t, s.SetTokens("   ", "r1"))
}

func TestStore_StripsBearerPrefix(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.SetTokens("Bearer a1", ""))
	assert.Equal(t, "a1", s.AccessToken())
}

func TestStore_EnvOverride(t *testing.T) {
	s := NewStore(t.TempDir())
	t.Setenv(EnvToken, "Bearer env-token")

	tokens, err := s.Tokens()
	require.NoError(t, err)
	require.NotNil(t, tokens)
	assert.Equal(t, "env-token", tokens.Access)
	assert.Equal(t, "env", tokens.Source)
	assert.True(t, s.IsAuthenticated())
}

func TestStore_FilePermissions(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "state")
	s := NewStore(dir)
	t.Setenv(EnvToken, "")

	require.NoError(t, s.SetTokens("a1", "r1"))

	fi, err := os.Stat(filepath.Join(dir, credFileName))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), fi.Mode().Perm())
}

// unsignedJWT builds a syntactically valid JWT with an empty signature.
func unsignedJWT(t *testing.T, claims map[string]any) string {
	t.Helper()
	enc := func(v any) string {
		b, err := json.Marshal(v)
		require.NoError(t, err)
		return base64.RawURLEncoding.EncodeToString(b)
	}
	header := map[string]any{"alg": "none", "typ": "JWT"}
	return enc(header) + "." + enc(claims) + "."
}

func TestStore_Claims(t *testing.T) {
	s := newTestStore(t)

	exp := time.Now().Add(time.Hour).Unix()
	tok := unsignedJWT(t, map[string]any{
		"sub":   "42",
		"email": "vicar@example.org",
		"exp":   exp,
	})
	require.NoError(t, s.SetTokens(tok, ""))

	c, err := s.Claims()
	require.NoError(t, err)
	assert.Equal(t, "42", c.Subject)
	assert.Equal(t, "vicar@example.org", c.Email)
	require.NotNil(t, c.ExpiresAt)
	assert.Equal(t, exp, c.ExpiresAt.Unix())
}

func TestStore_ClaimsOpaqueToken(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.SetTokens("not-a-jwt", ""))

	_, err := s.Claims()
	assert.Error(t, err)
}

func TestStore_ClaimsNotLoggedIn(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Claims()
	assert.Error(t, err)
}
