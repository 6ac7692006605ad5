package auth

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eglise/parish/internal/api"
	"github.com/eglise/parish/internal/registry"
	"github.com/eglise/parish/internal/session"
)

type fixture struct {
	store  *session.Store
	client *api.Client
	svc    *Service
}

func newFixture(t *testing.T, handler http.Handler) *fixture {
	t.Helper()
	t.Setenv(session.EnvToken, "")

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store := session.NewStore(t.TempDir())
	client := api.New(srv.URL, 5*time.Second, store, zerolog.Nop())
	return &fixture{
		store:  store,
		client: client,
		svc:    NewService(client, store, zerolog.Nop()),
	}
}

func TestLogin_StoresTokensAndAuthenticatesNextCall(t *testing.T) {
	var loginBody map[string]string
	var listAuth string

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/accounts/login/", func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		json.Unmarshal(b, &loginBody)
		w.Write([]byte(`{"access":"a1","refresh":"r1"}`))
	})
	mux.HandleFunc("GET /api/registry/wards/", func(w http.ResponseWriter, r *http.Request) {
		listAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	})
	f := newFixture(t, mux)

	assert.False(t, f.svc.IsAuthenticated())

	pair, err := f.svc.Login(context.Background(), Credentials{
		Email:    "vicar@example.org",
		Password: "secret",
	})
	require.NoError(t, err)
	assert.Equal(t, "a1", pair.Access)
	assert.Equal(t, "r1", pair.Refresh)
	assert.Equal(t, map[string]string{
		"email":    "vicar@example.org",
		"password": "secret",
	}, loginBody)

	assert.True(t, f.svc.IsAuthenticated())

	// the very next registry call must carry the fresh token
	wards := registry.NewService(f.client, registry.Wards)
	_, err = wards.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer a1", listAuth)
}

func TestLogin_RejectionPropagatesServerMessage(t *testing.T) {
	f := newFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"Invalid email or password"}`))
	}))

	_, err := f.svc.Login(context.Background(), Credentials{
		Email:    "vicar@example.org",
		Password: "wrong",
	})
	require.Error(t, err)
	assert.Equal(t, "Invalid email or password", err.Error())
	assert.False(t, f.svc.IsAuthenticated())
}

func TestLogin_ValidatesBeforeSending(t *testing.T) {
	called := false
	f := newFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	_, err := f.svc.Login(context.Background(), Credentials{Email: "not-an-email", Password: "x"})
	assert.Error(t, err)

	_, err = f.svc.Login(context.Background(), Credentials{Email: "a@b.org", Password: ""})
	assert.Error(t, err)

	assert.False(t, called)
}

func TestLogin_MissingAccessTokenRejected(t *testing.T) {
	f := newFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))

	_, err := f.svc.Login(context.Background(), Credentials{Email: "a@b.org", Password: "x"})
	require.Error(t, err)
	assert.False(t, f.svc.IsAuthenticated())
}

func TestLogout_ClearsSession(t *testing.T) {
	f := newFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"access":"a1","refresh":"r1"}`))
	}))

	_, err := f.svc.Login(context.Background(), Credentials{Email: "a@b.org", Password: "x"})
	require.NoError(t, err)
	require.True(t, f.svc.IsAuthenticated())

	require.NoError(t, f.svc.Logout())
	assert.False(t, f.svc.IsAuthenticated())

	// logging out twice is fine
	require.NoError(t, f.svc.Logout())
}
