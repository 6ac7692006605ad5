package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticTokens struct{ token string }

func (s staticTokens) AccessToken() string { return s.token }

func newTestClient(t *testing.T, handler http.HandlerFunc, token string) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, 5*time.Second, staticTokens{token: token}, zerolog.Nop())
}

func TestClient_AttachesBearerToken(t *testing.T) {
	var gotAuth string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}, "a1")

	var out []map[string]any
	require.NoError(t, c.Get(context.Background(), "/api/registry/wards/", &out))
	assert.Equal(t, "Bearer a1", gotAuth)
}

func TestClient_NoTokenNoHeader(t *testing.T) {
	var hasAuth bool
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, hasAuth = r.Header["Authorization"]
		w.Write([]byte(`{}`))
	}, "")

	require.NoError(t, c.Get(context.Background(), "/x/", nil))
	assert.False(t, hasAuth)
}

func TestClient_SetsRequestID(t *testing.T) {
	var first, second string
	calls := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls == 0 {
			first = r.Header.Get("X-Request-ID")
		} else {
			second = r.Header.Get("X-Request-ID")
		}
		calls++
		w.Write([]byte(`{}`))
	}, "")

	require.NoError(t, c.Get(context.Background(), "/x/", nil))
	require.NoError(t, c.Get(context.Background(), "/x/", nil))
	assert.NotEmpty(t, first)
	assert.NotEmpty(t, second)
	assert.NotEqual(t, first, second)
}

func TestClient_UnauthorizedError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"token expired"}`))
	}, "stale")

	err := c.Get(context.Background(), "/api/registry/wards/", nil)
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	assert.Equal(t, "token expired", err.Error())
}

func TestClient_DecodesResponse(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":7,"ward_name":"North"}`))
	}, "")

	var out map[string]any
	require.NoError(t, c.Get(context.Background(), "/x/", &out))
	assert.Equal(t, float64(7), out["id"])
	assert.Equal(t, "North", out["ward_name"])
}

func TestClient_PostSendsJSONBody(t *testing.T) {
	var gotCT, gotBody string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotCT = r.Header.Get("Content-Type")
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":1}`))
	}, "")

	var out map[string]any
	err := c.Post(context.Background(), "/x/", map[string]any{"ward_number": int64(5)}, &out)
	require.NoError(t, err)
	assert.Equal(t, "application/json", gotCT)
	assert.JSONEq(t, `{"ward_number":5}`, gotBody)
}

func TestMessageFromBody(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"plain string body", `"nope"`, "nope"},
		{"detail", `{"detail":"invalid credentials"}`, "invalid credentials"},
		{"error key", `{"error":"broken"}`, "broken"},
		{"non_field_errors", `{"non_field_errors":["mismatch"]}`, "mismatch"},
		{"field error list", `{"ward_number":["must be a number"]}`, "ward_number: must be a number"},
		{"field error string", `{"email":"taken"}`, "email: taken"},
		{"detail wins over field", `{"ward":"x","detail":"d"}`, "d"},
		{"raw text", `something went wrong`, "something went wrong"},
		{"html ignored", `<html><body>502</body></html>`, ""},
		{"empty", ``, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, messageFromBody([]byte(tt.body)))
		})
	}
}

func TestError_FallbackMessage(t *testing.T) {
	err := &Error{StatusCode: http.StatusBadGateway}
	assert.Equal(t, "Bad Gateway", err.Error())
}
