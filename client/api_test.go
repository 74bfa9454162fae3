package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *SessionStore) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store := tempStore(t)
	return New(srv.URL, store), store
}

func TestRequestHeaders(t *testing.T) {
	var gotAuth, gotContentType string
	c, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		w.Write([]byte(`{}`))
	}))
	require.NoError(t, store.Set("tok-abc", Profile{ID: 1}))

	err := c.Request(context.Background(), http.MethodPost, "/x", map[string]string{"a": "b"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-abc", gotAuth)
	assert.Equal(t, "application/json", gotContentType)
}

func TestRequestNoBodyNoContentType(t *testing.T) {
	var gotContentType string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		w.Write([]byte(`{}`))
	}))

	require.NoError(t, c.Request(context.Background(), http.MethodGet, "/x", nil, nil))
	assert.Empty(t, gotContentType)
}

func TestRequestUnauthorized(t *testing.T) {
	c, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	require.NoError(t, store.Set("stale", Profile{ID: 1}))

	var hookCalls int
	c.OnUnauthorized(func() { hookCalls++ })

	err := c.Request(context.Background(), http.MethodGet, "/x", nil, nil)
	assert.Equal(t, ErrUnauthorized, errors.Cause(err))

	// session cleared
	_, err = store.Get()
	assert.Equal(t, ErrNoSession, err)

	// a second 401 must not fire the hook again
	err = c.Request(context.Background(), http.MethodGet, "/x", nil, nil)
	assert.Equal(t, ErrUnauthorized, errors.Cause(err))
	assert.Equal(t, 1, hookCalls)
}

func TestRequestAPIError(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
		wantFields  map[string]string
		wantInput   bool
	}{
		{
			name:        "string message",
			status:      http.StatusNotFound,
			body:        `{"message": "não encontrado"}`,
			wantMessage: "não encontrado",
		},
		{
			name:        "validation field map",
			status:      http.StatusBadRequest,
			body:        `{"nome": "campo obrigatório"}`,
			wantMessage: "campo obrigatório",
			wantFields:  map[string]string{"nome": "campo obrigatório"},
			wantInput:   true,
		},
		{
			name:        "conflict is input error",
			status:      http.StatusConflict,
			body:        `{"message": "email já cadastrado"}`,
			wantMessage: "email já cadastrado",
			wantInput:   true,
		},
		{
			name:        "unparseable body falls back",
			status:      http.StatusInternalServerError,
			body:        `<html>boom</html>`,
			wantMessage: "HTTP 500",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))

			err := c.Request(context.Background(), http.MethodGet, "/x", nil, nil)
			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.wantMessage, apiErr.Message)
			assert.Equal(t, tt.wantFields, apiErr.Fields)
			assert.Equal(t, tt.wantInput, apiErr.IsInputError())
		})
	}
}

func TestRequestConnectionFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // nothing listening anymore

	c := New(srv.URL, tempStore(t))
	err := c.Request(context.Background(), http.MethodGet, "/x", nil, nil)

	var connErr *ConnectionError
	require.True(t, errors.As(err, &connErr))
	assert.Equal(t, "erro de conexão com o servidor", connErr.Error())
}

func TestLoginStoresSessionAndRearmsLogoutHook(t *testing.T) {
	var status = http.StatusOK
	c, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		w.Write([]byte(`{"message":"Login realizado com sucesso!","token":"tok-1",` +
			`"user":{"id":3,"nome":"Carlos","email":"carlos@academia.com","nivel_acesso":"professor"}}`))
	}))

	var hookCalls int
	c.OnUnauthorized(func() { hookCalls++ })

	usr, err := c.Login(context.Background(), "carlos@academia.com", "s3nh4")
	require.NoError(t, err)
	assert.Equal(t, 3, usr.ID)

	sess, err := store.Get()
	require.NoError(t, err)
	assert.Equal(t, "tok-1", sess.Token)
	assert.Equal(t, Profile{ID: 3, Nome: "Carlos", Email: "carlos@academia.com", NivelAcesso: "professor"}, sess.User)

	// expire the session, hook fires once
	status = http.StatusUnauthorized
	c.Request(context.Background(), http.MethodGet, "/x", nil, nil) // nolint:errcheck
	assert.Equal(t, 1, hookCalls)

	// logging back in re-arms the hook for the next expiry
	status = http.StatusOK
	_, err = c.Login(context.Background(), "carlos@academia.com", "s3nh4")
	require.NoError(t, err)

	status = http.StatusUnauthorized
	c.Request(context.Background(), http.MethodGet, "/x", nil, nil) // nolint:errcheck
	assert.Equal(t, 2, hookCalls)
}
