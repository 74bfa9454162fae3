package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupApp(t *testing.T) *echo.Echo {
	t.Helper()

	db, err := openDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, seedAdmin(db))

	return newApp(db)
}

func doRequest(app *echo.Echo, method, path, body, token string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	return rec
}

func login(t *testing.T, app *echo.Echo) string {
	t.Helper()

	rec := doRequest(app, http.MethodPost, "/auth/login", `{"email":"admin@local","password":"123456"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestHealth(t *testing.T) {
	app := setupApp(t)
	rec := doRequest(app, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
}

func TestLogin(t *testing.T) {
	app := setupApp(t)

	tests := []struct {
		name     string
		body     string
		wantCode int
		wantErr  string
	}{
		{name: "ok", body: `{"email":"admin@local","password":"123456"}`, wantCode: http.StatusOK},
		{name: "missing fields", body: `{"email":"admin@local"}`, wantCode: http.StatusBadRequest, wantErr: "Preencha todos os campos."},
		{name: "unknown user", body: `{"email":"nobody@local","password":"123456"}`, wantCode: http.StatusUnauthorized, wantErr: "Usuário não encontrado."},
		{name: "wrong password", body: `{"email":"admin@local","password":"654321"}`, wantCode: http.StatusUnauthorized, wantErr: "Senha incorreta."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(app, http.MethodPost, "/auth/login", tt.body, "")
			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantErr != "" {
				var resp map[string]string
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.Equal(t, tt.wantErr, resp["error"])
			}
		})
	}
}

func TestVerify(t *testing.T) {
	app := setupApp(t)
	token := login(t, app)

	t.Run("valid token", func(t *testing.T) {
		rec := doRequest(app, http.MethodGet, "/auth/verify", "", token)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Valid bool `json:"valid"`
			User  struct {
				Email string `json:"email"`
			} `json:"user"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Valid)
		assert.Equal(t, "admin@local", resp.User.Email)
	})

	t.Run("missing token", func(t *testing.T) {
		rec := doRequest(app, http.MethodGet, "/auth/verify", "", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		rec := doRequest(app, http.MethodGet, "/auth/verify", "", "not-a-jwt")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestStudents(t *testing.T) {
	app := setupApp(t)
	token := login(t, app)

	t.Run("requires auth", func(t *testing.T) {
		rec := doRequest(app, http.MethodGet, "/students", "", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("name required", func(t *testing.T) {
		rec := doRequest(app, http.MethodPost, "/students", `{"belt":"blue"}`, token)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("create defaults belt to white", func(t *testing.T) {
		rec := doRequest(app, http.MethodPost, "/students", `{"name":"Rafael Souza"}`, token)
		require.Equal(t, http.StatusOK, rec.Code)

		var created student
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
		assert.Equal(t, "white", created.Belt)
		assert.NotZero(t, created.ID)
	})

	t.Run("list is newest first", func(t *testing.T) {
		rec := doRequest(app, http.MethodPost, "/students", `{"name":"Ana Lima","belt":"yellow"}`, token)
		require.Equal(t, http.StatusOK, rec.Code)

		rec = doRequest(app, http.MethodGet, "/students", "", token)
		require.Equal(t, http.StatusOK, rec.Code)

		var students []student
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &students))
		require.GreaterOrEqual(t, len(students), 2)
		assert.Equal(t, "Ana Lima", students[0].Name)
		assert.Greater(t, students[0].ID, students[1].ID)
	})
}
