package client

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempStore(t *testing.T) *SessionStore {
	t.Helper()
	return NewSessionStore(filepath.Join(t.TempDir(), "session.json"))
}

func TestSessionStoreRoundtrip(t *testing.T) {
	store := tempStore(t)

	profile := Profile{ID: 7, Nome: "Joana Prado", Email: "joana@academia.com", NivelAcesso: "admin"}
	require.NoError(t, store.Set("tok-123", profile))

	sess, err := store.Get()
	require.NoError(t, err)
	assert.Equal(t, "tok-123", sess.Token)
	assert.Equal(t, profile, sess.User)

	token, err := store.Token()
	require.NoError(t, err)
	assert.Equal(t, "tok-123", token)
}

func TestSessionStoreAbsent(t *testing.T) {
	store := tempStore(t)

	_, err := store.Get()
	assert.Equal(t, ErrNoSession, err)

	_, err = store.Token()
	assert.Equal(t, ErrNoSession, err)

	// clearing what does not exist is fine
	assert.NoError(t, store.Clear())
}

func TestSessionStoreBlankToken(t *testing.T) {
	store := tempStore(t)
	require.NoError(t, os.WriteFile(store.path, []byte(`{"token":"","user":{"id":1}}`), 0o600))

	_, err := store.Get()
	assert.Equal(t, ErrNoSession, err)
}

func TestSessionStoreCorruptFile(t *testing.T) {
	store := tempStore(t)
	require.NoError(t, os.WriteFile(store.path, []byte("not json"), 0o600))

	_, err := store.Get()
	assert.Equal(t, ErrNoSession, err)
}

func TestSessionStoreClear(t *testing.T) {
	store := tempStore(t)
	require.NoError(t, store.Set("tok", Profile{ID: 1}))
	require.NoError(t, store.Clear())

	_, err := store.Get()
	assert.Equal(t, ErrNoSession, err)
	_, statErr := os.Stat(store.path)
	assert.True(t, os.IsNotExist(statErr))
}
