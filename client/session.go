package client

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// ErrNoSession is returned when no session is stored or the stored token is
// blank. Callers should send the user to the login entry point and stop.
var ErrNoSession = errors.New("nenhuma sessão ativa")

// Profile is the slice of the authenticated user kept client-side.
type Profile struct {
	ID          int    `json:"id"`
	Nome        string `json:"nome"`
	Email       string `json:"email"`
	NivelAcesso string `json:"nivel_acesso"`
}

// Session pairs the bearer token with the user profile. The two always travel
// together: a session file either holds both or does not exist.
type Session struct {
	Token string  `json:"token"`
	User  Profile `json:"user"`
}

// SessionStore persists the session as a single JSON file, replaced
// atomically on every write so readers never observe a token without its
// profile (or a half-written file).
type SessionStore struct {
	path string
}

func NewSessionStore(path string) *SessionStore {
	return &SessionStore{path: path}
}

// DefaultSessionPath resolves the per-user session file location.
func DefaultSessionPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrap(err, "resolving config dir")
	}
	return filepath.Join(dir, "gestao-karate", "session.json"), nil
}

// Set writes token and profile in one shot, creating parent directories as
// needed. The file is written to a temp sibling and renamed into place.
func (s *SessionStore) Set(token string, usr Profile) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return errors.Wrap(err, "creating session dir")
	}

	data, err := json.Marshal(Session{Token: token, User: usr})
	if err != nil {
		return errors.Wrap(err, "encoding session")
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".session-*")
	if err != nil {
		return errors.Wrap(err, "creating temp session file")
	}
	defer os.Remove(tmp.Name())

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(err, "writing session")
	}
	if err = tmp.Close(); err != nil {
		return errors.Wrap(err, "closing session file")
	}
	return errors.Wrap(os.Rename(tmp.Name(), s.path), "replacing session file")
}

// Get loads the stored session. A missing file, an unreadable file or a blank
// token all come back as ErrNoSession.
func (s *SessionStore) Get() (Session, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return Session{}, ErrNoSession
	}
	var sess Session
	if err = json.Unmarshal(data, &sess); err != nil || sess.Token == "" {
		return Session{}, ErrNoSession
	}
	return sess, nil
}

// Token is a Get shortcut for callers that only need the credential.
func (s *SessionStore) Token() (string, error) {
	sess, err := s.Get()
	if err != nil {
		return "", err
	}
	return sess.Token, nil
}

// Clear removes the session file; clearing an absent session is a no-op.
func (s *SessionStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "removing session file")
	}
	return nil
}
