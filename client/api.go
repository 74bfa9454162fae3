// Package client is the Go rendition of the browser layer: session handling,
// a thin HTTP API client and the view-model logic of the CRUD and grading
// screens, with no UI toolkit attached.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync/atomic"

	"github.com/pkg/errors"
)

// ErrUnauthorized signals an expired or missing credential. It always means
// "force logout": the session has already been cleared by the time callers
// see it, never retry the request.
var ErrUnauthorized = errors.New("usuário não autenticado")

// APIError is a non-2xx response other than 401, carrying the server's
// message (or an "HTTP <status>" fallback when the body is not parseable).
type APIError struct {
	StatusCode int
	Message    string
	Fields     map[string]string // field -> message, on validation responses
}

func (e *APIError) Error() string { return e.Message }

// Retryable errors do not exist in this client; IsInputError tells whether
// the failure is something the user can fix by correcting the form.
func (e *APIError) IsInputError() bool {
	return e.StatusCode == http.StatusBadRequest || e.StatusCode == http.StatusConflict
}

// ConnectionError is a transport failure: no response came back at all.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string { return "erro de conexão com o servidor" }
func (e *ConnectionError) Unwrap() error { return e.Err }

// Client talks to the management API. The zero value is not usable; build it
// with New.
type Client struct {
	baseURL  string
	http     *http.Client
	sessions *SessionStore

	// onUnauthorized runs at most once per login when a 401 comes back,
	// after the session has been cleared. Screens hook their redirect here.
	onUnauthorized func()
	loggedOut      uint32
}

func New(baseURL string, sessions *SessionStore) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     http.DefaultClient,
		sessions: sessions,
	}
}

// SetHTTPClient swaps the underlying http.Client (tests, custom transports).
func (c *Client) SetHTTPClient(hc *http.Client) { c.http = hc }

// OnUnauthorized registers the force-logout hook.
func (c *Client) OnUnauthorized(fn func()) { c.onUnauthorized = fn }

// Request performs one API call. A non-nil body is JSON-encoded; a non-nil
// out receives the decoded 2xx response. The stored token, when present, is
// attached as a bearer credential. There are no retries and no caching.
func (c *Client) Request(ctx context.Context, method, path string, body, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "encoding request body")
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return errors.Wrap(err, "building request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token, err := c.sessions.Token(); err == nil {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &ConnectionError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		c.forceLogout()
		return ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.apiError(resp)
	}
	if out != nil {
		if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
			return errors.Wrap(err, "decoding response")
		}
	}
	return nil
}

// forceLogout clears the session and fires the hook exactly once per login,
// so overlapping 401s cannot stack redirects.
func (c *Client) forceLogout() {
	if !atomic.CompareAndSwapUint32(&c.loggedOut, 0, 1) {
		return
	}
	c.sessions.Clear() // nolint:errcheck
	if c.onUnauthorized != nil {
		c.onUnauthorized()
	}
}

// apiError parses the server's error body: plain errors come wrapped under a
// "message" key, validation failures as a bare field->message map. Anything
// else falls back to "HTTP <status>".
func (c *Client) apiError(resp *http.Response) *APIError {
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Message:    fmt.Sprintf("HTTP %d", resp.StatusCode),
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || len(body) == 0 {
		return apiErr
	}

	if msg, ok := body["message"]; ok && len(body) == 1 {
		apiErr.Message = msg
		return apiErr
	}

	apiErr.Fields = body
	for _, v := range body {
		apiErr.Message = v
		break
	}
	return apiErr
}
