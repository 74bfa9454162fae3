package client

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubResource counts calls and fails on demand.
type stubResource struct {
	rows      []Row
	listErr   error
	createErr error
	updateErr error
	deleteErr error

	listCalls, createCalls, updateCalls, deleteCalls int
}

func (s *stubResource) List(context.Context) ([]Row, error) {
	s.listCalls++
	return s.rows, s.listErr
}

func (s *stubResource) Create(context.Context, map[string]string) error {
	s.createCalls++
	return s.createErr
}

func (s *stubResource) Update(context.Context, int, map[string]string) error {
	s.updateCalls++
	return s.updateErr
}

func (s *stubResource) Delete(context.Context, int) error {
	s.deleteCalls++
	return s.deleteErr
}

func newTestScreen(res *stubResource) *Screen {
	s := NewScreen(res, FormSpec{Required: []string{"nome"}, Dates: []string{"data_nascimento"}})
	s.debounce = time.Millisecond
	s.Confirm = func(string) bool { return true }
	return s
}

func commitSearch(s *Screen, term string) {
	s.Search(term)
	time.Sleep(20 * time.Millisecond)
}

func TestScreenSearchFoldsAccentsAndDigits(t *testing.T) {
	res := &stubResource{rows: []Row{
		{ID: 1, Nome: "João Silva", Documento: "(11) 91234-5678"},
		{ID: 2, Nome: "Maria Souza", Documento: "(21) 99887-7665"},
	}}
	s := newTestScreen(res)
	require.NoError(t, s.Load(context.Background()))

	commitSearch(s, "joao")
	visible := s.Visible()
	require.Len(t, visible, 1)
	assert.Equal(t, "João Silva", visible[0].Nome)

	// digits match regardless of punctuation
	commitSearch(s, "2345")
	visible = s.Visible()
	require.Len(t, visible, 1)
	assert.Equal(t, 1, visible[0].ID)

	commitSearch(s, "")
	assert.Len(t, s.Visible(), 2)
}

func TestScreenSearchDebounce(t *testing.T) {
	res := &stubResource{rows: []Row{{ID: 1, Nome: "Ana"}, {ID: 2, Nome: "Bruno"}}}
	s := newTestScreen(res)
	s.debounce = 50 * time.Millisecond
	require.NoError(t, s.Load(context.Background()))

	// rapid keystrokes: only the last term takes effect
	s.Search("a")
	s.Search("an")
	s.Search("bruno")
	time.Sleep(100 * time.Millisecond)

	visible := s.Visible()
	require.Len(t, visible, 1)
	assert.Equal(t, "Bruno", visible[0].Nome)
}

func TestScreenSortBlanksLast(t *testing.T) {
	res := &stubResource{rows: []Row{
		{ID: 1, Nome: "Beatriz"},
		{ID: 2, Nome: ""},
		{ID: 3, Nome: "André"},
	}}
	s := newTestScreen(res)
	require.NoError(t, s.Load(context.Background()))

	visible := s.Visible()
	require.Len(t, visible, 3)
	assert.Equal(t, "André", visible[0].Nome)
	assert.Equal(t, "Beatriz", visible[1].Nome)
	assert.Equal(t, "", visible[2].Nome)
}

func TestScreenCreateValidation(t *testing.T) {
	res := &stubResource{}
	s := newTestScreen(res)

	tests := []struct {
		name   string
		fields map[string]string
	}{
		{name: "missing required", fields: map[string]string{"nome": "  "}},
		{name: "bad date format", fields: map[string]string{"nome": "Lia", "data_nascimento": "12/05/2010"}},
		{name: "impossible date", fields: map[string]string{"nome": "Lia", "data_nascimento": "2010-13-40"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.Create(context.Background(), tt.fields)
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
		})
	}
	// invalid input never reaches the network
	assert.Zero(t, res.createCalls)

	require.NoError(t, s.Create(context.Background(), map[string]string{"nome": "Lia", "data_nascimento": "2010-05-12"}))
	assert.Equal(t, 1, res.createCalls)
	assert.Equal(t, 1, res.listCalls) // reloaded after success
}

func TestScreenUpdateKeepsEditOpenOnInputError(t *testing.T) {
	res := &stubResource{updateErr: &APIError{StatusCode: http.StatusBadRequest, Message: "data inválida"}}
	s := newTestScreen(res)
	s.OpenEdit(5)

	err := s.Update(context.Background(), 5, map[string]string{"nome": "Lia"})
	require.Error(t, err)
	assert.Equal(t, 5, s.EditingID())
	assert.Equal(t, "data inválida", s.Banner())
}

func TestScreenUpdateClosesEditOnOtherFailures(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{name: "connection failure", err: &ConnectionError{}},
		{name: "server error", err: &APIError{StatusCode: http.StatusInternalServerError, Message: "HTTP 500"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := &stubResource{updateErr: tt.err}
			s := newTestScreen(res)
			s.OpenEdit(5)

			err := s.Update(context.Background(), 5, map[string]string{"nome": "Lia"})
			require.Error(t, err)
			assert.Zero(t, s.EditingID(), "edit view must not stay stuck")
		})
	}
}

func TestScreenUpdateSuccessClosesAndReloads(t *testing.T) {
	res := &stubResource{}
	s := newTestScreen(res)
	s.OpenEdit(5)

	require.NoError(t, s.Update(context.Background(), 5, map[string]string{"nome": "Lia"}))
	assert.Zero(t, s.EditingID())
	assert.Equal(t, 1, res.listCalls)
}

func TestScreenDeleteNeedsConfirmation(t *testing.T) {
	res := &stubResource{}
	s := newTestScreen(res)

	s.Confirm = func(string) bool { return false }
	require.NoError(t, s.Delete(context.Background(), 9))
	assert.Zero(t, res.deleteCalls)

	s.Confirm = func(string) bool { return true }
	require.NoError(t, s.Delete(context.Background(), 9))
	assert.Equal(t, 1, res.deleteCalls)
	assert.Equal(t, 1, res.listCalls)
}

func TestScreenLoadFailureKeepsRowsAndSetsBanner(t *testing.T) {
	res := &stubResource{rows: []Row{{ID: 1, Nome: "Ana"}}}
	s := newTestScreen(res)
	require.NoError(t, s.Load(context.Background()))

	res.listErr = &ConnectionError{}
	require.Error(t, s.Load(context.Background()))
	assert.Len(t, s.Visible(), 1, "previous rows stay visible")
	assert.Equal(t, "erro de conexão com o servidor", s.Banner())
}

func TestScreenBannerAutoDismiss(t *testing.T) {
	res := &stubResource{listErr: &ConnectionError{}}
	s := newTestScreen(res)
	s.bannerTTL = 10 * time.Millisecond

	require.Error(t, s.Load(context.Background()))
	require.NotEmpty(t, s.Banner())

	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, s.Banner())
}
