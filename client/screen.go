package client

import (
	"context"
	"regexp"
	"sort"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/Joaolucasos169/gestao-projeto-karate/core"
)

const (
	// searchDebounce holds back filtering while the user is still typing.
	searchDebounce = 300 * time.Millisecond
	// bannerTTL is how long a feedback banner stays up before auto-dismissing.
	bannerTTL = 4 * time.Second
)

var dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ValidationError blocks a submission client-side; no network call is made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Field + ": " + e.Message }

// Row is the projection a list screen renders: the display name plus a
// secondary identifier (phone, CPF) matched digits-only when searching.
type Row struct {
	ID        int
	Nome      string
	Documento string
}

// Resource adapts one entity's API calls to the generic screen contract.
// Delete is the soft variant wherever the entity supports it.
type Resource interface {
	List(ctx context.Context) ([]Row, error)
	Create(ctx context.Context, fields map[string]string) error
	Update(ctx context.Context, id int, fields map[string]string) error
	Delete(ctx context.Context, id int) error
}

// FormSpec declares which submitted fields must be present and which must be
// strict YYYY-MM-DD dates.
type FormSpec struct {
	Required []string
	Dates    []string
}

// Screen is the view-model of one CRUD list screen. The backend stays
// authoritative: the rows held here are a cache replaced by Load after every
// successful mutation.
type Screen struct {
	res  Resource
	form FormSpec

	// Confirm guards deletions; a nil Confirm refuses them all.
	Confirm func(msg string) bool
	// OnChange fires after every state change so the UI can re-render.
	OnChange func()

	debounce  time.Duration
	bannerTTL time.Duration

	mu          sync.Mutex
	rows        []Row
	term        string
	timer       *time.Timer
	bannerTimer *time.Timer
	editingID   int // 0 = no edit view open
	banner      string
}

func NewScreen(res Resource, form FormSpec) *Screen {
	return &Screen{
		res:       res,
		form:      form,
		debounce:  searchDebounce,
		bannerTTL: bannerTTL,
	}
}

// Load fetches the full list and replaces the cache. A failure becomes an
// inline banner rather than a blank screen; the previous rows stay visible.
func (s *Screen) Load(ctx context.Context) error {
	rows, err := s.res.List(ctx)
	if err != nil {
		s.setBanner(friendlyMessage(err))
		return err
	}

	s.mu.Lock()
	s.rows = rows
	s.mu.Unlock()
	s.changed()
	return nil
}

// Search schedules a filter-term change. Rapid successive calls collapse into
// one: only the last term within the debounce window takes effect.
func (s *Screen) Search(term string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.debounce, func() {
		s.mu.Lock()
		s.term = term
		s.mu.Unlock()
		s.changed()
	})
}

// Visible returns the rows to render: filtered by the committed search term
// and sorted by name with pt-BR collation, blanks last. The underlying cache
// is never mutated.
func (s *Screen) Visible() []Row {
	s.mu.Lock()
	term := s.term
	rows := make([]Row, 0, len(s.rows))
	for _, r := range s.rows {
		if term == "" || core.ContainsFold(r.Nome, term) || core.ContainsDigits(r.Documento, core.DigitsOnly(term)) {
			rows = append(rows, r)
		}
	}
	s.mu.Unlock()

	sort.SliceStable(rows, func(i, j int) bool {
		return core.LessNome(rows[i].Nome, rows[j].Nome)
	})
	return rows
}

// Create validates client-side, submits and reloads. Validation failures
// never reach the network.
func (s *Screen) Create(ctx context.Context, fields map[string]string) error {
	if err := s.validate(fields); err != nil {
		return err
	}
	if err := s.res.Create(ctx, fields); err != nil {
		if errors.Cause(err) == ErrUnauthorized {
			return err
		}
		s.setBanner(friendlyMessage(err))
		return err
	}
	return s.Load(ctx)
}

// Update validates and submits. Input-class failures (400/409) keep the edit
// view open for correction; anything else, a dead connection included, closes
// it so the user is never stuck in a broken modal.
func (s *Screen) Update(ctx context.Context, id int, fields map[string]string) error {
	if err := s.validate(fields); err != nil {
		return err
	}
	if err := s.res.Update(ctx, id, fields); err != nil {
		if errors.Cause(err) == ErrUnauthorized {
			return err
		}
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.IsInputError() {
			s.setBanner(apiErr.Message)
			return err
		}
		s.CloseEdit()
		s.setBanner(friendlyMessage(err))
		return err
	}
	s.CloseEdit()
	return s.Load(ctx)
}

// Delete asks for confirmation and then soft-deletes: the server flips the
// active flag, nothing is hard-removed.
func (s *Screen) Delete(ctx context.Context, id int) error {
	if s.Confirm == nil || !s.Confirm("Confirma a exclusão?") {
		return nil
	}
	if err := s.res.Delete(ctx, id); err != nil {
		if errors.Cause(err) == ErrUnauthorized {
			return err
		}
		s.setBanner(friendlyMessage(err))
		return err
	}
	return s.Load(ctx)
}

func (s *Screen) OpenEdit(id int) {
	s.mu.Lock()
	s.editingID = id
	s.mu.Unlock()
	s.changed()
}

func (s *Screen) CloseEdit() {
	s.mu.Lock()
	s.editingID = 0
	s.mu.Unlock()
	s.changed()
}

// EditingID returns the id under edit, zero when the edit view is closed.
func (s *Screen) EditingID() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editingID
}

// Banner returns the current feedback message, empty when dismissed.
func (s *Screen) Banner() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.banner
}

func (s *Screen) validate(fields map[string]string) error {
	for _, name := range s.form.Required {
		if core.CleanString(fields[name]) == "" {
			return &ValidationError{Field: name, Message: "campo obrigatório"}
		}
	}
	for _, name := range s.form.Dates {
		v := fields[name]
		if v == "" {
			continue
		}
		if !dateRe.MatchString(v) {
			return &ValidationError{Field: name, Message: "data deve estar no formato AAAA-MM-DD"}
		}
		if _, err := time.Parse("2006-01-02", v); err != nil {
			return &ValidationError{Field: name, Message: "data inválida"}
		}
	}
	return nil
}

func (s *Screen) setBanner(msg string) {
	s.mu.Lock()
	s.banner = msg
	if s.bannerTimer != nil {
		s.bannerTimer.Stop()
	}
	s.bannerTimer = time.AfterFunc(s.bannerTTL, func() {
		s.mu.Lock()
		s.banner = ""
		s.mu.Unlock()
		s.changed()
	})
	s.mu.Unlock()
	s.changed()
}

func (s *Screen) changed() {
	if s.OnChange != nil {
		s.OnChange()
	}
}

// friendlyMessage maps an error to what the banner shows.
func friendlyMessage(err error) string {
	var connErr *ConnectionError
	if errors.As(err, &connErr) {
		return connErr.Error()
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return "erro inesperado"
}
