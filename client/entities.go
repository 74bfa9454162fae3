package client

import (
	"context"
	"fmt"
	"net/http"
	"sync/atomic"

	"github.com/Joaolucasos169/gestao-projeto-karate/core/aluno"
	"github.com/Joaolucasos169/gestao-projeto-karate/core/aula"
	"github.com/Joaolucasos169/gestao-projeto-karate/core/exame"
	"github.com/Joaolucasos169/gestao-projeto-karate/core/professor"
	"github.com/Joaolucasos169/gestao-projeto-karate/core/user"
)

type loginResponse struct {
	Message string    `json:"message"`
	Token   string    `json:"token"`
	User    user.User `json:"user"`
}

// Login authenticates and stores the resulting session atomically. A fresh
// login re-arms the one-shot logout hook.
func (c *Client) Login(ctx context.Context, email, senha string) (user.User, error) {
	var resp loginResponse
	body := map[string]string{"email": email, "senha": senha}
	if err := c.Request(ctx, http.MethodPost, "/api/v1/users/login", body, &resp); err != nil {
		return user.User{}, err
	}

	profile := Profile{
		ID:          resp.User.ID,
		Nome:        resp.User.Nome,
		Email:       resp.User.Email,
		NivelAcesso: resp.User.NivelAcesso,
	}
	if err := c.sessions.Set(resp.Token, profile); err != nil {
		return user.User{}, err
	}
	atomic.StoreUint32(&c.loggedOut, 0)
	return resp.User, nil
}

// Logout drops the stored session; the server keeps no session state.
func (c *Client) Logout() error {
	return c.sessions.Clear()
}

func (c *Client) ListAlunos(ctx context.Context) ([]aluno.Aluno, error) {
	var out []aluno.Aluno
	err := c.Request(ctx, http.MethodGet, "/api/v1/alunos", nil, &out)
	return out, err
}

func (c *Client) CreateAluno(ctx context.Context, data aluno.NewAluno) (aluno.Aluno, error) {
	var out aluno.Aluno
	err := c.Request(ctx, http.MethodPost, "/api/v1/alunos", data, &out)
	return out, err
}

func (c *Client) UpdateAluno(ctx context.Context, id int, data aluno.UpdateAluno) (aluno.Aluno, error) {
	var out aluno.Aluno
	err := c.Request(ctx, http.MethodPut, fmt.Sprintf("/api/v1/alunos/%d", id), data, &out)
	return out, err
}

// DeleteAluno deactivates; the record stays on the server with ativo=false.
func (c *Client) DeleteAluno(ctx context.Context, id int) error {
	return c.Request(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/alunos/%d", id), nil, nil)
}

func (c *Client) ListProfessores(ctx context.Context) ([]professor.Professor, error) {
	var out []professor.Professor
	err := c.Request(ctx, http.MethodGet, "/api/v1/professores", nil, &out)
	return out, err
}

func (c *Client) CreateProfessor(ctx context.Context, data professor.NewProfessor) (professor.Professor, error) {
	var out professor.Professor
	err := c.Request(ctx, http.MethodPost, "/api/v1/professores", data, &out)
	return out, err
}

func (c *Client) UpdateProfessor(ctx context.Context, id int, data professor.UpdateProfessor) (professor.Professor, error) {
	var out professor.Professor
	err := c.Request(ctx, http.MethodPut, fmt.Sprintf("/api/v1/professores/%d", id), data, &out)
	return out, err
}

func (c *Client) DeleteProfessor(ctx context.Context, id int) error {
	return c.Request(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/professores/%d", id), nil, nil)
}

func (c *Client) ListAulas(ctx context.Context) ([]aula.Aula, error) {
	var out []aula.Aula
	err := c.Request(ctx, http.MethodGet, "/api/v1/aulas", nil, &out)
	return out, err
}

func (c *Client) CreateAula(ctx context.Context, data aula.NewAula) (aula.Aula, error) {
	var out aula.Aula
	err := c.Request(ctx, http.MethodPost, "/api/v1/aulas", data, &out)
	return out, err
}

func (c *Client) UpdateAula(ctx context.Context, id int, data aula.UpdateAula) (aula.Aula, error) {
	var out aula.Aula
	err := c.Request(ctx, http.MethodPatch, fmt.Sprintf("/api/v1/aulas/%d", id), data, &out)
	return out, err
}

func (c *Client) DeleteAula(ctx context.Context, id int) error {
	return c.Request(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/aulas/%d", id), nil, nil)
}

func (c *Client) ListExames(ctx context.Context) ([]exame.Exame, error) {
	var out []exame.Exame
	err := c.Request(ctx, http.MethodGet, "/api/v1/exames", nil, &out)
	return out, err
}

func (c *Client) CreateExame(ctx context.Context, data exame.NewExame) (exame.Exame, error) {
	var out exame.Exame
	err := c.Request(ctx, http.MethodPost, "/api/v1/exames", data, &out)
	return out, err
}

func (c *Client) GetExame(ctx context.Context, id int) (exame.Exame, error) {
	var out exame.Exame
	err := c.Request(ctx, http.MethodGet, fmt.Sprintf("/api/v1/exames/%d", id), nil, &out)
	return out, err
}

// DeleteExame removes the exam and its whole banca; irreversible.
func (c *Client) DeleteExame(ctx context.Context, id int) error {
	return c.Request(ctx, http.MethodDelete, fmt.Sprintf("/api/v1/exames/%d", id), nil, nil)
}

// Banca lists the exam's score entries, one per roster member.
func (c *Client) Banca(ctx context.Context, exameID int) ([]exame.Inscricao, error) {
	var out []exame.Inscricao
	err := c.Request(ctx, http.MethodGet, fmt.Sprintf("/api/v1/exames/%d/banca", exameID), nil, &out)
	return out, err
}

// NotaResult carries the authoritative average and verdict computed by the
// server when a grade is saved.
type NotaResult struct {
	Message  string  `json:"message"`
	Media    float64 `json:"media"`
	Aprovado bool    `json:"aprovado"`
}

func (c *Client) SaveNota(ctx context.Context, inscricaoID int, data exame.NovaNota) (NotaResult, error) {
	var out NotaResult
	err := c.Request(ctx, http.MethodPost, fmt.Sprintf("/api/v1/exames/notas/%d", inscricaoID), data, &out)
	return out, err
}
