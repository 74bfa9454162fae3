package client

import (
	"context"

	"github.com/Joaolucasos169/gestao-projeto-karate/core"
	"github.com/Joaolucasos169/gestao-projeto-karate/core/aluno"
	"github.com/Joaolucasos169/gestao-projeto-karate/core/professor"
)

// AlunoResource binds the student endpoints to the generic screen. The
// secondary search identifier is the phone number.
type AlunoResource struct {
	api *Client
}

func NewAlunoScreen(api *Client) *Screen {
	return NewScreen(&AlunoResource{api: api}, FormSpec{
		Required: []string{"nome", "data_nascimento"},
		Dates:    []string{"data_nascimento", "data_ultima_graduacao"},
	})
}

func (r *AlunoResource) List(ctx context.Context) ([]Row, error) {
	alunos, err := r.api.ListAlunos(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]Row, len(alunos))
	for i, a := range alunos {
		rows[i] = Row{ID: a.ID, Nome: a.Nome, Documento: a.Telefone}
	}
	return rows, nil
}

func (r *AlunoResource) Create(ctx context.Context, fields map[string]string) error {
	data := aluno.NewAluno{
		Nome:      fields["nome"],
		Sexo:      fields["sexo"],
		Telefone:  fields["telefone"],
		Endereco:  fields["endereco"],
		GrauAtual: fields["grau_atual"],
	}
	var err error
	if data.DataNascimento, err = core.ParseDate(fields["data_nascimento"]); err != nil {
		return &ValidationError{Field: "data_nascimento", Message: "data inválida"}
	}
	if v := fields["data_ultima_graduacao"]; v != "" {
		if data.DataUltimaGraduacao, err = core.ParseDate(v); err != nil {
			return &ValidationError{Field: "data_ultima_graduacao", Message: "data inválida"}
		}
	}
	_, err = r.api.CreateAluno(ctx, data)
	return err
}

func (r *AlunoResource) Update(ctx context.Context, id int, fields map[string]string) error {
	data := aluno.UpdateAluno{
		Nome:      fields["nome"],
		Sexo:      fields["sexo"],
		Telefone:  fields["telefone"],
		Endereco:  fields["endereco"],
		GrauAtual: fields["grau_atual"],
	}
	var err error
	if v := fields["data_nascimento"]; v != "" {
		if data.DataNascimento, err = core.ParseDate(v); err != nil {
			return &ValidationError{Field: "data_nascimento", Message: "data inválida"}
		}
	}
	if v := fields["data_ultima_graduacao"]; v != "" {
		if data.DataUltimaGraduacao, err = core.ParseDate(v); err != nil {
			return &ValidationError{Field: "data_ultima_graduacao", Message: "data inválida"}
		}
	}
	_, err = r.api.UpdateAluno(ctx, id, data)
	return err
}

func (r *AlunoResource) Delete(ctx context.Context, id int) error {
	return r.api.DeleteAluno(ctx, id)
}

// ProfessorResource binds the teacher endpoints; the secondary search
// identifier is the CPF.
type ProfessorResource struct {
	api *Client
}

func NewProfessorScreen(api *Client) *Screen {
	return NewScreen(&ProfessorResource{api: api}, FormSpec{
		Required: []string{"nome", "cpf", "data_nascimento"},
		Dates:    []string{"data_nascimento", "data_contratacao"},
	})
}

func (r *ProfessorResource) List(ctx context.Context) ([]Row, error) {
	professores, err := r.api.ListProfessores(ctx)
	if err != nil {
		return nil, err
	}
	rows := make([]Row, len(professores))
	for i, p := range professores {
		rows[i] = Row{ID: p.ID, Nome: p.Nome, Documento: p.CPF}
	}
	return rows, nil
}

func (r *ProfessorResource) Create(ctx context.Context, fields map[string]string) error {
	data := professor.NewProfessor{
		Nome:      fields["nome"],
		CPF:       fields["cpf"],
		Telefone:  fields["telefone"],
		Endereco:  fields["endereco"],
		GrauFaixa: fields["grau_faixa"],
		Email:     fields["email"],
		Senha:     fields["senha"],
	}
	var err error
	if data.DataNascimento, err = core.ParseDate(fields["data_nascimento"]); err != nil {
		return &ValidationError{Field: "data_nascimento", Message: "data inválida"}
	}
	if v := fields["data_contratacao"]; v != "" {
		if data.DataContratacao, err = core.ParseDate(v); err != nil {
			return &ValidationError{Field: "data_contratacao", Message: "data inválida"}
		}
	}
	_, err = r.api.CreateProfessor(ctx, data)
	return err
}

func (r *ProfessorResource) Update(ctx context.Context, id int, fields map[string]string) error {
	data := professor.UpdateProfessor{
		Nome:      fields["nome"],
		CPF:       fields["cpf"],
		Telefone:  fields["telefone"],
		Endereco:  fields["endereco"],
		GrauFaixa: fields["grau_faixa"],
	}
	var err error
	if v := fields["data_nascimento"]; v != "" {
		if data.DataNascimento, err = core.ParseDate(v); err != nil {
			return &ValidationError{Field: "data_nascimento", Message: "data inválida"}
		}
	}
	if v := fields["data_contratacao"]; v != "" {
		if data.DataContratacao, err = core.ParseDate(v); err != nil {
			return &ValidationError{Field: "data_contratacao", Message: "data inválida"}
		}
	}
	_, err = r.api.UpdateProfessor(ctx, id, data)
	return err
}

func (r *ProfessorResource) Delete(ctx context.Context, id int) error {
	return r.api.DeleteProfessor(ctx, id)
}

var (
	_ Resource = (*AlunoResource)(nil)
	_ Resource = (*ProfessorResource)(nil)
)
