package aluno

import (
	"errors"
	"time"
)

var (
	// errors
	ErrNotFound = errors.New("aluno não encontrado")
)

type (
	Repository interface {
		CreateAluno(a Aluno) (Aluno, error)
		QueryAllAlunos() ([]Aluno, error)
		// FilterAlunos applies AND operation on available QueryFilter fields.
		FilterAlunos(filter QueryFilter) ([]Aluno, error)
		GetAlunoByID(id int) (Aluno, error)
		UpdateAluno(a Aluno, ativo *bool) (Aluno, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(na NewAluno) (Aluno, error) {
	now := time.Now().UTC()
	a := Aluno{
		Nome:                na.Nome,
		DataNascimento:      na.DataNascimento,
		Sexo:                na.Sexo,
		Telefone:            na.Telefone,
		Endereco:            na.Endereco,
		GrauAtual:           na.GrauAtual,
		DataUltimaGraduacao: na.DataUltimaGraduacao,
		Ativo:               true,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if a.GrauAtual == "" {
		a.GrauAtual = GrauInicial
	}
	return svc.repo.CreateAluno(a)
}

// QueryAtivos lists active students only; inactivated ones are kept for history.
func (svc *Service) QueryAtivos() ([]Aluno, error) {
	ativo := true
	return svc.repo.FilterAlunos(QueryFilter{Ativo: &ativo})
}

func (svc *Service) QueryAll() ([]Aluno, error) {
	return svc.repo.QueryAllAlunos()
}

func (svc *Service) Filter(filter QueryFilter) ([]Aluno, error) {
	filter.Clean()
	if filter.IsEmpty() {
		return svc.repo.QueryAllAlunos()
	}
	return svc.repo.FilterAlunos(filter)
}

func (svc *Service) GetByID(id int) (Aluno, error) {
	return svc.repo.GetAlunoByID(id)
}

func (svc *Service) Update(id int, ua UpdateAluno) (Aluno, error) {
	a := Aluno{
		ID:                  id,
		Nome:                ua.Nome,
		DataNascimento:      ua.DataNascimento,
		Sexo:                ua.Sexo,
		Telefone:            ua.Telefone,
		Endereco:            ua.Endereco,
		GrauAtual:           ua.GrauAtual,
		DataUltimaGraduacao: ua.DataUltimaGraduacao,
		UpdatedAt:           time.Now().UTC(),
	}
	return svc.repo.UpdateAluno(a, ua.Ativo)
}

// Deactivate flips the ativo flag; alunos are never hard-deleted so that
// historical exam records keep pointing at them.
func (svc *Service) Deactivate(id int) (Aluno, error) {
	a, err := svc.repo.GetAlunoByID(id)
	if err != nil {
		return Aluno{}, err
	}
	ativo := false
	a.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateAluno(a, &ativo)
}
