package aula

import (
	"errors"
	"time"

	"github.com/Joaolucasos169/gestao-projeto-karate/core"
	"github.com/Joaolucasos169/gestao-projeto-karate/core/professor"
)

var (
	// errors
	ErrNotFound = errors.New("aula não encontrada")

	errProfessorInvalido = errors.New("professor não encontrado ou inativo")
)

type (
	Repository interface {
		CreateAula(a Aula) (Aula, error)
		QueryAllAulas() ([]Aula, error)
		GetAulaByID(id int) (Aula, error)
		UpdateAula(a Aula) (Aula, error)
		DeleteAula(id int) error
	}

	// ProfessorGetter resolves the owning teacher of an Aula.
	ProfessorGetter interface {
		GetByID(id int) (professor.Professor, error)
	}

	Service struct {
		repo    Repository
		profSvc ProfessorGetter
	}
)

func NewService(repo Repository, profSvc ProfessorGetter) *Service {
	return &Service{repo: repo, profSvc: profSvc}
}

func (svc *Service) checkProfessor(id int) error {
	p, err := svc.profSvc.GetByID(id)
	if err != nil || !p.Ativo {
		return core.NewValidationError(errProfessorInvalido, core.FieldError{
			Field: "fk_professor", Error: errProfessorInvalido.Error(),
		})
	}
	return nil
}

func (svc *Service) Create(na NewAula) (Aula, error) {
	now := time.Now().UTC()
	a := Aula{
		NomeTurma:     na.NomeTurma,
		Modalidade:    na.Modalidade,
		DiasSemana:    na.DiasSemana,
		HorarioInicio: na.HorarioInicio,
		HorarioFim:    na.HorarioFim,
		FkProfessor:   na.FkProfessor,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if a.Modalidade == "" {
		a.Modalidade = ModalidadePadrao
	}
	return svc.repo.CreateAula(a)
}

func (svc *Service) QueryAll() ([]Aula, error) {
	return svc.repo.QueryAllAulas()
}

func (svc *Service) GetByID(id int) (Aula, error) {
	return svc.repo.GetAulaByID(id)
}

func (svc *Service) Update(id int, ua UpdateAula) (Aula, error) {
	a := Aula{
		ID:            id,
		NomeTurma:     ua.NomeTurma,
		Modalidade:    ua.Modalidade,
		DiasSemana:    ua.DiasSemana,
		HorarioInicio: ua.HorarioInicio,
		HorarioFim:    ua.HorarioFim,
		FkProfessor:   ua.FkProfessor,
		UpdatedAt:     time.Now().UTC(),
	}
	return svc.repo.UpdateAula(a)
}

// Delete removes the Aula for good; unlike alunos/professores there is no
// history hanging off a turma.
func (svc *Service) Delete(id int) error {
	return svc.repo.DeleteAula(id)
}
