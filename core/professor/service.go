package professor

import (
	"errors"
	"time"

	"github.com/Joaolucasos169/gestao-projeto-karate/core"
	"github.com/Joaolucasos169/gestao-projeto-karate/core/user"
)

var (
	// errors
	ErrNotFound  = errors.New("professor não encontrado")
	ErrCPFExists = errors.New("já existe um professor com este CPF")
)

type (
	Repository interface {
		CheckCPFUniqueness(cpf string, excluded ...Professor) error
		CreateProfessor(p Professor) (Professor, error)
		QueryAllProfessores() ([]Professor, error)
		GetProfessorByID(id int) (Professor, error)
		UpdateProfessor(p Professor, ativo *bool) (Professor, error)
	}

	// CredentialService creates the login account tied to a Professor.
	CredentialService interface {
		Create(nu user.NewUser) (user.User, error)
	}

	Service struct {
		repo    Repository
		credSvc CredentialService
	}
)

func NewService(repo Repository, credSvc CredentialService) *Service {
	return &Service{repo: repo, credSvc: credSvc}
}

func (svc *Service) CheckCPFUniqueness(cpf string, excl ...Professor) error {
	if err := svc.repo.CheckCPFUniqueness(cpf, excl...); err != nil {
		if err == ErrCPFExists {
			return core.NewValidationError(err, core.FieldError{Field: "cpf", Error: err.Error()})
		}
		return err
	}
	return nil
}

// Create registers the Professor and its login account (nível "professor").
func (svc *Service) Create(np NewProfessor) (Professor, error) {
	usr, err := svc.credSvc.Create(user.NewUser{
		Nome:        np.Nome,
		Email:       np.Email,
		Senha:       np.Senha,
		NivelAcesso: user.NivelProfessor,
	})
	if err != nil {
		return Professor{}, err
	}

	now := time.Now().UTC()
	p := Professor{
		Nome:            np.Nome,
		CPF:             np.CPF,
		DataNascimento:  np.DataNascimento,
		Telefone:        np.Telefone,
		Endereco:        np.Endereco,
		GrauFaixa:       np.GrauFaixa,
		DataContratacao: np.DataContratacao,
		Ativo:           true,
		FkUsuario:       usr.ID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if p.DataContratacao.IsZero() {
		p.DataContratacao = core.Today()
	}
	return svc.repo.CreateProfessor(p)
}

func (svc *Service) QueryAll() ([]Professor, error) {
	return svc.repo.QueryAllProfessores()
}

// QueryAtivos lists active teachers only.
func (svc *Service) QueryAtivos() ([]Professor, error) {
	all, err := svc.repo.QueryAllProfessores()
	if err != nil {
		return nil, err
	}
	ativos := make([]Professor, 0, len(all))
	for _, p := range all {
		if p.Ativo {
			ativos = append(ativos, p)
		}
	}
	return ativos, nil
}

func (svc *Service) GetByID(id int) (Professor, error) {
	return svc.repo.GetProfessorByID(id)
}

func (svc *Service) Update(id int, up UpdateProfessor) (Professor, error) {
	p := Professor{
		ID:              id,
		Nome:            up.Nome,
		CPF:             up.CPF,
		DataNascimento:  up.DataNascimento,
		Telefone:        up.Telefone,
		Endereco:        up.Endereco,
		GrauFaixa:       up.GrauFaixa,
		DataContratacao: up.DataContratacao,
		UpdatedAt:       time.Now().UTC(),
	}
	return svc.repo.UpdateProfessor(p, up.Ativo)
}

// Deactivate flips the ativo flag; professores are never hard-deleted so that
// aulas keep a valid owner reference.
func (svc *Service) Deactivate(id int) (Professor, error) {
	p, err := svc.repo.GetProfessorByID(id)
	if err != nil {
		return Professor{}, err
	}
	ativo := false
	p.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateProfessor(p, &ativo)
}
