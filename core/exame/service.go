package exame

import (
	"errors"
	"time"

	"github.com/Joaolucasos169/gestao-projeto-karate/core"
	"github.com/Joaolucasos169/gestao-projeto-karate/core/aluno"
)

var (
	// errors
	ErrNotFound          = errors.New("exame não encontrado")
	ErrInscricaoNotFound = errors.New("inscrição não encontrada")

	errRosterVazio = errors.New("nenhum aluno válido selecionado para o exame")
)

type (
	Repository interface {
		// CreateExame persists the Exame along with one zeroed Inscricao per
		// roster member, atomically.
		CreateExame(e Exame, alunosIDs []int) (Exame, error)
		// QueryAllExames returns exams newest-first (data_exame, then id).
		QueryAllExames() ([]Exame, error)
		GetExameByID(id int) (Exame, error)
		UpdateExame(e Exame) (Exame, error)
		// DeleteExame removes the exam and all its inscricoes.
		DeleteExame(id int) error
		// QueryInscricoes returns the banca of an exam with aluno_nome and
		// aluno_faixa filled in, in submission order.
		QueryInscricoes(exameID int) ([]Inscricao, error)
		GetInscricaoByID(id int) (Inscricao, error)
		UpdateInscricaoNotas(i Inscricao) (Inscricao, error)
	}

	// RosterResolver narrows aluno.Service down to what roster validation needs.
	RosterResolver interface {
		QueryAtivos() ([]aluno.Aluno, error)
	}

	Service struct {
		repo     Repository
		alunoSvc RosterResolver
	}
)

func NewService(repo Repository, alunoSvc RosterResolver) *Service {
	return &Service{repo: repo, alunoSvc: alunoSvc}
}

// Create schedules the exam and enrolls the roster. Ids that do not match an
// active Aluno are dropped; an exam needs at least one valid entry.
func (svc *Service) Create(ne NewExame) (Exame, error) {
	roster, err := svc.resolveRoster(ne.AlunosIDs)
	if err != nil {
		return Exame{}, err
	}

	now := time.Now().UTC()
	e := Exame{
		NomeEvento: ne.NomeEvento,
		DataExame:  ne.DataExame,
		Hora:       ne.Hora,
		Local:      ne.Local,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	return svc.repo.CreateExame(e, roster)
}

func (svc *Service) resolveRoster(ids []int) ([]int, error) {
	ativos, err := svc.alunoSvc.QueryAtivos()
	if err != nil {
		return nil, err
	}
	known := make(map[int]struct{}, len(ativos))
	for _, a := range ativos {
		known[a.ID] = struct{}{}
	}

	roster := make([]int, 0, len(ids))
	for _, id := range ids {
		if _, ok := known[id]; ok {
			roster = append(roster, id)
		}
	}
	if len(roster) == 0 {
		return nil, core.NewValidationError(errRosterVazio, core.FieldError{
			Field: "alunos_ids", Error: errRosterVazio.Error(),
		})
	}
	return roster, nil
}

func (svc *Service) QueryAll() ([]Exame, error) {
	return svc.repo.QueryAllExames()
}

func (svc *Service) GetByID(id int) (Exame, error) {
	return svc.repo.GetExameByID(id)
}

func (svc *Service) Update(id int, ue UpdateExame) (Exame, error) {
	e := Exame{
		ID:         id,
		NomeEvento: ue.NomeEvento,
		DataExame:  ue.DataExame,
		Hora:       ue.Hora,
		Local:      ue.Local,
		UpdatedAt:  time.Now().UTC(),
	}
	return svc.repo.UpdateExame(e)
}

// Delete removes the exam; its inscricoes go with it.
func (svc *Service) Delete(id int) error {
	return svc.repo.DeleteExame(id)
}

// QueryBanca returns the grading sheet of an exam.
func (svc *Service) QueryBanca(exameID int) ([]Inscricao, error) {
	if _, err := svc.repo.GetExameByID(exameID); err != nil {
		return nil, err
	}
	return svc.repo.QueryInscricoes(exameID)
}

// SalvarNota records the four scores of an Inscricao and recomputes media and
// aprovado server-side; clients only display what comes back.
func (svc *Service) SalvarNota(inscricaoID int, nn NovaNota) (Inscricao, error) {
	insc, err := svc.repo.GetInscricaoByID(inscricaoID)
	if err != nil {
		return Inscricao{}, err
	}

	insc.Notas = nn.Notas
	insc.Media = nn.Notas.Media()
	insc.Aprovado = nn.Notas.Aprovado()
	insc.Observacao = nn.Observacao
	insc.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateInscricaoNotas(insc)
}
