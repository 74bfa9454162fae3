package inmemdb

import (
	"sort"

	"github.com/Joaolucasos169/gestao-projeto-karate/core/exame"
)

type exameRepository struct {
	db     *exameTable
	alunos *alunoTable
}

func NewExameRepository(db *DB) exame.Repository {
	return &exameRepository{db: db.exame, alunos: db.aluno}
}

// denormalize fills aluno_nome and aluno_faixa the way the SQL join does.
func (repo *exameRepository) denormalize(insc exame.Inscricao) exame.Inscricao {
	repo.alunos.mutex.RLock()
	defer repo.alunos.mutex.RUnlock()

	if a, ok := repo.alunos.table[insc.FkAluno]; ok {
		insc.AlunoNome = a.Nome
		insc.AlunoFaixa = a.GrauAtual
	}
	return insc
}

func (repo *exameRepository) CreateExame(e exame.Exame, alunosIDs []int) (exame.Exame, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.seq++
	e.ID = repo.db.seq
	repo.db.table[e.ID] = &e

	for _, alunoID := range alunosIDs {
		repo.db.inscSeq++
		insc := exame.Inscricao{
			ID:        repo.db.inscSeq,
			FkExame:   e.ID,
			FkAluno:   alunoID,
			CreatedAt: e.CreatedAt,
			UpdatedAt: e.UpdatedAt,
		}
		repo.db.inscricoes[insc.ID] = &insc
	}
	return e, nil
}

func (repo *exameRepository) QueryAllExames() ([]exame.Exame, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	exames := make([]exame.Exame, 0, len(repo.db.table))
	for _, e := range repo.db.table {
		exames = append(exames, *e)
	}
	// newest first
	sort.Slice(exames, func(i, j int) bool {
		if !exames[i].DataExame.Equal(exames[j].DataExame.Time) {
			return exames[i].DataExame.After(exames[j].DataExame.Time)
		}
		return exames[i].ID > exames[j].ID
	})
	return exames, nil
}

func (repo *exameRepository) GetExameByID(id int) (exame.Exame, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if e, ok := repo.db.table[id]; ok {
		return *e, nil
	}
	return exame.Exame{}, exame.ErrNotFound
}

func (repo *exameRepository) UpdateExame(e exame.Exame) (exame.Exame, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	orig, ok := repo.db.table[e.ID]
	if !ok {
		return exame.Exame{}, exame.ErrNotFound
	}
	e.CreatedAt = orig.CreatedAt
	repo.db.table[e.ID] = &e
	return e, nil
}

func (repo *exameRepository) DeleteExame(id int) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.table[id]; !ok {
		return exame.ErrNotFound
	}
	delete(repo.db.table, id)
	for inscID, insc := range repo.db.inscricoes {
		if insc.FkExame == id {
			delete(repo.db.inscricoes, inscID)
		}
	}
	return nil
}

func (repo *exameRepository) QueryInscricoes(exameID int) ([]exame.Inscricao, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	inscricoes := make([]exame.Inscricao, 0)
	for _, insc := range repo.db.inscricoes {
		if insc.FkExame == exameID {
			inscricoes = append(inscricoes, repo.denormalize(*insc))
		}
	}
	sort.Slice(inscricoes, func(i, j int) bool { return inscricoes[i].ID < inscricoes[j].ID })
	return inscricoes, nil
}

func (repo *exameRepository) GetInscricaoByID(id int) (exame.Inscricao, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if insc, ok := repo.db.inscricoes[id]; ok {
		return repo.denormalize(*insc), nil
	}
	return exame.Inscricao{}, exame.ErrInscricaoNotFound
}

func (repo *exameRepository) UpdateInscricaoNotas(i exame.Inscricao) (exame.Inscricao, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	orig, ok := repo.db.inscricoes[i.ID]
	if !ok {
		return exame.Inscricao{}, exame.ErrInscricaoNotFound
	}
	orig.Notas = i.Notas
	orig.Media = i.Media
	orig.Aprovado = i.Aprovado
	orig.Observacao = i.Observacao
	orig.UpdatedAt = i.UpdatedAt
	return repo.denormalize(*orig), nil
}
