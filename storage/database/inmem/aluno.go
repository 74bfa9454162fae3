package inmemdb

import (
	"sort"

	"github.com/Joaolucasos169/gestao-projeto-karate/core/aluno"
)

type alunoRepository struct {
	db *alunoTable
}

func NewAlunoRepository(db *DB) aluno.Repository {
	return &alunoRepository{db: db.aluno}
}

func (repo *alunoRepository) query() []aluno.Aluno {
	alunos := make([]aluno.Aluno, 0, len(repo.db.table))
	for _, a := range repo.db.table {
		alunos = append(alunos, *a)
	}
	sort.Slice(alunos, func(i, j int) bool { return alunos[i].ID < alunos[j].ID })
	return alunos
}

func (repo *alunoRepository) CreateAluno(a aluno.Aluno) (aluno.Aluno, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.seq++
	a.ID = repo.db.seq
	repo.db.table[a.ID] = &a
	return a, nil
}

func (repo *alunoRepository) QueryAllAlunos() ([]aluno.Aluno, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.query(), nil
}

func (repo *alunoRepository) FilterAlunos(filter aluno.QueryFilter) ([]aluno.Aluno, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	alunos := make([]aluno.Aluno, 0)
	for _, a := range repo.query() {
		if filter.Matches(a) {
			alunos = append(alunos, a)
		}
	}
	return alunos, nil
}

func (repo *alunoRepository) GetAlunoByID(id int) (aluno.Aluno, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if a, ok := repo.db.table[id]; ok {
		return *a, nil
	}
	return aluno.Aluno{}, aluno.ErrNotFound
}

func (repo *alunoRepository) UpdateAluno(a aluno.Aluno, ativo *bool) (aluno.Aluno, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	orig, ok := repo.db.table[a.ID]
	if !ok {
		return aluno.Aluno{}, aluno.ErrNotFound
	}
	a.CreatedAt = orig.CreatedAt
	a.Ativo = orig.Ativo
	if ativo != nil {
		a.Ativo = *ativo
	}
	repo.db.table[a.ID] = &a
	return a, nil
}
