package inmemdb

import (
	"sort"

	"github.com/Joaolucasos169/gestao-projeto-karate/core/professor"
)

type professorRepository struct {
	db *professorTable
}

func NewProfessorRepository(db *DB) professor.Repository {
	return &professorRepository{db: db.professor}
}

func (repo *professorRepository) query() []professor.Professor {
	professores := make([]professor.Professor, 0, len(repo.db.table))
	for _, p := range repo.db.table {
		professores = append(professores, *p)
	}
	sort.Slice(professores, func(i, j int) bool { return professores[i].ID < professores[j].ID })
	return professores
}

func (repo *professorRepository) CheckCPFUniqueness(cpf string, excluded ...professor.Professor) error {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	for _, p := range repo.query() {
		if p.CPF != cpf {
			continue
		}
		excl := false
		for _, e := range excluded {
			if e.ID == p.ID {
				excl = true
				break
			}
		}
		if !excl {
			return professor.ErrCPFExists
		}
	}
	return nil
}

func (repo *professorRepository) CreateProfessor(p professor.Professor) (professor.Professor, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.seq++
	p.ID = repo.db.seq
	repo.db.table[p.ID] = &p
	return p, nil
}

func (repo *professorRepository) QueryAllProfessores() ([]professor.Professor, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.query(), nil
}

func (repo *professorRepository) GetProfessorByID(id int) (professor.Professor, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if p, ok := repo.db.table[id]; ok {
		return *p, nil
	}
	return professor.Professor{}, professor.ErrNotFound
}

func (repo *professorRepository) UpdateProfessor(p professor.Professor, ativo *bool) (professor.Professor, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	orig, ok := repo.db.table[p.ID]
	if !ok {
		return professor.Professor{}, professor.ErrNotFound
	}
	p.CreatedAt = orig.CreatedAt
	p.FkUsuario = orig.FkUsuario
	p.Ativo = orig.Ativo
	if ativo != nil {
		p.Ativo = *ativo
	}
	repo.db.table[p.ID] = &p
	return p, nil
}
