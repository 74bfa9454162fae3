package inmemdb

import (
	"sort"

	"github.com/Joaolucasos169/gestao-projeto-karate/core/aula"
)

type aulaRepository struct {
	db *aulaTable
}

func NewAulaRepository(db *DB) aula.Repository {
	return &aulaRepository{db: db.aula}
}

func (repo *aulaRepository) CreateAula(a aula.Aula) (aula.Aula, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.seq++
	a.ID = repo.db.seq
	repo.db.table[a.ID] = &a
	return a, nil
}

func (repo *aulaRepository) QueryAllAulas() ([]aula.Aula, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	aulas := make([]aula.Aula, 0, len(repo.db.table))
	for _, a := range repo.db.table {
		aulas = append(aulas, *a)
	}
	sort.Slice(aulas, func(i, j int) bool { return aulas[i].ID < aulas[j].ID })
	return aulas, nil
}

func (repo *aulaRepository) GetAulaByID(id int) (aula.Aula, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if a, ok := repo.db.table[id]; ok {
		return *a, nil
	}
	return aula.Aula{}, aula.ErrNotFound
}

func (repo *aulaRepository) UpdateAula(a aula.Aula) (aula.Aula, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	orig, ok := repo.db.table[a.ID]
	if !ok {
		return aula.Aula{}, aula.ErrNotFound
	}
	a.CreatedAt = orig.CreatedAt
	repo.db.table[a.ID] = &a
	return a, nil
}

func (repo *aulaRepository) DeleteAula(id int) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.table[id]; !ok {
		return aula.ErrNotFound
	}
	delete(repo.db.table, id)
	return nil
}
