package sqlxrepos

import (
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/Joaolucasos169/gestao-projeto-karate/core/aula"
)

type aulaRow struct {
	ID            int            `db:"id"`
	NomeTurma     string         `db:"nome_turma"`
	Modalidade    string         `db:"modalidade"`
	DiasSemana    pq.StringArray `db:"dias_semana"`
	HorarioInicio string         `db:"horario_inicio"`
	HorarioFim    string         `db:"horario_fim"`
	FkProfessor   int            `db:"fk_professor"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

func (r aulaRow) toAula() aula.Aula {
	return aula.Aula{
		ID:            r.ID,
		NomeTurma:     r.NomeTurma,
		Modalidade:    r.Modalidade,
		DiasSemana:    r.DiasSemana,
		HorarioInicio: r.HorarioInicio,
		HorarioFim:    r.HorarioFim,
		FkProfessor:   r.FkProfessor,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

type aulaRepository struct {
	db *sqlx.DB
}

var _ aula.Repository = (*aulaRepository)(nil) // interface compliance check

func NewAulaRepository(db *sqlx.DB) *aulaRepository {
	return &aulaRepository{db: db}
}

func (repo *aulaRepository) CreateAula(a aula.Aula) (aula.Aula, error) {
	err := repo.db.Get(
		&a.ID,
		`INSERT INTO aulas (nome_turma, modalidade, dias_semana, horario_inicio, horario_fim,
		                    fk_professor, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`,
		a.NomeTurma, a.Modalidade, pq.StringArray(a.DiasSemana),
		a.HorarioInicio, a.HorarioFim, a.FkProfessor, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return aula.Aula{}, errors.Wrap(err, "creating aula")
	}
	return a, nil
}

func (repo *aulaRepository) QueryAllAulas() ([]aula.Aula, error) {
	var rows []aulaRow
	if err := repo.db.Select(&rows, "SELECT * FROM aulas ORDER BY id"); err != nil {
		return nil, errors.Wrap(err, "querying aulas")
	}
	aulas := make([]aula.Aula, 0, len(rows))
	for _, r := range rows {
		aulas = append(aulas, r.toAula())
	}
	return aulas, nil
}

func (repo *aulaRepository) GetAulaByID(id int) (aula.Aula, error) {
	var r aulaRow
	if err := repo.db.Get(&r, "SELECT * FROM aulas WHERE id = $1", id); err != nil {
		if err == sql.ErrNoRows {
			return aula.Aula{}, aula.ErrNotFound
		}
		return aula.Aula{}, errors.Wrap(err, "getting aula")
	}
	return r.toAula(), nil
}

func (repo *aulaRepository) UpdateAula(a aula.Aula) (aula.Aula, error) {
	var r aulaRow
	err := repo.db.Get(
		&r,
		`UPDATE aulas
		 SET nome_turma = $2, modalidade = $3, dias_semana = $4, horario_inicio = $5,
		     horario_fim = $6, fk_professor = $7, updated_at = $8
		 WHERE id = $1 RETURNING *`,
		a.ID, a.NomeTurma, a.Modalidade, pq.StringArray(a.DiasSemana),
		a.HorarioInicio, a.HorarioFim, a.FkProfessor, a.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return aula.Aula{}, aula.ErrNotFound
		}
		return aula.Aula{}, errors.Wrap(err, "updating aula")
	}
	return r.toAula(), nil
}

func (repo *aulaRepository) DeleteAula(id int) error {
	res, err := repo.db.Exec("DELETE FROM aulas WHERE id = $1", id)
	if err != nil {
		return errors.Wrap(err, "deleting aula")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return aula.ErrNotFound
	}
	return nil
}
