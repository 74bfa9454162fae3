package sqlxrepos

import (
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/Joaolucasos169/gestao-projeto-karate/core"
	"github.com/Joaolucasos169/gestao-projeto-karate/core/aluno"
)

type alunoRow struct {
	ID                  int         `db:"id"`
	Nome                string      `db:"nome"`
	DataNascimento      core.Date   `db:"data_nascimento"`
	Sexo                null.String `db:"sexo"`
	Telefone            null.String `db:"telefone"`
	Endereco            null.String `db:"endereco"`
	GrauAtual           string      `db:"grau_atual"`
	DataUltimaGraduacao core.Date   `db:"data_ultima_graduacao"`
	Ativo               bool        `db:"ativo"`
	CreatedAt           time.Time   `db:"created_at"`
	UpdatedAt           time.Time   `db:"updated_at"`
}

func (r alunoRow) toAluno() aluno.Aluno {
	return aluno.Aluno{
		ID:                  r.ID,
		Nome:                r.Nome,
		DataNascimento:      r.DataNascimento,
		Sexo:                r.Sexo.String,
		Telefone:            r.Telefone.String,
		Endereco:            r.Endereco.String,
		GrauAtual:           r.GrauAtual,
		DataUltimaGraduacao: r.DataUltimaGraduacao,
		Ativo:               r.Ativo,
		CreatedAt:           r.CreatedAt,
		UpdatedAt:           r.UpdatedAt,
	}
}

func toAlunos(rows []alunoRow) []aluno.Aluno {
	alunos := make([]aluno.Aluno, 0, len(rows))
	for _, r := range rows {
		alunos = append(alunos, r.toAluno())
	}
	return alunos
}

type alunoRepository struct {
	db *sqlx.DB
}

var _ aluno.Repository = (*alunoRepository)(nil) // interface compliance check

func NewAlunoRepository(db *sqlx.DB) *alunoRepository {
	return &alunoRepository{db: db}
}

func (repo *alunoRepository) CreateAluno(a aluno.Aluno) (aluno.Aluno, error) {
	err := repo.db.Get(
		&a.ID,
		`INSERT INTO alunos (nome, data_nascimento, sexo, telefone, endereco,
		                     grau_atual, data_ultima_graduacao, ativo, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`,
		a.Nome, a.DataNascimento, null.NewString(a.Sexo, a.Sexo != ""),
		null.NewString(a.Telefone, a.Telefone != ""), null.NewString(a.Endereco, a.Endereco != ""),
		a.GrauAtual, a.DataUltimaGraduacao, a.Ativo, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return aluno.Aluno{}, errors.Wrap(err, "creating aluno")
	}
	return a, nil
}

func (repo *alunoRepository) QueryAllAlunos() ([]aluno.Aluno, error) {
	var rows []alunoRow
	if err := repo.db.Select(&rows, "SELECT * FROM alunos ORDER BY id"); err != nil {
		return nil, errors.Wrap(err, "querying alunos")
	}
	return toAlunos(rows), nil
}

// FilterAlunos narrows by ativo in SQL; the accent-insensitive Search match
// happens in Go so it behaves exactly like the in-memory repository.
func (repo *alunoRepository) FilterAlunos(filter aluno.QueryFilter) ([]aluno.Aluno, error) {
	q := "SELECT * FROM alunos"
	args := make([]interface{}, 0, 1)
	if filter.Ativo != nil {
		q += " WHERE ativo = $1"
		args = append(args, *filter.Ativo)
	}
	q += " ORDER BY id"

	var rows []alunoRow
	if err := repo.db.Select(&rows, q, args...); err != nil {
		return nil, errors.Wrap(err, "filtering alunos")
	}

	alunos := make([]aluno.Aluno, 0, len(rows))
	for _, r := range rows {
		if a := r.toAluno(); filter.Matches(a) {
			alunos = append(alunos, a)
		}
	}
	return alunos, nil
}

func (repo *alunoRepository) GetAlunoByID(id int) (aluno.Aluno, error) {
	var r alunoRow
	if err := repo.db.Get(&r, "SELECT * FROM alunos WHERE id = $1", id); err != nil {
		if err == sql.ErrNoRows {
			return aluno.Aluno{}, aluno.ErrNotFound
		}
		return aluno.Aluno{}, errors.Wrap(err, "getting aluno")
	}
	return r.toAluno(), nil
}

// UpdateAluno persists a; ativo is only touched when non-nil.
func (repo *alunoRepository) UpdateAluno(a aluno.Aluno, ativo *bool) (aluno.Aluno, error) {
	var r alunoRow
	err := repo.db.Get(
		&r,
		`UPDATE alunos
		 SET nome = $2, data_nascimento = $3, sexo = $4, telefone = $5, endereco = $6,
		     grau_atual = $7, data_ultima_graduacao = $8, ativo = COALESCE($9, ativo),
		     updated_at = $10
		 WHERE id = $1 RETURNING *`,
		a.ID, a.Nome, a.DataNascimento, null.NewString(a.Sexo, a.Sexo != ""),
		null.NewString(a.Telefone, a.Telefone != ""), null.NewString(a.Endereco, a.Endereco != ""),
		a.GrauAtual, a.DataUltimaGraduacao, null.BoolFromPtr(ativo), a.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return aluno.Aluno{}, aluno.ErrNotFound
		}
		return aluno.Aluno{}, errors.Wrap(err, "updating aluno")
	}
	return r.toAluno(), nil
}
