package sqlxrepos

import (
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/Joaolucasos169/gestao-projeto-karate/core"
	"github.com/Joaolucasos169/gestao-projeto-karate/core/professor"
)

type professorRow struct {
	ID              int         `db:"id"`
	Nome            string      `db:"nome"`
	CPF             string      `db:"cpf"`
	DataNascimento  core.Date   `db:"data_nascimento"`
	Telefone        null.String `db:"telefone"`
	Endereco        null.String `db:"endereco"`
	GrauFaixa       null.String `db:"grau_faixa"`
	DataContratacao core.Date   `db:"data_contratacao"`
	Ativo           bool        `db:"ativo"`
	FkUsuario       int         `db:"fk_usuario"`
	CreatedAt       time.Time   `db:"created_at"`
	UpdatedAt       time.Time   `db:"updated_at"`
}

func (r professorRow) toProfessor() professor.Professor {
	return professor.Professor{
		ID:              r.ID,
		Nome:            r.Nome,
		CPF:             r.CPF,
		DataNascimento:  r.DataNascimento,
		Telefone:        r.Telefone.String,
		Endereco:        r.Endereco.String,
		GrauFaixa:       r.GrauFaixa.String,
		DataContratacao: r.DataContratacao,
		Ativo:           r.Ativo,
		FkUsuario:       r.FkUsuario,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

type professorRepository struct {
	db *sqlx.DB
}

var _ professor.Repository = (*professorRepository)(nil) // interface compliance check

func NewProfessorRepository(db *sqlx.DB) *professorRepository {
	return &professorRepository{db: db}
}

func (repo *professorRepository) CheckCPFUniqueness(cpf string, excluded ...professor.Professor) error {
	exclIDs := make([]int, 0, len(excluded))
	for _, p := range excluded {
		exclIDs = append(exclIDs, p.ID)
	}
	if len(exclIDs) == 0 {
		exclIDs = append(exclIDs, 0)
	}

	q, args, err := sqlx.In("SELECT EXISTS (SELECT 1 FROM professores WHERE cpf = ? AND id NOT IN (?))", cpf, exclIDs)
	if err != nil {
		return errors.Wrap(err, "building query")
	}

	var exists bool
	if err = repo.db.Get(&exists, repo.db.Rebind(q), args...); err != nil {
		return errors.Wrap(err, "checking cpf")
	}
	if exists {
		return professor.ErrCPFExists
	}
	return nil
}

func (repo *professorRepository) CreateProfessor(p professor.Professor) (professor.Professor, error) {
	err := repo.db.Get(
		&p.ID,
		`INSERT INTO professores (nome, cpf, data_nascimento, telefone, endereco, grau_faixa,
		                          data_contratacao, ativo, fk_usuario, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`,
		p.Nome, p.CPF, p.DataNascimento, null.NewString(p.Telefone, p.Telefone != ""),
		null.NewString(p.Endereco, p.Endereco != ""), null.NewString(p.GrauFaixa, p.GrauFaixa != ""),
		p.DataContratacao, p.Ativo, p.FkUsuario, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return professor.Professor{}, errors.Wrap(err, "creating professor")
	}
	return p, nil
}

func (repo *professorRepository) QueryAllProfessores() ([]professor.Professor, error) {
	var rows []professorRow
	if err := repo.db.Select(&rows, "SELECT * FROM professores ORDER BY id"); err != nil {
		return nil, errors.Wrap(err, "querying professores")
	}
	professores := make([]professor.Professor, 0, len(rows))
	for _, r := range rows {
		professores = append(professores, r.toProfessor())
	}
	return professores, nil
}

func (repo *professorRepository) GetProfessorByID(id int) (professor.Professor, error) {
	var r professorRow
	if err := repo.db.Get(&r, "SELECT * FROM professores WHERE id = $1", id); err != nil {
		if err == sql.ErrNoRows {
			return professor.Professor{}, professor.ErrNotFound
		}
		return professor.Professor{}, errors.Wrap(err, "getting professor")
	}
	return r.toProfessor(), nil
}

// UpdateProfessor persists p; ativo is only touched when non-nil.
func (repo *professorRepository) UpdateProfessor(p professor.Professor, ativo *bool) (professor.Professor, error) {
	var r professorRow
	err := repo.db.Get(
		&r,
		`UPDATE professores
		 SET nome = $2, cpf = $3, data_nascimento = $4, telefone = $5, endereco = $6,
		     grau_faixa = $7, data_contratacao = $8, ativo = COALESCE($9, ativo),
		     updated_at = $10
		 WHERE id = $1 RETURNING *`,
		p.ID, p.Nome, p.CPF, p.DataNascimento, null.NewString(p.Telefone, p.Telefone != ""),
		null.NewString(p.Endereco, p.Endereco != ""), null.NewString(p.GrauFaixa, p.GrauFaixa != ""),
		p.DataContratacao, null.BoolFromPtr(ativo), p.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return professor.Professor{}, professor.ErrNotFound
		}
		return professor.Professor{}, errors.Wrap(err, "updating professor")
	}
	return r.toProfessor(), nil
}
