package sqlxrepos

import (
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/Joaolucasos169/gestao-projeto-karate/core"
	"github.com/Joaolucasos169/gestao-projeto-karate/core/exame"
)

type exameRow struct {
	ID         int         `db:"id"`
	NomeEvento string      `db:"nome_evento"`
	DataExame  core.Date   `db:"data_exame"`
	Hora       null.String `db:"hora"`
	Local      null.String `db:"local"`
	CreatedAt  time.Time   `db:"created_at"`
	UpdatedAt  time.Time   `db:"updated_at"`
}

func (r exameRow) toExame() exame.Exame {
	return exame.Exame{
		ID:         r.ID,
		NomeEvento: r.NomeEvento,
		DataExame:  r.DataExame,
		Hora:       r.Hora.String,
		Local:      r.Local.String,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

type inscricaoRow struct {
	ID         int         `db:"id"`
	FkExame    int         `db:"fk_exame"`
	FkAluno    int         `db:"fk_aluno"`
	AlunoNome  string      `db:"aluno_nome"`
	AlunoFaixa string      `db:"aluno_faixa"`
	NotaKihon  float64     `db:"nota_kihon"`
	NotaKata   float64     `db:"nota_kata"`
	NotaKumite float64     `db:"nota_kumite"`
	NotaGerais float64     `db:"nota_gerais"`
	Media      float64     `db:"media"`
	Aprovado   bool        `db:"aprovado"`
	Observacao null.String `db:"observacao"`
	CreatedAt  time.Time   `db:"created_at"`
	UpdatedAt  time.Time   `db:"updated_at"`
}

func (r inscricaoRow) toInscricao() exame.Inscricao {
	return exame.Inscricao{
		ID:         r.ID,
		FkExame:    r.FkExame,
		FkAluno:    r.FkAluno,
		AlunoNome:  r.AlunoNome,
		AlunoFaixa: r.AlunoFaixa,
		Notas: exame.Notas{
			Kihon:  exame.Nota(r.NotaKihon),
			Kata:   exame.Nota(r.NotaKata),
			Kumite: exame.Nota(r.NotaKumite),
			Gerais: exame.Nota(r.NotaGerais),
		},
		Media:      r.Media,
		Aprovado:   r.Aprovado,
		Observacao: r.Observacao.String,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

const inscricaoSelect = `
SELECT i.id, i.fk_exame, i.fk_aluno, a.nome AS aluno_nome, a.grau_atual AS aluno_faixa,
       i.nota_kihon, i.nota_kata, i.nota_kumite, i.nota_gerais,
       i.media, i.aprovado, i.observacao, i.created_at, i.updated_at
FROM inscricoes i
JOIN alunos a ON a.id = i.fk_aluno`

type exameRepository struct {
	db *sqlx.DB
}

var _ exame.Repository = (*exameRepository)(nil) // interface compliance check

func NewExameRepository(db *sqlx.DB) *exameRepository {
	return &exameRepository{db: db}
}

// CreateExame inserts the exam and one zeroed Inscricao per roster member in a
// single transaction.
func (repo *exameRepository) CreateExame(e exame.Exame, alunosIDs []int) (exame.Exame, error) {
	tx, err := repo.db.Beginx()
	if err != nil {
		return exame.Exame{}, errors.Wrap(err, "starting transaction")
	}
	defer func() { _ = tx.Rollback() }()

	err = tx.Get(
		&e.ID,
		`INSERT INTO exames (nome_evento, data_exame, hora, local, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		e.NomeEvento, e.DataExame, null.NewString(e.Hora, e.Hora != ""),
		null.NewString(e.Local, e.Local != ""), e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		return exame.Exame{}, errors.Wrap(err, "creating exame")
	}

	for _, alunoID := range alunosIDs {
		_, err = tx.Exec(
			`INSERT INTO inscricoes (fk_exame, fk_aluno, created_at, updated_at)
			 VALUES ($1, $2, $3, $4)`,
			e.ID, alunoID, e.CreatedAt, e.UpdatedAt,
		)
		if err != nil {
			return exame.Exame{}, errors.Wrap(err, "creating inscricao")
		}
	}

	if err = tx.Commit(); err != nil {
		return exame.Exame{}, errors.Wrap(err, "committing transaction")
	}
	return e, nil
}

func (repo *exameRepository) QueryAllExames() ([]exame.Exame, error) {
	var rows []exameRow
	err := repo.db.Select(&rows, "SELECT * FROM exames ORDER BY data_exame DESC, id DESC")
	if err != nil {
		return nil, errors.Wrap(err, "querying exames")
	}
	exames := make([]exame.Exame, 0, len(rows))
	for _, r := range rows {
		exames = append(exames, r.toExame())
	}
	return exames, nil
}

func (repo *exameRepository) GetExameByID(id int) (exame.Exame, error) {
	var r exameRow
	if err := repo.db.Get(&r, "SELECT * FROM exames WHERE id = $1", id); err != nil {
		if err == sql.ErrNoRows {
			return exame.Exame{}, exame.ErrNotFound
		}
		return exame.Exame{}, errors.Wrap(err, "getting exame")
	}
	return r.toExame(), nil
}

func (repo *exameRepository) UpdateExame(e exame.Exame) (exame.Exame, error) {
	var r exameRow
	err := repo.db.Get(
		&r,
		`UPDATE exames
		 SET nome_evento = $2, data_exame = $3, hora = $4, local = $5, updated_at = $6
		 WHERE id = $1 RETURNING *`,
		e.ID, e.NomeEvento, e.DataExame, null.NewString(e.Hora, e.Hora != ""),
		null.NewString(e.Local, e.Local != ""), e.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return exame.Exame{}, exame.ErrNotFound
		}
		return exame.Exame{}, errors.Wrap(err, "updating exame")
	}
	return r.toExame(), nil
}

// DeleteExame relies on ON DELETE CASCADE to drop the inscricoes.
func (repo *exameRepository) DeleteExame(id int) error {
	res, err := repo.db.Exec("DELETE FROM exames WHERE id = $1", id)
	if err != nil {
		return errors.Wrap(err, "deleting exame")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return exame.ErrNotFound
	}
	return nil
}

func (repo *exameRepository) QueryInscricoes(exameID int) ([]exame.Inscricao, error) {
	var rows []inscricaoRow
	err := repo.db.Select(&rows, inscricaoSelect+" WHERE i.fk_exame = $1 ORDER BY i.id", exameID)
	if err != nil {
		return nil, errors.Wrap(err, "querying inscricoes")
	}
	inscricoes := make([]exame.Inscricao, 0, len(rows))
	for _, r := range rows {
		inscricoes = append(inscricoes, r.toInscricao())
	}
	return inscricoes, nil
}

func (repo *exameRepository) GetInscricaoByID(id int) (exame.Inscricao, error) {
	var r inscricaoRow
	if err := repo.db.Get(&r, inscricaoSelect+" WHERE i.id = $1", id); err != nil {
		if err == sql.ErrNoRows {
			return exame.Inscricao{}, exame.ErrInscricaoNotFound
		}
		return exame.Inscricao{}, errors.Wrap(err, "getting inscricao")
	}
	return r.toInscricao(), nil
}

func (repo *exameRepository) UpdateInscricaoNotas(i exame.Inscricao) (exame.Inscricao, error) {
	_, err := repo.db.Exec(
		`UPDATE inscricoes
		 SET nota_kihon = $2, nota_kata = $3, nota_kumite = $4, nota_gerais = $5,
		     media = $6, aprovado = $7, observacao = $8, updated_at = $9
		 WHERE id = $1`,
		i.ID, float64(i.Notas.Kihon), float64(i.Notas.Kata), float64(i.Notas.Kumite),
		float64(i.Notas.Gerais), i.Media, i.Aprovado,
		null.NewString(i.Observacao, i.Observacao != ""), i.UpdatedAt,
	)
	if err != nil {
		return exame.Inscricao{}, errors.Wrap(err, "updating inscricao")
	}
	return repo.GetInscricaoByID(i.ID)
}
