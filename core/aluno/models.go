package aluno

import (
	"time"

	"github.com/Joaolucasos169/gestao-projeto-karate/core"
)

// GrauInicial is the belt assigned to new students when none is provided.
const GrauInicial = "Branca"

type Aluno struct {
	ID                  int       `json:"id"`
	Nome                string    `json:"nome"`
	DataNascimento      core.Date `json:"data_nascimento"`
	Sexo                string    `json:"sexo"`
	Telefone            string    `json:"telefone"`
	Endereco            string    `json:"endereco"`
	GrauAtual           string    `json:"grau_atual"`
	DataUltimaGraduacao core.Date `json:"data_ultima_graduacao"`
	Ativo               bool      `json:"ativo"`
	CreatedAt           time.Time `json:"created_at"` // UTC
	UpdatedAt           time.Time `json:"updated_at"` // UTC
}

// NewAluno contains information needed to register a new Aluno.
type NewAluno struct {
	Nome                string    `json:"nome" validate:"required"`
	DataNascimento      core.Date `json:"data_nascimento" validate:"required"`
	Sexo                string    `json:"sexo" validate:"omitempty,oneof=M F"`
	Telefone            string    `json:"telefone"`
	Endereco            string    `json:"endereco"`
	GrauAtual           string    `json:"grau_atual"`
	DataUltimaGraduacao core.Date `json:"data_ultima_graduacao"`
}

func (na *NewAluno) Validate() error {
	na.Nome = core.CleanString(na.Nome)
	na.Sexo = core.CleanString(na.Sexo, true /* lower */)
	if na.Sexo != "" {
		na.Sexo = map[string]string{"m": "M", "f": "F"}[na.Sexo]
	}
	na.Telefone = core.CleanString(na.Telefone)
	na.Endereco = core.CleanString(na.Endereco)
	na.GrauAtual = core.CleanString(na.GrauAtual)
	return core.Validate.Struct(na)
}

// UpdateAluno defines what information may be provided to modify an existing Aluno.
// Blank fields keep their current value.
type UpdateAluno struct {
	Nome                string    `json:"nome"`
	DataNascimento      core.Date `json:"data_nascimento"`
	Sexo                string    `json:"sexo" validate:"omitempty,oneof=M F"`
	Telefone            string    `json:"telefone"`
	Endereco            string    `json:"endereco"`
	GrauAtual           string    `json:"grau_atual"`
	DataUltimaGraduacao core.Date `json:"data_ultima_graduacao"`
	Ativo               *bool     `json:"ativo"`
}

func (ua *UpdateAluno) Validate(orig Aluno) error {
	if nome := core.CleanString(ua.Nome); nome != "" {
		ua.Nome = nome
	} else {
		ua.Nome = orig.Nome
	}
	if ua.DataNascimento.IsZero() {
		ua.DataNascimento = orig.DataNascimento
	}
	ua.Sexo = core.CleanString(ua.Sexo, true /* lower */)
	switch ua.Sexo {
	case "m":
		ua.Sexo = "M"
	case "f":
		ua.Sexo = "F"
	case "":
		ua.Sexo = orig.Sexo
	}
	if tel := core.CleanString(ua.Telefone); tel != "" {
		ua.Telefone = tel
	} else {
		ua.Telefone = orig.Telefone
	}
	if end := core.CleanString(ua.Endereco); end != "" {
		ua.Endereco = end
	} else {
		ua.Endereco = orig.Endereco
	}
	if grau := core.CleanString(ua.GrauAtual); grau != "" {
		ua.GrauAtual = grau
	} else {
		ua.GrauAtual = orig.GrauAtual
	}
	if ua.DataUltimaGraduacao.IsZero() {
		ua.DataUltimaGraduacao = orig.DataUltimaGraduacao
	}
	return core.Validate.Struct(ua)
}

// QueryFilter narrows QueryAll results.
// Search matches nome (case and accent insensitive) or telefone digits.
type QueryFilter struct {
	Search string `query:"search"`
	Ativo  *bool  `query:"ativo"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Search == "" && qf.Ativo == nil
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
}

// Matches reports whether the given Aluno satisfies the filter.
func (qf *QueryFilter) Matches(a Aluno) bool {
	if qf.Ativo != nil && a.Ativo != *qf.Ativo {
		return false
	}
	if qf.Search == "" {
		return true
	}
	if core.ContainsFold(a.Nome, qf.Search) {
		return true
	}
	digits := core.DigitsOnly(qf.Search)
	return digits != "" && core.ContainsDigits(a.Telefone, digits)
}
