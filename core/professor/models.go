package professor

import (
	"time"

	"github.com/Joaolucasos169/gestao-projeto-karate/core"
)

type Professor struct {
	ID              int       `json:"id"`
	Nome            string    `json:"nome"`
	CPF             string    `json:"cpf"`
	DataNascimento  core.Date `json:"data_nascimento"`
	Telefone        string    `json:"telefone"`
	Endereco        string    `json:"endereco"`
	GrauFaixa       string    `json:"grau_faixa"`
	DataContratacao core.Date `json:"data_contratacao"`
	Ativo           bool      `json:"ativo"`
	FkUsuario       int       `json:"fk_usuario"`
	CreatedAt       time.Time `json:"created_at"` // UTC
	UpdatedAt       time.Time `json:"updated_at"` // UTC
}

// NewProfessor contains information needed to register a new Professor,
// including the credentials of the login account created alongside it.
type NewProfessor struct {
	Nome            string    `json:"nome" validate:"required"`
	CPF             string    `json:"cpf" validate:"required,len=11"`
	DataNascimento  core.Date `json:"data_nascimento" validate:"required"`
	Telefone        string    `json:"telefone"`
	Endereco        string    `json:"endereco"`
	GrauFaixa       string    `json:"grau_faixa"`
	DataContratacao core.Date `json:"data_contratacao"`
	Email           string    `json:"email" validate:"required,email"`
	Senha           string    `json:"senha" validate:"required"`
}

func (np *NewProfessor) Validate(svc *Service) error {
	np.Nome = core.CleanString(np.Nome)
	np.CPF = core.DigitsOnly(np.CPF)
	np.Telefone = core.CleanString(np.Telefone)
	np.Endereco = core.CleanString(np.Endereco)
	np.GrauFaixa = core.CleanString(np.GrauFaixa)
	np.Email = core.CleanString(np.Email, true /* lower */)

	if err := core.Validate.Struct(np); err != nil {
		return err
	}
	return svc.CheckCPFUniqueness(np.CPF)
}

// UpdateProfessor defines what information may be provided to modify an
// existing Professor. Blank fields keep their current value.
type UpdateProfessor struct {
	Nome            string    `json:"nome"`
	CPF             string    `json:"cpf" validate:"omitempty,len=11"`
	DataNascimento  core.Date `json:"data_nascimento"`
	Telefone        string    `json:"telefone"`
	Endereco        string    `json:"endereco"`
	GrauFaixa       string    `json:"grau_faixa"`
	DataContratacao core.Date `json:"data_contratacao"`
	Ativo           *bool     `json:"ativo"`
}

func (up *UpdateProfessor) Validate(orig Professor, svc *Service) error {
	if nome := core.CleanString(up.Nome); nome != "" {
		up.Nome = nome
	} else {
		up.Nome = orig.Nome
	}
	if cpf := core.DigitsOnly(up.CPF); cpf != "" {
		up.CPF = cpf
	} else {
		up.CPF = orig.CPF
	}
	if up.DataNascimento.IsZero() {
		up.DataNascimento = orig.DataNascimento
	}
	if tel := core.CleanString(up.Telefone); tel != "" {
		up.Telefone = tel
	} else {
		up.Telefone = orig.Telefone
	}
	if end := core.CleanString(up.Endereco); end != "" {
		up.Endereco = end
	} else {
		up.Endereco = orig.Endereco
	}
	if grau := core.CleanString(up.GrauFaixa); grau != "" {
		up.GrauFaixa = grau
	} else {
		up.GrauFaixa = orig.GrauFaixa
	}
	if up.DataContratacao.IsZero() {
		up.DataContratacao = orig.DataContratacao
	}

	if err := core.Validate.Struct(up); err != nil {
		return err
	}
	if up.CPF != orig.CPF {
		return svc.CheckCPFUniqueness(up.CPF, orig)
	}
	return nil
}
