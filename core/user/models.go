package user

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Joaolucasos169/gestao-projeto-karate/core"
)

// Níveis de acesso
const (
	NivelAluno     = "aluno"
	NivelProfessor = "professor"
	NivelAdmin     = "admin"
)

var AllNiveis = []string{NivelAluno, NivelProfessor, NivelAdmin}

type User struct {
	ID          int       `json:"id"`
	Nome        string    `json:"nome"`
	Email       string    `json:"email"`
	NivelAcesso string    `json:"nivel_acesso"`
	SenhaHash   []byte    `json:"-"`
	CreatedAt   time.Time `json:"created_at"` // UTC
	UpdatedAt   time.Time `json:"updated_at"` // UTC
	LastLogin   time.Time `json:"last_login"` // UTC
}

func (u *User) SetSenha(senha string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(senha), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.SenhaHash = hash
	return nil
}

func (u *User) CheckSenha(senha string) error {
	return bcrypt.CompareHashAndPassword(u.SenhaHash, []byte(senha))
}

func (u *User) IsAdmin() bool {
	return u.NivelAcesso == NivelAdmin
}

func (u *User) IsProfessor() bool {
	return u.NivelAcesso == NivelProfessor
}

func (u *User) IsAluno() bool {
	return u.NivelAcesso == NivelAluno
}

// NewUser contains information needed to create a new User.
type NewUser struct {
	Nome        string `json:"nome" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Senha       string `json:"senha" validate:"required"`
	NivelAcesso string `json:"nivel_acesso" validate:"omitempty,nivel"`
}

func (nu *NewUser) Validate(svc Service) error {
	nu.Nome = core.CleanString(nu.Nome)
	nu.Email = core.CleanString(nu.Email, true /* lower */)

	if err := core.Validate.Struct(nu); err != nil {
		return err
	}
	return svc.CheckEmailUniqueness(nu.Email)
}

// UpdateUser defines what information may be provided to modify an existing User.
type UpdateUser struct {
	Nome         string `json:"nome"`
	Email        string `json:"email" validate:"omitempty,email"`
	NivelAcesso  string `json:"nivel_acesso" validate:"omitempty,nivel"`
	Senha        string `json:"senha" validate:"omitempty"`
	SenhaConfirm string `json:"senha_confirm" validate:"required_with=Senha,eqfield=Senha"`
}

func (uu *UpdateUser) Validate(origUsr User, svc Service) error {
	if nome := core.CleanString(uu.Nome); nome != "" {
		uu.Nome = nome
	} else {
		uu.Nome = origUsr.Nome
	}

	if email := core.CleanString(uu.Email, true /* lower */); email != "" {
		uu.Email = email
	} else {
		uu.Email = origUsr.Email
	}

	if err := core.Validate.Struct(uu); err != nil {
		return err
	}
	return svc.CheckEmailUniqueness(uu.Email, origUsr)
}

type ResetUserSenha struct {
	Token        string `json:"token,omitempty" validate:"required"`
	UID          string `json:"uid,omitempty" validate:"required"`
	Senha        string `json:"senha,omitempty" validate:"required"`
	SenhaConfirm string `json:"senha_confirm,omitempty" validate:"required,eqfield=Senha"`
}

func (rp ResetUserSenha) Validate() error { return core.Validate.Struct(rp) }
