package main

import (
	"time"

	"github.com/Joaolucasos169/gestao-projeto-karate/core"
	"github.com/Joaolucasos169/gestao-projeto-karate/core/user"
)

// createAdmin seeds the admin account. It is idempotent: an existing account
// with the same email is left untouched.
func (cli *commandLine) createAdmin(nome, email, pwd string) error {
	email = core.CleanString(email, true /* lower */)

	if _, err := cli.usrRepo.GetUserByEmail(email); err == nil {
		logger.Printf("account %q already exists, nothing to do", email)
		return nil
	} else if err != user.ErrNotFound {
		return err
	}

	now := time.Now().UTC()
	usr := user.User{
		Nome:        core.CleanString(nome),
		Email:       email,
		NivelAcesso: user.NivelAdmin,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := usr.SetSenha(pwd); err != nil {
		return err
	}
	if _, err := cli.usrRepo.CreateUser(usr); err != nil {
		return err
	}
	logger.Printf("admin account %q created", email)
	return nil
}
