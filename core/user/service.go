package user

import (
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/Joaolucasos169/gestao-projeto-karate/core"
)

var (
	// errors
	ErrNotFound    = errors.New("usuário não encontrado")
	ErrEmailExists = errors.New("este e-mail já está cadastrado")
)

type (
	Repository interface {
		CheckEmailUniqueness(email string, excludedUsers ...User) error
		CreateUser(usr User) (User, error)
		QueryAllUsers() ([]User, error)
		GetUserByID(id int) (User, error)
		GetUserByEmail(email string) (User, error)
		UpdateUser(usr User) (User, error)
		SetLastLogin(usr User) (User, error)
		DeleteUsersByID(ids ...int) error
	}

	Service interface {
		CheckEmailUniqueness(email string, exclUsers ...User) error
		Create(nu NewUser) (User, error)
		QueryAll() ([]User, error)
		GetByID(id int) (User, error)
		GetByEmail(email string) (User, error)
		Update(id int, uu UpdateUser) (User, error)
		SetLastLogin(usr User) (User, error)
		Delete(ids ...int) error
		RequestPasswordReset(email string) error
		ConfirmPasswordReset(data ResetUserSenha) (User, error)
	}

	service struct {
		repo    Repository
		mailSvc core.EmailService
		conf    *core.Config
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, mailSvc core.EmailService, conf *core.Config) Service {
	setTokenConfig(conf)
	return &service{
		repo:    repo,
		mailSvc: mailSvc,
		conf:    conf,
	}
}

func (svc *service) CheckEmailUniqueness(email string, exclUsers ...User) error {
	if err := svc.repo.CheckEmailUniqueness(email, exclUsers...); err != nil {
		if err == ErrEmailExists {
			return core.NewValidationError(err, core.FieldError{Field: "email", Error: err.Error()})
		}
		return err
	}
	return nil
}

func (svc *service) Create(nu NewUser) (User, error) {
	now := time.Now().UTC()
	usr := User{
		Nome:        nu.Nome,
		Email:       nu.Email,
		NivelAcesso: nu.NivelAcesso,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if usr.NivelAcesso == "" {
		usr.NivelAcesso = NivelAluno
	}
	if err := usr.SetSenha(nu.Senha); err != nil {
		return User{}, err
	}

	usr, err := svc.repo.CreateUser(usr)
	if err != nil {
		return User{}, err
	}
	svc.sendWelcomeMail(usr)
	return usr, nil
}

func (svc *service) QueryAll() ([]User, error) {
	return svc.repo.QueryAllUsers()
}

func (svc *service) GetByID(id int) (User, error) {
	return svc.repo.GetUserByID(id)
}

func (svc *service) GetByEmail(email string) (User, error) {
	return svc.repo.GetUserByEmail(core.CleanString(email, true /* lower */))
}

func (svc *service) Update(id int, uu UpdateUser) (User, error) {
	usr := User{
		ID:          id,
		Nome:        uu.Nome,
		Email:       uu.Email,
		NivelAcesso: uu.NivelAcesso,
		UpdatedAt:   time.Now().UTC(),
	}
	if uu.Senha != "" {
		if err := usr.SetSenha(uu.Senha); err != nil {
			return User{}, err
		}
	}
	return svc.repo.UpdateUser(usr)
}

func (svc *service) SetLastLogin(usr User) (User, error) {
	return svc.repo.SetLastLogin(usr)
}

func (svc *service) Delete(ids ...int) error {
	return svc.repo.DeleteUsersByID(ids...)
}

// RequestPasswordReset emails a password reset link to the account with the given
// email, if any. The token is single-use: it is invalidated by the password change.
func (svc *service) RequestPasswordReset(email string) error {
	usr, err := svc.GetByEmail(email)
	if err != nil {
		return err
	}
	go svc.sendPasswordResetMail(usr)
	return nil
}

func (svc *service) ConfirmPasswordReset(data ResetUserSenha) (User, error) {
	id, err := decodeUID(data.UID)
	if err != nil {
		return User{}, core.NewValidationError(errInvalidToken)
	}
	usr, err := svc.GetByID(id)
	if err != nil {
		return User{}, core.NewValidationError(errInvalidToken)
	}
	if err = verifyToken(usr, data.Token); err != nil {
		return User{}, core.NewValidationError(err)
	}
	if err = usr.SetSenha(data.Senha); err != nil {
		return User{}, err
	}
	usr.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateUser(usr)
}

func (svc *service) sendWelcomeMail(usr User) {
	msg := &core.EmailMessage{
		To:      []mail.Address{{Name: usr.Nome, Address: usr.Email}},
		Subject: "Bem-vindo(a)!",
		TextContent: fmt.Sprintf(
			"Olá %s,\n\nSua conta foi criada com sucesso. Oss!\n\n%s",
			usr.Nome, svc.conf.AppName,
		),
	}
	svc.mailSvc.SendMessages(msg)
}

func (svc *service) sendPasswordResetMail(usr User) {
	link := fmt.Sprintf(
		"%s/redefinir-senha?uid=%s&token=%s",
		svc.conf.FrontendBaseURL, EncodeUID(usr), makeToken(usr),
	)
	msg := &core.EmailMessage{
		To:      []mail.Address{{Name: usr.Nome, Address: usr.Email}},
		Subject: "Redefinição de senha",
		TextContent: fmt.Sprintf(
			"Olá %s,\n\nPara redefinir sua senha, acesse o link abaixo:\n\n%s\n\n"+
				"Se você não solicitou a redefinição, ignore este e-mail.\n\n%s",
			usr.Nome, link, svc.conf.AppName,
		),
	}
	svc.mailSvc.SendMessages(msg)
}
