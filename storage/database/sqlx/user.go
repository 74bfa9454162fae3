package sqlxrepos

import (
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/Joaolucasos169/gestao-projeto-karate/core/user"
)

type userRow struct {
	ID          int       `db:"id"`
	Nome        string    `db:"nome"`
	Email       string    `db:"email"`
	NivelAcesso string    `db:"nivel_acesso"`
	SenhaHash   []byte    `db:"senha_hash"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
	LastLogin   null.Time `db:"last_login"`
}

func (r userRow) toUser() user.User {
	return user.User{
		ID:          r.ID,
		Nome:        r.Nome,
		Email:       r.Email,
		NivelAcesso: r.NivelAcesso,
		SenhaHash:   r.SenhaHash,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
		LastLogin:   r.LastLogin.Time,
	}
}

type userRepository struct {
	db *sqlx.DB
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

func NewUserRepository(db *sqlx.DB) *userRepository {
	return &userRepository{db: db}
}

func (repo *userRepository) CheckEmailUniqueness(email string, excludedUsers ...user.User) error {
	exclIDs := make([]int, 0, len(excludedUsers))
	for _, usr := range excludedUsers {
		exclIDs = append(exclIDs, usr.ID)
	}
	if len(exclIDs) == 0 {
		exclIDs = append(exclIDs, 0)
	}

	q, args, err := sqlx.In("SELECT EXISTS (SELECT 1 FROM usuarios WHERE email = ? AND id NOT IN (?))", email, exclIDs)
	if err != nil {
		return errors.Wrap(err, "building query")
	}

	var exists bool
	if err = repo.db.Get(&exists, repo.db.Rebind(q), args...); err != nil {
		return errors.Wrap(err, "checking email")
	}
	if exists {
		return user.ErrEmailExists
	}
	return nil
}

func (repo *userRepository) CreateUser(usr user.User) (user.User, error) {
	err := repo.db.Get(
		&usr.ID,
		`INSERT INTO usuarios (nome, email, nivel_acesso, senha_hash, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		usr.Nome, usr.Email, usr.NivelAcesso, usr.SenhaHash, usr.CreatedAt, usr.UpdatedAt,
	)
	if err != nil {
		return user.User{}, errors.Wrap(err, "creating user")
	}
	return usr, nil
}

func (repo *userRepository) QueryAllUsers() ([]user.User, error) {
	var rows []userRow
	if err := repo.db.Select(&rows, "SELECT * FROM usuarios ORDER BY id"); err != nil {
		return nil, errors.Wrap(err, "querying users")
	}
	users := make([]user.User, 0, len(rows))
	for _, r := range rows {
		users = append(users, r.toUser())
	}
	return users, nil
}

func (repo *userRepository) GetUserByID(id int) (user.User, error) {
	var r userRow
	if err := repo.db.Get(&r, "SELECT * FROM usuarios WHERE id = $1", id); err != nil {
		if err == sql.ErrNoRows {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, errors.Wrap(err, "getting user")
	}
	return r.toUser(), nil
}

func (repo *userRepository) GetUserByEmail(email string) (user.User, error) {
	var r userRow
	if err := repo.db.Get(&r, "SELECT * FROM usuarios WHERE email = $1", email); err != nil {
		if err == sql.ErrNoRows {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, errors.Wrap(err, "getting user")
	}
	return r.toUser(), nil
}

// UpdateUser persists usr; a nil SenhaHash keeps the stored hash.
func (repo *userRepository) UpdateUser(usr user.User) (user.User, error) {
	var r userRow
	err := repo.db.Get(
		&r,
		`UPDATE usuarios
		 SET nome = $2, email = $3, nivel_acesso = $4,
		     senha_hash = COALESCE($5, senha_hash), updated_at = $6
		 WHERE id = $1 RETURNING *`,
		usr.ID, usr.Nome, usr.Email, usr.NivelAcesso, usr.SenhaHash, usr.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, errors.Wrap(err, "updating user")
	}
	return r.toUser(), nil
}

func (repo *userRepository) SetLastLogin(usr user.User) (user.User, error) {
	var r userRow
	err := repo.db.Get(
		&r,
		"UPDATE usuarios SET last_login = $2 WHERE id = $1 RETURNING *",
		usr.ID, usr.LastLogin,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, errors.Wrap(err, "setting last login")
	}
	return r.toUser(), nil
}

func (repo *userRepository) DeleteUsersByID(ids ...int) error {
	if len(ids) == 0 {
		return nil
	}
	q, args, err := sqlx.In("DELETE FROM usuarios WHERE id IN (?)", ids)
	if err != nil {
		return errors.Wrap(err, "building query")
	}
	if _, err = repo.db.Exec(repo.db.Rebind(q), args...); err != nil {
		return errors.Wrap(err, "deleting users")
	}
	return nil
}
