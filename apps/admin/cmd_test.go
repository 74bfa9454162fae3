package main

import (
	"bytes"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strconv"
	"testing"

	"github.com/Joaolucasos169/gestao-projeto-karate/core/user"
	inmemdb "github.com/Joaolucasos169/gestao-projeto-karate/storage/database/inmem"
)

var usrRepo user.Repository

func setup(t *testing.T) *commandLine {
	t.Helper()

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags)
	usrRepo = inmemdb.NewUserRepository(inmemdb.NewDB())

	return &commandLine{usrRepo: usrRepo}
}

func createUser(t *testing.T, nome, email, pwd string, admin bool) user.User {
	t.Helper()

	usr := user.User{Nome: nome, Email: email, NivelAcesso: user.NivelAluno}
	if admin {
		usr.NivelAcesso = user.NivelAdmin
	}
	if err := usr.SetSenha(pwd); err != nil {
		t.Fatalf("SetSenha() failed, %v", err)
	}
	usr, err := usrRepo.CreateUser(usr)
	if err != nil {
		t.Fatalf("CreateUser() failed, %v", err)
	}
	return usr
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
	extra      interface{}
}

func Test_commandLine_migrate(t *testing.T) {
	cli := setup(t)

	gooseRunFunc = func(command string, db *sql.DB, args ...string) error {
		switch command {
		case "up", "up-by-one", "down", "fix", "redo", "reset", "status", "version": // pass
		case "up-to", "down-to":
			if len(args) == 0 {
				return fmt.Errorf("%s requires a VERSION argument", command)
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return fmt.Errorf("version must be a number (got '%s')", args[0])
			}
		case "create":
			if len(args) == 0 {
				return fmt.Errorf("create requires a NAME argument")
			}
		default:
			return fmt.Errorf("%q: no such command", command)
		}
		return nil
	}

	tests := []cliTest{
		{name: "no subcommand", args: []string{"migrate"}, wantErr: errHelp},
		{name: "unknown subcommand", args: []string{"migrate", "lol"}, wantErrStr: "\"lol\": no such command"},
		{name: "up-to: no args", args: []string{"migrate", "up-to"}, wantErrStr: "up-to requires a VERSION argument"},
		{name: "up-to: non-int arg", args: []string{"migrate", "up-to", "lol"}, wantErrStr: "version must be a number (got 'lol')"},
		{name: "down-to: no args", args: []string{"migrate", "down-to"}, wantErrStr: "down-to requires a VERSION argument"},
		{name: "up", args: []string{"migrate", "up"}},
		{name: "down", args: []string{"migrate", "down"}},
		{name: "status", args: []string{"migrate", "status"}},
		{name: "version", args: []string{"migrate", "version"}},
		{name: "create", args: []string{"migrate", "create", "graduacoes", "sql"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			if err := cli.run(args); err != nil {
				if tt.wantErr != nil {
					if err != tt.wantErr {
						t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
					}
				} else if tt.wantErrStr != "" {
					if err.Error() != tt.wantErrStr {
						t.Errorf("cli.run() error.Error() = %s, wantErrStr %s", err.Error(), tt.wantErrStr)
					}
				} else {
					t.Errorf("cli.run() unexpected error = %v", err)
				}
			}
		})
	}
}

func Test_commandLine_createAdmin(t *testing.T) {
	cli := setup(t)

	readPasswordFunc = func(fd int) ([]byte, error) { return []byte("Oss@2026!"), nil }

	t.Run("creates the account", func(t *testing.T) {
		if err := cli.run([]string{"admin", "createadmin", "-email", "admin@dojo.com.br"}); err != nil {
			t.Fatalf("cli.run() unexpected error = %v", err)
		}
		usr, err := usrRepo.GetUserByEmail("admin@dojo.com.br")
		if err != nil {
			t.Fatalf("GetUserByEmail() failed, %v", err)
		}
		if usr.NivelAcesso != user.NivelAdmin {
			t.Errorf("NivelAcesso = %q, want %q", usr.NivelAcesso, user.NivelAdmin)
		}
		if err := usr.CheckSenha("Oss@2026!"); err != nil {
			t.Error("password was not set")
		}
	})

	t.Run("is idempotent", func(t *testing.T) {
		usr, _ := usrRepo.GetUserByEmail("admin@dojo.com.br")

		readPasswordFunc = func(fd int) ([]byte, error) { return []byte("outra-senha"), nil }
		if err := cli.run([]string{"admin", "createadmin", "-email", "admin@dojo.com.br"}); err != nil {
			t.Fatalf("cli.run() unexpected error = %v", err)
		}

		refreshed, err := usrRepo.GetUserByEmail("admin@dojo.com.br")
		if err != nil {
			t.Fatalf("GetUserByEmail() failed, %v", err)
		}
		if refreshed.ID != usr.ID {
			t.Error("a second account was created")
		}
		if !bytes.Equal(refreshed.SenhaHash, usr.SenhaHash) {
			t.Error("existing account was modified")
		}
	})

	t.Run("email required", func(t *testing.T) {
		if err := cli.run([]string{"admin", "createadmin"}); err != errHelp {
			t.Errorf("cli.run() error = %v, wantErr %v", err, errHelp)
		}
	})
}

func Test_commandLine_resetPassword(t *testing.T) {
	cli := setup(t)

	usr := createUser(t, "Mestre Kim", "kim@dojo.com.br", "senha-antiga", false)

	type extra struct {
		pwd string
	}
	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "no args", args: []string{"resetpassword"}, wantErr: errHelp},
		{name: "email but no password", args: []string{"resetpassword", "-email", "lol@test.com"}, wantErr: errHelp},
		{name: "user not found", args: []string{"resetpassword", "-email", "lol@test.com"}, extra: extra{pwd: "lol"}, wantErr: user.ErrNotFound},
		{name: "reset", args: []string{"resetpassword", "-email", usr.Email}, extra: extra{pwd: "senha-nova"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		readPasswordFunc = func(fd int) ([]byte, error) {
			if extra, ok := tt.extra.(extra); ok {
				return []byte(extra.pwd), nil
			}
			return nil, nil
		}

		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(args)
			if err == nil {
				refreshedUsr, err := usrRepo.GetUserByEmail(usr.Email)
				if err != nil {
					t.Fatalf("GetUserByEmail() failed, %v", err)
				}
				if bytes.Equal(refreshedUsr.SenhaHash, usr.SenhaHash) {
					t.Error("failed to update new password")
				}
			} else if err != tt.wantErr {
				t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
