package echoapi

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/Joaolucasos169/gestao-projeto-karate/core/professor"
	"github.com/Joaolucasos169/gestao-projeto-karate/core/user"
)

func Test_professorApi_createIsAdminOnly(t *testing.T) {
	env := setup(t)
	admin := createTestUser(t, env.usrRepo, "Admin", "admin@academia.com", "", user.NivelAdmin)
	profUsr := createTestUser(t, env.usrRepo, "Prof", "prof@academia.com", "", user.NivelProfessor)

	body := []byte(`{
		"nome": "Sensei Miyagi",
		"cpf": "123.456.789-01",
		"data_nascimento": "1960-06-09",
		"grau_faixa": "Preta 5º Dan",
		"email": "miyagi@academia.com",
		"senha": "Wax#On!Wax0ff"
	}`)

	// staff below admin cannot register teachers
	req, rec := newAuthRequest(http.MethodPost, "/api/v1/professores", getToken(t, profUsr), body)
	env.app.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("professor create code = %v; want 403", rec.Code)
	}

	req, rec = newAuthRequest(http.MethodPost, "/api/v1/professores", getToken(t, admin), body)
	env.app.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create code = %v; body = %v", rec.Code, rec.Body.String())
	}

	var p professor.Professor
	if err := json.Unmarshal(rec.Body.Bytes(), &p); err != nil {
		t.Fatalf("unmarshalling professor: %v", err)
	}
	if p.CPF != "12345678901" {
		t.Errorf("cpf = %q; want digits only", p.CPF)
	}
	if p.FkUsuario == 0 {
		t.Fatal("professor has no linked account")
	}

	// the linked account exists with nível professor and working credentials
	usr, err := env.usrSvc.GetByID(p.FkUsuario)
	if err != nil {
		t.Fatalf("linked user: %v", err)
	}
	if usr.NivelAcesso != user.NivelProfessor {
		t.Errorf("linked user nivel = %q", usr.NivelAcesso)
	}
	if err := usr.CheckSenha("Wax#On!Wax0ff"); err != nil {
		t.Error("linked user password does not match")
	}

	// duplicate CPF is a validation error
	req, rec = newAuthRequest(http.MethodPost, "/api/v1/professores", getToken(t, admin),
		[]byte(`{
			"nome": "Outro",
			"cpf": "12345678901",
			"data_nascimento": "1970-01-01",
			"email": "outro@academia.com",
			"senha": "Outra#2026!boa"
		}`))
	env.app.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("duplicate cpf code = %v; want 400", rec.Code)
	}
}

func Test_professorApi_destroyIsSoft(t *testing.T) {
	env := setup(t)
	admin := createTestUser(t, env.usrRepo, "Admin", "admin@academia.com", "", user.NivelAdmin)
	token := getToken(t, admin)
	p := createTestProfessor(t, env.professorSvc, "Sensei Miyagi", "12345678901", "miyagi@academia.com")

	req, rec := newAuthRequest(http.MethodDelete, "/api/v1/professores/"+itoa(p.ID), token)
	env.app.ServeHTTP(rec, req)

	tt := httpTest{
		wantCode: http.StatusOK,
		wantData: marshallObj(t, MessageResponse{Message: "Professor desativado com sucesso!"}),
	}
	checkCodeAndData(t, tt, rec)

	kept, err := env.professorSvc.GetByID(p.ID)
	if err != nil {
		t.Fatalf("professor was hard-deleted: %v", err)
	}
	if kept.Ativo {
		t.Error("professor still active after destroy")
	}
}
