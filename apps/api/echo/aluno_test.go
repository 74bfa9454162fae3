package echoapi

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/Joaolucasos169/gestao-projeto-karate/core/aluno"
	"github.com/Joaolucasos169/gestao-projeto-karate/core/user"
)

func Test_alunoApi_create(t *testing.T) {
	env := setup(t)
	admin := createTestUser(t, env.usrRepo, "Admin", "admin@academia.com", "", user.NivelAdmin)
	alunoUsr := createTestUser(t, env.usrRepo, "Aluno", "aluno@academia.com", "", user.NivelAluno)

	body := []byte(`{
		"nome": "  Pedro Álvares  ",
		"data_nascimento": "2012-08-20",
		"sexo": "m",
		"telefone": "(11) 91234-5678"
	}`)

	tests := []httpTest{
		{
			name:     "no token",
			body:     body,
			wantCode: http.StatusUnauthorized,
			wantData: marshallObj(t, errMissingToken),
		},
		{
			name:     "aluno cannot create",
			body:     body,
			token:    getToken(t, alunoUsr),
			wantCode: http.StatusForbidden,
		},
		{
			name:     "missing nome",
			body:     []byte(`{"data_nascimento": "2012-08-20"}`),
			token:    getToken(t, admin),
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "ok",
			body:     body,
			token:    getToken(t, admin),
			wantCode: http.StatusCreated,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodPost, "/api/v1/alunos", tt.token, tt.body)
			env.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)

			if tt.name == "ok" {
				var a aluno.Aluno
				if err := json.Unmarshal(rec.Body.Bytes(), &a); err != nil {
					t.Fatalf("unmarshalling aluno: %v", err)
				}
				if a.Nome != "Pedro Álvares" {
					t.Errorf("nome = %q; want trimmed", a.Nome)
				}
				if a.Sexo != "M" {
					t.Errorf("sexo = %q; want normalized M", a.Sexo)
				}
				if a.GrauAtual != aluno.GrauInicial {
					t.Errorf("grau = %q; want %q", a.GrauAtual, aluno.GrauInicial)
				}
				if !a.Ativo {
					t.Error("new aluno must be active")
				}
			}
		})
	}
}

func Test_alunoApi_query(t *testing.T) {
	env := setup(t)
	admin := createTestUser(t, env.usrRepo, "Admin", "admin@academia.com", "", user.NivelAdmin)
	token := getToken(t, admin)

	joao := createTestAluno(t, env.alunoSvc, "João Silva", "(11) 91234-5678")
	bea := createTestAluno(t, env.alunoSvc, "Beatriz Lima", "(21) 99887-7665")
	andre := createTestAluno(t, env.alunoSvc, "André Costa", "")
	inativo := createTestAluno(t, env.alunoSvc, "Desistente", "")
	if _, err := env.alunoSvc.Deactivate(inativo.ID); err != nil {
		t.Fatalf("deactivating: %v", err)
	}
	inativo, _ = env.alunoSvc.GetByID(inativo.ID)

	tests := []httpTest{
		{
			name:     "default hides inactive",
			path:     "/api/v1/alunos",
			wantData: marshallObj(t, []aluno.Aluno{joao, bea, andre}),
		},
		{
			name:     "ativo=false shows only inactive",
			path:     "/api/v1/alunos?ativo=false",
			wantData: marshallObj(t, []aluno.Aluno{inativo}),
		},
		{
			name:     "search folds accents",
			path:     "/api/v1/alunos?search=joao",
			wantData: marshallObj(t, []aluno.Aluno{joao}),
		},
		{
			name:     "search matches phone digits",
			path:     "/api/v1/alunos?search=2345",
			wantData: marshallObj(t, []aluno.Aluno{joao}),
		},
		{
			name:     "ordering by nome",
			path:     "/api/v1/alunos?ordering=nome",
			wantData: marshallObj(t, []aluno.Aluno{andre, bea, joao}),
		},
		{
			name:     "ordering by nome desc",
			path:     "/api/v1/alunos?ordering=-nome",
			wantData: marshallObj(t, []aluno.Aluno{joao, bea, andre}),
		},
	}
	for _, tt := range tests {
		tt.wantCode = http.StatusOK

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, tt.path, token)
			env.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_alunoApi_update(t *testing.T) {
	env := setup(t)
	admin := createTestUser(t, env.usrRepo, "Admin", "admin@academia.com", "", user.NivelAdmin)
	token := getToken(t, admin)
	a := createTestAluno(t, env.alunoSvc, "João Silva", "(11) 91234-5678")

	// blank fields keep their current value
	body := []byte(`{"grau_atual": "Amarela", "data_ultima_graduacao": "2026-06-10"}`)
	req, rec := newAuthRequest(http.MethodPut, "/api/v1/alunos/"+itoa(a.ID), token, body)
	env.app.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("update code = %v; body = %v", rec.Code, rec.Body.String())
	}
	var updated aluno.Aluno
	if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
		t.Fatalf("unmarshalling aluno: %v", err)
	}
	if updated.GrauAtual != "Amarela" {
		t.Errorf("grau = %q; want Amarela", updated.GrauAtual)
	}
	if updated.Nome != "João Silva" {
		t.Errorf("nome = %q; blank update must keep it", updated.Nome)
	}
	if updated.Telefone != "(11) 91234-5678" {
		t.Errorf("telefone = %q; blank update must keep it", updated.Telefone)
	}

	// unknown id
	req, rec = newAuthRequest(http.MethodPut, "/api/v1/alunos/9999", token, body)
	env.app.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown id code = %v", rec.Code)
	}
}

func Test_alunoApi_destroyIsSoft(t *testing.T) {
	env := setup(t)
	admin := createTestUser(t, env.usrRepo, "Admin", "admin@academia.com", "", user.NivelAdmin)
	token := getToken(t, admin)
	a := createTestAluno(t, env.alunoSvc, "João Silva", "")

	req, rec := newAuthRequest(http.MethodDelete, "/api/v1/alunos/"+itoa(a.ID), token)
	env.app.ServeHTTP(rec, req)

	tt := httpTest{
		wantCode: http.StatusOK,
		wantData: marshallObj(t, MessageResponse{Message: "Aluno desativado com sucesso!"}),
	}
	checkCodeAndData(t, tt, rec)

	// the record survives, flagged inactive
	kept, err := env.alunoSvc.GetByID(a.ID)
	if err != nil {
		t.Fatalf("aluno was hard-deleted: %v", err)
	}
	if kept.Ativo {
		t.Error("aluno still active after destroy")
	}
}
