package echoapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strconv"
	"testing"
	"time"

	"github.com/Joaolucasos169/gestao-projeto-karate/core"
	"github.com/Joaolucasos169/gestao-projeto-karate/core/aluno"
	"github.com/Joaolucasos169/gestao-projeto-karate/core/aula"
	"github.com/Joaolucasos169/gestao-projeto-karate/core/exame"
	"github.com/Joaolucasos169/gestao-projeto-karate/core/professor"
	"github.com/Joaolucasos169/gestao-projeto-karate/core/user"
	emailsvc "github.com/Joaolucasos169/gestao-projeto-karate/services/email"
	inmemdb "github.com/Joaolucasos169/gestao-projeto-karate/storage/database/inmem"
)

var errMissingToken = httpErr{Message: "missing or malformed jwt"}

type testLogger struct{}

func (testLogger) Debug(string, ...interface{}) {}
func (testLogger) Info(string, ...interface{})  {}
func (testLogger) Warn(string, ...interface{})  {}
func (testLogger) Error(string, ...interface{}) {}
func (testLogger) Fatal(string, ...interface{}) {}

type testEnv struct {
	app Server

	usrRepo user.Repository

	usrSvc       user.Service
	alunoSvc     *aluno.Service
	professorSvc *professor.Service
	aulaSvc      *aula.Service
	exameSvc     *exame.Service
}

func testConfig() *core.Config {
	return &core.Config{
		TestMode:                  true,
		AppName:                   "Academia",
		SecretKey:                 "chave-de-teste",
		PasswordResetTimeoutDelta: time.Hour,
		Server: core.ServerConfig{
			JWTExpirationDelta:        10 * time.Minute,
			JWTRefreshExpirationDelta: 4 * time.Hour,
		},
	}
}

func setup(t *testing.T) *testEnv {
	t.Helper()

	conf := testConfig()
	db := inmemdb.NewDB()

	usrRepo := inmemdb.NewUserRepository(db)
	mailSvc := emailsvc.NewConsoleServiceMock(conf)
	usrSvc := user.NewServiceMock(usrRepo, mailSvc, conf)

	alunoSvc := aluno.NewService(inmemdb.NewAlunoRepository(db))
	professorSvc := professor.NewService(inmemdb.NewProfessorRepository(db), usrSvc)
	aulaSvc := aula.NewService(inmemdb.NewAulaRepository(db), professorSvc)
	exameSvc := exame.NewService(inmemdb.NewExameRepository(db), alunoSvc)

	app := NewServer(ServerDeps{
		Conf:         conf,
		Logger:       testLogger{},
		UserSvc:      usrSvc,
		AlunoSvc:     alunoSvc,
		ProfessorSvc: professorSvc,
		AulaSvc:      aulaSvc,
		ExameSvc:     exameSvc,
	})

	return &testEnv{
		app:          app,
		usrRepo:      usrRepo,
		usrSvc:       usrSvc,
		alunoSvc:     alunoSvc,
		professorSvc: professorSvc,
		aulaSvc:      aulaSvc,
		exameSvc:     exameSvc,
	}
}

type httpErr struct {
	Message string `json:"message"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func getToken(t *testing.T, usr user.User) string {
	t.Helper()
	token, err := GenerateToken(GetUserClaims(usr))
	if err != nil {
		t.Fatalf("getToken(): %v", err)
	}
	return token
}

// createTestUser goes straight to the repository so tests control every field.
func createTestUser(t *testing.T, repo user.Repository, nome, email, senha, nivel string) user.User {
	t.Helper()

	now := time.Now().UTC()
	usr := user.User{
		Nome:        nome,
		Email:       email,
		NivelAcesso: nivel,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if senha != "" {
		if err := usr.SetSenha(senha); err != nil {
			t.Fatalf("createTestUser(): %v", err)
		}
	}
	usr, err := repo.CreateUser(usr)
	if err != nil {
		t.Fatalf("createTestUser(): %v", err)
	}
	return usr
}

func createTestAluno(t *testing.T, svc *aluno.Service, nome, telefone string) aluno.Aluno {
	t.Helper()

	a, err := svc.Create(aluno.NewAluno{
		Nome:           nome,
		DataNascimento: core.NewDate(2010, time.March, 15),
		Telefone:       telefone,
	})
	if err != nil {
		t.Fatalf("createTestAluno(): %v", err)
	}
	return a
}

func createTestProfessor(t *testing.T, svc *professor.Service, nome, cpf, email string) professor.Professor {
	t.Helper()

	p, err := svc.Create(professor.NewProfessor{
		Nome:           nome,
		CPF:            cpf,
		DataNascimento: core.NewDate(1985, time.July, 2),
		Email:          email,
		Senha:          "Kime#2026!forte",
	})
	if err != nil {
		t.Fatalf("createTestProfessor(): %v", err)
	}
	return p
}

func itoa(id int) string { return strconv.Itoa(id) }

func marshallObj(t *testing.T, obj interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marshallObj(): %v", err)
	}
	return data
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()

	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
