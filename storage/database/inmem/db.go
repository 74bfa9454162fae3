package inmemdb

import (
	"sync"

	"github.com/Joaolucasos169/gestao-projeto-karate/core/aluno"
	"github.com/Joaolucasos169/gestao-projeto-karate/core/aula"
	"github.com/Joaolucasos169/gestao-projeto-karate/core/exame"
	"github.com/Joaolucasos169/gestao-projeto-karate/core/professor"
	"github.com/Joaolucasos169/gestao-projeto-karate/core/user"
)

// DB is a mutex-guarded map store. It backs tests and local development; the
// data is gone when the process exits.
type DB struct {
	user      *userTable
	aluno     *alunoTable
	professor *professorTable
	aula      *aulaTable
	exame     *exameTable
}

func NewDB() *DB {
	return &DB{
		user:      &userTable{table: make(map[int]*user.User)},
		aluno:     &alunoTable{table: make(map[int]*aluno.Aluno)},
		professor: &professorTable{table: make(map[int]*professor.Professor)},
		aula:      &aulaTable{table: make(map[int]*aula.Aula)},
		exame: &exameTable{
			table:      make(map[int]*exame.Exame),
			inscricoes: make(map[int]*exame.Inscricao),
		},
	}
}

type userTable struct {
	mutex sync.RWMutex
	seq   int
	table map[int]*user.User
}

type alunoTable struct {
	mutex sync.RWMutex
	seq   int
	table map[int]*aluno.Aluno
}

type professorTable struct {
	mutex sync.RWMutex
	seq   int
	table map[int]*professor.Professor
}

type aulaTable struct {
	mutex sync.RWMutex
	seq   int
	table map[int]*aula.Aula
}

type exameTable struct {
	mutex      sync.RWMutex
	seq        int
	inscSeq    int
	table      map[int]*exame.Exame
	inscricoes map[int]*exame.Inscricao
}
