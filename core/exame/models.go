package exame

import (
	"bytes"
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/Joaolucasos169/gestao-projeto-karate/core"
)

// MediaMinima is the passing grade; a media equal to it passes.
const MediaMinima = 6.0

// Nota is a single category score. Grading forms submit values as strings
// (input fields), so it accepts both JSON numbers and numeric strings; a
// blank string counts as zero.
type Nota float64

func (n *Nota) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*n = 0
		return nil
	}
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return err
	}
	*n = Nota(v)
	return nil
}

// Notas holds the four category scores of an Inscricao.
type Notas struct {
	Kihon  Nota `json:"kihon" validate:"meianota"`
	Kata   Nota `json:"kata" validate:"meianota"`
	Kumite Nota `json:"kumite" validate:"meianota"`
	Gerais Nota `json:"gerais" validate:"meianota"`
}

// Media is the average of the four scores, rounded to one decimal.
func (n Notas) Media() float64 {
	sum := float64(n.Kihon + n.Kata + n.Kumite + n.Gerais)
	return math.Round(sum/4*10) / 10
}

// Aprovado compares the rounded Media against MediaMinima, so a raw average
// of 5.96 rounds to 6.0 and passes.
func (n Notas) Aprovado() bool {
	return n.Media() >= MediaMinima
}

type Exame struct {
	ID         int       `json:"id"`
	NomeEvento string    `json:"nome_evento"`
	DataExame  core.Date `json:"data_exame"`
	Hora       string    `json:"hora"`
	Local      string    `json:"local"`
	CreatedAt  time.Time `json:"created_at"` // UTC
	UpdatedAt  time.Time `json:"updated_at"` // UTC
}

// Inscricao is one Aluno's entry in an Exame. AlunoNome and AlunoFaixa are
// denormalized from the alunos table when the banca is loaded.
type Inscricao struct {
	ID         int       `json:"id"`
	FkExame    int       `json:"fk_exame"`
	FkAluno    int       `json:"fk_aluno"`
	AlunoNome  string    `json:"aluno_nome"`
	AlunoFaixa string    `json:"aluno_faixa"`
	Notas      Notas     `json:"notas"`
	Media      float64   `json:"media"`
	Aprovado   bool      `json:"aprovado"`
	Observacao string    `json:"observacao"`
	CreatedAt  time.Time `json:"created_at"` // UTC
	UpdatedAt  time.Time `json:"updated_at"` // UTC
}

// NewExame contains information needed to schedule a new Exame. AlunosIDs is
// the roster captured at creation time; it behaves as a set.
type NewExame struct {
	NomeEvento string    `json:"nome_evento" validate:"required"`
	DataExame  core.Date `json:"data_exame" validate:"required"`
	Hora       string    `json:"hora" validate:"omitempty,horario"`
	Local      string    `json:"local"`
	AlunosIDs  []int     `json:"alunos_ids" validate:"required,min=1"`
}

func (ne *NewExame) Validate() error {
	ne.NomeEvento = core.CleanString(ne.NomeEvento)
	ne.Local = core.CleanString(ne.Local)
	ne.AlunosIDs = dedupIDs(ne.AlunosIDs)
	return core.Validate.Struct(ne)
}

// UpdateExame defines a partial update of the event data; the roster is fixed
// at creation and cannot be edited.
type UpdateExame struct {
	NomeEvento string    `json:"nome_evento"`
	DataExame  core.Date `json:"data_exame"`
	Hora       string    `json:"hora" validate:"omitempty,horario"`
	Local      string    `json:"local"`
}

func (ue *UpdateExame) Validate(orig Exame) error {
	if nome := core.CleanString(ue.NomeEvento); nome != "" {
		ue.NomeEvento = nome
	} else {
		ue.NomeEvento = orig.NomeEvento
	}
	if ue.DataExame.IsZero() {
		ue.DataExame = orig.DataExame
	}
	if ue.Hora == "" {
		ue.Hora = orig.Hora
	}
	if local := core.CleanString(ue.Local); local != "" {
		ue.Local = local
	} else {
		ue.Local = orig.Local
	}
	return core.Validate.Struct(ue)
}

// NovaNota is the grading payload for one Inscricao.
type NovaNota struct {
	Notas
	Observacao string `json:"observacao"`
}

func (nn *NovaNota) Validate() error {
	nn.Observacao = core.CleanString(nn.Observacao)
	return core.Validate.Struct(nn)
}

// RankInscricoes sorts by media descending, keeping submission order between
// ties. The caller decides how many leading entries get podium badges.
func RankInscricoes(inscricoes []Inscricao) {
	sort.SliceStable(inscricoes, func(i, j int) bool {
		return inscricoes[i].Media > inscricoes[j].Media
	})
}

// dedupIDs drops duplicate and non-positive ids, keeping first-occurrence order.
func dedupIDs(ids []int) []int {
	seen := make(map[int]struct{}, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if id <= 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
