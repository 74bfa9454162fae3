package client

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/Joaolucasos169/gestao-projeto-karate/core"
	"github.com/Joaolucasos169/gestao-projeto-karate/core/exame"
)

// ExameDraft assembles a new exam before submission. The roster behaves as a
// set even though it is kept as an ordered slice: toggling an id off removes
// every occurrence, so duplicates can never accumulate and reach the server.
type ExameDraft struct {
	NomeEvento string
	Data       string // YYYY-MM-DD
	Hora       string
	Local      string

	roster []int
}

// Toggle flips one student's membership in the roster.
func (d *ExameDraft) Toggle(alunoID int) {
	if d.Selected(alunoID) {
		kept := d.roster[:0]
		for _, id := range d.roster {
			if id != alunoID {
				kept = append(kept, id)
			}
		}
		d.roster = kept
		return
	}
	d.roster = append(d.roster, alunoID)
}

func (d *ExameDraft) Selected(alunoID int) bool {
	for _, id := range d.roster {
		if id == alunoID {
			return true
		}
	}
	return false
}

// Roster returns a copy of the selected ids in selection order.
func (d *ExameDraft) Roster() []int {
	return append([]int(nil), d.roster...)
}

// Submit validates the draft and creates the exam. An empty roster or a blank
// required field blocks submission without a network call.
func (d *ExameDraft) Submit(ctx context.Context, c *Client) (exame.Exame, error) {
	if core.CleanString(d.NomeEvento) == "" {
		return exame.Exame{}, &ValidationError{Field: "nome_evento", Message: "campo obrigatório"}
	}
	if !dateRe.MatchString(d.Data) {
		return exame.Exame{}, &ValidationError{Field: "data_exame", Message: "data deve estar no formato AAAA-MM-DD"}
	}
	if len(d.roster) == 0 {
		return exame.Exame{}, &ValidationError{Field: "alunos_ids", Message: "selecione ao menos um aluno"}
	}

	dataExame, err := core.ParseDate(d.Data)
	if err != nil {
		return exame.Exame{}, &ValidationError{Field: "data_exame", Message: "data inválida"}
	}
	return c.CreateExame(ctx, exame.NewExame{
		NomeEvento: d.NomeEvento,
		DataExame:  dataExame,
		Hora:       d.Hora,
		Local:      d.Local,
		AlunosIDs:  d.Roster(),
	})
}

// BancaEntry is one student's grading row. Notas/Media/Aprovado are what the
// screen displays; saved* hold the last server-confirmed state, restored when
// a save fails so a dead request never leaves a phantom average on screen.
type BancaEntry struct {
	InscricaoID int
	AlunoNome   string
	AlunoFaixa  string

	Notas      exame.Notas
	Media      float64
	Aprovado   bool
	Observacao string

	savedNotas    exame.Notas
	savedMedia    float64
	savedAprovado bool
	savedObs      string
}

// Dirty reports whether the displayed scores differ from the saved ones.
func (e *BancaEntry) Dirty() bool {
	return e.Notas != e.savedNotas || e.Observacao != e.savedObs
}

// Banca is the grading screen of one exam.
type Banca struct {
	api     *Client
	exameID int

	mu      sync.Mutex
	entries []*BancaEntry
}

func NewBanca(api *Client, exameID int) *Banca {
	return &Banca{api: api, exameID: exameID}
}

// Load fetches the score entries, keeping the order the server returned;
// that order is also the tie-break order of the ranking.
func (b *Banca) Load(ctx context.Context) error {
	inscricoes, err := b.api.Banca(ctx, b.exameID)
	if err != nil {
		return err
	}

	entries := make([]*BancaEntry, len(inscricoes))
	for i, insc := range inscricoes {
		entries[i] = &BancaEntry{
			InscricaoID:   insc.ID,
			AlunoNome:     insc.AlunoNome,
			AlunoFaixa:    insc.AlunoFaixa,
			Notas:         insc.Notas,
			Media:         insc.Media,
			Aprovado:      insc.Aprovado,
			Observacao:    insc.Observacao,
			savedNotas:    insc.Notas,
			savedMedia:    insc.Media,
			savedAprovado: insc.Aprovado,
			savedObs:      insc.Observacao,
		}
	}

	b.mu.Lock()
	b.entries = entries
	b.mu.Unlock()
	return nil
}

// SetNota updates one category score and recomputes the provisional average
// and verdict in the same step, so the badge and the number can never be
// rendered out of sync. The provisional values are a display aid only; the
// server remains authoritative once the entry is saved.
func (b *Banca) SetNota(inscricaoID int, categoria string, valor exame.Nota) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	entry := b.find(inscricaoID)
	if entry == nil {
		return errors.Errorf("inscrição %d não encontrada", inscricaoID)
	}

	switch categoria {
	case "kihon":
		entry.Notas.Kihon = valor
	case "kata":
		entry.Notas.Kata = valor
	case "kumite":
		entry.Notas.Kumite = valor
	case "gerais":
		entry.Notas.Gerais = valor
	default:
		return errors.Errorf("categoria desconhecida: %s", categoria)
	}

	entry.Media = entry.Notas.Media()
	entry.Aprovado = entry.Notas.Aprovado()
	return nil
}

// SetObservacao updates the free-text note; it does not affect the average.
func (b *Banca) SetObservacao(inscricaoID int, obs string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	entry := b.find(inscricaoID)
	if entry == nil {
		return errors.Errorf("inscrição %d não encontrada", inscricaoID)
	}
	entry.Observacao = obs
	return nil
}

// Save persists one entry's scores. On success the displayed average and
// verdict are reconciled with the server-returned values; on failure the
// entry rolls back to its last saved state before the error is surfaced.
func (b *Banca) Save(ctx context.Context, inscricaoID int) (NotaResult, error) {
	b.mu.Lock()
	entry := b.find(inscricaoID)
	if entry == nil {
		b.mu.Unlock()
		return NotaResult{}, errors.Errorf("inscrição %d não encontrada", inscricaoID)
	}
	payload := exame.NovaNota{Notas: entry.Notas, Observacao: entry.Observacao}
	b.mu.Unlock()

	res, err := b.api.SaveNota(ctx, inscricaoID, payload)

	b.mu.Lock()
	defer b.mu.Unlock()
	if err != nil {
		entry.Notas = entry.savedNotas
		entry.Media = entry.savedMedia
		entry.Aprovado = entry.savedAprovado
		entry.Observacao = entry.savedObs
		return NotaResult{}, err
	}

	entry.Media = res.Media
	entry.Aprovado = res.Aprovado
	entry.savedNotas = entry.Notas
	entry.savedMedia = res.Media
	entry.savedAprovado = res.Aprovado
	entry.savedObs = entry.Observacao
	return res, nil
}

// Entries returns the rows in server order.
func (b *Banca) Entries() []BancaEntry {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]BancaEntry, len(b.entries))
	for i, e := range b.entries {
		out[i] = *e
	}
	return out
}

// Ranked is one row of the classification view. Posicao starts at 1; the
// first three positions carry a podium badge. The badge is display-only.
type Ranked struct {
	BancaEntry
	Posicao int
	Podio   bool
}

// Ranking orders entries by descending average; ties keep the order the
// entries were fetched in.
func (b *Banca) Ranking() []Ranked {
	entries := b.Entries()

	inscricoes := make([]exame.Inscricao, len(entries))
	for i, e := range entries {
		inscricoes[i] = exame.Inscricao{ID: e.InscricaoID, Media: e.Media}
	}
	exame.RankInscricoes(inscricoes)

	byID := make(map[int]BancaEntry, len(entries))
	for _, e := range entries {
		byID[e.InscricaoID] = e
	}

	out := make([]Ranked, len(inscricoes))
	for i, insc := range inscricoes {
		out[i] = Ranked{
			BancaEntry: byID[insc.ID],
			Posicao:    i + 1,
			Podio:      i < 3,
		}
	}
	return out
}

func (b *Banca) find(inscricaoID int) *BancaEntry {
	for _, e := range b.entries {
		if e.InscricaoID == inscricaoID {
			return e
		}
	}
	return nil
}
