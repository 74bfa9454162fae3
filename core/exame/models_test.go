package exame

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Joaolucasos169/gestao-projeto-karate/core"
)

func TestNotaUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		want    Nota
		wantErr bool
	}{
		{name: "number", data: `7.5`, want: 7.5},
		{name: "integer number", data: `10`, want: 10},
		{name: "numeric string", data: `"7.5"`, want: 7.5},
		{name: "blank string is zero", data: `""`, want: 0},
		{name: "null is zero", data: `null`, want: 0},
		{name: "garbage string", data: `"abc"`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var n Nota
			err := json.Unmarshal([]byte(tt.data), &n)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, n)
		})
	}
}

func TestNotasMediaAprovado(t *testing.T) {
	tests := []struct {
		name         string
		notas        Notas
		wantMedia    float64
		wantAprovado bool
	}{
		{
			name:         "all sixes pass on the boundary",
			notas:        Notas{Kihon: 6, Kata: 6, Kumite: 6, Gerais: 6},
			wantMedia:    6.0,
			wantAprovado: true,
		},
		{
			name:         "all fives fail",
			notas:        Notas{Kihon: 5, Kata: 5, Kumite: 5, Gerais: 5},
			wantMedia:    5.0,
			wantAprovado: false,
		},
		{
			name:         "zeroed sheet fails",
			notas:        Notas{},
			wantMedia:    0,
			wantAprovado: false,
		},
		{
			name:         "rounds to one decimal",
			notas:        Notas{Kihon: 7.5, Kata: 8, Kumite: 6.5, Gerais: 7},
			wantMedia:    7.3, // 29/4 = 7.25 -> 7.3
			wantAprovado: true,
		},
		{
			name:         "rounding can tip a raw 5.9x over the line",
			notas:        Notas{Kihon: 6, Kata: 6, Kumite: 6, Gerais: 5.9},
			wantMedia:    6.0, // 23.9/4 = 5.975 -> 6.0
			wantAprovado: true,
		},
		{
			name:         "perfect score",
			notas:        Notas{Kihon: 10, Kata: 10, Kumite: 10, Gerais: 10},
			wantMedia:    10,
			wantAprovado: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantMedia, tt.notas.Media())
			assert.Equal(t, tt.wantAprovado, tt.notas.Aprovado())
		})
	}
}

func TestNovaNotaValidate(t *testing.T) {
	tests := []struct {
		name    string
		notas   Notas
		wantErr bool
	}{
		{name: "valid half steps", notas: Notas{Kihon: 7.5, Kata: 8, Kumite: 0, Gerais: 10}},
		{name: "above range", notas: Notas{Kihon: 10.5}, wantErr: true},
		{name: "below range", notas: Notas{Kata: -1}, wantErr: true},
		{name: "off the half step grid", notas: Notas{Kumite: 7.3}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nn := NovaNota{Notas: tt.notas}
			err := nn.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestNewExameValidate(t *testing.T) {
	t.Run("deduplicates the roster keeping order", func(t *testing.T) {
		ne := NewExame{
			NomeEvento: "Exame de Faixa 2026",
			DataExame:  core.NewDate(2026, time.December, 12),
			AlunosIDs:  []int{3, 1, 3, 2, 1, 0, -4},
		}
		require.NoError(t, ne.Validate())
		assert.Equal(t, []int{3, 1, 2}, ne.AlunosIDs)
	})

	t.Run("rejects an empty roster", func(t *testing.T) {
		ne := NewExame{
			NomeEvento: "Exame de Faixa 2026",
			DataExame:  core.NewDate(2026, time.December, 12),
			AlunosIDs:  []int{0},
		}
		assert.Error(t, ne.Validate())
	})
}

func TestRankInscricoes(t *testing.T) {
	inscricoes := []Inscricao{
		{ID: 1, Media: 7.0},
		{ID: 2, Media: 9.5},
		{ID: 3, Media: 7.0},
		{ID: 4, Media: 4.0},
		{ID: 5, Media: 9.5},
	}
	RankInscricoes(inscricoes)

	var ids []int
	for _, insc := range inscricoes {
		ids = append(ids, insc.ID)
	}
	// ties keep submission order
	assert.Equal(t, []int{2, 5, 1, 3, 4}, ids)
}
