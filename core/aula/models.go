package aula

import (
	"time"

	"github.com/Joaolucasos169/gestao-projeto-karate/core"
)

// ModalidadePadrao is assigned when no modalidade is provided.
const ModalidadePadrao = "Karatê"

// DiasValidos are the accepted values for dias_semana.
var DiasValidos = []string{"segunda", "terca", "quarta", "quinta", "sexta", "sabado", "domingo"}

type Aula struct {
	ID            int       `json:"id"`
	NomeTurma     string    `json:"nome_turma"`
	Modalidade    string    `json:"modalidade"`
	DiasSemana    []string  `json:"dias_semana"`
	HorarioInicio string    `json:"horario_inicio"`
	HorarioFim    string    `json:"horario_fim"`
	FkProfessor   int       `json:"fk_professor"`
	CreatedAt     time.Time `json:"created_at"` // UTC
	UpdatedAt     time.Time `json:"updated_at"` // UTC
}

// NewAula contains information needed to create a new Aula.
type NewAula struct {
	NomeTurma     string   `json:"nome_turma" validate:"required"`
	Modalidade    string   `json:"modalidade"`
	DiasSemana    []string `json:"dias_semana" validate:"required,min=1,dive,oneof=segunda terca quarta quinta sexta sabado domingo"`
	HorarioInicio string   `json:"horario_inicio" validate:"required,horario"`
	HorarioFim    string   `json:"horario_fim" validate:"required,horario"`
	FkProfessor   int      `json:"fk_professor" validate:"required"`
}

func (na *NewAula) Validate(svc *Service) error {
	na.NomeTurma = core.CleanString(na.NomeTurma)
	na.Modalidade = core.CleanString(na.Modalidade)
	na.DiasSemana = dedupDias(na.DiasSemana)

	if err := core.Validate.Struct(na); err != nil {
		return err
	}
	if err := checkHorarios(na.HorarioInicio, na.HorarioFim); err != nil {
		return err
	}
	return svc.checkProfessor(na.FkProfessor)
}

// checkHorarios rejects a class ending at or before its start. HH:MM strings
// compare correctly as text.
func checkHorarios(inicio, fim string) error {
	if fim <= inicio {
		return core.NewValidationError(
			nil, core.FieldError{Field: "horario_fim", Error: "deve ser depois do horário de início"})
	}
	return nil
}

// UpdateAula defines a PATCH-style partial update; blank fields keep their
// current value.
type UpdateAula struct {
	NomeTurma     string   `json:"nome_turma"`
	Modalidade    string   `json:"modalidade"`
	DiasSemana    []string `json:"dias_semana" validate:"omitempty,min=1,dive,oneof=segunda terca quarta quinta sexta sabado domingo"`
	HorarioInicio string   `json:"horario_inicio" validate:"omitempty,horario"`
	HorarioFim    string   `json:"horario_fim" validate:"omitempty,horario"`
	FkProfessor   int      `json:"fk_professor"`
}

func (ua *UpdateAula) Validate(orig Aula, svc *Service) error {
	if nome := core.CleanString(ua.NomeTurma); nome != "" {
		ua.NomeTurma = nome
	} else {
		ua.NomeTurma = orig.NomeTurma
	}
	if mod := core.CleanString(ua.Modalidade); mod != "" {
		ua.Modalidade = mod
	} else {
		ua.Modalidade = orig.Modalidade
	}
	if ua.DiasSemana != nil {
		ua.DiasSemana = dedupDias(ua.DiasSemana)
	} else {
		ua.DiasSemana = orig.DiasSemana
	}
	if ua.HorarioInicio == "" {
		ua.HorarioInicio = orig.HorarioInicio
	}
	if ua.HorarioFim == "" {
		ua.HorarioFim = orig.HorarioFim
	}

	if err := core.Validate.Struct(ua); err != nil {
		return err
	}
	if err := checkHorarios(ua.HorarioInicio, ua.HorarioFim); err != nil {
		return err
	}
	if ua.FkProfessor != 0 && ua.FkProfessor != orig.FkProfessor {
		return svc.checkProfessor(ua.FkProfessor)
	}
	ua.FkProfessor = orig.FkProfessor
	return nil
}

// dedupDias drops duplicate entries, keeping first-occurrence order.
func dedupDias(dias []string) []string {
	seen := make(map[string]struct{}, len(dias))
	out := make([]string, 0, len(dias))
	for _, d := range dias {
		d = core.CleanString(d, true /* lower */)
		if d == "" {
			continue
		}
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	return out
}
