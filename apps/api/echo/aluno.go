package echoapi

import (
	"net/http"
	"sort"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Joaolucasos169/gestao-projeto-karate/core"
	"github.com/Joaolucasos169/gestao-projeto-karate/core/aluno"
)

type alunoApi struct {
	svc *aluno.Service
}

func registerAlunoAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *aluno.Service) {
	api := alunoApi{svc: svc}

	ag := g.Group("/alunos", jwt)
	ag.GET("", api.query)
	ag.POST("", api.create, staffMiddleware())

	dg := ag.Group("/:id")
	dg.GET("", api.retrieve)
	dg.PUT("", api.update, staffMiddleware())
	dg.DELETE("", api.destroy, staffMiddleware())
}

func (api *alunoApi) create(ctx echo.Context) error {
	var data aluno.NewAluno
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAluno")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	a, err := api.svc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating aluno")
	}
	return ctx.JSON(http.StatusCreated, a)
}

// query lists active students by default; ?ativo=false shows the inactivated
// ones and ?search= filters by nome (accent-insensitive) or telefone digits.
func (api *alunoApi) query(ctx echo.Context) error {
	filter := new(aluno.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []aluno.Aluno{})
	}
	filter.Clean()
	if filter.Ativo == nil {
		ativo := true
		filter.Ativo = &ativo
	}
	ordering := new(Ordering)
	ordering.Bind(ctx)

	alunos, err := api.svc.Filter(*filter)
	if err != nil {
		return errors.Wrap(err, "querying alunos")
	}
	if alunos == nil {
		alunos = []aluno.Aluno{}
	}
	applyAlunoOrdering(alunos, ordering.Orderings)
	return ctx.JSON(http.StatusOK, alunos)
}

// applyAlunoOrdering supports ordering=nome|-nome|id|-id; nome uses pt-BR
// collation with blank names last.
func applyAlunoOrdering(alunos []aluno.Aluno, orderings []core.DBOrdering) {
	for i := len(orderings) - 1; i >= 0; i-- {
		ord := orderings[i]
		switch ord.Field {
		case "nome":
			sort.SliceStable(alunos, func(i, j int) bool {
				if ord.Ascending {
					return core.LessNome(alunos[i].Nome, alunos[j].Nome)
				}
				return core.LessNome(alunos[j].Nome, alunos[i].Nome)
			})
		case "id":
			sort.SliceStable(alunos, func(i, j int) bool {
				if ord.Ascending {
					return alunos[i].ID < alunos[j].ID
				}
				return alunos[i].ID > alunos[j].ID
			})
		}
	}
}

func (api *alunoApi) retrieve(ctx echo.Context) error {
	id, err := parseIntParam(ctx, "id")
	if err != nil {
		return errHttpNotFound
	}
	a, err := api.svc.GetByID(id)
	if err != nil {
		if errors.Cause(err) == aluno.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting aluno")
	}
	return ctx.JSON(http.StatusOK, a)
}

func (api *alunoApi) update(ctx echo.Context) error {
	id, err := parseIntParam(ctx, "id")
	if err != nil {
		return errHttpNotFound
	}
	orig, err := api.svc.GetByID(id)
	if err != nil {
		if errors.Cause(err) == aluno.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting aluno")
	}

	var data aluno.UpdateAluno
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateAluno")
	}
	if err := data.Validate(orig); err != nil {
		return err
	}

	a, err := api.svc.Update(id, data)
	if err != nil {
		return errors.Wrap(err, "updating aluno")
	}
	return ctx.JSON(http.StatusOK, a)
}

// destroy inactivates the student; exam history stays put.
func (api *alunoApi) destroy(ctx echo.Context) error {
	id, err := parseIntParam(ctx, "id")
	if err != nil {
		return errHttpNotFound
	}
	if _, err := api.svc.Deactivate(id); err != nil {
		if errors.Cause(err) == aluno.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "deactivating aluno")
	}
	return ctx.JSON(http.StatusOK, MessageResponse{Message: "Aluno desativado com sucesso!"})
}
