package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Joaolucasos169/gestao-projeto-karate/core/exame"
)

type exameApi struct {
	svc *exame.Service
}

func registerExameAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *exame.Service) {
	api := exameApi{svc: svc}

	eg := g.Group("/exames", jwt, staffMiddleware())
	eg.GET("", api.query)
	eg.POST("", api.create)
	eg.POST("/notas/:inscricaoId", api.salvarNota)

	dg := eg.Group("/:id")
	dg.GET("", api.retrieve)
	dg.PATCH("", api.update)
	dg.DELETE("", api.destroy)
	dg.GET("/banca", api.banca)
}

func (api *exameApi) create(ctx echo.Context) error {
	var data exame.NewExame
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewExame")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	e, err := api.svc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating exame")
	}
	return ctx.JSON(http.StatusCreated, e)
}

// query lists exams newest-first.
func (api *exameApi) query(ctx echo.Context) error {
	exames, err := api.svc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying exames")
	}
	if exames == nil {
		exames = []exame.Exame{}
	}
	return ctx.JSON(http.StatusOK, exames)
}

func (api *exameApi) retrieve(ctx echo.Context) error {
	id, err := parseIntParam(ctx, "id")
	if err != nil {
		return errHttpNotFound
	}
	e, err := api.svc.GetByID(id)
	if err != nil {
		if errors.Cause(err) == exame.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting exame")
	}
	return ctx.JSON(http.StatusOK, e)
}

func (api *exameApi) update(ctx echo.Context) error {
	id, err := parseIntParam(ctx, "id")
	if err != nil {
		return errHttpNotFound
	}
	orig, err := api.svc.GetByID(id)
	if err != nil {
		if errors.Cause(err) == exame.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting exame")
	}

	var data exame.UpdateExame
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateExame")
	}
	if err := data.Validate(orig); err != nil {
		return err
	}

	e, err := api.svc.Update(id, data)
	if err != nil {
		return errors.Wrap(err, "updating exame")
	}
	return ctx.JSON(http.StatusOK, e)
}

// destroy removes the exam and its whole grading sheet.
func (api *exameApi) destroy(ctx echo.Context) error {
	id, err := parseIntParam(ctx, "id")
	if err != nil {
		return errHttpNotFound
	}
	if err := api.svc.Delete(id); err != nil {
		if errors.Cause(err) == exame.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "deleting exame")
	}
	return ctx.JSON(http.StatusOK, MessageResponse{Message: "Exame excluído com sucesso!"})
}

// banca returns the grading sheet of an exam.
func (api *exameApi) banca(ctx echo.Context) error {
	id, err := parseIntParam(ctx, "id")
	if err != nil {
		return errHttpNotFound
	}
	inscricoes, err := api.svc.QueryBanca(id)
	if err != nil {
		if errors.Cause(err) == exame.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "querying banca")
	}
	if inscricoes == nil {
		inscricoes = []exame.Inscricao{}
	}
	return ctx.JSON(http.StatusOK, inscricoes)
}

func (api *exameApi) salvarNota(ctx echo.Context) error {
	id, err := parseIntParam(ctx, "inscricaoId")
	if err != nil {
		return errHttpNotFound
	}

	var data exame.NovaNota
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NovaNota")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	insc, err := api.svc.SalvarNota(id, data)
	if err != nil {
		if errors.Cause(err) == exame.ErrInscricaoNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "saving notas")
	}
	return ctx.JSON(http.StatusOK, NotaResponse{
		Message:  "Notas salvas com sucesso!",
		Media:    insc.Media,
		Aprovado: insc.Aprovado,
	})
}

type NotaResponse struct {
	Message  string  `json:"message"`
	Media    float64 `json:"media"`
	Aprovado bool    `json:"aprovado"`
}
