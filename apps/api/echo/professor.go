package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Joaolucasos169/gestao-projeto-karate/core/professor"
)

type professorApi struct {
	svc *professor.Service
}

func registerProfessorAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *professor.Service) {
	api := professorApi{svc: svc}

	pg := g.Group("/professores", jwt)
	pg.GET("", api.query)
	pg.POST("", api.create, adminMiddleware())

	dg := pg.Group("/:id")
	dg.GET("", api.retrieve)
	dg.PUT("", api.update, adminMiddleware())
	dg.DELETE("", api.destroy, adminMiddleware())
}

func (api *professorApi) create(ctx echo.Context) error {
	var data professor.NewProfessor
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewProfessor")
	}
	if err := data.Validate(api.svc); err != nil {
		return err
	}

	p, err := api.svc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating professor")
	}
	return ctx.JSON(http.StatusCreated, p)
}

func (api *professorApi) query(ctx echo.Context) error {
	professores, err := api.svc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying professores")
	}
	if professores == nil {
		professores = []professor.Professor{}
	}
	return ctx.JSON(http.StatusOK, professores)
}

func (api *professorApi) retrieve(ctx echo.Context) error {
	id, err := parseIntParam(ctx, "id")
	if err != nil {
		return errHttpNotFound
	}
	p, err := api.svc.GetByID(id)
	if err != nil {
		if errors.Cause(err) == professor.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting professor")
	}
	return ctx.JSON(http.StatusOK, p)
}

func (api *professorApi) update(ctx echo.Context) error {
	id, err := parseIntParam(ctx, "id")
	if err != nil {
		return errHttpNotFound
	}
	orig, err := api.svc.GetByID(id)
	if err != nil {
		if errors.Cause(err) == professor.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting professor")
	}

	var data professor.UpdateProfessor
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateProfessor")
	}
	if err := data.Validate(orig, api.svc); err != nil {
		return err
	}

	p, err := api.svc.Update(id, data)
	if err != nil {
		return errors.Wrap(err, "updating professor")
	}
	return ctx.JSON(http.StatusOK, p)
}

// destroy inactivates the teacher so their aulas keep a valid owner.
func (api *professorApi) destroy(ctx echo.Context) error {
	id, err := parseIntParam(ctx, "id")
	if err != nil {
		return errHttpNotFound
	}
	if _, err := api.svc.Deactivate(id); err != nil {
		if errors.Cause(err) == professor.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "deactivating professor")
	}
	return ctx.JSON(http.StatusOK, MessageResponse{Message: "Professor desativado com sucesso!"})
}
