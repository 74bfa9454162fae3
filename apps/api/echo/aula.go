package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Joaolucasos169/gestao-projeto-karate/core/aula"
)

type aulaApi struct {
	svc *aula.Service
}

func registerAulaAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *aula.Service) {
	api := aulaApi{svc: svc}

	ag := g.Group("/aulas", jwt)
	ag.GET("", api.query)
	ag.POST("", api.create, staffMiddleware())

	dg := ag.Group("/:id")
	dg.GET("", api.retrieve)
	dg.PATCH("", api.update, staffMiddleware())
	dg.DELETE("", api.destroy, staffMiddleware())
}

func (api *aulaApi) create(ctx echo.Context) error {
	var data aula.NewAula
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAula")
	}
	if err := data.Validate(api.svc); err != nil {
		return err
	}

	a, err := api.svc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating aula")
	}
	return ctx.JSON(http.StatusCreated, a)
}

func (api *aulaApi) query(ctx echo.Context) error {
	aulas, err := api.svc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying aulas")
	}
	if aulas == nil {
		aulas = []aula.Aula{}
	}
	return ctx.JSON(http.StatusOK, aulas)
}

func (api *aulaApi) retrieve(ctx echo.Context) error {
	id, err := parseIntParam(ctx, "id")
	if err != nil {
		return errHttpNotFound
	}
	a, err := api.svc.GetByID(id)
	if err != nil {
		if errors.Cause(err) == aula.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting aula")
	}
	return ctx.JSON(http.StatusOK, a)
}

func (api *aulaApi) update(ctx echo.Context) error {
	id, err := parseIntParam(ctx, "id")
	if err != nil {
		return errHttpNotFound
	}
	orig, err := api.svc.GetByID(id)
	if err != nil {
		if errors.Cause(err) == aula.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting aula")
	}

	var data aula.UpdateAula
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateAula")
	}
	if err := data.Validate(orig, api.svc); err != nil {
		return err
	}

	a, err := api.svc.Update(id, data)
	if err != nil {
		return errors.Wrap(err, "updating aula")
	}
	return ctx.JSON(http.StatusOK, a)
}

func (api *aulaApi) destroy(ctx echo.Context) error {
	id, err := parseIntParam(ctx, "id")
	if err != nil {
		return errHttpNotFound
	}
	if err := api.svc.Delete(id); err != nil {
		if errors.Cause(err) == aula.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "deleting aula")
	}
	return ctx.JSON(http.StatusOK, MessageResponse{Message: "Aula excluída com sucesso!"})
}
