package echoapi

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Joaolucasos169/gestao-projeto-karate/core"
)

func validateStruct(s interface{}) error {
	return core.Validate.Struct(s)
}

func parseIntParam(ctx echo.Context, name string) (int, error) {
	return strconv.Atoi(ctx.Param(name))
}
