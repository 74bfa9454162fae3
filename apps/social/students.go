package main

import (
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
	"github.com/volatiletech/null/v8"
)

type student struct {
	ID         int         `db:"id" json:"id"`
	Name       string      `db:"name" json:"name"`
	Age        null.Int    `db:"age" json:"age"`
	Belt       string      `db:"belt" json:"belt"`
	Birthdate  null.String `db:"birthdate" json:"birthdate"`
	GuardianID null.Int    `db:"guardian_id" json:"guardian_id"`
	Notes      null.String `db:"notes" json:"notes"`
	CreatedAt  null.String `db:"created_at" json:"created_at"`
}

func registerStudentRoutes(app *echo.Echo, db *sqlx.DB) {
	g := app.Group("/students", authMiddleware)

	// newest first
	g.GET("", func(ctx echo.Context) error {
		students := make([]student, 0)
		if err := db.Select(&students, "SELECT * FROM students ORDER BY id DESC"); err != nil {
			return ctx.JSON(http.StatusInternalServerError, echo.Map{"error": "Erro ao listar alunos"})
		}
		return ctx.JSON(http.StatusOK, students)
	})

	g.POST("", func(ctx echo.Context) error {
		var data student
		if err := ctx.Bind(&data); err != nil {
			return ctx.JSON(http.StatusBadRequest, echo.Map{"error": "Requisição inválida."})
		}
		if data.Name == "" {
			return ctx.JSON(http.StatusBadRequest, echo.Map{"error": "Nome é obrigatório"})
		}
		if data.Belt == "" {
			data.Belt = "white"
		}

		res, err := db.Exec(
			"INSERT INTO students (name, age, belt, birthdate, guardian_id, notes) VALUES (?, ?, ?, ?, ?, ?)",
			data.Name, data.Age, data.Belt, data.Birthdate, data.GuardianID, data.Notes,
		)
		if err != nil {
			return ctx.JSON(http.StatusInternalServerError, echo.Map{"error": "Erro ao criar aluno"})
		}
		id, _ := res.LastInsertId()
		data.ID = int(id)
		return ctx.JSON(http.StatusOK, data)
	})
}
