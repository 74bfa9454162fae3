// Command social is the standalone community portal API: a small Echo +
// SQLite service with its own login, kept apart from the main management API.
package main

import (
	"flag"
	"log"
	"net/http"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

func main() {
	_ = godotenv.Load()

	var (
		addr   = flag.String("addr", ":"+envOr("PORT", "3000"), "listen address")
		dbPath = flag.String("db", envOr("DB_PATH", "karate.db"), "SQLite database path")
		seed   = flag.Bool("seed", false, "seed the default admin account and exit")
	)
	flag.Parse()

	db, err := openDB(*dbPath)
	if err != nil {
		log.Fatalf("opening database: %v", err)
	}
	defer db.Close()

	if *seed {
		if err := seedAdmin(db); err != nil {
			log.Fatalf("seeding admin: %v", err)
		}
		log.Println("usuário admin criado com sucesso")
		return
	}

	app := newApp(db)
	app.Use(middleware.Logger())

	log.Fatal(app.Start(*addr))
}

func newApp(db *sqlx.DB) *echo.Echo {
	app := echo.New()
	app.HideBanner = true
	app.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:5173", "http://127.0.0.1:5173"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))

	app.GET("/health", func(ctx echo.Context) error {
		return ctx.JSON(http.StatusOK, echo.Map{"ok": true})
	})

	registerAuthRoutes(app, db)
	registerStudentRoutes(app, db)
	return app
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
