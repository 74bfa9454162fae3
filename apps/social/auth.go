package main

import (
	"database/sql"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

func jwtSecret() []byte {
	return []byte(envOr("JWT_SECRET", "segredo-super-seguro"))
}

type (
	authUser struct {
		ID       int    `db:"id" json:"id"`
		Name     string `db:"name" json:"name"`
		Email    string `db:"email" json:"email"`
		Password string `db:"password" json:"-"`
	}

	authClaims struct {
		jwt.StandardClaims
		ID    int    `json:"id"`
		Email string `json:"email"`
	}

	loginRequest struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
)

func generateToken(usr authUser) (string, error) {
	claims := authClaims{
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(time.Hour).Unix(),
			IssuedAt:  time.Now().Unix(),
		},
		ID:    usr.ID,
		Email: usr.Email,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jwtSecret())
}

func parseToken(header string) (*authClaims, error) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, jwt.NewValidationError("malformed header", jwt.ValidationErrorMalformed)
	}
	claims := new(authClaims)
	_, err := jwt.ParseWithClaims(parts[1], claims, func(t *jwt.Token) (interface{}, error) {
		return jwtSecret(), nil
	})
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// authMiddleware guards routes with the portal's own token contract:
// 401 bodies use the "error" key, matching what the web client expects.
func authMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		header := ctx.Request().Header.Get(echo.HeaderAuthorization)
		if header == "" {
			return ctx.JSON(http.StatusUnauthorized, echo.Map{"error": "Token não fornecido."})
		}
		claims, err := parseToken(header)
		if err != nil {
			return ctx.JSON(http.StatusUnauthorized, echo.Map{"error": "Token inválido."})
		}
		ctx.Set("claims", claims)
		return next(ctx)
	}
}

func registerAuthRoutes(app *echo.Echo, db *sqlx.DB) {
	g := app.Group("/auth")

	g.POST("/login", func(ctx echo.Context) error {
		var data loginRequest
		if err := ctx.Bind(&data); err != nil {
			return ctx.JSON(http.StatusBadRequest, echo.Map{"error": "Requisição inválida."})
		}
		if data.Email == "" || data.Password == "" {
			return ctx.JSON(http.StatusBadRequest, echo.Map{"error": "Preencha todos os campos."})
		}

		var usr authUser
		err := db.Get(&usr, "SELECT * FROM users WHERE email = ?", data.Email)
		if err == sql.ErrNoRows {
			return ctx.JSON(http.StatusUnauthorized, echo.Map{"error": "Usuário não encontrado."})
		}
		if err != nil {
			return ctx.JSON(http.StatusInternalServerError, echo.Map{"error": "Erro interno no servidor."})
		}

		if bcrypt.CompareHashAndPassword([]byte(usr.Password), []byte(data.Password)) != nil {
			return ctx.JSON(http.StatusUnauthorized, echo.Map{"error": "Senha incorreta."})
		}

		token, err := generateToken(usr)
		if err != nil {
			return ctx.JSON(http.StatusInternalServerError, echo.Map{"error": "Erro no login."})
		}
		return ctx.JSON(http.StatusOK, echo.Map{"token": token, "user": usr})
	})

	g.GET("/verify", func(ctx echo.Context) error {
		header := ctx.Request().Header.Get(echo.HeaderAuthorization)
		if header == "" {
			return ctx.JSON(http.StatusUnauthorized, echo.Map{"error": "Token ausente."})
		}
		claims, err := parseToken(header)
		if err != nil {
			return ctx.JSON(http.StatusUnauthorized, echo.Map{"error": "Token inválido."})
		}
		return ctx.JSON(http.StatusOK, echo.Map{"valid": true, "user": claims})
	})
}
