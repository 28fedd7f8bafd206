package http

import (
	"errors"
	"net/http"
	"strings"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/user"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const actorContextKey = "actor"

var errUnauthenticated = errors.New("unauthenticated")

// Claims are the token claims issued by the identity service: the user id in
// sub and the account role by name.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// JWTAuth verifies the bearer token with the shared HS256 secret and stores
// the resulting user.Actor in the echo context. Any failure answers 401.
func JWTAuth(secret []byte) echo.MiddlewareFunc {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	keyFunc := func(*jwt.Token) (any, error) {
		return secret, nil
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			scheme, tokenString, ok := strings.Cut(header, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || tokenString == "" {
				return unauthorized(c, "missing bearer token")
			}

			claims := &Claims{}
			token, err := parser.ParseWithClaims(tokenString, claims, keyFunc)
			if err != nil || !token.Valid {
				return unauthorized(c, "invalid or expired token")
			}

			actor, err := actorFromClaims(claims)
			if err != nil {
				return unauthorized(c, "invalid token claims")
			}

			c.Set(actorContextKey, actor)
			return next(c)
		}
	}
}

func actorFromClaims(claims *Claims) (user.Actor, error) {
	id, err := kernel.UUIDFromString(claims.Subject)
	if err != nil {
		return user.Actor{}, err
	}
	role, err := user.ParseRole(claims.Role)
	if err != nil {
		return user.Actor{}, err
	}
	return user.NewActor(id, role)
}

// ActorFrom returns the authenticated actor set by JWTAuth.
func ActorFrom(c echo.Context) (user.Actor, error) {
	actor, ok := c.Get(actorContextKey).(user.Actor)
	if !ok {
		return user.Actor{}, errUnauthenticated
	}
	return actor, nil
}

func unauthorized(c echo.Context, message string) error {
	return c.JSON(http.StatusUnauthorized, ErrorResponse{
		Code:    http.StatusUnauthorized,
		Message: message,
	})
}
