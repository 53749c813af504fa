package middleware

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/parik/salon-console/internal/core/domain"
)

// SessionCookie is the cookie the auth collaborator sets on login.
const SessionCookie = "salon_session"

const sessionKey = "session"

// Session resolves the ambient operator identity from an HS256 token in the
// session cookie or the Authorization header. The console works anonymously:
// a missing or invalid token never blocks the request, it only leaves the
// session unset.
func Session(secret string, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := rawToken(c)
			if secret == "" || raw == "" {
				return next(c)
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(secret), nil
			})
			if err != nil || !tkn.Valid {
				log.Debug().Err(err).Msg("ignoring invalid session token")
				return next(c)
			}

			uid, _ := claims["uid"].(float64)
			role, _ := claims["role"].(string)
			username, _ := claims["username"].(string)
			c.Set(sessionKey, &domain.Session{
				UserID:   int64(uid),
				Username: username,
				Role:     role,
			})

			return next(c)
		}
	}
}

// SessionFrom returns the ambient session, or nil when anonymous.
func SessionFrom(c echo.Context) *domain.Session {
	s, _ := c.Get(sessionKey).(*domain.Session)
	return s
}

func rawToken(c echo.Context) string {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	header := c.Request().Header.Get("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return parts[1]
	}
	return ""
}
