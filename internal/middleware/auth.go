package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/tappyimob/tappy-imob/pkg/jwtutil"
	"github.com/tappyimob/tappy-imob/pkg/logger"
	"github.com/tappyimob/tappy-imob/prometheus"
	"go.uber.org/zap"
)

// ClaimsKey is the echo.Context key holding the validated *jwtutil.UserClaims
const ClaimsKey = "user"

// sessionResource labels guard denials raised before any handler runs
const sessionResource = "session"

// JWTAuthMiddleware validates the session token, taken from the Bearer
// Authorization header or, failing that, from the session cookie.
func JWTAuthMiddleware(jwtUtil *jwtutil.JWTUtil, cookieName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.FromEcho(c)

			tokenString, ok := extractToken(c, cookieName)
			if !ok {
				log.Warn("Missing or malformed session token")
				prometheus.RecordGuardDenial(sessionResource, "unauthenticated")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Não autenticado"})
			}

			claims, err := jwtUtil.ValidateToken(tokenString)
			if err != nil {
				log.Warn("Invalid or expired token", zap.Error(err))
				prometheus.RecordGuardDenial(sessionResource, "unauthenticated")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Não autenticado"})
			}

			c.Set(ClaimsKey, claims)
			c.Set(logger.EchoKey, log.With(zap.String("user_id", claims.UserID)))
			log.Debug("Session token validated",
				zap.String("user_id", claims.UserID),
				zap.String("role", claims.Role))

			return next(c)
		}
	}
}

// ClaimsFromEcho returns the claims stored by JWTAuthMiddleware, or nil
func ClaimsFromEcho(c echo.Context) *jwtutil.UserClaims {
	claims, _ := c.Get(ClaimsKey).(*jwtutil.UserClaims)
	return claims
}

func extractToken(c echo.Context, cookieName string) (string, bool) {
	if authHeader := c.Request().Header.Get(echo.HeaderAuthorization); authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
			return "", false
		}
		return parts[1], true
	}

	if cookieName == "" {
		return "", false
	}
	cookie, err := c.Cookie(cookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}
