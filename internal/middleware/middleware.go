package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"loyalty-hub/internal/cache"
	"loyalty-hub/internal/service"

	"github.com/labstack/echo/v4"
)

const ContextUserKey = "user"

var (
	verifyAccessToken = service.VerifyAccessToken
	isTokenRevoked    = service.IsTokenRevoked
)

func extractClaims(c echo.Context) (*service.CustomClaims, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing token")
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header format")
	}
	claims, err := verifyAccessToken(parts[1])
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, fmt.Sprintf("invalid token: %v", err))
	}
	return claims, nil
}

// RequireAuth 驗證 Bearer Token 並確認其未被撤銷（登出後的 jti 存於 Redis）
func RequireAuth(rdb cache.Cache) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := extractClaims(c)
			if err != nil {
				return err
			}
			revoked, err := isTokenRevoked(c.Request().Context(), rdb, claims.ID)
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "failed to check token state")
			}
			if revoked {
				return echo.NewHTTPError(http.StatusUnauthorized, "token revoked")
			}
			c.Set(ContextUserKey, claims)
			return next(c)
		}
	}
}

func RequireAdmin(rdb cache.Cache) echo.MiddlewareFunc {
	auth := RequireAuth(rdb)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return auth(func(c echo.Context) error {
			claims := c.Get(ContextUserKey).(*service.CustomClaims)
			if !claims.IsAdmin && !claims.IsSuperAdmin {
				return echo.NewHTTPError(http.StatusForbidden, "admin privileges required")
			}
			return next(c)
		})
	}
}

func RequireSuperAdmin(rdb cache.Cache) echo.MiddlewareFunc {
	auth := RequireAuth(rdb)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return auth(func(c echo.Context) error {
			claims := c.Get(ContextUserKey).(*service.CustomClaims)
			if !claims.IsSuperAdmin {
				return echo.NewHTTPError(http.StatusForbidden, "super admin privileges required")
			}
			return next(c)
		})
	}
}
