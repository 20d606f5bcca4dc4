package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"loyalty-hub/internal/cache"
	"loyalty-hub/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const revokedKeyPrefix = "revoked:"

// 測試時可覆寫
var (
	timeNow         = time.Now
	parseWithClaims = jwt.ParseWithClaims
	uuidNewString   = uuid.NewString
)

// CustomClaims 定義 JWT 負載內容。ID (jti) 供登出後的撤銷名單使用。
type CustomClaims struct {
	UserID       int  `json:"user_id"`
	IsAdmin      bool `json:"is_admin"`
	IsSuperAdmin bool `json:"is_super_admin"`
	jwt.RegisteredClaims
}

// AuthenticateUser 驗證明文密碼；停用的帳號一律拒絕。
func AuthenticateUser(ctx context.Context, user model.User, password string) error {
	if !user.Enabled {
		return errors.New("account disabled")
	}
	if err := ComparePassword(user.PasswordHash, password); err != nil {
		return errors.New("invalid password")
	}
	return nil
}

// IssueAccessToken 依據使用者資訊與 TTL 產生 JWT
func IssueAccessToken(user model.User, ttl time.Duration) (string, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return "", fmt.Errorf("JWT_SECRET not set")
	}

	now := timeNow()
	claims := CustomClaims{
		UserID:       user.ID,
		IsAdmin:      user.IsAdmin,
		IsSuperAdmin: user.IsSuperAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuidNewString(),
			Subject:   fmt.Sprint(user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// VerifyAccessToken 驗證並解析 JWT 令牌
func VerifyAccessToken(tokenString string) (*CustomClaims, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET not set")
	}

	token, err := parseWithClaims(tokenString, &CustomClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}

// RevokeToken 把 jti 記進撤銷名單直到令牌原本的到期時間。
func RevokeToken(ctx context.Context, c cache.Cache, claims *CustomClaims) error {
	if claims.ExpiresAt == nil {
		return fmt.Errorf("token has no expiry")
	}
	ttl := claims.ExpiresAt.Time.Sub(timeNow())
	if ttl <= 0 {
		// 已過期的令牌不需要進名單
		return nil
	}
	return c.Set(ctx, revokedKeyPrefix+claims.ID, "1", ttl).Err()
}

// IsTokenRevoked 查詢 jti 是否在撤銷名單內
func IsTokenRevoked(ctx context.Context, c cache.Cache, jti string) (bool, error) {
	if err := c.Get(ctx, revokedKeyPrefix+jti).Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
