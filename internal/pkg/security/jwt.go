package security

import (
	"Keystone/internal/api/config"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenExpired = errors.New("token has expired")
	ErrTokenInvalid = errors.New("token is invalid")
)

// GenerateAccessToken 生成访问 Token
func GenerateAccessToken(userID, username string) (string, error) {
	cfg := config.Cfg.Auth
	return generateToken(userID, username, cfg.Secret, time.Duration(cfg.AccessExpireSec)*time.Second)
}

// GenerateRefreshToken 生成刷新 Token，使用独立密钥
func GenerateRefreshToken(userID, username string) (string, error) {
	cfg := config.Cfg.Auth
	return generateToken(userID, username, cfg.RefreshSecret, time.Duration(cfg.RefreshExpireSec)*time.Second)
}

func generateToken(userID, username, secret string, ttl time.Duration) (string, error) {
	claims := &UserClaims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "Keystone",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// ValidateAccessToken 验证访问 Token 并解析出 Claims
func ValidateAccessToken(tokenString string) (*UserClaims, error) {
	return validateToken(tokenString, config.Cfg.Auth.Secret)
}

// ValidateRefreshToken 验证刷新 Token 并解析出 Claims
func ValidateRefreshToken(tokenString string) (*UserClaims, error) {
	return validateToken(tokenString, config.Cfg.Auth.RefreshSecret)
}

func validateToken(tokenString, secret string) (*UserClaims, error) {
	claims := &UserClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	if !token.Valid {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}

// ExtractSignature 从 Token 字符串中提取签名，作为黑名单键
func ExtractSignature(tokenString string) (string, error) {
	parts := strings.Split(tokenString, ".")
	if len(parts) != 3 {
		return "", ErrTokenInvalid
	}
	return parts[2], nil
}
