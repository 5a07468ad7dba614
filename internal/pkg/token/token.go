package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/sanosuguru/go-airport-reservation/internal/domain/user"
)

var (
	ErrInvalidToken = errors.New("トークンが無効です")
	ErrExpiredToken = errors.New("トークンの有効期限が切れています")
)

// Claims はアクセストークンのクレーム
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Manager はJWTの発行と検証を行う
type Manager struct {
	secret []byte
	ttl    time.Duration
}

// NewManager は新しいManagerインスタンスを作成する
func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{secret: []byte(secret), ttl: ttl}
}

// Issue はユーザーに対するアクセストークンを発行する
func (m *Manager) Issue(u *user.User) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: string(u.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			ID:        uuid.NewString(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("トークン署名に失敗: %w", err)
	}
	return signed, nil
}

// Parse はトークンを検証し、操作主体を返す
func (m *Manager) Parse(tokenString string) (user.Actor, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("予期しない署名方式: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return user.Actor{}, ErrExpiredToken
		}
		return user.Actor{}, ErrInvalidToken
	}
	if !token.Valid || claims.Subject == "" {
		return user.Actor{}, ErrInvalidToken
	}
	return user.Actor{UserID: claims.Subject, Role: user.Role(claims.Role)}, nil
}
