package user

import "time"

// Role はユーザーの権限区分を表す
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// User はユーザーエンティティを表す
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser は新しいユーザーを作成する
func NewUser(email, passwordHash string, role Role) *User {
	now := time.Now()
	return &User{
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Validate はユーザーの検証を行う
func (u *User) Validate() error {
	if u.Email == "" {
		return ErrEmailRequired
	}
	if u.PasswordHash == "" {
		return ErrPasswordRequired
	}
	if u.Role != RoleAdmin && u.Role != RoleUser {
		return ErrInvalidRole
	}
	return nil
}

// Actor は認証済みの操作主体を表す
// リクエストスコープのグローバル状態ではなく、明示的に各操作へ渡す
type Actor struct {
	UserID string
	Role   Role
}

// IsAdmin は管理者権限を持つかを返す
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}
