package application

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/sanosuguru/go-airport-reservation/internal/domain/user"
	"github.com/sanosuguru/go-airport-reservation/internal/pkg/token"
)

type UserService struct {
	userRepo     user.Repository
	tokenManager *token.Manager
}

func NewUserService(userRepo user.Repository, tokenManager *token.Manager) *UserService {
	return &UserService{userRepo: userRepo, tokenManager: tokenManager}
}

type RegisterInput struct {
	Email    string
	Password string
}

// Register は新しい一般ユーザーを登録する
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*user.User, error) {
	if input.Password == "" {
		return nil, user.ErrPasswordRequired
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("パスワードのハッシュ化に失敗: %w", err)
	}
	u := user.NewUser(input.Email, string(hash), user.RoleUser)
	if err := u.Validate(); err != nil {
		return nil, err
	}
	if err := s.userRepo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

type LoginInput struct {
	Email    string
	Password string
}

// Login は資格情報を検証し、アクセストークンを発行する
// 存在しないメールアドレスとパスワード不一致は区別しない
func (s *UserService) Login(ctx context.Context, input LoginInput) (string, error) {
	u, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return "", user.ErrInvalidCredentials
		}
		return "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(input.Password)); err != nil {
		return "", user.ErrInvalidCredentials
	}
	return s.tokenManager.Issue(u)
}

// GetMe は操作主体自身のユーザー情報を取得する
func (s *UserService) GetMe(ctx context.Context, actor user.Actor) (*user.User, error) {
	return s.userRepo.GetByID(ctx, actor.UserID)
}

type UpdateMeInput struct {
	Email    string
	Password string
}

// UpdateMe は操作主体自身のメールアドレスとパスワードを更新する
// パスワードが空の場合は変更しない
func (s *UserService) UpdateMe(ctx context.Context, actor user.Actor, input UpdateMeInput) (*user.User, error) {
	u, err := s.userRepo.GetByID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	u.Email = input.Email
	if input.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("パスワードのハッシュ化に失敗: %w", err)
		}
		u.PasswordHash = string(hash)
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	if err := s.userRepo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
