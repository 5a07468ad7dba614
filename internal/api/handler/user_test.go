package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sanosuguru/go-airport-reservation/internal/application"
	"github.com/sanosuguru/go-airport-reservation/internal/domain/user"
)

// MockUserService はUserServiceInterfaceのモック
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, input application.RegisterInput) (*user.User, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserService) Login(ctx context.Context, input application.LoginInput) (string, error) {
	args := m.Called(ctx, input)
	return args.String(0), args.Error(1)
}

func (m *MockUserService) GetMe(ctx context.Context, actor user.Actor) (*user.User, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserService) UpdateMe(ctx context.Context, actor user.Actor, input application.UpdateMeInput) (*user.User, error) {
	args := m.Called(ctx, actor, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func TestUserHandler_Register(t *testing.T) {
	e := NewTestEcho()

	t.Run("正常にユーザーを登録できる", func(t *testing.T) {
		mockService := new(MockUserService)
		now := time.Now()
		expectedUser := &user.User{
			ID: "user-123", Email: "taro@example.com", Role: user.RoleUser,
			CreatedAt: now, UpdatedAt: now,
		}

		mockService.On("Register", mock.Anything, application.RegisterInput{
			Email: "taro@example.com", Password: "password123",
		}).Return(expectedUser, nil)

		handler := NewUserHandler(mockService)

		reqBody := `{"email": "taro@example.com", "password": "password123"}`
		req := httptest.NewRequest(http.MethodPost, "/users/register", strings.NewReader(reqBody))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := handler.Register(c)

		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, rec.Code)

		var resp UserResponse
		err = json.Unmarshal(rec.Body.Bytes(), &resp)
		require.NoError(t, err)
		assert.Equal(t, "user-123", resp.ID)
		assert.Equal(t, "user", resp.Role)
		assert.NotContains(t, rec.Body.String(), "password")

		mockService.AssertExpectations(t)
	})

	t.Run("パスワードが短い場合400", func(t *testing.T) {
		mockService := new(MockUserService)
		handler := NewUserHandler(mockService)

		reqBody := `{"email": "taro@example.com", "password": "short"}`
		req := httptest.NewRequest(http.MethodPost, "/users/register", strings.NewReader(reqBody))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := handler.Register(c)

		require.Error(t, err)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, he.Code)
	})

	t.Run("メールアドレスが重複している場合400", func(t *testing.T) {
		mockService := new(MockUserService)
		mockService.On("Register", mock.Anything, mock.AnythingOfType("application.RegisterInput")).
			Return(nil, user.ErrEmailAlreadyExists)

		handler := NewUserHandler(mockService)

		reqBody := `{"email": "taro@example.com", "password": "password123"}`
		req := httptest.NewRequest(http.MethodPost, "/users/register", strings.NewReader(reqBody))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := handler.Register(c)

		require.Error(t, err)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, he.Code)

		mockService.AssertExpectations(t)
	})
}

func TestUserHandler_Login(t *testing.T) {
	e := NewTestEcho()

	t.Run("正常にトークンを取得できる", func(t *testing.T) {
		mockService := new(MockUserService)
		mockService.On("Login", mock.Anything, application.LoginInput{
			Email: "taro@example.com", Password: "password123",
		}).Return("token-abc", nil)

		handler := NewUserHandler(mockService)

		reqBody := `{"email": "taro@example.com", "password": "password123"}`
		req := httptest.NewRequest(http.MethodPost, "/users/login", strings.NewReader(reqBody))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := handler.Login(c)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp LoginResponse
		err = json.Unmarshal(rec.Body.Bytes(), &resp)
		require.NoError(t, err)
		assert.Equal(t, "token-abc", resp.AccessToken)

		mockService.AssertExpectations(t)
	})

	t.Run("資格情報が不正な場合401", func(t *testing.T) {
		mockService := new(MockUserService)
		mockService.On("Login", mock.Anything, mock.AnythingOfType("application.LoginInput")).
			Return("", user.ErrInvalidCredentials)

		handler := NewUserHandler(mockService)

		reqBody := `{"email": "taro@example.com", "password": "wrongpassword"}`
		req := httptest.NewRequest(http.MethodPost, "/users/login", strings.NewReader(reqBody))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := handler.Login(c)

		require.Error(t, err)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusUnauthorized, he.Code)

		mockService.AssertExpectations(t)
	})
}

func TestUserHandler_GetMe(t *testing.T) {
	e := NewTestEcho()
	actor := user.Actor{UserID: "user-123", Role: user.RoleUser}

	t.Run("自分の情報を取得できる", func(t *testing.T) {
		mockService := new(MockUserService)
		now := time.Now()
		expectedUser := &user.User{
			ID: "user-123", Email: "taro@example.com", Role: user.RoleUser,
			CreatedAt: now, UpdatedAt: now,
		}

		mockService.On("GetMe", mock.Anything, actor).Return(expectedUser, nil)

		handler := NewUserHandler(mockService)

		req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		setActor(c, actor)

		err := handler.GetMe(c)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)

		mockService.AssertExpectations(t)
	})

	t.Run("未認証の場合401", func(t *testing.T) {
		mockService := new(MockUserService)
		handler := NewUserHandler(mockService)

		req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := handler.GetMe(c)

		require.Error(t, err)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusUnauthorized, he.Code)
	})
}

func TestUserHandler_UpdateMe(t *testing.T) {
	e := NewTestEcho()
	actor := user.Actor{UserID: "user-123", Role: user.RoleUser}

	t.Run("パスワードを省略しても更新できる", func(t *testing.T) {
		mockService := new(MockUserService)
		now := time.Now()
		expectedUser := &user.User{
			ID: "user-123", Email: "new@example.com", Role: user.RoleUser,
			CreatedAt: now, UpdatedAt: now,
		}

		mockService.On("UpdateMe", mock.Anything, actor, application.UpdateMeInput{
			Email: "new@example.com", Password: "",
		}).Return(expectedUser, nil)

		handler := NewUserHandler(mockService)

		reqBody := `{"email": "new@example.com"}`
		req := httptest.NewRequest(http.MethodPut, "/users/me", strings.NewReader(reqBody))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		setActor(c, actor)

		err := handler.UpdateMe(c)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp UserResponse
		err = json.Unmarshal(rec.Body.Bytes(), &resp)
		require.NoError(t, err)
		assert.Equal(t, "new@example.com", resp.Email)

		mockService.AssertExpectations(t)
	})
}
