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
	"github.com/sanosuguru/go-airport-reservation/internal/domain/airport"
)

// MockAirportService はAirportServiceInterfaceのモック
type MockAirportService struct {
	mock.Mock
}

func (m *MockAirportService) CreateAirport(ctx context.Context, input application.CreateAirportInput) (*airport.Airport, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*airport.Airport), args.Error(1)
}

func (m *MockAirportService) GetAirport(ctx context.Context, id string) (*airport.Airport, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*airport.Airport), args.Error(1)
}

func (m *MockAirportService) ListAirports(ctx context.Context, limit, offset int) ([]*airport.Airport, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*airport.Airport), args.Error(1)
}

func (m *MockAirportService) UpdateAirport(ctx context.Context, input application.UpdateAirportInput) (*airport.Airport, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*airport.Airport), args.Error(1)
}

func (m *MockAirportService) DeleteAirport(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestAirportHandler_Create(t *testing.T) {
	e := NewTestEcho()

	t.Run("正常に空港を作成できる", func(t *testing.T) {
		mockService := new(MockAirportService)
		now := time.Now()
		expectedAirport := &airport.Airport{
			ID:             "airport-123",
			Name:           "成田国際空港",
			ClosestBigCity: "東京",
			CreatedAt:      now,
			UpdatedAt:      now,
		}

		mockService.On("CreateAirport", mock.Anything, application.CreateAirportInput{
			Name: "成田国際空港", ClosestBigCity: "東京",
		}).Return(expectedAirport, nil)

		handler := NewAirportHandler(mockService)

		reqBody := `{"name": "成田国際空港", "closest_big_city": "東京"}`
		req := httptest.NewRequest(http.MethodPost, "/airports", strings.NewReader(reqBody))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := handler.Create(c)

		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, rec.Code)

		var resp AirportResponse
		err = json.Unmarshal(rec.Body.Bytes(), &resp)
		require.NoError(t, err)
		assert.Equal(t, "airport-123", resp.ID)
		assert.Equal(t, "成田国際空港", resp.Name)

		mockService.AssertExpectations(t)
	})

	t.Run("名前がない場合400", func(t *testing.T) {
		mockService := new(MockAirportService)
		handler := NewAirportHandler(mockService)

		reqBody := `{"closest_big_city": "東京"}`
		req := httptest.NewRequest(http.MethodPost, "/airports", strings.NewReader(reqBody))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := handler.Create(c)

		require.Error(t, err)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, he.Code)
	})

	t.Run("不正なリクエストでエラー", func(t *testing.T) {
		mockService := new(MockAirportService)
		handler := NewAirportHandler(mockService)

		req := httptest.NewRequest(http.MethodPost, "/airports", strings.NewReader("invalid"))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := handler.Create(c)

		require.Error(t, err)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, he.Code)
	})
}

func TestAirportHandler_GetByID(t *testing.T) {
	e := NewTestEcho()

	t.Run("正常に空港を取得できる", func(t *testing.T) {
		mockService := new(MockAirportService)
		now := time.Now()
		expectedAirport := &airport.Airport{
			ID: "airport-123", Name: "羽田空港", ClosestBigCity: "東京",
			CreatedAt: now, UpdatedAt: now,
		}

		mockService.On("GetAirport", mock.Anything, "airport-123").Return(expectedAirport, nil)

		handler := NewAirportHandler(mockService)

		req := httptest.NewRequest(http.MethodGet, "/airports/airport-123", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues("airport-123")

		err := handler.GetByID(c)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)

		mockService.AssertExpectations(t)
	})

	t.Run("空港が見つからない場合404", func(t *testing.T) {
		mockService := new(MockAirportService)
		mockService.On("GetAirport", mock.Anything, "nonexistent").Return(nil, airport.ErrAirportNotFound)

		handler := NewAirportHandler(mockService)

		req := httptest.NewRequest(http.MethodGet, "/airports/nonexistent", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues("nonexistent")

		err := handler.GetByID(c)

		require.Error(t, err)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusNotFound, he.Code)

		mockService.AssertExpectations(t)
	})
}

func TestAirportHandler_List(t *testing.T) {
	e := NewTestEcho()

	t.Run("一覧を取得できる", func(t *testing.T) {
		mockService := new(MockAirportService)
		now := time.Now()
		airports := []*airport.Airport{
			{ID: "airport-1", Name: "羽田空港", ClosestBigCity: "東京", CreatedAt: now, UpdatedAt: now},
			{ID: "airport-2", Name: "関西国際空港", ClosestBigCity: "大阪", CreatedAt: now, UpdatedAt: now},
		}

		mockService.On("ListAirports", mock.Anything, 0, 0).Return(airports, nil)

		handler := NewAirportHandler(mockService)

		req := httptest.NewRequest(http.MethodGet, "/airports", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := handler.List(c)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp []AirportResponse
		err = json.Unmarshal(rec.Body.Bytes(), &resp)
		require.NoError(t, err)
		assert.Len(t, resp, 2)

		mockService.AssertExpectations(t)
	})
}

func TestAirportHandler_Update(t *testing.T) {
	e := NewTestEcho()

	t.Run("正常に空港を更新できる", func(t *testing.T) {
		mockService := new(MockAirportService)
		now := time.Now()
		expectedAirport := &airport.Airport{
			ID: "airport-123", Name: "東京国際空港", ClosestBigCity: "東京",
			CreatedAt: now, UpdatedAt: now,
		}

		mockService.On("UpdateAirport", mock.Anything, application.UpdateAirportInput{
			ID: "airport-123", Name: "東京国際空港", ClosestBigCity: "東京",
		}).Return(expectedAirport, nil)

		handler := NewAirportHandler(mockService)

		reqBody := `{"name": "東京国際空港", "closest_big_city": "東京"}`
		req := httptest.NewRequest(http.MethodPut, "/airports/airport-123", strings.NewReader(reqBody))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues("airport-123")

		err := handler.Update(c)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)

		mockService.AssertExpectations(t)
	})

	t.Run("空港が見つからない場合404", func(t *testing.T) {
		mockService := new(MockAirportService)
		mockService.On("UpdateAirport", mock.Anything, mock.AnythingOfType("application.UpdateAirportInput")).
			Return(nil, airport.ErrAirportNotFound)

		handler := NewAirportHandler(mockService)

		reqBody := `{"name": "東京国際空港", "closest_big_city": "東京"}`
		req := httptest.NewRequest(http.MethodPut, "/airports/nonexistent", strings.NewReader(reqBody))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues("nonexistent")

		err := handler.Update(c)

		require.Error(t, err)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusNotFound, he.Code)

		mockService.AssertExpectations(t)
	})
}

func TestAirportHandler_Delete(t *testing.T) {
	e := NewTestEcho()

	t.Run("正常に空港を削除できる", func(t *testing.T) {
		mockService := new(MockAirportService)
		mockService.On("DeleteAirport", mock.Anything, "airport-123").Return(nil)

		handler := NewAirportHandler(mockService)

		req := httptest.NewRequest(http.MethodDelete, "/airports/airport-123", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues("airport-123")

		err := handler.Delete(c)

		require.NoError(t, err)
		assert.Equal(t, http.StatusNoContent, rec.Code)

		mockService.AssertExpectations(t)
	})

	t.Run("空港が見つからない場合404", func(t *testing.T) {
		mockService := new(MockAirportService)
		mockService.On("DeleteAirport", mock.Anything, "nonexistent").Return(airport.ErrAirportNotFound)

		handler := NewAirportHandler(mockService)

		req := httptest.NewRequest(http.MethodDelete, "/airports/nonexistent", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues("nonexistent")

		err := handler.Delete(c)

		require.Error(t, err)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusNotFound, he.Code)

		mockService.AssertExpectations(t)
	})
}
