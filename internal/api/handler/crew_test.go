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
	"github.com/sanosuguru/go-airport-reservation/internal/domain/crew"
	"github.com/sanosuguru/go-airport-reservation/internal/domain/flight"
)

// MockCrewService はCrewServiceInterfaceのモック
type MockCrewService struct {
	mock.Mock
}

func (m *MockCrewService) CreateCrew(ctx context.Context, input application.CreateCrewInput) (*crew.Crew, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crew.Crew), args.Error(1)
}

func (m *MockCrewService) GetCrew(ctx context.Context, id string) (*crew.Crew, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crew.Crew), args.Error(1)
}

func (m *MockCrewService) ListCrews(ctx context.Context, limit, offset int) ([]*crew.Crew, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*crew.Crew), args.Error(1)
}

func (m *MockCrewService) UpdateCrew(ctx context.Context, input application.UpdateCrewInput) (*crew.Crew, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crew.Crew), args.Error(1)
}

func (m *MockCrewService) DeleteCrew(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestCrewHandler_Create(t *testing.T) {
	e := NewTestEcho()

	t.Run("フライト割り当て付きで乗務員を作成できる", func(t *testing.T) {
		mockService := new(MockCrewService)
		now := time.Now()
		expectedCrew := &crew.Crew{
			ID: "crew-123", FirstName: "太郎", LastName: "山田",
			FlightIDs: []string{"flight-1", "flight-2"},
			CreatedAt: now, UpdatedAt: now,
		}

		mockService.On("CreateCrew", mock.Anything, application.CreateCrewInput{
			FirstName: "太郎", LastName: "山田", FlightIDs: []string{"flight-1", "flight-2"},
		}).Return(expectedCrew, nil)

		handler := NewCrewHandler(mockService)

		reqBody := `{"first_name": "太郎", "last_name": "山田", "flight_ids": ["flight-1", "flight-2"]}`
		req := httptest.NewRequest(http.MethodPost, "/crews", strings.NewReader(reqBody))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := handler.Create(c)

		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, rec.Code)

		var resp CrewResponse
		err = json.Unmarshal(rec.Body.Bytes(), &resp)
		require.NoError(t, err)
		assert.Equal(t, "太郎 山田", resp.FullName)
		assert.Len(t, resp.FlightIDs, 2)

		mockService.AssertExpectations(t)
	})

	t.Run("存在しないフライトIDの場合400", func(t *testing.T) {
		mockService := new(MockCrewService)
		mockService.On("CreateCrew", mock.Anything, mock.AnythingOfType("application.CreateCrewInput")).
			Return(nil, flight.ErrFlightNotFound)

		handler := NewCrewHandler(mockService)

		reqBody := `{"first_name": "太郎", "last_name": "山田", "flight_ids": ["nonexistent"]}`
		req := httptest.NewRequest(http.MethodPost, "/crews", strings.NewReader(reqBody))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := handler.Create(c)

		require.Error(t, err)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, he.Code)

		mockService.AssertExpectations(t)
	})

	t.Run("姓がない場合400", func(t *testing.T) {
		mockService := new(MockCrewService)
		handler := NewCrewHandler(mockService)

		reqBody := `{"first_name": "太郎"}`
		req := httptest.NewRequest(http.MethodPost, "/crews", strings.NewReader(reqBody))
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

func TestCrewHandler_GetByID(t *testing.T) {
	e := NewTestEcho()

	t.Run("割り当てのない乗務員は空配列を返す", func(t *testing.T) {
		mockService := new(MockCrewService)
		now := time.Now()
		expectedCrew := &crew.Crew{
			ID: "crew-123", FirstName: "花子", LastName: "佐藤",
			CreatedAt: now, UpdatedAt: now,
		}

		mockService.On("GetCrew", mock.Anything, "crew-123").Return(expectedCrew, nil)

		handler := NewCrewHandler(mockService)

		req := httptest.NewRequest(http.MethodGet, "/crews/crew-123", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues("crew-123")

		err := handler.GetByID(c)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"flight_ids":[]`)

		mockService.AssertExpectations(t)
	})

	t.Run("乗務員が見つからない場合404", func(t *testing.T) {
		mockService := new(MockCrewService)
		mockService.On("GetCrew", mock.Anything, "nonexistent").Return(nil, crew.ErrCrewNotFound)

		handler := NewCrewHandler(mockService)

		req := httptest.NewRequest(http.MethodGet, "/crews/nonexistent", nil)
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

func TestCrewHandler_Update(t *testing.T) {
	e := NewTestEcho()

	t.Run("フライト割り当てを全置換できる", func(t *testing.T) {
		mockService := new(MockCrewService)
		now := time.Now()
		expectedCrew := &crew.Crew{
			ID: "crew-123", FirstName: "太郎", LastName: "山田",
			FlightIDs: []string{"flight-3"},
			CreatedAt: now, UpdatedAt: now,
		}

		mockService.On("UpdateCrew", mock.Anything, application.UpdateCrewInput{
			ID: "crew-123", FirstName: "太郎", LastName: "山田", FlightIDs: []string{"flight-3"},
		}).Return(expectedCrew, nil)

		handler := NewCrewHandler(mockService)

		reqBody := `{"first_name": "太郎", "last_name": "山田", "flight_ids": ["flight-3"]}`
		req := httptest.NewRequest(http.MethodPut, "/crews/crew-123", strings.NewReader(reqBody))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues("crew-123")

		err := handler.Update(c)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp CrewResponse
		err = json.Unmarshal(rec.Body.Bytes(), &resp)
		require.NoError(t, err)
		assert.Equal(t, []string{"flight-3"}, resp.FlightIDs)

		mockService.AssertExpectations(t)
	})

	t.Run("乗務員が見つからない場合404", func(t *testing.T) {
		mockService := new(MockCrewService)
		mockService.On("UpdateCrew", mock.Anything, mock.AnythingOfType("application.UpdateCrewInput")).
			Return(nil, crew.ErrCrewNotFound)

		handler := NewCrewHandler(mockService)

		reqBody := `{"first_name": "太郎", "last_name": "山田"}`
		req := httptest.NewRequest(http.MethodPut, "/crews/nonexistent", strings.NewReader(reqBody))
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
