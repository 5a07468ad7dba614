package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/go-airport-reservation/internal/application"
	"github.com/sanosuguru/go-airport-reservation/internal/domain/flight"
)

type FlightHandler struct {
	service FlightServiceInterface
}

func NewFlightHandler(s FlightServiceInterface) *FlightHandler {
	return &FlightHandler{service: s}
}

type FlightRequest struct {
	RouteID       string    `json:"route_id" validate:"required" example:"550e8400-e29b-41d4-a716-446655440000"`
	AirplaneID    string    `json:"airplane_id" validate:"required" example:"550e8400-e29b-41d4-a716-446655440001"`
	DepartureTime time.Time `json:"departure_time" validate:"required" example:"2025-04-01T10:00:00Z"`
	ArrivalTime   time.Time `json:"arrival_time" validate:"required" example:"2025-04-01T13:30:00Z"`
}

type FlightResponse struct {
	ID            string    `json:"id"`
	RouteID       string    `json:"route_id"`
	AirplaneID    string    `json:"airplane_id"`
	DepartureTime time.Time `json:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time"`
	CreatedAt     string    `json:"created_at"`
	UpdatedAt     string    `json:"updated_at"`
}

type AvailableSeatsResponse struct {
	FlightID       string `json:"flight_id"`
	AvailableSeats int    `json:"available_seats"`
}

func toFlightResponse(f *flight.Flight) *FlightResponse {
	return &FlightResponse{
		ID:            f.ID,
		RouteID:       f.RouteID,
		AirplaneID:    f.AirplaneID,
		DepartureTime: f.DepartureTime,
		ArrivalTime:   f.ArrivalTime,
		CreatedAt:     f.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     f.UpdatedAt.Format(time.RFC3339),
	}
}

// Create godoc
// @Summary フライトを作成
// @Description 経路と機体を指定してフライトを登録します（管理者のみ）
// @Tags flights
// @Accept json
// @Produce json
// @Param request body FlightRequest true "フライト情報"
// @Success 201 {object} FlightResponse
// @Failure 400 {object} map[string]string
// @Router /flights [post]
func (h *FlightHandler) Create(c echo.Context) error {
	var req FlightRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	f, err := h.service.CreateFlight(c.Request().Context(), application.CreateFlightInput{
		RouteID:       req.RouteID,
		AirplaneID:    req.AirplaneID,
		DepartureTime: req.DepartureTime,
		ArrivalTime:   req.ArrivalTime,
	})
	if err != nil {
		// 存在しない経路・機体IDを指す場合も入力エラーとして返す
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, toFlightResponse(f))
}

// GetByID godoc
// @Summary フライト詳細を取得
// @Description 経路・機体・販売済み座席を含む詳細を返します
// @Tags flights
// @Produce json
// @Param id path string true "フライトID"
// @Success 200 {object} flight.Detail
// @Failure 404 {object} map[string]string
// @Router /flights/{id} [get]
func (h *FlightHandler) GetByID(c echo.Context) error {
	d, err := h.service.GetFlight(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, flight.ErrFlightNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, d)
}

// List godoc
// @Summary フライト一覧を取得
// @Description 出発地・到着地・日付で絞り込んだ一覧を空席数付きで返します
// @Tags flights
// @Produce json
// @Param source query string false "出発空港・都市名（部分一致）"
// @Param destination query string false "到着空港・都市名（部分一致）"
// @Param departure_date query string false "出発日 (YYYY-MM-DD)"
// @Param arrival_date query string false "到着日 (YYYY-MM-DD)"
// @Param limit query int false "取得件数" default(20)
// @Param offset query int false "オフセット" default(0)
// @Success 200 {array} flight.Summary
// @Failure 400 {object} map[string]string
// @Router /flights [get]
func (h *FlightHandler) List(c echo.Context) error {
	filter := flight.Filter{
		Source:      c.QueryParam("source"),
		Destination: c.QueryParam("destination"),
	}
	if v := c.QueryParam("departure_date"); v != "" {
		d, err := time.Parse("2006-01-02", v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "出発日の形式が正しくありません")
		}
		filter.DepartureDate = &d
	}
	if v := c.QueryParam("arrival_date"); v != "" {
		d, err := time.Parse("2006-01-02", v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "到着日の形式が正しくありません")
		}
		filter.ArrivalDate = &d
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	summaries, err := h.service.ListFlights(c.Request().Context(), filter, limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, summaries)
}

// GetAvailableSeats godoc
// @Summary フライトの空席数を取得
// @Description 空席数は総座席数から販売済み枚数を引いて集計します。
// @Description オーバーセルが発生している場合は負の値を返します
// @Tags flights
// @Produce json
// @Param id path string true "フライトID"
// @Success 200 {object} AvailableSeatsResponse
// @Failure 404 {object} map[string]string
// @Router /flights/{id}/available-seats [get]
func (h *FlightHandler) GetAvailableSeats(c echo.Context) error {
	flightID := c.Param("id")
	count, err := h.service.CountAvailableSeats(c.Request().Context(), flightID)
	if err != nil {
		if errors.Is(err, flight.ErrFlightNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, &AvailableSeatsResponse{
		FlightID:       flightID,
		AvailableSeats: count,
	})
}

// Update godoc
// @Summary フライトを更新
// @Tags flights
// @Accept json
// @Produce json
// @Param id path string true "フライトID"
// @Param request body FlightRequest true "フライト情報"
// @Success 200 {object} FlightResponse
// @Failure 404 {object} map[string]string
// @Router /flights/{id} [put]
func (h *FlightHandler) Update(c echo.Context) error {
	var req FlightRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	f, err := h.service.UpdateFlight(c.Request().Context(), application.UpdateFlightInput{
		ID:            c.Param("id"),
		RouteID:       req.RouteID,
		AirplaneID:    req.AirplaneID,
		DepartureTime: req.DepartureTime,
		ArrivalTime:   req.ArrivalTime,
	})
	if err != nil {
		if errors.Is(err, flight.ErrFlightNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, toFlightResponse(f))
}

// Delete godoc
// @Summary フライトを削除
// @Tags flights
// @Param id path string true "フライトID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /flights/{id} [delete]
func (h *FlightHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteFlight(c.Request().Context(), c.Param("id")); err != nil {
		if errors.Is(err, flight.ErrFlightNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
