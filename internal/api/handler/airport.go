package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/go-airport-reservation/internal/application"
	"github.com/sanosuguru/go-airport-reservation/internal/domain/airport"
)

type AirportHandler struct {
	service AirportServiceInterface
}

func NewAirportHandler(s AirportServiceInterface) *AirportHandler {
	return &AirportHandler{service: s}
}

type AirportRequest struct {
	Name           string `json:"name" validate:"required" example:"成田国際空港"`
	ClosestBigCity string `json:"closest_big_city" validate:"required" example:"東京"`
}

type AirportResponse struct {
	ID             string `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Name           string `json:"name" example:"成田国際空港"`
	ClosestBigCity string `json:"closest_big_city" example:"東京"`
	CreatedAt      string `json:"created_at" example:"2025-12-06T10:00:00+09:00"`
	UpdatedAt      string `json:"updated_at" example:"2025-12-06T10:00:00+09:00"`
}

func toAirportResponse(a *airport.Airport) *AirportResponse {
	return &AirportResponse{
		ID:             a.ID,
		Name:           a.Name,
		ClosestBigCity: a.ClosestBigCity,
		CreatedAt:      a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      a.UpdatedAt.Format(time.RFC3339),
	}
}

// Create godoc
// @Summary 空港を作成
// @Description 新しい空港を登録します（管理者のみ）
// @Tags airports
// @Accept json
// @Produce json
// @Param request body AirportRequest true "空港情報"
// @Success 201 {object} AirportResponse
// @Failure 400 {object} map[string]string
// @Router /airports [post]
func (h *AirportHandler) Create(c echo.Context) error {
	var req AirportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	a, err := h.service.CreateAirport(c.Request().Context(), application.CreateAirportInput{
		Name: req.Name, ClosestBigCity: req.ClosestBigCity,
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, toAirportResponse(a))
}

// GetByID godoc
// @Summary 空港を取得
// @Tags airports
// @Produce json
// @Param id path string true "空港ID"
// @Success 200 {object} AirportResponse
// @Failure 404 {object} map[string]string
// @Router /airports/{id} [get]
func (h *AirportHandler) GetByID(c echo.Context) error {
	a, err := h.service.GetAirport(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, airport.ErrAirportNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, toAirportResponse(a))
}

// List godoc
// @Summary 空港一覧を取得
// @Tags airports
// @Produce json
// @Param limit query int false "取得件数" default(20)
// @Param offset query int false "オフセット" default(0)
// @Success 200 {array} AirportResponse
// @Router /airports [get]
func (h *AirportHandler) List(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	airports, err := h.service.ListAirports(c.Request().Context(), limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	responses := make([]*AirportResponse, len(airports))
	for i, a := range airports {
		responses[i] = toAirportResponse(a)
	}
	return c.JSON(http.StatusOK, responses)
}

// Update godoc
// @Summary 空港を更新
// @Tags airports
// @Accept json
// @Produce json
// @Param id path string true "空港ID"
// @Param request body AirportRequest true "空港情報"
// @Success 200 {object} AirportResponse
// @Failure 404 {object} map[string]string
// @Router /airports/{id} [put]
func (h *AirportHandler) Update(c echo.Context) error {
	var req AirportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	a, err := h.service.UpdateAirport(c.Request().Context(), application.UpdateAirportInput{
		ID: c.Param("id"), Name: req.Name, ClosestBigCity: req.ClosestBigCity,
	})
	if err != nil {
		if errors.Is(err, airport.ErrAirportNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, toAirportResponse(a))
}

// Delete godoc
// @Summary 空港を削除
// @Tags airports
// @Param id path string true "空港ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /airports/{id} [delete]
func (h *AirportHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteAirport(c.Request().Context(), c.Param("id")); err != nil {
		if errors.Is(err, airport.ErrAirportNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
