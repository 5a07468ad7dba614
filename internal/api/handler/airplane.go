package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/go-airport-reservation/internal/application"
	"github.com/sanosuguru/go-airport-reservation/internal/domain/airplane"
)

// AirplaneHandler は機体型式と機体のエンドポイントを扱う
type AirplaneHandler struct {
	service AirplaneServiceInterface
}

func NewAirplaneHandler(s AirplaneServiceInterface) *AirplaneHandler {
	return &AirplaneHandler{service: s}
}

type AirplaneTypeRequest struct {
	Name string `json:"name" validate:"required" example:"Boeing 777"`
}

type AirplaneTypeResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type AirplaneRequest struct {
	Name       string `json:"name" validate:"required" example:"JA777A"`
	Rows       int    `json:"rows" validate:"required,gt=0" example:"15"`
	SeatsInRow int    `json:"seats_in_row" validate:"required,gt=0" example:"20"`
	TypeID     string `json:"airplane_type_id" validate:"required"`
}

// CreateType godoc
// @Summary 機体型式を作成
// @Tags airplane-types
// @Accept json
// @Produce json
// @Param request body AirplaneTypeRequest true "型式情報"
// @Success 201 {object} AirplaneTypeResponse
// @Failure 400 {object} map[string]string
// @Router /airplane-types [post]
func (h *AirplaneHandler) CreateType(c echo.Context) error {
	var req AirplaneTypeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	t, err := h.service.CreateType(c.Request().Context(), req.Name)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, AirplaneTypeResponse{ID: t.ID, Name: t.Name})
}

// GetTypeByID godoc
// @Summary 機体型式を取得
// @Tags airplane-types
// @Produce json
// @Param id path string true "型式ID"
// @Success 200 {object} AirplaneTypeResponse
// @Failure 404 {object} map[string]string
// @Router /airplane-types/{id} [get]
func (h *AirplaneHandler) GetTypeByID(c echo.Context) error {
	t, err := h.service.GetType(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, airplane.ErrTypeNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, AirplaneTypeResponse{ID: t.ID, Name: t.Name})
}

// ListTypes godoc
// @Summary 機体型式一覧を取得
// @Tags airplane-types
// @Produce json
// @Param limit query int false "取得件数" default(20)
// @Param offset query int false "オフセット" default(0)
// @Success 200 {array} AirplaneTypeResponse
// @Router /airplane-types [get]
func (h *AirplaneHandler) ListTypes(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	types, err := h.service.ListTypes(c.Request().Context(), limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	responses := make([]AirplaneTypeResponse, len(types))
	for i, t := range types {
		responses[i] = AirplaneTypeResponse{ID: t.ID, Name: t.Name}
	}
	return c.JSON(http.StatusOK, responses)
}

// UpdateType godoc
// @Summary 機体型式を更新
// @Tags airplane-types
// @Accept json
// @Produce json
// @Param id path string true "型式ID"
// @Param request body AirplaneTypeRequest true "型式情報"
// @Success 200 {object} AirplaneTypeResponse
// @Failure 404 {object} map[string]string
// @Router /airplane-types/{id} [put]
func (h *AirplaneHandler) UpdateType(c echo.Context) error {
	var req AirplaneTypeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	t, err := h.service.UpdateType(c.Request().Context(), c.Param("id"), req.Name)
	if err != nil {
		if errors.Is(err, airplane.ErrTypeNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, AirplaneTypeResponse{ID: t.ID, Name: t.Name})
}

// DeleteType godoc
// @Summary 機体型式を削除
// @Tags airplane-types
// @Param id path string true "型式ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /airplane-types/{id} [delete]
func (h *AirplaneHandler) DeleteType(c echo.Context) error {
	if err := h.service.DeleteType(c.Request().Context(), c.Param("id")); err != nil {
		if errors.Is(err, airplane.ErrTypeNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// Create godoc
// @Summary 機体を作成
// @Description 座席格子（行数×列数）付きの機体を登録します（管理者のみ）
// @Tags airplanes
// @Accept json
// @Produce json
// @Param request body AirplaneRequest true "機体情報"
// @Success 201 {object} airplane.Summary
// @Failure 400 {object} map[string]string
// @Router /airplanes [post]
func (h *AirplaneHandler) Create(c echo.Context) error {
	var req AirplaneRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	a, err := h.service.CreateAirplane(c.Request().Context(), application.CreateAirplaneInput{
		Name: req.Name, Rows: req.Rows, SeatsInRow: req.SeatsInRow, TypeID: req.TypeID,
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, a)
}

// GetByID godoc
// @Summary 機体を取得
// @Description 型式名・総座席数付きの機体情報を返します
// @Tags airplanes
// @Produce json
// @Param id path string true "機体ID"
// @Success 200 {object} airplane.Summary
// @Failure 404 {object} map[string]string
// @Router /airplanes/{id} [get]
func (h *AirplaneHandler) GetByID(c echo.Context) error {
	a, err := h.service.GetAirplane(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, airplane.ErrAirplaneNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, a)
}

// List godoc
// @Summary 機体一覧を取得
// @Tags airplanes
// @Produce json
// @Param limit query int false "取得件数" default(20)
// @Param offset query int false "オフセット" default(0)
// @Success 200 {array} airplane.Summary
// @Router /airplanes [get]
func (h *AirplaneHandler) List(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	airplanes, err := h.service.ListAirplanes(c.Request().Context(), limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, airplanes)
}

// Update godoc
// @Summary 機体を更新
// @Tags airplanes
// @Accept json
// @Produce json
// @Param id path string true "機体ID"
// @Param request body AirplaneRequest true "機体情報"
// @Success 200 {object} airplane.Summary
// @Failure 404 {object} map[string]string
// @Router /airplanes/{id} [put]
func (h *AirplaneHandler) Update(c echo.Context) error {
	var req AirplaneRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	a, err := h.service.UpdateAirplane(c.Request().Context(), application.UpdateAirplaneInput{
		ID: c.Param("id"), Name: req.Name, Rows: req.Rows, SeatsInRow: req.SeatsInRow, TypeID: req.TypeID,
	})
	if err != nil {
		if errors.Is(err, airplane.ErrAirplaneNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, a)
}

// Delete godoc
// @Summary 機体を削除
// @Tags airplanes
// @Param id path string true "機体ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /airplanes/{id} [delete]
func (h *AirplaneHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteAirplane(c.Request().Context(), c.Param("id")); err != nil {
		if errors.Is(err, airplane.ErrAirplaneNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
