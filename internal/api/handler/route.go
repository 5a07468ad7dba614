package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/go-airport-reservation/internal/application"
	"github.com/sanosuguru/go-airport-reservation/internal/domain/route"
)

type RouteHandler struct {
	service RouteServiceInterface
}

func NewRouteHandler(s RouteServiceInterface) *RouteHandler {
	return &RouteHandler{service: s}
}

type RouteRequest struct {
	SourceID      string `json:"source_id" validate:"required" example:"550e8400-e29b-41d4-a716-446655440000"`
	DestinationID string `json:"destination_id" validate:"required" example:"660e8400-e29b-41d4-a716-446655440000"`
	Distance      int    `json:"distance" validate:"required,gt=0" example:"1200"`
}

type RouteResponse struct {
	ID            string `json:"id"`
	SourceID      string `json:"source_id"`
	DestinationID string `json:"destination_id"`
	Distance      int    `json:"distance"`
}

func toRouteResponse(r *route.Route) *RouteResponse {
	return &RouteResponse{
		ID:            r.ID,
		SourceID:      r.SourceID,
		DestinationID: r.DestinationID,
		Distance:      r.Distance,
	}
}

// Create godoc
// @Summary 経路を作成
// @Description 2空港間の経路を登録します（管理者のみ）
// @Tags routes
// @Accept json
// @Produce json
// @Param request body RouteRequest true "経路情報"
// @Success 201 {object} RouteResponse
// @Failure 400 {object} map[string]string
// @Router /routes [post]
func (h *RouteHandler) Create(c echo.Context) error {
	var req RouteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	r, err := h.service.CreateRoute(c.Request().Context(), application.CreateRouteInput{
		SourceID: req.SourceID, DestinationID: req.DestinationID, Distance: req.Distance,
	})
	if err != nil {
		// 存在しない空港IDを指す場合も入力エラーとして返す
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, toRouteResponse(r))
}

// GetByID godoc
// @Summary 経路詳細を取得
// @Description 端点の空港情報をネストした経路詳細を返します
// @Tags routes
// @Produce json
// @Param id path string true "経路ID"
// @Success 200 {object} route.Detail
// @Failure 404 {object} map[string]string
// @Router /routes/{id} [get]
func (h *RouteHandler) GetByID(c echo.Context) error {
	d, err := h.service.GetRoute(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, route.ErrRouteNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, d)
}

// List godoc
// @Summary 経路一覧を取得
// @Description 端点を最寄り都市名で表した一覧を返します
// @Tags routes
// @Produce json
// @Param limit query int false "取得件数" default(20)
// @Param offset query int false "オフセット" default(0)
// @Success 200 {array} route.Summary
// @Router /routes [get]
func (h *RouteHandler) List(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	routes, err := h.service.ListRoutes(c.Request().Context(), limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, routes)
}

// Update godoc
// @Summary 経路を更新
// @Tags routes
// @Accept json
// @Produce json
// @Param id path string true "経路ID"
// @Param request body RouteRequest true "経路情報"
// @Success 200 {object} RouteResponse
// @Failure 404 {object} map[string]string
// @Router /routes/{id} [put]
func (h *RouteHandler) Update(c echo.Context) error {
	var req RouteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	r, err := h.service.UpdateRoute(c.Request().Context(), application.UpdateRouteInput{
		ID: c.Param("id"), SourceID: req.SourceID, DestinationID: req.DestinationID, Distance: req.Distance,
	})
	if err != nil {
		if errors.Is(err, route.ErrRouteNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, toRouteResponse(r))
}

// Delete godoc
// @Summary 経路を削除
// @Tags routes
// @Param id path string true "経路ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /routes/{id} [delete]
func (h *RouteHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteRoute(c.Request().Context(), c.Param("id")); err != nil {
		if errors.Is(err, route.ErrRouteNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
