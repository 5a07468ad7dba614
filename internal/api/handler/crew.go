package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/go-airport-reservation/internal/application"
	"github.com/sanosuguru/go-airport-reservation/internal/domain/crew"
)

type CrewHandler struct {
	service CrewServiceInterface
}

func NewCrewHandler(s CrewServiceInterface) *CrewHandler {
	return &CrewHandler{service: s}
}

type CrewRequest struct {
	FirstName string   `json:"first_name" validate:"required" example:"太郎"`
	LastName  string   `json:"last_name" validate:"required" example:"山田"`
	FlightIDs []string `json:"flight_ids"`
}

type CrewResponse struct {
	ID        string   `json:"id"`
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	FullName  string   `json:"full_name"`
	FlightIDs []string `json:"flight_ids"`
}

func toCrewResponse(c *crew.Crew) *CrewResponse {
	flightIDs := c.FlightIDs
	if flightIDs == nil {
		flightIDs = []string{}
	}
	return &CrewResponse{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		FullName:  c.FullName(),
		FlightIDs: flightIDs,
	}
}

// Create godoc
// @Summary 乗務員を作成
// @Description フライト割り当て付きで乗務員を登録します（管理者のみ）
// @Tags crews
// @Accept json
// @Produce json
// @Param request body CrewRequest true "乗務員情報"
// @Success 201 {object} CrewResponse
// @Failure 400 {object} map[string]string
// @Router /crews [post]
func (h *CrewHandler) Create(c echo.Context) error {
	var req CrewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	cr, err := h.service.CreateCrew(c.Request().Context(), application.CreateCrewInput{
		FirstName: req.FirstName, LastName: req.LastName, FlightIDs: req.FlightIDs,
	})
	if err != nil {
		// 存在しないフライトIDを割り当てた場合も入力エラーとして返す
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, toCrewResponse(cr))
}

// GetByID godoc
// @Summary 乗務員を取得
// @Tags crews
// @Produce json
// @Param id path string true "乗務員ID"
// @Success 200 {object} CrewResponse
// @Failure 404 {object} map[string]string
// @Router /crews/{id} [get]
func (h *CrewHandler) GetByID(c echo.Context) error {
	cr, err := h.service.GetCrew(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, crew.ErrCrewNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, toCrewResponse(cr))
}

// List godoc
// @Summary 乗務員一覧を取得
// @Tags crews
// @Produce json
// @Param limit query int false "取得件数" default(20)
// @Param offset query int false "オフセット" default(0)
// @Success 200 {array} CrewResponse
// @Router /crews [get]
func (h *CrewHandler) List(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	crews, err := h.service.ListCrews(c.Request().Context(), limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	responses := make([]*CrewResponse, len(crews))
	for i, cr := range crews {
		responses[i] = toCrewResponse(cr)
	}
	return c.JSON(http.StatusOK, responses)
}

// Update godoc
// @Summary 乗務員を更新
// @Description フライト割り当てはリクエストの内容で全置換されます
// @Tags crews
// @Accept json
// @Produce json
// @Param id path string true "乗務員ID"
// @Param request body CrewRequest true "乗務員情報"
// @Success 200 {object} CrewResponse
// @Failure 404 {object} map[string]string
// @Router /crews/{id} [put]
func (h *CrewHandler) Update(c echo.Context) error {
	var req CrewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	cr, err := h.service.UpdateCrew(c.Request().Context(), application.UpdateCrewInput{
		ID: c.Param("id"), FirstName: req.FirstName, LastName: req.LastName, FlightIDs: req.FlightIDs,
	})
	if err != nil {
		if errors.Is(err, crew.ErrCrewNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, toCrewResponse(cr))
}

// Delete godoc
// @Summary 乗務員を削除
// @Tags crews
// @Param id path string true "乗務員ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /crews/{id} [delete]
func (h *CrewHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteCrew(c.Request().Context(), c.Param("id")); err != nil {
		if errors.Is(err, crew.ErrCrewNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
