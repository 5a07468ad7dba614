package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/go-airport-reservation/internal/api/middleware"
	"github.com/sanosuguru/go-airport-reservation/internal/application"
	"github.com/sanosuguru/go-airport-reservation/internal/domain/flight"
	"github.com/sanosuguru/go-airport-reservation/internal/domain/order"
	"github.com/sanosuguru/go-airport-reservation/internal/domain/user"
)

type OrderHandler struct {
	service OrderServiceInterface
}

func NewOrderHandler(s OrderServiceInterface) *OrderHandler {
	return &OrderHandler{service: s}
}

// actorFrom は認証ミドルウェアが設定した操作主体を取り出す
func actorFrom(c echo.Context) (user.Actor, error) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		return user.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "認証が必要です")
	}
	return actor, nil
}

type TicketRequest struct {
	FlightID string `json:"flight_id" validate:"required" example:"550e8400-e29b-41d4-a716-446655440000"`
	Row      int    `json:"row" validate:"gt=0" example:"12"`
	Seat     int    `json:"seat" validate:"gt=0" example:"3"`
}

type CreateOrderRequest struct {
	Tickets []TicketRequest `json:"tickets" validate:"required,min=1,dive"`
}

type OrderResponse struct {
	ID        string         `json:"id"`
	UserID    string         `json:"user_id"`
	Tickets   []order.Ticket `json:"tickets"`
	CreatedAt string         `json:"created_at"`
}

func toOrderResponse(o *order.Order) *OrderResponse {
	return &OrderResponse{
		ID:        o.ID,
		UserID:    o.UserID,
		Tickets:   o.Tickets,
		CreatedAt: o.CreatedAt.Format(time.RFC3339),
	}
}

// Create godoc
// @Summary 注文を作成
// @Description 複数チケットを1トランザクションで購入します。
// @Description いずれかの座席が範囲外または販売済みの場合、注文全体が失敗します
// @Tags orders
// @Accept json
// @Produce json
// @Param request body CreateOrderRequest true "チケット候補"
// @Success 201 {object} OrderResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Security BearerAuth
// @Router /orders [post]
func (h *OrderHandler) Create(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	candidates := make([]order.CandidateTicket, len(req.Tickets))
	for i, t := range req.Tickets {
		candidates[i] = order.CandidateTicket{FlightID: t.FlightID, Row: t.Row, Seat: t.Seat}
	}

	o, err := h.service.CreateOrder(c.Request().Context(), actor, application.CreateOrderInput{
		Tickets: candidates,
	})
	if err != nil {
		var boundsErr *order.BoundsError
		switch {
		// 範囲外・販売済み・存在しないフライトはいずれも入力エラーとして返す
		case errors.As(err, &boundsErr),
			errors.Is(err, order.ErrEmptyOrder),
			errors.Is(err, order.ErrSeatTaken),
			errors.Is(err, flight.ErrFlightNotFound):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}
	return c.JSON(http.StatusCreated, toOrderResponse(o))
}

// GetByID godoc
// @Summary 注文を取得
// @Description 自分の注文のみ参照できます。管理者は全注文を参照できます
// @Tags orders
// @Produce json
// @Param id path string true "注文ID"
// @Success 200 {object} OrderResponse
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /orders/{id} [get]
func (h *OrderHandler) GetByID(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	o, err := h.service.GetOrder(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, order.ErrOrderNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, order.ErrNotOwner):
			return echo.NewHTTPError(http.StatusForbidden, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}
	return c.JSON(http.StatusOK, toOrderResponse(o))
}

// List godoc
// @Summary 注文一覧を取得
// @Description 一般ユーザーは自分の注文のみ、管理者は全注文を取得します
// @Tags orders
// @Produce json
// @Param limit query int false "取得件数" default(20)
// @Param offset query int false "オフセット" default(0)
// @Success 200 {array} OrderResponse
// @Failure 401 {object} map[string]string
// @Security BearerAuth
// @Router /orders [get]
func (h *OrderHandler) List(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	orders, err := h.service.ListOrders(c.Request().Context(), actor, limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	responses := make([]*OrderResponse, len(orders))
	for i, o := range orders {
		responses[i] = toOrderResponse(o)
	}
	return c.JSON(http.StatusOK, responses)
}
