package application

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/sanosuguru/go-airport-reservation/internal/domain/flight"
	"github.com/sanosuguru/go-airport-reservation/internal/domain/order"
	"github.com/sanosuguru/go-airport-reservation/internal/domain/transaction"
	"github.com/sanosuguru/go-airport-reservation/internal/domain/user"
	redisinfra "github.com/sanosuguru/go-airport-reservation/internal/infrastructure/redis"
	"github.com/sanosuguru/go-airport-reservation/internal/pkg/logger"
	"github.com/sanosuguru/go-airport-reservation/internal/pkg/metrics"
)

type OrderService struct {
	txManager  transaction.Manager
	orderRepo  order.Repository
	flightRepo flight.Repository
	cache      *redisinfra.AvailabilityCache
}

func NewOrderService(txManager transaction.Manager, orderRepo order.Repository, flightRepo flight.Repository, cache *redisinfra.AvailabilityCache) *OrderService {
	return &OrderService{txManager: txManager, orderRepo: orderRepo, flightRepo: flightRepo, cache: cache}
}

type CreateOrderInput struct {
	Tickets []order.CandidateTicket
}

// CreateOrder は座席候補の一括購入を行う
// 全候補の検証が通った場合のみ単一トランザクションで注文とチケットを
// 挿入する。座席の一意性はストレージ層の複合ユニーク制約が保証し、
// 競合時は注文全体がロールバックされる
func (s *OrderService) CreateOrder(ctx context.Context, actor user.Actor, input CreateOrderInput) (*order.Order, error) {
	o := order.NewOrder(actor.UserID, input.Tickets)
	if err := o.Validate(); err != nil {
		return nil, err
	}

	// フライトごとの座席格子を取得し、候補を永続化前に検証する
	geometries := make(map[string]*flight.Geometry)
	for _, c := range input.Tickets {
		g, ok := geometries[c.FlightID]
		if !ok {
			var err error
			g, err = s.flightRepo.GetGeometry(ctx, c.FlightID)
			if err != nil {
				return nil, err
			}
			geometries[c.FlightID] = g
		}
		if err := order.ValidateSeat(c.Row, c.Seat, g.Rows, g.SeatsInRow); err != nil {
			return nil, err
		}
	}

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("トランザクション開始に失敗: %w", err)
	}
	defer tx.Rollback()

	if err := s.orderRepo.Create(ctx, tx, o); err != nil {
		if m := metrics.Get(); m != nil {
			m.OrdersTotal.WithLabelValues("rejected").Inc()
		}
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("コミットに失敗: %w", err)
	}
	if m := metrics.Get(); m != nil {
		m.OrdersTotal.WithLabelValues("created").Inc()
	}

	// 確定した座席分のキャッシュを無効化する
	if s.cache != nil {
		for flightID := range geometries {
			if err := s.cache.Invalidate(ctx, flightID); err != nil {
				logger.Warn("キャッシュ無効化エラー", zap.String("flight_id", flightID), zap.Error(err))
			}
		}
	}

	return o, nil
}

// GetOrder は注文を取得する。所有者か管理者のみ参照できる
func (s *OrderService) GetOrder(ctx context.Context, actor user.Actor, id string) (*order.Order, error) {
	o, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.UserID != actor.UserID && !actor.IsAdmin() {
		return nil, order.ErrNotOwner
	}
	return o, nil
}

// ListOrders は操作主体自身の注文一覧を返す。管理者は全注文を参照できる
func (s *OrderService) ListOrders(ctx context.Context, actor user.Actor, limit, offset int) ([]*order.Order, error) {
	limit, offset = clampPage(limit, offset)
	if actor.IsAdmin() {
		return s.orderRepo.List(ctx, limit, offset)
	}
	return s.orderRepo.ListByUser(ctx, actor.UserID, limit, offset)
}
