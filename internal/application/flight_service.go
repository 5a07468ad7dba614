package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/sanosuguru/go-airport-reservation/internal/domain/flight"
	redisinfra "github.com/sanosuguru/go-airport-reservation/internal/infrastructure/redis"
	"github.com/sanosuguru/go-airport-reservation/internal/pkg/logger"
)

const defaultAvailabilityCacheTTL = 30 * time.Second

type FlightService struct {
	flightRepo flight.Repository
	cache      *redisinfra.AvailabilityCache
	cacheTTL   time.Duration
}

func NewFlightService(flightRepo flight.Repository, cache *redisinfra.AvailabilityCache, cacheTTL time.Duration) *FlightService {
	if cacheTTL <= 0 {
		cacheTTL = defaultAvailabilityCacheTTL
	}
	return &FlightService{flightRepo: flightRepo, cache: cache, cacheTTL: cacheTTL}
}

type CreateFlightInput struct {
	RouteID       string
	AirplaneID    string
	DepartureTime time.Time
	ArrivalTime   time.Time
}

func (s *FlightService) CreateFlight(ctx context.Context, input CreateFlightInput) (*flight.Flight, error) {
	f := flight.NewFlight(input.RouteID, input.AirplaneID, input.DepartureTime, input.ArrivalTime)
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("バリデーションエラー: %w", err)
	}
	if err := s.flightRepo.Create(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

// GetFlight は販売済み座席付きの詳細射影を取得する
func (s *FlightService) GetFlight(ctx context.Context, id string) (*flight.Detail, error) {
	return s.flightRepo.GetDetail(ctx, id)
}

// ListFlights はフィルタ条件に合致するフライトを空席数付きで取得する
// 空席数はクエリ時に集計し、保存しない
func (s *FlightService) ListFlights(ctx context.Context, filter flight.Filter, limit, offset int) ([]*flight.Summary, error) {
	limit, offset = clampPage(limit, offset)
	return s.flightRepo.List(ctx, filter, limit, offset)
}

type UpdateFlightInput struct {
	ID            string
	RouteID       string
	AirplaneID    string
	DepartureTime time.Time
	ArrivalTime   time.Time
}

func (s *FlightService) UpdateFlight(ctx context.Context, input UpdateFlightInput) (*flight.Flight, error) {
	f, err := s.flightRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	f.RouteID = input.RouteID
	f.AirplaneID = input.AirplaneID
	f.DepartureTime = input.DepartureTime
	f.ArrivalTime = input.ArrivalTime
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("バリデーションエラー: %w", err)
	}
	if err := s.flightRepo.Update(ctx, f); err != nil {
		return nil, err
	}
	// 機体の差し替えで空席数が変わりうる
	s.InvalidateAvailability(ctx, f.ID)
	return f, nil
}

func (s *FlightService) DeleteFlight(ctx context.Context, id string) error {
	if err := s.flightRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.InvalidateAvailability(ctx, id)
	return nil
}

// CountAvailableSeats は単一フライトの空席数を取得する
// キャッシュがあれば優先し、ミス時はDB集計の結果を短期キャッシュする
func (s *FlightService) CountAvailableSeats(ctx context.Context, flightID string) (int, error) {
	if s.cache != nil {
		count, err := s.cache.GetAvailableCount(ctx, flightID)
		if err == nil {
			logger.Debug("キャッシュヒット", zap.String("flight_id", flightID), zap.Int("count", count))
			return count, nil
		}
		if !errors.Is(err, redisinfra.ErrCacheMiss) {
			logger.Warn("キャッシュ取得エラー", zap.Error(err))
		}
	}

	count, err := s.flightRepo.CountAvailable(ctx, flightID)
	if err != nil {
		return 0, err
	}

	if s.cache != nil {
		if cacheErr := s.cache.SetAvailableCount(ctx, flightID, count, s.cacheTTL); cacheErr != nil {
			logger.Warn("キャッシュ保存エラー", zap.Error(cacheErr))
		}
	}

	return count, nil
}

// InvalidateAvailability はフライトの空席数キャッシュを無効化する
func (s *FlightService) InvalidateAvailability(ctx context.Context, flightID string) {
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, flightID); err != nil {
			logger.Warn("キャッシュ無効化エラー", zap.Error(err))
		}
	}
}
