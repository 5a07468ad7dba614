package application

import (
	"context"
	"fmt"

	"github.com/sanosuguru/go-airport-reservation/internal/domain/airport"
)

type AirportService struct {
	airportRepo airport.Repository
}

func NewAirportService(airportRepo airport.Repository) *AirportService {
	return &AirportService{airportRepo: airportRepo}
}

type CreateAirportInput struct {
	Name           string
	ClosestBigCity string
}

func (s *AirportService) CreateAirport(ctx context.Context, input CreateAirportInput) (*airport.Airport, error) {
	a := airport.NewAirport(input.Name, input.ClosestBigCity)
	if err := a.Validate(); err != nil {
		return nil, fmt.Errorf("バリデーションエラー: %w", err)
	}
	if err := s.airportRepo.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("空港作成に失敗しました: %w", err)
	}
	return a, nil
}

func (s *AirportService) GetAirport(ctx context.Context, id string) (*airport.Airport, error) {
	return s.airportRepo.GetByID(ctx, id)
}

func (s *AirportService) ListAirports(ctx context.Context, limit, offset int) ([]*airport.Airport, error) {
	limit, offset = clampPage(limit, offset)
	return s.airportRepo.List(ctx, limit, offset)
}

type UpdateAirportInput struct {
	ID             string
	Name           string
	ClosestBigCity string
}

func (s *AirportService) UpdateAirport(ctx context.Context, input UpdateAirportInput) (*airport.Airport, error) {
	a, err := s.airportRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	a.Name = input.Name
	a.ClosestBigCity = input.ClosestBigCity
	if err := a.Validate(); err != nil {
		return nil, fmt.Errorf("バリデーションエラー: %w", err)
	}
	if err := s.airportRepo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *AirportService) DeleteAirport(ctx context.Context, id string) error {
	return s.airportRepo.Delete(ctx, id)
}

// clampPage はページング引数をデフォルト値と上限に収める
func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
