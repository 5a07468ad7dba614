package application

import (
	"context"
	"fmt"

	"github.com/sanosuguru/go-airport-reservation/internal/domain/airplane"
)

// AirplaneService は機体型式と機体の両方を扱う
type AirplaneService struct {
	typeRepo     airplane.TypeRepository
	airplaneRepo airplane.Repository
}

func NewAirplaneService(typeRepo airplane.TypeRepository, airplaneRepo airplane.Repository) *AirplaneService {
	return &AirplaneService{typeRepo: typeRepo, airplaneRepo: airplaneRepo}
}

func (s *AirplaneService) CreateType(ctx context.Context, name string) (*airplane.Type, error) {
	t := airplane.NewType(name)
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("バリデーションエラー: %w", err)
	}
	if err := s.typeRepo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *AirplaneService) GetType(ctx context.Context, id string) (*airplane.Type, error) {
	return s.typeRepo.GetByID(ctx, id)
}

func (s *AirplaneService) ListTypes(ctx context.Context, limit, offset int) ([]*airplane.Type, error) {
	limit, offset = clampPage(limit, offset)
	return s.typeRepo.List(ctx, limit, offset)
}

func (s *AirplaneService) UpdateType(ctx context.Context, id, name string) (*airplane.Type, error) {
	t, err := s.typeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	t.Name = name
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("バリデーションエラー: %w", err)
	}
	if err := s.typeRepo.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *AirplaneService) DeleteType(ctx context.Context, id string) error {
	return s.typeRepo.Delete(ctx, id)
}

type CreateAirplaneInput struct {
	Name       string
	Rows       int
	SeatsInRow int
	TypeID     string
}

func (s *AirplaneService) CreateAirplane(ctx context.Context, input CreateAirplaneInput) (*airplane.Summary, error) {
	a := airplane.NewAirplane(input.Name, input.Rows, input.SeatsInRow, input.TypeID)
	if err := a.Validate(); err != nil {
		return nil, fmt.Errorf("バリデーションエラー: %w", err)
	}
	if err := s.airplaneRepo.Create(ctx, a); err != nil {
		return nil, err
	}
	return s.airplaneRepo.GetSummary(ctx, a.ID)
}

func (s *AirplaneService) GetAirplane(ctx context.Context, id string) (*airplane.Summary, error) {
	return s.airplaneRepo.GetSummary(ctx, id)
}

func (s *AirplaneService) ListAirplanes(ctx context.Context, limit, offset int) ([]*airplane.Summary, error) {
	limit, offset = clampPage(limit, offset)
	return s.airplaneRepo.List(ctx, limit, offset)
}

type UpdateAirplaneInput struct {
	ID         string
	Name       string
	Rows       int
	SeatsInRow int
	TypeID     string
}

func (s *AirplaneService) UpdateAirplane(ctx context.Context, input UpdateAirplaneInput) (*airplane.Summary, error) {
	a, err := s.airplaneRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	a.Name = input.Name
	a.Rows = input.Rows
	a.SeatsInRow = input.SeatsInRow
	a.TypeID = input.TypeID
	if err := a.Validate(); err != nil {
		return nil, fmt.Errorf("バリデーションエラー: %w", err)
	}
	if err := s.airplaneRepo.Update(ctx, a); err != nil {
		return nil, err
	}
	return s.airplaneRepo.GetSummary(ctx, a.ID)
}

func (s *AirplaneService) DeleteAirplane(ctx context.Context, id string) error {
	return s.airplaneRepo.Delete(ctx, id)
}
