package application

import (
	"context"
	"fmt"

	"github.com/sanosuguru/go-airport-reservation/internal/domain/crew"
)

type CrewService struct {
	crewRepo crew.Repository
}

func NewCrewService(crewRepo crew.Repository) *CrewService {
	return &CrewService{crewRepo: crewRepo}
}

type CreateCrewInput struct {
	FirstName string
	LastName  string
	FlightIDs []string
}

func (s *CrewService) CreateCrew(ctx context.Context, input CreateCrewInput) (*crew.Crew, error) {
	c := crew.NewCrew(input.FirstName, input.LastName, input.FlightIDs)
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("バリデーションエラー: %w", err)
	}
	if err := s.crewRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CrewService) GetCrew(ctx context.Context, id string) (*crew.Crew, error) {
	return s.crewRepo.GetByID(ctx, id)
}

func (s *CrewService) ListCrews(ctx context.Context, limit, offset int) ([]*crew.Crew, error) {
	limit, offset = clampPage(limit, offset)
	return s.crewRepo.List(ctx, limit, offset)
}

type UpdateCrewInput struct {
	ID        string
	FirstName string
	LastName  string
	FlightIDs []string
}

// UpdateCrew は乗務員を更新する。フライト割り当ては入力で全置換する
func (s *CrewService) UpdateCrew(ctx context.Context, input UpdateCrewInput) (*crew.Crew, error) {
	c, err := s.crewRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	c.FirstName = input.FirstName
	c.LastName = input.LastName
	c.FlightIDs = input.FlightIDs
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("バリデーションエラー: %w", err)
	}
	if err := s.crewRepo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CrewService) DeleteCrew(ctx context.Context, id string) error {
	return s.crewRepo.Delete(ctx, id)
}
