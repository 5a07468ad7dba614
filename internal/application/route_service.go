package application

import (
	"context"
	"fmt"

	"github.com/sanosuguru/go-airport-reservation/internal/domain/route"
)

type RouteService struct {
	routeRepo route.Repository
}

func NewRouteService(routeRepo route.Repository) *RouteService {
	return &RouteService{routeRepo: routeRepo}
}

type CreateRouteInput struct {
	SourceID      string
	DestinationID string
	Distance      int
}

func (s *RouteService) CreateRoute(ctx context.Context, input CreateRouteInput) (*route.Route, error) {
	r := route.NewRoute(input.SourceID, input.DestinationID, input.Distance)
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("バリデーションエラー: %w", err)
	}
	if err := s.routeRepo.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *RouteService) GetRoute(ctx context.Context, id string) (*route.Detail, error) {
	return s.routeRepo.GetDetail(ctx, id)
}

func (s *RouteService) ListRoutes(ctx context.Context, limit, offset int) ([]*route.Summary, error) {
	limit, offset = clampPage(limit, offset)
	return s.routeRepo.List(ctx, limit, offset)
}

type UpdateRouteInput struct {
	ID            string
	SourceID      string
	DestinationID string
	Distance      int
}

func (s *RouteService) UpdateRoute(ctx context.Context, input UpdateRouteInput) (*route.Route, error) {
	r, err := s.routeRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	r.SourceID = input.SourceID
	r.DestinationID = input.DestinationID
	r.Distance = input.Distance
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("バリデーションエラー: %w", err)
	}
	if err := s.routeRepo.Update(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *RouteService) DeleteRoute(ctx context.Context, id string) error {
	return s.routeRepo.Delete(ctx, id)
}
