package handler

import (
	"context"

	"github.com/sanosuguru/go-airport-reservation/internal/application"
	"github.com/sanosuguru/go-airport-reservation/internal/domain/airplane"
	"github.com/sanosuguru/go-airport-reservation/internal/domain/airport"
	"github.com/sanosuguru/go-airport-reservation/internal/domain/crew"
	"github.com/sanosuguru/go-airport-reservation/internal/domain/flight"
	"github.com/sanosuguru/go-airport-reservation/internal/domain/order"
	"github.com/sanosuguru/go-airport-reservation/internal/domain/route"
	"github.com/sanosuguru/go-airport-reservation/internal/domain/user"
)

// AirportServiceInterface は空港サービスのインターフェース
type AirportServiceInterface interface {
	CreateAirport(ctx context.Context, input application.CreateAirportInput) (*airport.Airport, error)
	GetAirport(ctx context.Context, id string) (*airport.Airport, error)
	ListAirports(ctx context.Context, limit, offset int) ([]*airport.Airport, error)
	UpdateAirport(ctx context.Context, input application.UpdateAirportInput) (*airport.Airport, error)
	DeleteAirport(ctx context.Context, id string) error
}

// RouteServiceInterface は経路サービスのインターフェース
type RouteServiceInterface interface {
	CreateRoute(ctx context.Context, input application.CreateRouteInput) (*route.Route, error)
	GetRoute(ctx context.Context, id string) (*route.Detail, error)
	ListRoutes(ctx context.Context, limit, offset int) ([]*route.Summary, error)
	UpdateRoute(ctx context.Context, input application.UpdateRouteInput) (*route.Route, error)
	DeleteRoute(ctx context.Context, id string) error
}

// AirplaneServiceInterface は機体サービスのインターフェース
type AirplaneServiceInterface interface {
	CreateType(ctx context.Context, name string) (*airplane.Type, error)
	GetType(ctx context.Context, id string) (*airplane.Type, error)
	ListTypes(ctx context.Context, limit, offset int) ([]*airplane.Type, error)
	UpdateType(ctx context.Context, id, name string) (*airplane.Type, error)
	DeleteType(ctx context.Context, id string) error
	CreateAirplane(ctx context.Context, input application.CreateAirplaneInput) (*airplane.Summary, error)
	GetAirplane(ctx context.Context, id string) (*airplane.Summary, error)
	ListAirplanes(ctx context.Context, limit, offset int) ([]*airplane.Summary, error)
	UpdateAirplane(ctx context.Context, input application.UpdateAirplaneInput) (*airplane.Summary, error)
	DeleteAirplane(ctx context.Context, id string) error
}

// CrewServiceInterface は乗務員サービスのインターフェース
type CrewServiceInterface interface {
	CreateCrew(ctx context.Context, input application.CreateCrewInput) (*crew.Crew, error)
	GetCrew(ctx context.Context, id string) (*crew.Crew, error)
	ListCrews(ctx context.Context, limit, offset int) ([]*crew.Crew, error)
	UpdateCrew(ctx context.Context, input application.UpdateCrewInput) (*crew.Crew, error)
	DeleteCrew(ctx context.Context, id string) error
}

// FlightServiceInterface はフライトサービスのインターフェース
type FlightServiceInterface interface {
	CreateFlight(ctx context.Context, input application.CreateFlightInput) (*flight.Flight, error)
	GetFlight(ctx context.Context, id string) (*flight.Detail, error)
	ListFlights(ctx context.Context, filter flight.Filter, limit, offset int) ([]*flight.Summary, error)
	UpdateFlight(ctx context.Context, input application.UpdateFlightInput) (*flight.Flight, error)
	DeleteFlight(ctx context.Context, id string) error
	CountAvailableSeats(ctx context.Context, flightID string) (int, error)
}

// OrderServiceInterface は注文サービスのインターフェース
type OrderServiceInterface interface {
	CreateOrder(ctx context.Context, actor user.Actor, input application.CreateOrderInput) (*order.Order, error)
	GetOrder(ctx context.Context, actor user.Actor, id string) (*order.Order, error)
	ListOrders(ctx context.Context, actor user.Actor, limit, offset int) ([]*order.Order, error)
}

// UserServiceInterface はユーザーサービスのインターフェース
type UserServiceInterface interface {
	Register(ctx context.Context, input application.RegisterInput) (*user.User, error)
	Login(ctx context.Context, input application.LoginInput) (string, error)
	GetMe(ctx context.Context, actor user.Actor) (*user.User, error)
	UpdateMe(ctx context.Context, actor user.Actor, input application.UpdateMeInput) (*user.User, error)
}
