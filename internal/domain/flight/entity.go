package flight

import (
	"time"

	"github.com/sanosuguru/go-airport-reservation/internal/domain/airplane"
	"github.com/sanosuguru/go-airport-reservation/internal/domain/route"
)

// Flight はフライトエンティティを表す
// 座席の幾何情報は機体から読み取り時に継承し、複製は保持しない
type Flight struct {
	ID            string
	RouteID       string
	AirplaneID    string
	DepartureTime time.Time
	ArrivalTime   time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewFlight は新しいフライトを作成する
func NewFlight(routeID, airplaneID string, departureTime, arrivalTime time.Time) *Flight {
	now := time.Now()
	return &Flight{
		RouteID:       routeID,
		AirplaneID:    airplaneID,
		DepartureTime: departureTime,
		ArrivalTime:   arrivalTime,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Validate はフライトの検証を行う
func (f *Flight) Validate() error {
	if f.RouteID == "" {
		return ErrRouteIDRequired
	}
	if f.AirplaneID == "" {
		return ErrAirplaneIDRequired
	}
	if f.DepartureTime.IsZero() || f.ArrivalTime.IsZero() {
		return ErrTimeRequired
	}
	if !f.ArrivalTime.After(f.DepartureTime) {
		return ErrInvalidFlightTime
	}
	return nil
}

// Geometry はフライトに割り当てられた機体の座席格子
// Seat Ledger の範囲検証が参照する
type Geometry struct {
	FlightID   string
	Rows       int
	SeatsInRow int
}

// Capacity は総座席数を返す
func (g *Geometry) Capacity() int {
	return g.Rows * g.SeatsInRow
}

// Summary は一覧表示用の射影
// AvailableSeats は読み取り時に capacity - 販売済み枚数 で導出される。
// 保存もキャッシュ上書きもしないため、負数はオーバーセルの兆候となる
type Summary struct {
	ID             string    `json:"id"`
	Route          string    `json:"route"`
	Airplane       string    `json:"airplane"`
	DepartureTime  time.Time `json:"departure_time"`
	ArrivalTime    time.Time `json:"arrival_time"`
	AvailableSeats int       `json:"available_seats"`
}

// TakenSeat は販売済み座席の (行, 席) 組
type TakenSeat struct {
	Row  int `json:"row"`
	Seat int `json:"seat"`
}

// Detail は詳細表示用の射影
type Detail struct {
	ID            string           `json:"id"`
	Route         route.Detail     `json:"route"`
	Airplane      airplane.Summary `json:"airplane"`
	DepartureTime time.Time        `json:"departure_time"`
	ArrivalTime   time.Time        `json:"arrival_time"`
	TakenSeats    []TakenSeat      `json:"taken_seats"`
}

// Filter はフライト一覧の絞り込み条件
// Source/Destination は空港名・都市名に対する部分一致、
// 日付は出発・到着タイムスタンプの日付部分に対する一致
type Filter struct {
	Source        string
	Destination   string
	DepartureDate *time.Time
	ArrivalDate   *time.Time
}
