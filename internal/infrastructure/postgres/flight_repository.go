package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/sanosuguru/go-airport-reservation/internal/domain/airplane"
	"github.com/sanosuguru/go-airport-reservation/internal/domain/flight"
	"github.com/sanosuguru/go-airport-reservation/internal/domain/route"
)

type flightRow struct {
	ID            string    `db:"id"`
	RouteID       string    `db:"route_id"`
	AirplaneID    string    `db:"airplane_id"`
	DepartureTime time.Time `db:"departure_time"`
	ArrivalTime   time.Time `db:"arrival_time"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

func (r *flightRow) toEntity() *flight.Flight {
	return &flight.Flight{
		ID: r.ID, RouteID: r.RouteID, AirplaneID: r.AirplaneID,
		DepartureTime: r.DepartureTime, ArrivalTime: r.ArrivalTime,
		CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt,
	}
}

type FlightRepository struct{ db *sqlx.DB }

func NewFlightRepository(db *sqlx.DB) *FlightRepository { return &FlightRepository{db: db} }

func (r *FlightRepository) Create(ctx context.Context, f *flight.Flight) error {
	query := `INSERT INTO flights (route_id, airplane_id, departure_time, arrival_time, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	if err := r.db.QueryRowContext(ctx, query, f.RouteID, f.AirplaneID, f.DepartureTime, f.ArrivalTime, f.CreatedAt, f.UpdatedAt).Scan(&f.ID); err != nil {
		if isForeignKeyViolation(err) {
			return flight.ErrFlightNotFound
		}
		return fmt.Errorf("フライト作成に失敗: %w", err)
	}
	return nil
}

func (r *FlightRepository) GetByID(ctx context.Context, id string) (*flight.Flight, error) {
	var row flightRow
	query := `SELECT id, route_id, airplane_id, departure_time, arrival_time, created_at, updated_at FROM flights WHERE id = $1`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, flight.ErrFlightNotFound
		}
		return nil, fmt.Errorf("フライト取得に失敗: %w", err)
	}
	return row.toEntity(), nil
}

type flightDetailRow struct {
	ID               string    `db:"id"`
	DepartureTime    time.Time `db:"departure_time"`
	ArrivalTime      time.Time `db:"arrival_time"`
	RouteID          string    `db:"route_id"`
	Distance         int       `db:"distance"`
	SourceName       string    `db:"source_name"`
	SourceCity       string    `db:"source_city"`
	DestinationName  string    `db:"destination_name"`
	DestinationCity  string    `db:"destination_city"`
	AirplaneID       string    `db:"airplane_id"`
	AirplaneName     string    `db:"airplane_name"`
	AirplaneRows     int       `db:"airplane_rows"`
	AirplaneSeats    int       `db:"airplane_seats"`
	AirplaneTypeName string    `db:"airplane_type_name"`
}

func (r *FlightRepository) GetDetail(ctx context.Context, id string) (*flight.Detail, error) {
	var row flightDetailRow
	query := `SELECT f.id, f.departure_time, f.arrival_time,
	                 r.id AS route_id, r.distance,
	                 src.name AS source_name, src.closest_big_city AS source_city,
	                 dst.name AS destination_name, dst.closest_big_city AS destination_city,
	                 a.id AS airplane_id, a.name AS airplane_name,
	                 a.rows AS airplane_rows, a.seats_in_row AS airplane_seats,
	                 t.name AS airplane_type_name
	          FROM flights f
	          JOIN routes r ON r.id = f.route_id
	          JOIN airports src ON src.id = r.source_id
	          JOIN airports dst ON dst.id = r.destination_id
	          JOIN airplanes a ON a.id = f.airplane_id
	          JOIN airplane_types t ON t.id = a.airplane_type_id
	          WHERE f.id = $1`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, flight.ErrFlightNotFound
		}
		return nil, fmt.Errorf("フライト詳細取得に失敗: %w", err)
	}

	taken := []flight.TakenSeat{}
	seatQuery := `SELECT row, seat FROM tickets WHERE flight_id = $1 ORDER BY row, seat`
	if err := r.db.SelectContext(ctx, &taken, seatQuery, id); err != nil {
		return nil, fmt.Errorf("販売済み座席取得に失敗: %w", err)
	}

	return &flight.Detail{
		ID: row.ID,
		Route: route.Detail{
			ID:          row.RouteID,
			Source:      route.Endpoint{Airport: row.SourceName, City: row.SourceCity},
			Destination: route.Endpoint{Airport: row.DestinationName, City: row.DestinationCity},
			Distance:    row.Distance,
		},
		Airplane: airplane.Summary{
			ID: row.AirplaneID, Name: row.AirplaneName,
			Rows: row.AirplaneRows, SeatsInRow: row.AirplaneSeats,
			Capacity: row.AirplaneRows * row.AirplaneSeats, TypeName: row.AirplaneTypeName,
		},
		DepartureTime: row.DepartureTime,
		ArrivalTime:   row.ArrivalTime,
		TakenSeats:    taken,
	}, nil
}

func (r *FlightRepository) GetGeometry(ctx context.Context, id string) (*flight.Geometry, error) {
	var geo flight.Geometry
	query := `SELECT f.id AS flight_id, a.rows, a.seats_in_row
	          FROM flights f
	          JOIN airplanes a ON a.id = f.airplane_id
	          WHERE f.id = $1`
	row := r.db.QueryRowContext(ctx, query, id)
	if err := row.Scan(&geo.FlightID, &geo.Rows, &geo.SeatsInRow); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, flight.ErrFlightNotFound
		}
		return nil, fmt.Errorf("座席情報取得に失敗: %w", err)
	}
	return &geo, nil
}

type flightSummaryRow struct {
	ID             string    `db:"id"`
	Source         string    `db:"source"`
	Destination    string    `db:"destination"`
	Airplane       string    `db:"airplane"`
	DepartureTime  time.Time `db:"departure_time"`
	ArrivalTime    time.Time `db:"arrival_time"`
	AvailableSeats int       `db:"available_seats"`
}

// List は空席数を注釈したフライト一覧を取得する
// available_seats = rows * seats_in_row - COUNT(tickets) をクエリ時に集計し、
// 保存はしない。0未満へは丸めない（負数はオーバーセルの兆候）
func (r *FlightRepository) List(ctx context.Context, filter flight.Filter, limit, offset int) ([]*flight.Summary, error) {
	var (
		conds []string
		args  []interface{}
	)
	next := func() string { return "$" + strconv.Itoa(len(args)+1) }

	if filter.Source != "" {
		p := next()
		args = append(args, filter.Source)
		conds = append(conds, fmt.Sprintf("(src.name ILIKE '%%' || %s || '%%' OR src.closest_big_city ILIKE '%%' || %s || '%%')", p, p))
	}
	if filter.Destination != "" {
		p := next()
		args = append(args, filter.Destination)
		conds = append(conds, fmt.Sprintf("(dst.name ILIKE '%%' || %s || '%%' OR dst.closest_big_city ILIKE '%%' || %s || '%%')", p, p))
	}
	if filter.DepartureDate != nil {
		p := next()
		args = append(args, *filter.DepartureDate)
		conds = append(conds, fmt.Sprintf("f.departure_time::date = %s::date", p))
	}
	if filter.ArrivalDate != nil {
		p := next()
		args = append(args, *filter.ArrivalDate)
		conds = append(conds, fmt.Sprintf("f.arrival_time::date = %s::date", p))
	}

	where := ""
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}

	query := fmt.Sprintf(`SELECT f.id,
	                 src.name AS source, dst.name AS destination,
	                 a.name AS airplane,
	                 f.departure_time, f.arrival_time,
	                 a.rows * a.seats_in_row - COUNT(t.id) AS available_seats
	          FROM flights f
	          JOIN routes r ON r.id = f.route_id
	          JOIN airports src ON src.id = r.source_id
	          JOIN airports dst ON dst.id = r.destination_id
	          JOIN airplanes a ON a.id = f.airplane_id
	          LEFT JOIN tickets t ON t.flight_id = f.id
	          %s
	          GROUP BY f.id, src.name, dst.name, a.name, a.rows, a.seats_in_row, f.departure_time, f.arrival_time
	          ORDER BY f.departure_time DESC
	          LIMIT $%d OFFSET $%d`, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	var rows []flightSummaryRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("フライト一覧取得に失敗: %w", err)
	}
	summaries := make([]*flight.Summary, len(rows))
	for i, row := range rows {
		summaries[i] = &flight.Summary{
			ID:             row.ID,
			Route:          row.Source + " -> " + row.Destination,
			Airplane:       row.Airplane,
			DepartureTime:  row.DepartureTime,
			ArrivalTime:    row.ArrivalTime,
			AvailableSeats: row.AvailableSeats,
		}
	}
	return summaries, nil
}

func (r *FlightRepository) CountAvailable(ctx context.Context, id string) (int, error) {
	var available int
	query := `SELECT a.rows * a.seats_in_row - COUNT(t.id)
	          FROM flights f
	          JOIN airplanes a ON a.id = f.airplane_id
	          LEFT JOIN tickets t ON t.flight_id = f.id
	          WHERE f.id = $1
	          GROUP BY a.rows, a.seats_in_row`
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&available); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, flight.ErrFlightNotFound
		}
		return 0, fmt.Errorf("空席数集計に失敗: %w", err)
	}
	return available, nil
}

// ListOversold は販売済み枚数が総座席数を超えたフライトを返す
// 正常系では常に空。非空は不変条件違反で、監視ワーカーが警報を上げる
func (r *FlightRepository) ListOversold(ctx context.Context) ([]*flight.Oversold, error) {
	query := `SELECT f.id AS flight_id, a.rows * a.seats_in_row AS capacity, COUNT(t.id) AS sold
	          FROM flights f
	          JOIN airplanes a ON a.id = f.airplane_id
	          JOIN tickets t ON t.flight_id = f.id
	          GROUP BY f.id, a.rows, a.seats_in_row
	          HAVING COUNT(t.id) > a.rows * a.seats_in_row`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("オーバーセル検出クエリに失敗: %w", err)
	}
	defer rows.Close()

	var oversold []*flight.Oversold
	for rows.Next() {
		var o flight.Oversold
		if err := rows.Scan(&o.FlightID, &o.Capacity, &o.Sold); err != nil {
			return nil, fmt.Errorf("オーバーセル行の読み取りに失敗: %w", err)
		}
		oversold = append(oversold, &o)
	}
	return oversold, rows.Err()
}

func (r *FlightRepository) Update(ctx context.Context, f *flight.Flight) error {
	query := `UPDATE flights SET route_id = $1, airplane_id = $2, departure_time = $3, arrival_time = $4, updated_at = NOW() WHERE id = $5`
	result, err := r.db.ExecContext(ctx, query, f.RouteID, f.AirplaneID, f.DepartureTime, f.ArrivalTime, f.ID)
	if err != nil {
		return fmt.Errorf("フライト更新に失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return flight.ErrFlightNotFound
	}
	return nil
}

func (r *FlightRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM flights WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("フライト削除に失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return flight.ErrFlightNotFound
	}
	return nil
}

var _ flight.Repository = (*FlightRepository)(nil)
