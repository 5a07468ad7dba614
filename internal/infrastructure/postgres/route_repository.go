package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/sanosuguru/go-airport-reservation/internal/domain/route"
)

type routeRow struct {
	ID            string    `db:"id"`
	SourceID      string    `db:"source_id"`
	DestinationID string    `db:"destination_id"`
	Distance      int       `db:"distance"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

func (r *routeRow) toEntity() *route.Route {
	return &route.Route{
		ID: r.ID, SourceID: r.SourceID, DestinationID: r.DestinationID,
		Distance: r.Distance, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt,
	}
}

type RouteRepository struct{ db *sqlx.DB }

func NewRouteRepository(db *sqlx.DB) *RouteRepository { return &RouteRepository{db: db} }

func (r *RouteRepository) Create(ctx context.Context, rt *route.Route) error {
	query := `INSERT INTO routes (source_id, destination_id, distance, created_at, updated_at) VALUES ($1, $2, $3, $4, $5) RETURNING id`
	if err := r.db.QueryRowContext(ctx, query, rt.SourceID, rt.DestinationID, rt.Distance, rt.CreatedAt, rt.UpdatedAt).Scan(&rt.ID); err != nil {
		if isForeignKeyViolation(err) {
			return route.ErrRouteNotFound
		}
		return fmt.Errorf("経路作成に失敗: %w", err)
	}
	return nil
}

func (r *RouteRepository) GetByID(ctx context.Context, id string) (*route.Route, error) {
	var row routeRow
	query := `SELECT id, source_id, destination_id, distance, created_at, updated_at FROM routes WHERE id = $1`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, route.ErrRouteNotFound
		}
		return nil, fmt.Errorf("経路取得に失敗: %w", err)
	}
	return row.toEntity(), nil
}

type routeDetailRow struct {
	ID              string `db:"id"`
	Distance        int    `db:"distance"`
	SourceName      string `db:"source_name"`
	SourceCity      string `db:"source_city"`
	DestinationName string `db:"destination_name"`
	DestinationCity string `db:"destination_city"`
}

func (r *RouteRepository) GetDetail(ctx context.Context, id string) (*route.Detail, error) {
	var row routeDetailRow
	query := `SELECT r.id, r.distance,
	                 src.name AS source_name, src.closest_big_city AS source_city,
	                 dst.name AS destination_name, dst.closest_big_city AS destination_city
	          FROM routes r
	          JOIN airports src ON src.id = r.source_id
	          JOIN airports dst ON dst.id = r.destination_id
	          WHERE r.id = $1`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, route.ErrRouteNotFound
		}
		return nil, fmt.Errorf("経路詳細取得に失敗: %w", err)
	}
	return &route.Detail{
		ID:          row.ID,
		Source:      route.Endpoint{Airport: row.SourceName, City: row.SourceCity},
		Destination: route.Endpoint{Airport: row.DestinationName, City: row.DestinationCity},
		Distance:    row.Distance,
	}, nil
}

type routeSummaryRow struct {
	ID          string `db:"id"`
	Source      string `db:"source"`
	Destination string `db:"destination"`
	Distance    int    `db:"distance"`
}

func (r *RouteRepository) List(ctx context.Context, limit, offset int) ([]*route.Summary, error) {
	var rows []routeSummaryRow
	query := `SELECT r.id, src.closest_big_city AS source, dst.closest_big_city AS destination, r.distance
	          FROM routes r
	          JOIN airports src ON src.id = r.source_id
	          JOIN airports dst ON dst.id = r.destination_id
	          ORDER BY src.name, dst.name
	          LIMIT $1 OFFSET $2`
	if err := r.db.SelectContext(ctx, &rows, query, limit, offset); err != nil {
		return nil, fmt.Errorf("経路一覧取得に失敗: %w", err)
	}
	summaries := make([]*route.Summary, len(rows))
	for i, row := range rows {
		summaries[i] = &route.Summary{
			ID: row.ID, Source: row.Source, Destination: row.Destination, Distance: row.Distance,
		}
	}
	return summaries, nil
}

func (r *RouteRepository) Update(ctx context.Context, rt *route.Route) error {
	query := `UPDATE routes SET source_id = $1, destination_id = $2, distance = $3, updated_at = NOW() WHERE id = $4`
	result, err := r.db.ExecContext(ctx, query, rt.SourceID, rt.DestinationID, rt.Distance, rt.ID)
	if err != nil {
		return fmt.Errorf("経路更新に失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return route.ErrRouteNotFound
	}
	return nil
}

func (r *RouteRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM routes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("経路削除に失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return route.ErrRouteNotFound
	}
	return nil
}

var _ route.Repository = (*RouteRepository)(nil)
