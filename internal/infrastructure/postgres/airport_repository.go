package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/sanosuguru/go-airport-reservation/internal/domain/airport"
)

type airportRow struct {
	ID             string    `db:"id"`
	Name           string    `db:"name"`
	ClosestBigCity string    `db:"closest_big_city"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

func (r *airportRow) toEntity() *airport.Airport {
	return &airport.Airport{
		ID: r.ID, Name: r.Name, ClosestBigCity: r.ClosestBigCity,
		CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt,
	}
}

type AirportRepository struct{ db *sqlx.DB }

func NewAirportRepository(db *sqlx.DB) *AirportRepository { return &AirportRepository{db: db} }

func (r *AirportRepository) Create(ctx context.Context, a *airport.Airport) error {
	query := `INSERT INTO airports (name, closest_big_city, created_at, updated_at) VALUES ($1, $2, $3, $4) RETURNING id`
	if err := r.db.QueryRowContext(ctx, query, a.Name, a.ClosestBigCity, a.CreatedAt, a.UpdatedAt).Scan(&a.ID); err != nil {
		return fmt.Errorf("空港作成に失敗: %w", err)
	}
	return nil
}

func (r *AirportRepository) GetByID(ctx context.Context, id string) (*airport.Airport, error) {
	var row airportRow
	query := `SELECT id, name, closest_big_city, created_at, updated_at FROM airports WHERE id = $1`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, airport.ErrAirportNotFound
		}
		return nil, fmt.Errorf("空港取得に失敗: %w", err)
	}
	return row.toEntity(), nil
}

func (r *AirportRepository) List(ctx context.Context, limit, offset int) ([]*airport.Airport, error) {
	var rows []airportRow
	query := `SELECT id, name, closest_big_city, created_at, updated_at FROM airports ORDER BY name LIMIT $1 OFFSET $2`
	if err := r.db.SelectContext(ctx, &rows, query, limit, offset); err != nil {
		return nil, fmt.Errorf("空港一覧取得に失敗: %w", err)
	}
	airports := make([]*airport.Airport, len(rows))
	for i, row := range rows {
		airports[i] = row.toEntity()
	}
	return airports, nil
}

func (r *AirportRepository) Update(ctx context.Context, a *airport.Airport) error {
	query := `UPDATE airports SET name = $1, closest_big_city = $2, updated_at = NOW() WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, a.Name, a.ClosestBigCity, a.ID)
	if err != nil {
		return fmt.Errorf("空港更新に失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return airport.ErrAirportNotFound
	}
	return nil
}

func (r *AirportRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM airports WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("空港削除に失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return airport.ErrAirportNotFound
	}
	return nil
}

var _ airport.Repository = (*AirportRepository)(nil)
