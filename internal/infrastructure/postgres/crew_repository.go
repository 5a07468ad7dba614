package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/sanosuguru/go-airport-reservation/internal/domain/crew"
	"github.com/sanosuguru/go-airport-reservation/internal/domain/flight"
)

type crewRow struct {
	ID        string    `db:"id"`
	FirstName string    `db:"first_name"`
	LastName  string    `db:"last_name"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type CrewRepository struct{ db *sqlx.DB }

func NewCrewRepository(db *sqlx.DB) *CrewRepository { return &CrewRepository{db: db} }

func (r *CrewRepository) Create(ctx context.Context, c *crew.Crew) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("トランザクション開始に失敗: %w", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO crews (first_name, last_name, created_at, updated_at) VALUES ($1, $2, $3, $4) RETURNING id`
	if err := tx.QueryRowContext(ctx, query, c.FirstName, c.LastName, c.CreatedAt, c.UpdatedAt).Scan(&c.ID); err != nil {
		return fmt.Errorf("乗務員作成に失敗: %w", err)
	}
	if err := r.insertFlights(ctx, tx, c.ID, c.FlightIDs); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("コミットに失敗: %w", err)
	}
	return nil
}

func (r *CrewRepository) GetByID(ctx context.Context, id string) (*crew.Crew, error) {
	var row crewRow
	query := `SELECT id, first_name, last_name, created_at, updated_at FROM crews WHERE id = $1`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, crew.ErrCrewNotFound
		}
		return nil, fmt.Errorf("乗務員取得に失敗: %w", err)
	}
	flightIDs, err := r.getFlightIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	return &crew.Crew{
		ID: row.ID, FirstName: row.FirstName, LastName: row.LastName,
		FlightIDs: flightIDs, CreatedAt: row.CreatedAt, UpdatedAt: row.UpdatedAt,
	}, nil
}

func (r *CrewRepository) List(ctx context.Context, limit, offset int) ([]*crew.Crew, error) {
	var rows []crewRow
	query := `SELECT id, first_name, last_name, created_at, updated_at FROM crews ORDER BY last_name, first_name LIMIT $1 OFFSET $2`
	if err := r.db.SelectContext(ctx, &rows, query, limit, offset); err != nil {
		return nil, fmt.Errorf("乗務員一覧取得に失敗: %w", err)
	}
	crews := make([]*crew.Crew, len(rows))
	for i, row := range rows {
		flightIDs, err := r.getFlightIDs(ctx, row.ID)
		if err != nil {
			return nil, err
		}
		crews[i] = &crew.Crew{
			ID: row.ID, FirstName: row.FirstName, LastName: row.LastName,
			FlightIDs: flightIDs, CreatedAt: row.CreatedAt, UpdatedAt: row.UpdatedAt,
		}
	}
	return crews, nil
}

// Update は乗務員を更新する。フライト割り当ては全置換
func (r *CrewRepository) Update(ctx context.Context, c *crew.Crew) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("トランザクション開始に失敗: %w", err)
	}
	defer tx.Rollback()

	query := `UPDATE crews SET first_name = $1, last_name = $2, updated_at = NOW() WHERE id = $3`
	result, err := tx.ExecContext(ctx, query, c.FirstName, c.LastName, c.ID)
	if err != nil {
		return fmt.Errorf("乗務員更新に失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return crew.ErrCrewNotFound
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM crew_flights WHERE crew_id = $1`, c.ID); err != nil {
		return fmt.Errorf("フライト割り当て削除に失敗: %w", err)
	}
	if err := r.insertFlights(ctx, tx, c.ID, c.FlightIDs); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("コミットに失敗: %w", err)
	}
	return nil
}

func (r *CrewRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM crews WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("乗務員削除に失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return crew.ErrCrewNotFound
	}
	return nil
}

func (r *CrewRepository) insertFlights(ctx context.Context, tx *sqlx.Tx, crewID string, flightIDs []string) error {
	if len(flightIDs) == 0 {
		return nil
	}
	query := `INSERT INTO crew_flights (crew_id, flight_id) VALUES `
	args := make([]interface{}, 0, len(flightIDs)*2)
	placeholders := make([]string, 0, len(flightIDs))
	for i, flightID := range flightIDs {
		placeholders = append(placeholders, fmt.Sprintf("($%d, $%d)", i*2+1, i*2+2))
		args = append(args, crewID, flightID)
	}
	query += strings.Join(placeholders, ", ")
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		if isForeignKeyViolation(err) {
			return flight.ErrFlightNotFound
		}
		return fmt.Errorf("フライト割り当てに失敗: %w", err)
	}
	return nil
}

func (r *CrewRepository) getFlightIDs(ctx context.Context, crewID string) ([]string, error) {
	var flightIDs []string
	query := `SELECT cf.flight_id
	          FROM crew_flights cf
	          JOIN flights f ON f.id = cf.flight_id
	          WHERE cf.crew_id = $1
	          ORDER BY f.departure_time DESC`
	if err := r.db.SelectContext(ctx, &flightIDs, query, crewID); err != nil {
		return nil, fmt.Errorf("フライト割り当て取得に失敗: %w", err)
	}
	return flightIDs, nil
}

var _ crew.Repository = (*CrewRepository)(nil)
