package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/sanosuguru/go-airport-reservation/internal/domain/airplane"
)

type airplaneTypeRow struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r *airplaneTypeRow) toEntity() *airplane.Type {
	return &airplane.Type{ID: r.ID, Name: r.Name, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt}
}

type AirplaneTypeRepository struct{ db *sqlx.DB }

func NewAirplaneTypeRepository(db *sqlx.DB) *AirplaneTypeRepository {
	return &AirplaneTypeRepository{db: db}
}

func (r *AirplaneTypeRepository) Create(ctx context.Context, t *airplane.Type) error {
	query := `INSERT INTO airplane_types (name, created_at, updated_at) VALUES ($1, $2, $3) RETURNING id`
	if err := r.db.QueryRowContext(ctx, query, t.Name, t.CreatedAt, t.UpdatedAt).Scan(&t.ID); err != nil {
		if isUniqueViolation(err) {
			return airplane.ErrTypeNameAlreadyUsed
		}
		return fmt.Errorf("機体型式作成に失敗: %w", err)
	}
	return nil
}

func (r *AirplaneTypeRepository) GetByID(ctx context.Context, id string) (*airplane.Type, error) {
	var row airplaneTypeRow
	query := `SELECT id, name, created_at, updated_at FROM airplane_types WHERE id = $1`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, airplane.ErrTypeNotFound
		}
		return nil, fmt.Errorf("機体型式取得に失敗: %w", err)
	}
	return row.toEntity(), nil
}

func (r *AirplaneTypeRepository) List(ctx context.Context, limit, offset int) ([]*airplane.Type, error) {
	var rows []airplaneTypeRow
	query := `SELECT id, name, created_at, updated_at FROM airplane_types ORDER BY name LIMIT $1 OFFSET $2`
	if err := r.db.SelectContext(ctx, &rows, query, limit, offset); err != nil {
		return nil, fmt.Errorf("機体型式一覧取得に失敗: %w", err)
	}
	types := make([]*airplane.Type, len(rows))
	for i, row := range rows {
		types[i] = row.toEntity()
	}
	return types, nil
}

func (r *AirplaneTypeRepository) Update(ctx context.Context, t *airplane.Type) error {
	query := `UPDATE airplane_types SET name = $1, updated_at = NOW() WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, t.Name, t.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return airplane.ErrTypeNameAlreadyUsed
		}
		return fmt.Errorf("機体型式更新に失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return airplane.ErrTypeNotFound
	}
	return nil
}

func (r *AirplaneTypeRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM airplane_types WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("機体型式削除に失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return airplane.ErrTypeNotFound
	}
	return nil
}

var _ airplane.TypeRepository = (*AirplaneTypeRepository)(nil)

type airplaneRow struct {
	ID         string    `db:"id"`
	Name       string    `db:"name"`
	Rows       int       `db:"rows"`
	SeatsInRow int       `db:"seats_in_row"`
	TypeID     string    `db:"airplane_type_id"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

func (r *airplaneRow) toEntity() *airplane.Airplane {
	return &airplane.Airplane{
		ID: r.ID, Name: r.Name, Rows: r.Rows, SeatsInRow: r.SeatsInRow,
		TypeID: r.TypeID, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt,
	}
}

type airplaneSummaryRow struct {
	ID         string `db:"id"`
	Name       string `db:"name"`
	Rows       int    `db:"rows"`
	SeatsInRow int    `db:"seats_in_row"`
	TypeName   string `db:"type_name"`
}

func (r *airplaneSummaryRow) toSummary() *airplane.Summary {
	return &airplane.Summary{
		ID: r.ID, Name: r.Name, Rows: r.Rows, SeatsInRow: r.SeatsInRow,
		Capacity: r.Rows * r.SeatsInRow, TypeName: r.TypeName,
	}
}

type AirplaneRepository struct{ db *sqlx.DB }

func NewAirplaneRepository(db *sqlx.DB) *AirplaneRepository { return &AirplaneRepository{db: db} }

func (r *AirplaneRepository) Create(ctx context.Context, a *airplane.Airplane) error {
	query := `INSERT INTO airplanes (name, rows, seats_in_row, airplane_type_id, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	if err := r.db.QueryRowContext(ctx, query, a.Name, a.Rows, a.SeatsInRow, a.TypeID, a.CreatedAt, a.UpdatedAt).Scan(&a.ID); err != nil {
		if isForeignKeyViolation(err) {
			return airplane.ErrTypeNotFound
		}
		return fmt.Errorf("機体作成に失敗: %w", err)
	}
	return nil
}

func (r *AirplaneRepository) GetByID(ctx context.Context, id string) (*airplane.Airplane, error) {
	var row airplaneRow
	query := `SELECT id, name, rows, seats_in_row, airplane_type_id, created_at, updated_at FROM airplanes WHERE id = $1`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, airplane.ErrAirplaneNotFound
		}
		return nil, fmt.Errorf("機体取得に失敗: %w", err)
	}
	return row.toEntity(), nil
}

func (r *AirplaneRepository) GetSummary(ctx context.Context, id string) (*airplane.Summary, error) {
	var row airplaneSummaryRow
	query := `SELECT a.id, a.name, a.rows, a.seats_in_row, t.name AS type_name
	          FROM airplanes a
	          JOIN airplane_types t ON t.id = a.airplane_type_id
	          WHERE a.id = $1`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, airplane.ErrAirplaneNotFound
		}
		return nil, fmt.Errorf("機体取得に失敗: %w", err)
	}
	return row.toSummary(), nil
}

func (r *AirplaneRepository) List(ctx context.Context, limit, offset int) ([]*airplane.Summary, error) {
	var rows []airplaneSummaryRow
	query := `SELECT a.id, a.name, a.rows, a.seats_in_row, t.name AS type_name
	          FROM airplanes a
	          JOIN airplane_types t ON t.id = a.airplane_type_id
	          ORDER BY a.name
	          LIMIT $1 OFFSET $2`
	if err := r.db.SelectContext(ctx, &rows, query, limit, offset); err != nil {
		return nil, fmt.Errorf("機体一覧取得に失敗: %w", err)
	}
	summaries := make([]*airplane.Summary, len(rows))
	for i, row := range rows {
		summaries[i] = row.toSummary()
	}
	return summaries, nil
}

func (r *AirplaneRepository) Update(ctx context.Context, a *airplane.Airplane) error {
	query := `UPDATE airplanes SET name = $1, rows = $2, seats_in_row = $3, airplane_type_id = $4, updated_at = NOW() WHERE id = $5`
	result, err := r.db.ExecContext(ctx, query, a.Name, a.Rows, a.SeatsInRow, a.TypeID, a.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return airplane.ErrTypeNotFound
		}
		return fmt.Errorf("機体更新に失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return airplane.ErrAirplaneNotFound
	}
	return nil
}

func (r *AirplaneRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM airplanes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("機体削除に失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return airplane.ErrAirplaneNotFound
	}
	return nil
}

var _ airplane.Repository = (*AirplaneRepository)(nil)
