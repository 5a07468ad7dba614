package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/sanosuguru/go-airport-reservation/internal/domain/order"
	"github.com/sanosuguru/go-airport-reservation/internal/domain/transaction"
)

type orderRow struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	CreatedAt time.Time `db:"created_at"`
}

type ticketRow struct {
	ID       string `db:"id"`
	Row      int    `db:"row"`
	Seat     int    `db:"seat"`
	FlightID string `db:"flight_id"`
	OrderID  string `db:"order_id"`
}

type OrderRepository struct{ db *sqlx.DB }

func NewOrderRepository(db *sqlx.DB) *OrderRepository { return &OrderRepository{db: db} }

// Create は注文と全チケットを呼び出し側のトランザクション内で挿入する
// tickets の複合ユニーク制約 (flight_id, row, seat) に抵触した場合は
// ErrSeatTaken を返す。競合判定は事前チェックではなくこの制約のみに
// 依存するため、同一座席への同時注文は必ず一方だけが成功する
func (r *OrderRepository) Create(ctx context.Context, tx transaction.Tx, o *order.Order) error {
	sqlxTx := UnwrapTx(tx)
	if sqlxTx == nil {
		return errors.New("トランザクションが不正です")
	}

	query := `INSERT INTO orders (user_id, created_at) VALUES ($1, $2) RETURNING id`
	if err := sqlxTx.QueryRowContext(ctx, query, o.UserID, o.CreatedAt).Scan(&o.ID); err != nil {
		return fmt.Errorf("注文作成に失敗: %w", err)
	}

	ticketQuery := `INSERT INTO tickets (row, seat, flight_id, order_id) VALUES ($1, $2, $3, $4) RETURNING id`
	for i := range o.Tickets {
		t := &o.Tickets[i]
		if err := sqlxTx.QueryRowContext(ctx, ticketQuery, t.Row, t.Seat, t.FlightID, o.ID).Scan(&t.ID); err != nil {
			if isUniqueViolation(err) {
				return order.ErrSeatTaken
			}
			return fmt.Errorf("チケット作成に失敗: %w", err)
		}
	}
	return nil
}

func (r *OrderRepository) GetByID(ctx context.Context, id string) (*order.Order, error) {
	var row orderRow
	query := `SELECT id, user_id, created_at FROM orders WHERE id = $1`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, order.ErrOrderNotFound
		}
		return nil, fmt.Errorf("注文取得に失敗: %w", err)
	}
	tickets, err := r.getTickets(ctx, id)
	if err != nil {
		return nil, err
	}
	return &order.Order{ID: row.ID, UserID: row.UserID, Tickets: tickets, CreatedAt: row.CreatedAt}, nil
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*order.Order, error) {
	var rows []orderRow
	query := `SELECT id, user_id, created_at FROM orders WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	if err := r.db.SelectContext(ctx, &rows, query, userID, limit, offset); err != nil {
		return nil, fmt.Errorf("注文一覧取得に失敗: %w", err)
	}
	return r.attachTickets(ctx, rows)
}

func (r *OrderRepository) List(ctx context.Context, limit, offset int) ([]*order.Order, error) {
	var rows []orderRow
	query := `SELECT id, user_id, created_at FROM orders ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	if err := r.db.SelectContext(ctx, &rows, query, limit, offset); err != nil {
		return nil, fmt.Errorf("注文一覧取得に失敗: %w", err)
	}
	return r.attachTickets(ctx, rows)
}

func (r *OrderRepository) attachTickets(ctx context.Context, rows []orderRow) ([]*order.Order, error) {
	orders := make([]*order.Order, len(rows))
	for i, row := range rows {
		tickets, err := r.getTickets(ctx, row.ID)
		if err != nil {
			return nil, err
		}
		orders[i] = &order.Order{ID: row.ID, UserID: row.UserID, Tickets: tickets, CreatedAt: row.CreatedAt}
	}
	return orders, nil
}

func (r *OrderRepository) getTickets(ctx context.Context, orderID string) ([]order.Ticket, error) {
	var rows []ticketRow
	query := `SELECT id, row, seat, flight_id, order_id FROM tickets WHERE order_id = $1 ORDER BY row, seat`
	if err := r.db.SelectContext(ctx, &rows, query, orderID); err != nil {
		return nil, fmt.Errorf("チケット取得に失敗: %w", err)
	}
	tickets := make([]order.Ticket, len(rows))
	for i, row := range rows {
		tickets[i] = order.Ticket{ID: row.ID, Row: row.Row, Seat: row.Seat, FlightID: row.FlightID}
	}
	return tickets, nil
}

var _ order.Repository = (*OrderRepository)(nil)
