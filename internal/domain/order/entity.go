package order

import (
	"fmt"
	"time"
)

// Ticket は注文に属する販売済み座席を表す
// (flight_id, row, seat) の組はシステム全体で一意であり、
// 一意性はストレージ層の複合ユニーク制約が保証する
type Ticket struct {
	ID       string `json:"id"`
	Row      int    `json:"row"`
	Seat     int    `json:"seat"`
	FlightID string `json:"flight_id"`
}

// CandidateTicket はコミット前の座席候補 (フライト, 行, 席)
type CandidateTicket struct {
	FlightID string
	Row      int
	Seat     int
}

// Order は注文エンティティを表す
// 1回のコミットで1枚以上のチケットを生成する原子的な購入単位。
// 作成後の変更は行わない
type Order struct {
	ID        string
	UserID    string
	Tickets   []Ticket
	CreatedAt time.Time
}

// NewOrder は新しい注文を作成する
func NewOrder(userID string, candidates []CandidateTicket) *Order {
	tickets := make([]Ticket, len(candidates))
	for i, c := range candidates {
		tickets[i] = Ticket{Row: c.Row, Seat: c.Seat, FlightID: c.FlightID}
	}
	return &Order{
		UserID:    userID,
		Tickets:   tickets,
		CreatedAt: time.Now(),
	}
}

// Validate は注文の検証を行う
func (o *Order) Validate() error {
	if o.UserID == "" {
		return ErrUserIDRequired
	}
	if len(o.Tickets) == 0 {
		return ErrEmptyOrder
	}
	return nil
}

// BoundsError は行・席番号が機体の座席格子から外れたことを表す
// ユーザーが修正可能な検証エラーであり、フィールド名と有効範囲を持つ
type BoundsError struct {
	Field string // "row" または "seat"
	Value int
	Max   int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("%s は有効範囲 (1, %d) 内である必要があります: %d", e.Field, e.Max, e.Value)
}

// ValidateSeat は座席候補が機体の座席格子内にあるかを検証する
// 1 <= row <= rows かつ 1 <= seat <= seatsInRow でなければ *BoundsError を返す。
// 永続化を試みる前にバッチ内の全候補へ独立に適用する
func ValidateSeat(row, seat, rows, seatsInRow int) error {
	if row < 1 || row > rows {
		return &BoundsError{Field: "row", Value: row, Max: rows}
	}
	if seat < 1 || seat > seatsInRow {
		return &BoundsError{Field: "seat", Value: seat, Max: seatsInRow}
	}
	return nil
}
