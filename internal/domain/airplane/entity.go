package airplane

import "time"

// Type は機体型式エンティティを表す。型式名は一意
type Type struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewType は新しい機体型式を作成する
func NewType(name string) *Type {
	now := time.Now()
	return &Type{
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate は機体型式の検証を行う
func (t *Type) Validate() error {
	if t.Name == "" {
		return ErrTypeNameRequired
	}
	return nil
}

// Airplane は機体エンティティを表す
// 座席は rows × seats_in_row の格子で、行・席とも1始まり
type Airplane struct {
	ID         string
	Name       string
	Rows       int
	SeatsInRow int
	TypeID     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewAirplane は新しい機体を作成する
func NewAirplane(name string, rows, seatsInRow int, typeID string) *Airplane {
	now := time.Now()
	return &Airplane{
		Name:       name,
		Rows:       rows,
		SeatsInRow: seatsInRow,
		TypeID:     typeID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Capacity は総座席数を返す
func (a *Airplane) Capacity() int {
	return a.Rows * a.SeatsInRow
}

// Validate は機体の検証を行う
func (a *Airplane) Validate() error {
	if a.Name == "" {
		return ErrNameRequired
	}
	if a.Rows <= 0 {
		return ErrInvalidRows
	}
	if a.SeatsInRow <= 0 {
		return ErrInvalidSeatsInRow
	}
	if a.TypeID == "" {
		return ErrTypeIDRequired
	}
	return nil
}

// Summary は一覧・詳細表示用の射影。型式名と総座席数を含む
type Summary struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Rows       int    `json:"rows"`
	SeatsInRow int    `json:"seats_in_row"`
	Capacity   int    `json:"capacity"`
	TypeName   string `json:"airplane_type"`
}
