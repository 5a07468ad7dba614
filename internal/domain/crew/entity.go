package crew

import "time"

// Crew は乗務員エンティティを表す
// フライトへの割り当ては多対多で、更新時は全置換となる
type Crew struct {
	ID        string
	FirstName string
	LastName  string
	FlightIDs []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewCrew は新しい乗務員を作成する
func NewCrew(firstName, lastName string, flightIDs []string) *Crew {
	now := time.Now()
	return &Crew{
		FirstName: firstName,
		LastName:  lastName,
		FlightIDs: flightIDs,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// FullName は氏名を返す
func (c *Crew) FullName() string {
	return c.FirstName + " " + c.LastName
}

// Validate は乗務員の検証を行う
func (c *Crew) Validate() error {
	if c.FirstName == "" {
		return ErrFirstNameRequired
	}
	if c.LastName == "" {
		return ErrLastNameRequired
	}
	return nil
}
