package airport

import "time"

// Airport は空港エンティティを表す
type Airport struct {
	ID             string
	Name           string
	ClosestBigCity string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewAirport は新しい空港を作成する
func NewAirport(name, closestBigCity string) *Airport {
	now := time.Now()
	return &Airport{
		Name:           name,
		ClosestBigCity: closestBigCity,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// Validate は空港の検証を行う
func (a *Airport) Validate() error {
	if a.Name == "" {
		return ErrNameRequired
	}
	if a.ClosestBigCity == "" {
		return ErrCityRequired
	}
	return nil
}
