package route

import "time"

// Route は2空港間の経路エンティティを表す
type Route struct {
	ID            string
	SourceID      string
	DestinationID string
	Distance      int // キロメートル
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewRoute は新しい経路を作成する
func NewRoute(sourceID, destinationID string, distance int) *Route {
	now := time.Now()
	return &Route{
		SourceID:      sourceID,
		DestinationID: destinationID,
		Distance:      distance,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Validate は経路の検証を行う
func (r *Route) Validate() error {
	if r.SourceID == "" {
		return ErrSourceRequired
	}
	if r.DestinationID == "" {
		return ErrDestinationRequired
	}
	if r.SourceID == r.DestinationID {
		return ErrSameAirport
	}
	if r.Distance <= 0 {
		return ErrInvalidDistance
	}
	return nil
}

// Endpoint は経路端点（空港）の射影
type Endpoint struct {
	Airport string `json:"airport"`
	City    string `json:"city"`
}

// Summary は一覧表示用の射影
// 端点は最寄り都市名で表現する
type Summary struct {
	ID          string `json:"id"`
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Distance    int    `json:"distance"`
}

// Detail は詳細表示用の射影
// 端点の空港情報をネストして返す
type Detail struct {
	ID          string   `json:"id"`
	Source      Endpoint `json:"source"`
	Destination Endpoint `json:"destination"`
	Distance    int      `json:"distance"`
}
