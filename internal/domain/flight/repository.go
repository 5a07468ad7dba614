package flight

import "context"

// Oversold はオーバーセルが検出されたフライト
// 販売済み枚数が総座席数を超えることは不変条件違反であり、
// ワーカーが監視用に収集する
type Oversold struct {
	FlightID string
	Capacity int
	Sold     int
}

// Repository はフライトリポジトリのインターフェース
type Repository interface {
	// Create は新しいフライトを作成する
	Create(ctx context.Context, flight *Flight) error

	// GetByID はIDからフライトを取得する
	GetByID(ctx context.Context, id string) (*Flight, error)

	// GetDetail はIDから詳細射影（販売済み座席付き）を取得する
	GetDetail(ctx context.Context, id string) (*Detail, error)

	// GetGeometry はフライトに割り当てられた機体の座席格子を取得する
	GetGeometry(ctx context.Context, id string) (*Geometry, error)

	// List は空席数を注釈した一覧射影を取得する
	// 空席数は capacity - 販売済み枚数 をクエリ時に集計する
	List(ctx context.Context, filter Filter, limit, offset int) ([]*Summary, error)

	// CountAvailable は単一フライトの空席数を集計する
	CountAvailable(ctx context.Context, id string) (int, error)

	// ListOversold は販売済み枚数が総座席数を超えたフライトを取得する
	ListOversold(ctx context.Context) ([]*Oversold, error)

	// Update はフライトを更新する
	Update(ctx context.Context, flight *Flight) error

	// Delete はフライトを削除する
	Delete(ctx context.Context, id string) error
}
