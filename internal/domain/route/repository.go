package route

import "context"

// Repository は経路リポジトリのインターフェース
type Repository interface {
	// Create は新しい経路を作成する
	Create(ctx context.Context, route *Route) error

	// GetByID はIDから経路を取得する
	GetByID(ctx context.Context, id string) (*Route, error)

	// GetDetail はIDから空港情報付きの経路詳細を取得する
	GetDetail(ctx context.Context, id string) (*Detail, error)

	// List は一覧表示用の射影を取得する
	List(ctx context.Context, limit, offset int) ([]*Summary, error)

	// Update は経路を更新する
	Update(ctx context.Context, route *Route) error

	// Delete は経路を削除する
	Delete(ctx context.Context, id string) error
}
