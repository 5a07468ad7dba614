package airport

import "context"

// Repository は空港リポジトリのインターフェース
type Repository interface {
	// Create は新しい空港を作成する
	Create(ctx context.Context, airport *Airport) error

	// GetByID はIDから空港を取得する
	GetByID(ctx context.Context, id string) (*Airport, error)

	// List は空港一覧を名前順で取得する
	List(ctx context.Context, limit, offset int) ([]*Airport, error)

	// Update は空港を更新する
	Update(ctx context.Context, airport *Airport) error

	// Delete は空港を削除する
	Delete(ctx context.Context, id string) error
}
