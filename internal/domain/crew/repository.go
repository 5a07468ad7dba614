package crew

import "context"

// Repository は乗務員リポジトリのインターフェース
type Repository interface {
	// Create は新しい乗務員をフライト割り当てごと作成する
	Create(ctx context.Context, crew *Crew) error

	// GetByID はIDから乗務員を取得する（フライト割り当て込み）
	GetByID(ctx context.Context, id string) (*Crew, error)

	// List は乗務員一覧を取得する
	List(ctx context.Context, limit, offset int) ([]*Crew, error)

	// Update は乗務員を更新する。フライト割り当ては全置換する
	Update(ctx context.Context, crew *Crew) error

	// Delete は乗務員を削除する
	Delete(ctx context.Context, id string) error
}
