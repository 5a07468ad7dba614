package airplane

import "context"

// TypeRepository は機体型式リポジトリのインターフェース
type TypeRepository interface {
	// Create は新しい機体型式を作成する
	Create(ctx context.Context, t *Type) error

	// GetByID はIDから機体型式を取得する
	GetByID(ctx context.Context, id string) (*Type, error)

	// List は機体型式一覧を取得する
	List(ctx context.Context, limit, offset int) ([]*Type, error)

	// Update は機体型式を更新する
	Update(ctx context.Context, t *Type) error

	// Delete は機体型式を削除する
	Delete(ctx context.Context, id string) error
}

// Repository は機体リポジトリのインターフェース
type Repository interface {
	// Create は新しい機体を作成する
	Create(ctx context.Context, airplane *Airplane) error

	// GetByID はIDから機体を取得する
	GetByID(ctx context.Context, id string) (*Airplane, error)

	// GetSummary はIDから型式名付きの射影を取得する
	GetSummary(ctx context.Context, id string) (*Summary, error)

	// List は型式名付きの一覧を取得する
	List(ctx context.Context, limit, offset int) ([]*Summary, error)

	// Update は機体を更新する
	Update(ctx context.Context, airplane *Airplane) error

	// Delete は機体を削除する
	Delete(ctx context.Context, id string) error
}
