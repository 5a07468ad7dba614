package order

import (
	"context"

	"github.com/sanosuguru/go-airport-reservation/internal/domain/transaction"
)

// Repository は注文リポジトリのインターフェース
type Repository interface {
	// Create は注文と全チケットを同一トランザクション内で挿入する
	// チケットの複合ユニーク制約に抵触した場合は ErrSeatTaken を返す。
	// コミット・ロールバックは呼び出し側の責務
	Create(ctx context.Context, tx transaction.Tx, order *Order) error

	// GetByID はIDから注文を取得する（チケット込み）
	GetByID(ctx context.Context, id string) (*Order, error)

	// ListByUser はユーザーの注文一覧を作成日時の降順で取得する
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*Order, error)

	// List は全注文一覧を取得する（管理者用）
	List(ctx context.Context, limit, offset int) ([]*Order, error)
}
