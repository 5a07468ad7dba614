package order

import "errors"

// Order ドメインのエラー定義
var (
	ErrOrderNotFound  = errors.New("注文が見つかりません")
	ErrUserIDRequired = errors.New("ユーザーIDは必須です")
	ErrEmptyOrder     = errors.New("チケットが1枚も指定されていません")
	ErrSeatTaken      = errors.New("指定された座席は既に販売されています")
	ErrNotOwner       = errors.New("この注文を参照する権限がありません")
)
