package route

import "errors"

// Route ドメインのエラー定義
var (
	ErrRouteNotFound       = errors.New("経路が見つかりません")
	ErrSourceRequired      = errors.New("出発空港は必須です")
	ErrDestinationRequired = errors.New("到着空港は必須です")
	ErrSameAirport         = errors.New("出発空港と到着空港が同一です")
	ErrInvalidDistance     = errors.New("距離は1以上である必要があります")
)
