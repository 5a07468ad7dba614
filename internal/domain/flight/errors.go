package flight

import "errors"

// Flight ドメインのエラー定義
var (
	ErrFlightNotFound     = errors.New("フライトが見つかりません")
	ErrRouteIDRequired    = errors.New("経路IDは必須です")
	ErrAirplaneIDRequired = errors.New("機体IDは必須です")
	ErrTimeRequired       = errors.New("出発時刻と到着時刻は必須です")
	ErrInvalidFlightTime  = errors.New("到着時刻は出発時刻より後である必要があります")
)
