package airport

import "errors"

// Airport ドメインのエラー定義
var (
	ErrAirportNotFound = errors.New("空港が見つかりません")
	ErrNameRequired    = errors.New("空港名は必須です")
	ErrCityRequired    = errors.New("最寄り都市は必須です")
)
