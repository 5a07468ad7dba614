package airplane

import "errors"

// Airplane ドメインのエラー定義
var (
	ErrAirplaneNotFound    = errors.New("機体が見つかりません")
	ErrTypeNotFound        = errors.New("機体型式が見つかりません")
	ErrNameRequired        = errors.New("機体名は必須です")
	ErrTypeNameRequired    = errors.New("型式名は必須です")
	ErrTypeIDRequired      = errors.New("機体型式IDは必須です")
	ErrInvalidRows         = errors.New("行数は1以上である必要があります")
	ErrInvalidSeatsInRow   = errors.New("1行あたりの座席数は1以上である必要があります")
	ErrTypeNameAlreadyUsed = errors.New("この型式名は既に使用されています")
)
