package crew

import "errors"

// Crew ドメインのエラー定義
var (
	ErrCrewNotFound      = errors.New("乗務員が見つかりません")
	ErrFirstNameRequired = errors.New("名は必須です")
	ErrLastNameRequired  = errors.New("姓は必須です")
)
