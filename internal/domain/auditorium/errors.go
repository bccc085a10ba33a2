package auditorium

import "errors"

// Auditorium ドメインのエラー定義
var (
	ErrAuditoriumNotFound           = errors.New("上映ホールが見つかりません")
	ErrNameRequired                 = errors.New("ホール名は必須です")
	ErrInvalidCapacity              = errors.New("定員は1以上である必要があります")
	ErrAuditoriumHasActiveScreening = errors.New("アクティブな上映があるホールは削除できません")
)
