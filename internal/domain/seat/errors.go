package seat

import "errors"

// Seat ドメインのエラー定義
var (
	ErrSeatNotFound          = errors.New("座席が見つかりません")
	ErrSeatAlreadyExists     = errors.New("同じ座席がこのホールに既に存在します")
	ErrSeatNotActive         = errors.New("座席は有効ではありません")
	ErrSeatWrongAuditorium   = errors.New("座席は上映のホールに属していません")
	ErrSeatHasActiveBookings = errors.New("アクティブな予約がある座席は削除できません")
	ErrAuditoriumIDRequired  = errors.New("上映ホールIDは必須です")
	ErrRowRequired           = errors.New("座席の行は必須です")
	ErrInvalidSeatNumber     = errors.New("座席番号は1以上である必要があります")
)
