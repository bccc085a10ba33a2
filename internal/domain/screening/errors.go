package screening

import "errors"

// Screening ドメインのエラー定義
var (
	ErrScreeningNotFound          = errors.New("上映が見つかりません")
	ErrScreeningNotActive         = errors.New("上映は有効ではありません")
	ErrMovieIDRequired            = errors.New("映画IDは必須です")
	ErrAuditoriumIDRequired       = errors.New("上映ホールIDは必須です")
	ErrInvalidScreeningTime       = errors.New("開始時刻は終了時刻より前である必要があります")
	ErrStartTimeInPast            = errors.New("開始時刻を過去に設定することはできません")
	ErrInvalidPrice               = errors.New("料金は0より大きい必要があります")
	ErrScreeningHasActiveBookings = errors.New("アクティブな予約がある上映は削除できません")
)
