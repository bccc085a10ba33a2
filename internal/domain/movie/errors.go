package movie

import "errors"

// Movie ドメインのエラー定義
var (
	ErrMovieNotFound           = errors.New("映画が見つかりません")
	ErrTitleRequired           = errors.New("タイトルは必須です")
	ErrDescriptionRequired     = errors.New("説明は必須です")
	ErrInvalidDuration         = errors.New("上映時間は1分以上である必要があります")
	ErrGenreRequired           = errors.New("ジャンルは必須です")
	ErrDirectorRequired        = errors.New("監督は必須です")
	ErrInvalidTicketPrice      = errors.New("チケット料金は0より大きい必要があります")
	ErrMovieHasActiveScreening = errors.New("アクティブな上映がある映画は削除できません")
)
