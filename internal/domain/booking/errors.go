package booking

import "errors"

// Booking ドメインのエラー定義
var (
	ErrBookingNotFound          = errors.New("予約が見つかりません")
	ErrBookingAccessDenied      = errors.New("予約へのアクセス権がありません")
	ErrBookingNotPending        = errors.New("保留中の予約のみ確定できます")
	ErrBookingExpired           = errors.New("期限切れの予約は確定できません")
	ErrBookingAlreadyCancelled  = errors.New("予約は既にキャンセルされています")
	ErrCannotCancelExpired      = errors.New("期限切れの予約はキャンセルできません")
	ErrCannotExpire             = errors.New("確定済みまたはキャンセル済みの予約は期限切れにできません")
	ErrSeatsOnlyWhenPending     = errors.New("保留中の予約にのみ座席を追加できます")
	ErrSeatAlreadyAdded         = errors.New("座席は既にこの予約に追加されています")
	ErrSeatsAlreadyBooked       = errors.New("次の座席は既に予約されています")
	ErrScreeningIDRequired      = errors.New("上映IDは必須です")
	ErrUserIDRequired           = errors.New("ユーザーIDは必須です")
	ErrSeatIDRequired           = errors.New("座席IDは必須です")
	ErrSeatIDsRequired          = errors.New("座席IDは必須です（1件以上）")
	ErrDuplicateSeatIDs         = errors.New("座席IDが重複しています")
	ErrInvalidTotalAmount       = errors.New("合計金額は0より大きい必要があります")
	ErrInvalidExpirationMinutes = errors.New("有効期限（分）は0より大きい必要があります")
)
