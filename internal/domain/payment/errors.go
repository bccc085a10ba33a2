package payment

import "errors"

// Payment ドメインのエラー定義
var (
	ErrPaymentNotFound            = errors.New("支払いが見つかりません")
	ErrPaymentAlreadyExists       = errors.New("この予約の支払いは既に存在します")
	ErrBookingIDRequired          = errors.New("予約IDは必須です")
	ErrInvalidAmount              = errors.New("支払い金額は0より大きい必要があります")
	ErrInvalidMethod              = errors.New("支払い方法が不正です")
	ErrPaymentAlreadyCompleted    = errors.New("支払いは既に完了しています")
	ErrCannotPayRefunded          = errors.New("返金済みの支払いは完了にできません")
	ErrCannotFailCompleted        = errors.New("完了済みの支払いは失敗にできません")
	ErrCannotFailRefunded         = errors.New("返金済みの支払いは失敗にできません")
	ErrOnlyCompletedCanBeRefunded = errors.New("完了済みの支払いのみ返金できます")
	ErrBookingCannotBePaid        = errors.New("予約は支払いできる状態ではありません")
)
