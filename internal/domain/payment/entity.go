package payment

import (
	"strings"
	"time"
)

// Status は支払いの状態を表す
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusRefunded  Status = "refunded"
)

// Method は支払い方法を表す
type Method string

const (
	MethodCreditCard   Method = "credit_card"
	MethodDebitCard    Method = "debit_card"
	MethodPayPal       Method = "paypal"
	MethodCash         Method = "cash"
	MethodBankTransfer Method = "bank_transfer"
)

// ParseMethod は文字列から支払い方法を解決する
func ParseMethod(s string) (Method, error) {
	switch Method(strings.ToLower(strings.TrimSpace(s))) {
	case MethodCreditCard:
		return MethodCreditCard, nil
	case MethodDebitCard:
		return MethodDebitCard, nil
	case MethodPayPal:
		return MethodPayPal, nil
	case MethodCash:
		return MethodCash, nil
	case MethodBankTransfer:
		return MethodBankTransfer, nil
	default:
		return "", ErrInvalidMethod
	}
}

// Payment は予約に対する支払いエンティティを表す
// 1つの予約に対して支払いは最大1件
type Payment struct {
	ID            string
	BookingID     string
	Amount        int64 // 最小通貨単位（セント）
	Method        Method
	Status        Status
	TransactionID string
	Notes         string
	PaymentDate   time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewPayment は保留中ステータスの新しい支払いを作成する
func NewPayment(bookingID string, amount int64, method Method, transactionID, notes string) (*Payment, error) {
	if bookingID == "" {
		return nil, ErrBookingIDRequired
	}
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if _, err := ParseMethod(string(method)); err != nil {
		return nil, err
	}
	now := time.Now()
	return &Payment{
		BookingID:     bookingID,
		Amount:        amount,
		Method:        method,
		Status:        StatusPending,
		TransactionID: transactionID,
		Notes:         notes,
		PaymentDate:   now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// MarkAsPaid は支払いを完了状態にする
// 空でないトランザクションIDが渡された場合は上書きする
func (p *Payment) MarkAsPaid(transactionID string) error {
	if p.Status == StatusCompleted {
		return ErrPaymentAlreadyCompleted
	}
	if p.Status == StatusRefunded {
		return ErrCannotPayRefunded
	}
	p.Status = StatusCompleted
	if strings.TrimSpace(transactionID) != "" {
		p.TransactionID = transactionID
	}
	p.UpdatedAt = time.Now()
	return nil
}

// MarkAsFailed は支払いを失敗状態にする
func (p *Payment) MarkAsFailed() error {
	if p.Status == StatusCompleted {
		return ErrCannotFailCompleted
	}
	if p.Status == StatusRefunded {
		return ErrCannotFailRefunded
	}
	p.Status = StatusFailed
	p.UpdatedAt = time.Now()
	return nil
}

// MarkAsRefunded は支払いを返金状態にする
// 完了済みの支払いのみ返金できる
func (p *Payment) MarkAsRefunded() error {
	if p.Status != StatusCompleted {
		return ErrOnlyCompletedCanBeRefunded
	}
	p.Status = StatusRefunded
	p.UpdatedAt = time.Now()
	return nil
}

// IsCompleted は支払いが完了済みかを返す
func (p *Payment) IsCompleted() bool {
	return p.Status == StatusCompleted
}

// CanBeRefunded は支払いが返金可能かを返す
func (p *Payment) CanBeRefunded() bool {
	return p.Status == StatusCompleted
}
